package store

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/sheets/v4"

	"github.com/careervisualizer/backend/internal/models"
)

// SheetsStore appends career records to one tab of a Google spreadsheet.
type SheetsStore struct {
	svc           *sheets.Service
	spreadsheetID string
	tab           string
}

func NewSheetsStore(svc *sheets.Service, spreadsheetID, tab string) *SheetsStore {
	return &SheetsStore{svc: svc, spreadsheetID: spreadsheetID, tab: tab}
}

// VerifyTab fails if the spreadsheet has no tab with the configured title.
func (s *SheetsStore) VerifyTab(ctx context.Context) error {
	doc, err := s.svc.Spreadsheets.Get(s.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets open %s: %w", s.spreadsheetID, err)
	}
	for _, sh := range doc.Sheets {
		if sh.Properties != nil && sh.Properties.Title == s.tab {
			return nil
		}
	}
	return fmt.Errorf("sheets: tab %q not found in %s", s.tab, s.spreadsheetID)
}

// AppendRow adds [name, career, date] after the last row of the tab.
// Cells are written RAW so user input is never parsed as a formula.
func (s *SheetsStore) AppendRow(ctx context.Context, rec models.CareerRecord) error {
	row := rec.Row()
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}

	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, a1Range(s.tab), &sheets.ValueRange{Values: [][]interface{}{cells}}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets append: %w", err)
	}
	return nil
}

func a1Range(tab string) string {
	return "'" + strings.ReplaceAll(tab, "'", "''") + "'"
}
