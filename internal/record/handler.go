package record

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/careervisualizer/backend/internal/common"
	"github.com/careervisualizer/backend/internal/models"
)

// RowStore is an append-only sink for career records.
type RowStore interface {
	AppendRow(ctx context.Context, rec models.CareerRecord) error
}

// Handler serves POST /record.
type Handler struct {
	rows RowStore
	now  func() time.Time
	log  zerolog.Logger
}

// NewHandler takes a nil rows when the store failed to start; requests
// then fail with 500 instead of being dropped.
func NewHandler(rows RowStore, log zerolog.Logger) *Handler {
	return &Handler{rows: rows, now: time.Now, log: log}
}

func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	var req models.RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Career == "" {
		common.RespondWithError(w, http.StatusBadRequest, "Missing name or career")
		return
	}

	rec := models.NewCareerRecord(req.Name, req.Career, h.now())
	if err := h.save(r.Context(), rec); err != nil {
		h.log.Error().Err(err).Msg("failed to save record")
		common.RespondWithError(w, common.HTTPStatusFromError(err), "Failed to save record")
		return
	}

	h.log.Info().
		Str("name", rec.Name).
		Str("career", rec.Career).
		Str("date", rec.Date).
		Msg("record saved")
	common.RespondWithJSON(w, http.StatusOK, common.Response{Success: true, Message: "Record saved"})
}

func (h *Handler) save(ctx context.Context, rec models.CareerRecord) error {
	if h.rows == nil {
		return common.ErrUnavailable
	}
	if err := h.rows.AppendRow(ctx, rec); err != nil {
		return fmt.Errorf("%w: %w", common.ErrUpstream, err)
	}
	return nil
}
