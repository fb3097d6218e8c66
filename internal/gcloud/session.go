// Package gcloud holds the one authenticated Google session shared by the
// Sheets row store and the speech recognizer.
package gcloud

import (
	"context"
	"fmt"
	"os"

	speech "cloud.google.com/go/speech/apiv1"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Scopes requested for the service credential.
var Scopes = []string{
	sheets.SpreadsheetsScope,
	sheets.DriveFileScope,
	"https://www.googleapis.com/auth/cloud-platform",
}

// Session is created once at startup and is safe for concurrent use.
type Session struct {
	Sheets *sheets.Service
	Speech *speech.Client
}

// Open loads the credential file and builds both clients from it.
func Open(ctx context.Context, credsFile string) (*Session, error) {
	data, err := os.ReadFile(credsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials %s: %w", credsFile, err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse credentials %s: %w", credsFile, err)
	}
	return OpenWithOptions(ctx, option.WithCredentials(creds))
}

// OpenWithOptions builds the clients from arbitrary client options.
func OpenWithOptions(ctx context.Context, opts ...option.ClientOption) (*Session, error) {
	sheetsSvc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets client: %w", err)
	}
	speechClient, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("speech client: %w", err)
	}
	return &Session{Sheets: sheetsSvc, Speech: speechClient}, nil
}

// Close releases the speech client's connection. The Sheets service is
// plain HTTP and needs no teardown.
func (s *Session) Close() error {
	if s == nil || s.Speech == nil {
		return nil
	}
	return s.Speech.Close()
}
