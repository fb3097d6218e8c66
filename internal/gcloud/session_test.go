package gcloud

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "google-creds.json")
	_, err := Open(context.Background(), path)
	if err == nil {
		t.Fatal("expected error for missing credential file")
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error to name the path, got %v", err)
	}
}

func TestOpenMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "google-creds.json")
	if err := os.WriteFile(path, []byte("not json"), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, err := Open(context.Background(), path); err == nil {
		t.Fatal("expected error for malformed credential file")
	}
}

func TestCloseNil(t *testing.T) {
	var s *Session
	if err := s.Close(); err != nil {
		t.Fatalf("expected nil session close to be a no-op, got %v", err)
	}
}
