package router

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/careervisualizer/backend/internal/auth"
	"github.com/careervisualizer/backend/internal/health"
	"github.com/careervisualizer/backend/internal/models"
	"github.com/careervisualizer/backend/internal/record"
	"github.com/careervisualizer/backend/internal/transcribe"
)

type memRows struct{ rows []models.CareerRecord }

func (m *memRows) AppendRow(_ context.Context, rec models.CareerRecord) error {
	m.rows = append(m.rows, rec)
	return nil
}

type echoRecognizer struct{}

func (echoRecognizer) Recognize(_ context.Context, audio []byte) (string, error) {
	return string(audio), nil
}

func setupServer(t *testing.T, rows record.RowStore, rec transcribe.Recognizer, status *health.Status, rate int) http.Handler {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte("SuhailsPassword123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	users, err := auth.NewUserTable([]models.User{
		{Email: "suhail@school.com", PasswordHash: string(h), Role: models.RoleAdmin},
	})
	if err != nil {
		t.Fatalf("failed to build user table: %v", err)
	}

	log := zerolog.New(io.Discard)
	return New(Deps{
		Log:                log,
		AllowedOrigins:     []string{"http://localhost:3000", "https://careervisualizer.netlify.app"},
		RateLimitPerMinute: rate,
		Auth:               auth.NewHandler(users, nil, log),
		Record:             record.NewHandler(rows, log),
		Transcribe:         transcribe.NewHandler(rec, log),
		Health:             status,
	})
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouter_FullFlow(t *testing.T) {
	rows := &memRows{}
	h := setupServer(t, rows, echoRecognizer{}, health.NewStatus(), 0)

	w := post(t, h, "/login", `{"email":"suhail@school.com","password":"SuhailsPassword123"}`)
	if w.Code != http.StatusOK || w.Body.String() != `{"success":true,"role":"admin"}` {
		t.Fatalf("login: unexpected %d %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("expected CORS header for allowed origin, got %q", got)
	}

	w = post(t, h, "/record", `{"name":"Ada","career":"Engineer"}`)
	if w.Code != http.StatusOK || len(rows.rows) != 1 {
		t.Fatalf("record: unexpected %d %s (%d rows)", w.Code, w.Body.String(), len(rows.rows))
	}

	w = post(t, h, "/transcribe", `{"audioData":"data:audio/webm;base64,cGlsb3Q="}`)
	if w.Code != http.StatusOK || w.Body.String() != `{"success":true,"transcript":"pilot"}` {
		t.Fatalf("transcribe: unexpected %d %s", w.Code, w.Body.String())
	}
}

func TestRouter_CORS(t *testing.T) {
	h := setupServer(t, &memRows{}, echoRecognizer{}, health.NewStatus(), 0)

	for origin, allowed := range map[string]bool{
		"https://careervisualizer.netlify.app": true,
		"https://evil.example":                 false,
	} {
		req := httptest.NewRequest(http.MethodOptions, "/login", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		got := w.Header().Get("Access-Control-Allow-Origin")
		if allowed && got != origin {
			t.Fatalf("%s: expected origin to be allowed, got %q", origin, got)
		}
		if !allowed && got != "" {
			t.Fatalf("%s: expected no CORS header, got %q", origin, got)
		}
	}
}

func TestRouter_Degraded(t *testing.T) {
	status := health.NewStatus()
	status.Set("google", errors.New("read credentials: no such file"))
	h := setupServer(t, nil, nil, status, 0)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}

	if w := post(t, h, "/record", `{"name":"Ada","career":"Engineer"}`); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected record to fail with 500, got %d", w.Code)
	}
	if w := post(t, h, "/transcribe", `{"audioData":"data:,cGlsb3Q="}`); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected transcribe to fail with 500, got %d", w.Code)
	}
	if w := post(t, h, "/login", `{"email":"suhail@school.com","password":"SuhailsPassword123"}`); w.Code != http.StatusOK {
		t.Fatalf("expected login to keep working, got %d", w.Code)
	}
}

func TestRouter_RateLimit(t *testing.T) {
	h := setupServer(t, &memRows{}, echoRecognizer{}, health.NewStatus(), 2)

	var last int
	for i := 0; i < 3; i++ {
		last = post(t, h, "/login", `{"email":"x","password":"y"}`).Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("expected third request to be limited, got %d", last)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	h := setupServer(t, &memRows{}, echoRecognizer{}, health.NewStatus(), 0)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}
