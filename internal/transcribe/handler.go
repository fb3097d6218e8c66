package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/careervisualizer/backend/internal/common"
	"github.com/careervisualizer/backend/internal/models"
)

// Handler serves POST /transcribe.
type Handler struct {
	rec Recognizer
	log zerolog.Logger
}

// NewHandler takes a nil rec when the speech client failed to start.
func NewHandler(rec Recognizer, log zerolog.Logger) *Handler {
	return &Handler{rec: rec, log: log}
}

func (h *Handler) Transcribe(w http.ResponseWriter, r *http.Request) {
	var req models.TranscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.AudioData == "" {
		common.RespondWithError(w, http.StatusBadRequest, "No audio data")
		return
	}

	transcript, err := h.transcribe(r.Context(), req.AudioData)
	if err != nil {
		h.log.Error().Err(err).Msg("speech-to-text failed")
		common.RespondWithError(w, http.StatusInternalServerError, "Failed to transcribe audio")
		return
	}

	common.RespondWithJSON(w, http.StatusOK, common.Response{Success: true, Transcript: &transcript})
}

func (h *Handler) transcribe(ctx context.Context, audioData string) (string, error) {
	audio, err := DecodeAudioData(audioData)
	if err != nil {
		return "", err
	}
	if h.rec == nil {
		return "", common.ErrUnavailable
	}
	transcript, err := h.rec.Recognize(ctx, audio)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrUpstream, err)
	}
	return transcript, nil
}
