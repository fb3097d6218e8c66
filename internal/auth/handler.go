package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/careervisualizer/backend/internal/common"
	"github.com/careervisualizer/backend/internal/models"
)

// Authenticator checks an email/password pair.
type Authenticator interface {
	CheckPassword(email, pass string) (models.User, error)
}

// Throttle tracks failed logins. A nil Throttle disables lockout.
type Throttle interface {
	Blocked(ctx context.Context, email string) (bool, error)
	Fail(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// Handler serves POST /login.
type Handler struct {
	users    Authenticator
	throttle Throttle
	log      zerolog.Logger
}

func NewHandler(users Authenticator, throttle Throttle, log zerolog.Logger) *Handler {
	return &Handler{users: users, throttle: throttle, log: log}
}

// Login authenticates the caller. Nothing is issued; clients resend
// credentials on every call.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if h.throttle != nil {
		blocked, err := h.throttle.Blocked(r.Context(), req.Email)
		if err != nil {
			h.log.Warn().Err(err).Msg("login throttle lookup failed")
		}
		if blocked {
			common.RespondWithError(w, common.HTTPStatusFromError(common.ErrTooManyAttempts), "Too many failed attempts")
			return
		}
	}

	user, err := h.users.CheckPassword(req.Email, req.Password)
	if err != nil {
		h.log.Info().Str("email", req.Email).Err(err).Msg("login rejected")
		if h.throttle != nil {
			if err := h.throttle.Fail(r.Context(), req.Email); err != nil {
				h.log.Warn().Err(err).Msg("login throttle update failed")
			}
		}
		common.RespondWithError(w, common.HTTPStatusFromError(err), "Invalid credentials")
		return
	}

	if h.throttle != nil {
		if err := h.throttle.Reset(r.Context(), user.Email); err != nil {
			h.log.Warn().Err(err).Msg("login throttle reset failed")
		}
	}
	common.RespondWithJSON(w, http.StatusOK, common.Response{Success: true, Role: string(user.Role)})
}
