package storefront

import (
	"log/slog"
	"net/http"

	"github.com/mvillanueva/tindahan/internal/handler"
	"github.com/mvillanueva/tindahan/internal/service"
)

// AccountHandler serves account settings, currently the two-step password
// change.
type AccountHandler struct {
	passwords service.PasswordChangeService
	logger    *slog.Logger
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(passwords service.PasswordChangeService, logger *slog.Logger) *AccountHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountHandler{passwords: passwords, logger: logger}
}

type passwordChangeRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

type passwordConfirmRequest struct {
	Token string `json:"token" validate:"required"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

// RequestPasswordChange handles POST /api/account/password-change.
// On success the OTP is delivered out of band and the opaque token is
// returned for the confirm step.
func (h *AccountHandler) RequestPasswordChange(w http.ResponseWriter, r *http.Request) {
	var req passwordChangeRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.Error(w, r, err)
		return
	}

	token, err := h.passwords.Request(r.Context(), req.CurrentPassword, req.NewPassword)
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusAccepted, map[string]string{"token": token})
}

// ConfirmPasswordChange handles POST /api/account/password-change/confirm.
func (h *AccountHandler) ConfirmPasswordChange(w http.ResponseWriter, r *http.Request) {
	var req passwordConfirmRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.Error(w, r, err)
		return
	}

	if err := h.passwords.Confirm(r.Context(), req.Token, req.OTP); err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, map[string]string{"status": "password changed"})
}
