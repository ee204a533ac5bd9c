package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/auradigitalchile/agendamiento-fletes/internal/adapter/http/dto"
	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
	"github.com/auradigitalchile/agendamiento-fletes/internal/infrastructure/auth"
	"github.com/auradigitalchile/agendamiento-fletes/internal/infrastructure/metrics"
	"github.com/auradigitalchile/agendamiento-fletes/internal/usecase"
)

// AuthHandler handles signup, login and the account flows.
type AuthHandler struct {
	authUC     *usecase.AuthUseCase
	jwtManager *auth.JWTManager
	metrics    *metrics.Metrics
	logger     zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authUC *usecase.AuthUseCase, jwtManager *auth.JWTManager, m *metrics.Metrics, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{authUC: authUC, jwtManager: jwtManager, metrics: m, logger: logger}
}

// Register creates a user with a fresh organization and logs them in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, org, err := h.authUC.Register(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to register", err.Error())
		return
	}

	// The registering user is always the organization owner.
	session := &usecase.Session{
		User:           user,
		OrganizationID: org.ID,
		Role:           domain.RoleOwner,
	}
	token, err := h.jwtManager.Generate(session)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.LoginResponse{
		Token:          token,
		User:           *dto.UserFromDomain(user),
		OrganizationID: org.ID,
		Role:           string(domain.RoleOwner),
	})
}

// Login authenticates credentials and issues a JWT.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	session, err := h.authUC.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.metrics.AuthAttempts.WithLabelValues("failure").Inc()
		writeError(w, mapDomainError(err), "failed to login", err.Error())
		return
	}

	token, err := h.jwtManager.Generate(session)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token", err.Error())
		return
	}

	h.metrics.AuthAttempts.WithLabelValues("success").Inc()

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Token:          token,
		User:           *dto.UserFromDomain(session.User),
		OrganizationID: session.OrganizationID,
		Role:           string(session.Role),
	})
}

// Me returns the session user's profile and organization.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	user, org, err := h.authUC.Me(r.Context(), s.UserID, s.OrganizationID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get profile", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":         dto.UserFromDomain(user),
		"organization": dto.OrganizationFromDomain(org),
		"role":         string(s.Role),
	})
}

// ForgotPassword issues a password reset token. The response never reveals
// whether the email is registered; token delivery happens out of band.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	token, err := h.authUC.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to process request", err.Error())
		return
	}
	if token != "" {
		h.logger.Info().Str("email", req.Email).Msg("password reset token issued")
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "if the email is registered, a reset link has been sent",
	})
}

// ValidateResetToken checks a reset token without consuming it.
func (h *AuthHandler) ValidateResetToken(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "invalid request", "token query parameter is required")
		return
	}

	if err := h.authUC.ValidateResetToken(r.Context(), token); err != nil {
		writeError(w, mapDomainError(err), "invalid token", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"valid": true})
}

// ResetPassword consumes a reset token and sets the new password.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.authUC.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		writeError(w, mapDomainError(err), "failed to reset password", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

// ChangePassword changes the session user's password.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.authUC.ChangePassword(r.Context(), s.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, mapDomainError(err), "failed to change password", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

// ChangeEmail issues a verification token for the new address.
func (h *AuthHandler) ChangeEmail(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	var req dto.ChangeEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if _, err := h.authUC.RequestEmailChange(r.Context(), s.UserID, req.NewEmail); err != nil {
		writeError(w, mapDomainError(err), "failed to request email change", err.Error())
		return
	}

	h.logger.Info().Str("user_id", s.UserID).Msg("email verification token issued")

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "a verification link has been sent to the new address",
	})
}

// VerifyEmail consumes a verification token and applies the new address.
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.authUC.VerifyEmail(r.Context(), req.Token); err != nil {
		writeError(w, mapDomainError(err), "failed to verify email", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "email updated"})
}
