package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/leadflow/leadflow-backend/internal/domain"
	"github.com/leadflow/leadflow-backend/internal/service/auth"
)

type authService interface {
	Login(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error)
	Register(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error)
	LoginWithGoogle(ctx context.Context, input auth.GoogleInput) (*auth.AuthResult, error)
}

// AuthHandler serves the public sign-in endpoints.
type AuthHandler struct {
	svc authService
	log *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc authService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: logger.With("handler", "auth")}
}

type loginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleRequest struct {
	IDToken string `json:"idToken"`
}

type authResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	ProfilePic string `json:"profilePic"`
	Token      string `json:"token"`
}

// Login handles POST /api/auth/login. The identifier may be sent as
// either email or username.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	identifier := req.Email
	if strings.TrimSpace(identifier) == "" {
		identifier = req.Username
	}

	result, err := h.svc.Login(r.Context(), auth.LoginInput{
		Identifier: identifier,
		Password:   req.Password,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toAuthResponse(result))
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.Register(r.Context(), auth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, auth.ErrRegistrationDisabled) {
			writeError(w, http.StatusForbidden, "registration is disabled")
			return
		}
		respondError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAuthResponse(result))
}

// Google handles POST /api/auth/google.
func (h *AuthHandler) Google(w http.ResponseWriter, r *http.Request) {
	var req googleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.LoginWithGoogle(r.Context(), auth.GoogleInput{IDToken: req.IDToken})
	if err != nil {
		if errors.Is(err, domain.ErrExternal) {
			h.log.WarnContext(r.Context(), "google sign-in rejected", slog.String("error", err.Error()))
			writeError(w, http.StatusBadRequest, "google authentication failed")
			return
		}
		respondError(h.log, w, r, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, toAuthResponse(result))
}

func toAuthResponse(result *auth.AuthResult) authResponse {
	return authResponse{
		ID:         result.User.ID.String(),
		Name:       result.User.Name,
		Email:      result.User.Email,
		Role:       result.User.Role.String(),
		ProfilePic: result.User.ProfilePic,
		Token:      result.Token,
	}
}
