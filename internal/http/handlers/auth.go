package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aruna-2201/zidio-prj/internal/auth"
	"github.com/aruna-2201/zidio-prj/internal/http/respond"
	"github.com/aruna-2201/zidio-prj/internal/models/dto"
)

// AuthHandler owns the register/login endpoints.
type AuthHandler struct {
	svc    *auth.Service
	logger *slog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(svc *auth.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

// Register attaches auth routes.
func (h *AuthHandler) Register(r chi.Router) {
	r.Post("/register", h.handleRegister)
	r.Post("/login", h.handleLogin)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.FullName) == "" || strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Password) == "" || strings.TrimSpace(req.Role) == "" {
		respond.Error(w, http.StatusBadRequest, "fullName, email, password, and role are required")
		return
	}

	err := h.svc.Register(r.Context(), req.FullName, req.Email, req.Password, roleName(req.Role))
	if err != nil {
		h.writeAuthError(w, err, http.StatusBadRequest)
		return
	}

	respond.Message(w, http.StatusOK, fmt.Sprintf("User registered successfully as %s", req.Role))
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		respond.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	resp, err := h.svc.Login(r.Context(), req.Email, req.Password, roleName(req.Role), time.Now())
	if err != nil {
		h.writeAuthError(w, err, http.StatusBadRequest)
		return
	}

	respond.JSON(w, http.StatusOK, resp)
}

// writeAuthError maps the service taxonomy onto status codes:
// InvalidCredentials and AccessDenied are 401, everything else in this
// service is the fallback (400 at this boundary).
func (h *AuthHandler) writeAuthError(w http.ResponseWriter, err error, fallback int) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrAccessDenied):
		respond.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrDuplicateEmail), errors.Is(err, auth.ErrRoleNotFound), errors.Is(err, auth.ErrUserNotFound):
		respond.Error(w, fallback, err.Error())
	default:
		h.logger.Error("auth request failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")
	}
}

// roleName applies the fixed ROLE_ prefix convention to a client-supplied
// role tag before lookup.
func roleName(role string) string {
	return "ROLE_" + strings.ToUpper(strings.TrimSpace(role))
}
