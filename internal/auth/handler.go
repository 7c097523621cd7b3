package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/healthchain/service-claims-go/internal/user/entity"
)

// Metrics is the counter surface this handler reports to.
type Metrics interface {
	RecordSignup(role string)
	RecordLogin(success bool)
}

// Handler exposes HTTP endpoints for signup and login.
type Handler struct {
	svc     *Service
	metrics Metrics
	logger  *zap.SugaredLogger
}

func NewHandler(svc *Service, metrics Metrics, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, metrics: metrics, logger: logger}
}

// SignupRequest is the request body for POST /auth/signup.
type SignupRequest struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	Name        string  `json:"name"`
	Role        string  `json:"role"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Address     *string `json:"address,omitempty"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid signup payload", "err", err)
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" || req.Role == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email, password, name and role are required"})
		return
	}

	profile, err := h.svc.Signup(r.Context(), SignupInput{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		Role:        req.Role,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateEmail):
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email already registered"})
		case errors.Is(err, ErrInvalidRole):
			h.writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "invalid role"})
		default:
			h.logger.Warnw("signup failed", "err", err)
			h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "signup failed"})
		}
		return
	}

	h.metrics.RecordSignup(string(profile.Role))
	h.writeJSON(w, http.StatusOK, profile)
}

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse mirrors the original token envelope.
type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	User        entity.Profile `json:"user"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid login payload", "err", err)
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	result, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			h.metrics.RecordLogin(false)
			h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
			return
		}
		h.logger.Warnw("login failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "login failed"})
		return
	}

	h.metrics.RecordLogin(true)
	h.writeJSON(w, http.StatusOK, LoginResponse{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
		User:        result.User,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
