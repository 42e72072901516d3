package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"taskreg/internal/api/middleware"
	"taskreg/internal/app/service"
	"taskreg/internal/common"
	"taskreg/internal/domain/model"
)

type AuthHandler struct {
	authService    *service.AuthService
	sessionService *service.SessionService
}

func NewAuthHandler(authService *service.AuthService, sessionService *service.SessionService) *AuthHandler {
	return &AuthHandler{authService: authService, sessionService: sessionService}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Success bool           `json:"success"`
	User    model.Identity `json:"user"`
	Token   string         `json:"token,omitempty"`
}

type StatusResponse struct {
	Success       bool            `json:"success"`
	Authenticated bool            `json:"authenticated"`
	User          *model.Identity `json:"user"`
}

// Login verifies credentials and issues a session token. A request already
// carrying a valid session short-circuits: the existing identity comes back
// untouched and the credentials are never checked.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if token := middleware.TokenFromRequest(r); token != "" {
		identity, err := h.sessionService.Resolve(r.Context(), token)
		if err == nil {
			common.RespondWithJSON(w, http.StatusOK, AuthResponse{Success: true, User: identity, Token: token})
			return
		}
		if !errors.Is(err, common.ErrUnauthenticated) {
			common.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		// Stale token: fall through to a fresh credential check.
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	identity, err := h.authService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		// One message for every credential failure; see common.ErrInvalidCredentials.
		if errors.Is(err, common.ErrInvalidCredentials) {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	token, err := h.sessionService.Create(r.Context(), identity)
	if err != nil {
		common.RespondWithError(w, http.StatusInternalServerError, "Failed to start session")
		return
	}

	common.RespondWithJSON(w, http.StatusOK, AuthResponse{Success: true, User: identity, Token: token})
}

// Logout destroys the server-side session. Runs behind the authenticator, so
// the token is present and valid by the time we get here.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromRequest(r)
	if err := h.sessionService.Destroy(r.Context(), token); err != nil {
		common.RespondWithError(w, http.StatusInternalServerError, "Failed to end session")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged out successfully",
	})
}

// Status is the unauthenticated session probe. An absent or stale session is
// reported as authenticated:false; a store outage is a 500, so an outage can
// never masquerade as a logged-out state.
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromRequest(r)
	if token == "" {
		common.RespondWithJSON(w, http.StatusOK, StatusResponse{Success: true, Authenticated: false, User: nil})
		return
	}

	identity, err := h.sessionService.Resolve(r.Context(), token)
	if err != nil {
		if errors.Is(err, common.ErrUnauthenticated) {
			common.RespondWithJSON(w, http.StatusOK, StatusResponse{Success: true, Authenticated: false, User: nil})
			return
		}
		common.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	common.RespondWithJSON(w, http.StatusOK, StatusResponse{Success: true, Authenticated: true, User: &identity})
}

// Me returns the caller's identity.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, AuthResponse{Success: true, User: *identity})
}
