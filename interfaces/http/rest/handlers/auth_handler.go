package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"formforge-backend/pkg/auth"
	"formforge-backend/pkg/common"
)

// AuthHandler implements the auth gate endpoints. Credentials are never
// verified: login and signup both just set the session flag. This gates
// UI flow only and must not be mistaken for real authentication.
type AuthHandler struct {
	sessions *auth.SessionManager
	logger   *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions *auth.SessionManager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{sessions: sessions, logger: logger}
}

// LoginRequest represents the request body for login and signup. Email
// and password are accepted but never checked.
type LoginRequest struct {
	Email      string `json:"email,omitempty"`
	Password   string `json:"password,omitempty"`
	RedirectTo string `json:"redirectTo,omitempty"`
}

// SessionResponse reports the gate state and where to navigate next
type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	RedirectTo    string `json:"redirectTo,omitempty"`
}

// Login handles POST /api/v1/auth/login: sets the session flag and
// returns the dashboard route (or a caller-specified one)
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	// An empty body is fine; there is nothing to validate
	json.NewDecoder(r.Body).Decode(&req)

	token, err := h.sessions.IssueToken()
	if err != nil {
		h.logger.Error("failed to issue session token", zap.Error(err))
		common.RespondError(w, http.StatusInternalServerError, "INTERNAL", "failed to start session")
		return
	}
	h.sessions.SetCookie(w, token)

	redirectTo := req.RedirectTo
	if redirectTo == "" {
		redirectTo = "/"
	}
	common.RespondJSON(w, http.StatusOK, SessionResponse{
		Authenticated: true,
		RedirectTo:    redirectTo,
	})
}

// Signup handles POST /api/v1/auth/signup. No account is created; it
// behaves exactly like login.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	h.Login(w, r)
}

// Logout handles POST /api/v1/auth/logout: clears the session flag
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearCookie(w)
	common.RespondJSON(w, http.StatusOK, SessionResponse{
		Authenticated: false,
		RedirectTo:    "/login",
	})
}

// Session handles GET /api/v1/auth/session: reports the current flag
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, SessionResponse{
		Authenticated: h.sessions.FromRequest(r),
	})
}
