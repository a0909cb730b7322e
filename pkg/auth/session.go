// Package auth implements the session flag behind the route gate. The
// cookie carries a signed token encoding nothing but "authenticated:
// true" — there is no identity, no credential verification and no
// server-side session state. This gates UI flow only; it is not a
// security boundary.
package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the cookie holding the signed session flag
const SessionCookieName = "formforge_session"

// SessionManager issues and verifies session flag tokens
type SessionManager struct {
	secret []byte
	issuer string
}

// NewSessionManager creates a session manager. An empty secret falls back
// to a development-only default.
func NewSessionManager(secret, issuer string) *SessionManager {
	if secret == "" {
		secret = "development-secret-change-in-production"
	}
	return &SessionManager{secret: []byte(secret), issuer: issuer}
}

// IssueToken signs a token asserting the authenticated flag
func (m *SessionManager) IssueToken() (string, error) {
	claims := jwt.MapClaims{
		"authenticated": true,
		"iss":           m.issuer,
		"iat":           time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify reports whether tokenString is a validly signed session flag
func (m *SessionManager) Verify(tokenString string) bool {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer))
	if err != nil || !token.Valid {
		return false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	authenticated, _ := claims["authenticated"].(bool)
	return authenticated
}

// SetCookie attaches the session cookie to the response
func (m *SessionManager) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie removes the session cookie
func (m *SessionManager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// FromRequest reports whether the request carries a valid session flag
func (m *SessionManager) FromRequest(r *http.Request) bool {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return false
	}
	return m.Verify(cookie.Value)
}
