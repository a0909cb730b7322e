package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	m := NewSessionManager("test-secret", "formforge")

	token, err := m.IssueToken()
	require.NoError(t, err)
	assert.True(t, m.Verify(token))
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	m := NewSessionManager("test-secret", "formforge")

	token, err := m.IssueToken()
	require.NoError(t, err)

	assert.False(t, m.Verify(token+"x"))
	assert.False(t, m.Verify(""))
	assert.False(t, m.Verify("not-a-token"))
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	issuing := NewSessionManager("secret-a", "formforge")
	verifying := NewSessionManager("secret-b", "formforge")

	token, err := issuing.IssueToken()
	require.NoError(t, err)
	assert.False(t, verifying.Verify(token))
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	issuing := NewSessionManager("test-secret", "someone-else")
	verifying := NewSessionManager("test-secret", "formforge")

	token, err := issuing.IssueToken()
	require.NoError(t, err)
	assert.False(t, verifying.Verify(token))
}

func TestCookieRoundTrip(t *testing.T) {
	m := NewSessionManager("test-secret", "formforge")

	token, err := m.IssueToken()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	m.SetCookie(rec, token)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	assert.True(t, m.FromRequest(req))

	bare := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, m.FromRequest(bare))
}

func TestClearCookieExpires(t *testing.T) {
	m := NewSessionManager("test-secret", "formforge")

	rec := httptest.NewRecorder()
	m.ClearCookie(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}
