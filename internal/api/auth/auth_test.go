package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidate(t *testing.T) {
	ts := NewTokenService("s3cret", "codebugger")

	token, expiresAt, err := ts.Issue("ci-bot", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := ts.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ci-bot", claims.Subject)
	assert.Equal(t, "codebugger", claims.Issuer)
	assert.Equal(t, "api", claims.Scope)
	assert.NotEmpty(t, claims.ID)
}

func TestValidate_Rejects(t *testing.T) {
	ts := NewTokenService("s3cret", "codebugger")

	other, _, err := NewTokenService("other", "codebugger").Issue("x", time.Hour)
	require.NoError(t, err)
	_, err = ts.ValidateAccessToken(other)
	assert.Error(t, err, "wrong key")

	foreign, _, err := NewTokenService("s3cret", "someone-else").Issue("x", time.Hour)
	require.NoError(t, err)
	_, err = ts.ValidateAccessToken(foreign)
	assert.Error(t, err, "wrong issuer")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &JWTClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "x",
		Issuer:    "codebugger",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}})
	signed, err := expired.SignedString([]byte("s3cret"))
	require.NoError(t, err)
	_, err = ts.ValidateAccessToken(signed)
	assert.Error(t, err, "expired")

	_, _, err = NewTokenService("", "").Issue("x", time.Hour)
	assert.ErrorIs(t, err, ErrNoSecret)
	_, _, err = ts.Issue("  ", time.Hour)
	assert.Error(t, err)
}

func TestRequireAuth(t *testing.T) {
	ts := NewTokenService("s3cret", "codebugger")
	token, _, err := ts.Issue("ci-bot", 0)
	require.NoError(t, err)

	e := echo.New()
	e.GET("/private", func(c echo.Context) error {
		return c.String(http.StatusOK, Subject(c))
	}, RequireAuth(ts))

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage", "Bearer abc", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, "ci-bot", rec.Body.String())
			}
		})
	}
}
