package auth

import "github.com/labstack/echo/v4"

// ContextKey represents keys for context values
type ContextKey string

// ClaimsContextKey holds the validated token claims
const ClaimsContextKey ContextKey = "claims"

// ClaimsFromContext returns the claims set by RequireAuth
func ClaimsFromContext(c echo.Context) (*JWTClaims, bool) {
	claims, ok := c.Get(string(ClaimsContextKey)).(*JWTClaims)
	return claims, ok
}

// Subject returns the token subject of an authenticated request, or ""
func Subject(c echo.Context) string {
	if claims, ok := ClaimsFromContext(c); ok {
		return claims.Subject
	}
	return ""
}
