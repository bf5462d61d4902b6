package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrNoSecret is returned when tokens are requested without a signing key
var ErrNoSecret = errors.New("jwt secret is not configured")

// TokenService issues and validates HS256 access tokens
type TokenService struct {
	secretKey []byte
	issuer    string

	// Default lifetime of issued tokens
	AccessTokenDuration time.Duration
}

// JWTClaims represents the claims in our JWT tokens
type JWTClaims struct {
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// NewTokenService creates a new token service
func NewTokenService(secretKey, issuer string) *TokenService {
	return &TokenService{
		secretKey:           []byte(secretKey),
		issuer:              issuer,
		AccessTokenDuration: 24 * time.Hour,
	}
}

// Enabled reports whether a signing key is configured
func (ts *TokenService) Enabled() bool {
	return len(ts.secretKey) > 0
}

// Issue creates a signed access token for subject. A ttl of zero uses
// AccessTokenDuration.
func (ts *TokenService) Issue(subject string, ttl time.Duration) (string, time.Time, error) {
	if !ts.Enabled() {
		return "", time.Time{}, ErrNoSecret
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", time.Time{}, errors.New("token subject is required")
	}
	if ttl <= 0 {
		ttl = ts.AccessTokenDuration
	}

	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &JWTClaims{
		Scope: "api",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    ts.issuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ts.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateAccessToken parses a token and checks signature, expiry and issuer
func (ts *TokenService) ValidateAccessToken(tokenString string) (*JWTClaims, error) {
	if !ts.Enabled() {
		return nil, ErrNoSecret
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if ts.issuer != "" {
		opts = append(opts, jwt.WithIssuer(ts.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ts.secretKey, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
