package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/meridian-crm/monitor-api/internal/config"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidScope = errors.New("token missing required scope")
)

// TokenClaims carries the identity fields extracted from a validated token.
// Role is intentionally absent; it is loaded from the user store so that a
// stale token can never grant a revoked role.
type TokenClaims struct {
	UserID      uuid.UUID
	Email       string
	DisplayName string
}

// JWTValidator validates bearer tokens issued by the identity provider
type JWTValidator struct {
	config *config.AuthConfig
}

// NewJWTValidator creates a new JWT validator
func NewJWTValidator(cfg *config.AuthConfig) *JWTValidator {
	return &JWTValidator{config: cfg}
}

// ValidateToken validates a JWT token and returns the identity claims
func (v *JWTValidator) ValidateToken(tokenString string) (*TokenClaims, error) {
	claims := jwt.MapClaims{}
	parsedToken, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(v.config.JWTSecret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !parsedToken.Valid {
		return nil, ErrInvalidToken
	}

	// Validate audience
	if v.config.Audience != "" {
		aud, _ := claims.GetAudience()
		validAud := false
		for _, a := range aud {
			if a == v.config.Audience {
				validAud = true
				break
			}
		}
		if !validAud {
			return nil, fmt.Errorf("%w: invalid audience", ErrInvalidToken)
		}
	}

	// Validate issuer
	if v.config.Issuer != "" {
		iss, _ := claims.GetIssuer()
		if iss != v.config.Issuer {
			return nil, fmt.Errorf("%w: invalid issuer", ErrInvalidToken)
		}
	}

	// Validate scopes
	if v.config.RequiredScopes != "" {
		scopes := ExtractScopes(claims)
		if !HasRequiredScope(scopes, v.config.RequiredScopes) {
			return nil, ErrInvalidScope
		}
	}

	tc := &TokenClaims{
		DisplayName: extractString(claims, "name", "preferred_username"),
		Email:       extractString(claims, "email", "upn"),
	}

	if sub := extractString(claims, "sub", "oid"); sub != "" {
		if uid, err := uuid.Parse(sub); err == nil {
			tc.UserID = uid
		}
	}

	if tc.UserID == uuid.Nil && tc.Email == "" {
		return nil, fmt.Errorf("%w: no subject or email claim", ErrInvalidToken)
	}

	return tc, nil
}

// IssueToken signs a token for the given identity. Used by operational
// tooling and tests; production tokens come from the identity provider.
func (v *JWTValidator) IssueToken(userID uuid.UUID, email, displayName string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"email": email,
		"name":  displayName,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	if v.config.Issuer != "" {
		claims["iss"] = v.config.Issuer
	}
	if v.config.Audience != "" {
		claims["aud"] = v.config.Audience
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(v.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func extractString(claims jwt.MapClaims, keys ...string) string {
	for _, key := range keys {
		if val, ok := claims[key]; ok {
			if str, ok := val.(string); ok && str != "" {
				return str
			}
		}
	}
	return ""
}

// ExtractScopes extracts scopes from JWT claims
func ExtractScopes(claims jwt.MapClaims) []string {
	scopes := []string{}

	if val, ok := claims["scp"]; ok {
		if str, ok := val.(string); ok {
			scopes = strings.Split(str, " ")
		}
	}

	if val, ok := claims["scope"]; ok {
		if str, ok := val.(string); ok {
			scopes = append(scopes, strings.Split(str, " ")...)
		}
	}

	return scopes
}

// HasRequiredScope checks if token has required scopes
func HasRequiredScope(tokenScopes []string, required string) bool {
	required = strings.TrimSpace(required)
	if required == "" {
		return true
	}

	requiredScopes := strings.Split(required, ",")
	for _, req := range requiredScopes {
		req = strings.TrimSpace(req)
		if req == "" {
			continue
		}
		for _, scope := range tokenScopes {
			if strings.EqualFold(scope, req) {
				return true
			}
		}
	}
	return false
}
