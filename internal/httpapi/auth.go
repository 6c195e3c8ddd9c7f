package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Context key for caller data
type contextKey string

const subjectContextKey contextKey = "subject"

// JWTClaims represents the claims in the JWT token
type JWTClaims struct {
	jwt.RegisteredClaims
	Scope string `json:"scope,omitempty"`
}

// withAuth requires a valid HS256 bearer token when a JWT secret is configured.
func (r *Router) withAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if r.cfg.JWTSecret == "" {
			next.ServeHTTP(w, req)
			return
		}

		tokenString, ok := bearerToken(req)
		if !ok {
			http.Error(w, `{"error": "missing authorization header"}`, http.StatusUnauthorized)
			return
		}

		claims, err := ParseToken(r.cfg.JWTSecret, tokenString)
		if err != nil {
			http.Error(w, `{"error": "invalid token"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(req.Context(), subjectContextKey, claims.Subject)
		next.ServeHTTP(w, req.WithContext(ctx))
	}
}

// bearerToken reads "Authorization: Bearer <token>". Browsers cannot set
// headers on websocket upgrades, so the access_token query parameter is
// accepted as well.
func bearerToken(req *http.Request) (string, bool) {
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		if t := req.URL.Query().Get("access_token"); t != "" {
			return t, true
		}
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// getSubject extracts the authenticated subject from context
func getSubject(ctx context.Context) string {
	s, _ := ctx.Value(subjectContextKey).(string)
	return s
}

// GenerateToken signs an HS256 token for subject valid for expiry.
func GenerateToken(secret, subject string, expiry time.Duration) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, errors.New("JWT secret is empty")
	}
	now := time.Now()
	expiresAt := now.Add(expiry)

	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Scope: "speech",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseToken validates tokenString and returns its claims. Tokens without an
// expiry are rejected.
func ParseToken(secret, tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithExpirationRequired())
	token, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
