// Package auth provides HS256 bearer-token authentication for the API.
// Authentication is optional: with no secret configured the middleware
// is not installed and all endpoints are open.
package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fieldlift/fieldlift/pkg/errx"
)

var (
	// Error registry for authentication
	errorRegistry = errx.NewRegistry("AUTH")

	ErrTokenGeneration = errorRegistry.Register(
		"TOKEN_GENERATION_FAILED",
		errx.TypeInternal,
		http.StatusInternalServerError,
		"Failed to generate token",
	)

	ErrInvalidToken = errorRegistry.Register(
		"INVALID_TOKEN",
		errx.TypeAuthorization,
		http.StatusUnauthorized,
		"Token is missing, malformed or expired",
	)
)

// Claims identify the caller of an analysis request.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Service issues and validates HS256 tokens.
type Service struct {
	secretKey []byte
	tokenTTL  time.Duration
	issuer    string
}

func NewService(secretKey string, tokenTTL time.Duration, issuer string) *Service {
	if tokenTTL == 0 {
		tokenTTL = 24 * time.Hour
	}
	if issuer == "" {
		issuer = "fieldlift"
	}
	return &Service{
		secretKey: []byte(secretKey),
		tokenTTL:  tokenTTL,
		issuer:    issuer,
	}
}

// Generate issues a token for the given subject.
func (s *Service) Generate(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   subject,
		Audience:  []string{"fieldlift-api"},
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", errorRegistry.NewWithCause(ErrTokenGeneration, err)
	}
	return signed, nil
}

// Validate parses and verifies a token, returning its claims.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, errorRegistry.NewWithCause(ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, errorRegistry.New(ErrInvalidToken)
	}

	registered, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return nil, errorRegistry.New(ErrInvalidToken)
	}

	claims := &Claims{Subject: registered.Subject}
	if registered.IssuedAt != nil {
		claims.IssuedAt = registered.IssuedAt.Time
	}
	if registered.ExpiresAt != nil {
		claims.ExpiresAt = registered.ExpiresAt.Time
	}
	return claims, nil
}
