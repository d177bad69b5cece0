package services

import (
	"context"
	"errors"
	"time"

	"github.com/holisticagro/agromart/pkg/apperr"
	"github.com/holisticagro/agromart/pkg/auth"
	"github.com/holisticagro/agromart/pkg/logger"
)

// TokenIssuer signs identity claims.
type TokenIssuer interface {
	Issue(claims map[string]any) (string, time.Time, error)
}

type AuthService struct {
	tokens TokenIssuer
}

func NewAuthService(tokens TokenIssuer) *AuthService {
	return &AuthService{tokens: tokens}
}

// IssuedToken is the body of a successful /authentication call.
type IssuedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Issue signs claims, which must carry a non-empty string phone.
func (s *AuthService) Issue(ctx context.Context, claims map[string]any) (*IssuedToken, error) {
	raw, expires, err := s.tokens.Issue(claims)
	switch {
	case errors.Is(err, auth.ErrMissingPhone):
		return nil, apperr.Validation("phone is required")
	case err != nil:
		return nil, apperr.Store(err, "")
	}
	logger.WithCtx(ctx).Info("token issued", "phone", claims[auth.PhoneClaim], "expires_at", expires)
	return &IssuedToken{Token: raw, ExpiresAt: expires}, nil
}
