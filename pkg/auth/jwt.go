// Package auth issues and verifies the bearer tokens that bind a caller to
// a phone-number identity. There is no session store: a token is valid when
// its HS256 signature checks out and it has not expired.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/holisticagro/agromart/pkg/apperr"
)

// DefaultTTL is the fixed token lifetime.
const DefaultTTL = 10 * 24 * time.Hour

// PhoneClaim is the claim carrying the caller's identity.
const PhoneClaim = "phone"

var (
	ErrMissingPhone = errors.New("auth: phone claim is required")
	ErrEmptySecret  = errors.New("auth: signing secret is empty")
)

// Identity is the decoded, verified subject of a token.
type Identity struct {
	Phone  string
	Claims jwt.MapClaims
}

// Tokens signs and verifies tokens with one shared secret.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokens returns a Tokens using secret and ttl (DefaultTTL when ttl <= 0).
func NewTokens(secret string, ttl time.Duration) (*Tokens, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// WithClock returns a copy of t that reads the current time from now.
func (t *Tokens) WithClock(now func() time.Time) *Tokens {
	cp := *t
	cp.now = now
	return &cp
}

// TTL is the lifetime applied to issued tokens.
func (t *Tokens) TTL() time.Duration { return t.ttl }

// Issue signs claims. The caller's claims are kept as-is except for the
// registered time claims, which are always set by the server.
func (t *Tokens) Issue(claims map[string]any) (string, time.Time, error) {
	phone, _ := claims[PhoneClaim].(string)
	if strings.TrimSpace(phone) == "" {
		return "", time.Time{}, ErrMissingPhone
	}

	now := t.now()
	expires := now.Add(t.ttl)

	mc := make(jwt.MapClaims, len(claims)+2)
	for k, v := range claims {
		mc[k] = v
	}
	delete(mc, "nbf")
	mc["iat"] = jwt.NewNumericDate(now)
	mc["exp"] = jwt.NewNumericDate(expires)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, expires, nil
}

// Verify parses raw and returns the identity it carries. Every failure is
// an apperr INVALID_TOKEN error.
func (t *Tokens) Verify(raw string) (*Identity, error) {
	if raw == "" {
		return nil, apperr.InvalidToken(errors.New("auth: empty token"))
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)

	claims := jwt.MapClaims{}
	token, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	})
	if err != nil {
		return nil, apperr.InvalidToken(err)
	}
	if !token.Valid {
		return nil, apperr.InvalidToken(jwt.ErrTokenInvalidClaims)
	}

	phone, _ := claims[PhoneClaim].(string)
	if strings.TrimSpace(phone) == "" {
		return nil, apperr.InvalidToken(ErrMissingPhone)
	}

	return &Identity{Phone: phone, Claims: claims}, nil
}

type ctxKey struct{}

// WithIdentity stores id in ctx.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity placed by the authentication middleware.
func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(*Identity)
	return id, ok && id != nil
}
