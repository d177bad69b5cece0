package auth_test

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holisticagro/agromart/pkg/apperr"
	"github.com/holisticagro/agromart/pkg/auth"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTokens(t *testing.T, secret string) *auth.Tokens {
	t.Helper()
	tokens, err := auth.NewTokens(secret, 0)
	require.NoError(t, err)
	return tokens.WithClock(func() time.Time { return fixedNow })
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	tokens := newTokens(t, "s3cret")

	raw, expires, err := tokens.Issue(map[string]any{"phone": "01712345678", "name": "Rahim"})
	require.NoError(t, err)
	assert.Equal(t, fixedNow.Add(auth.DefaultTTL), expires)

	id, err := tokens.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "01712345678", id.Phone)
	assert.Equal(t, "Rahim", id.Claims["name"])
}

func TestIssueOverridesClientTimeClaims(t *testing.T) {
	tokens := newTokens(t, "s3cret")

	raw, _, err := tokens.Issue(map[string]any{
		"phone": "01712345678",
		"exp":   fixedNow.Add(365 * 24 * time.Hour).Unix(),
		"nbf":   fixedNow.Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	id, err := tokens.Verify(raw)
	require.NoError(t, err)
	exp, err := id.Claims.GetExpirationTime()
	require.NoError(t, err)
	assert.Equal(t, fixedNow.Add(auth.DefaultTTL).Unix(), exp.Unix())
	assert.NotContains(t, id.Claims, "nbf")
}

func TestIssueRequiresPhone(t *testing.T) {
	tokens := newTokens(t, "s3cret")

	_, _, err := tokens.Issue(map[string]any{"name": "nobody"})
	assert.ErrorIs(t, err, auth.ErrMissingPhone)

	_, _, err = tokens.Issue(map[string]any{"phone": 1712345678})
	assert.ErrorIs(t, err, auth.ErrMissingPhone)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	raw, _, err := newTokens(t, "s3cret").Issue(map[string]any{"phone": "01712345678"})
	require.NoError(t, err)

	_, err = newTokens(t, "other").Verify(raw)
	assert.Equal(t, apperr.CodeInvalidToken, apperr.CodeOf(err))
}

func TestVerifyRejectsAlteredPayload(t *testing.T) {
	tokens := newTokens(t, "s3cret")
	raw, _, err := tokens.Issue(map[string]any{"phone": "01712345678"})
	require.NoError(t, err)

	parts := strings.Split(raw, ".")
	require.Len(t, parts, 3)
	forged := base64.RawURLEncoding.EncodeToString([]byte(`{"phone":"01999999999","exp":4102444800}`))
	tampered := parts[0] + "." + forged + "." + parts[2]

	_, err = tokens.Verify(tampered)
	assert.Equal(t, apperr.CodeInvalidToken, apperr.CodeOf(err))
}

func TestVerifyRejectsExpired(t *testing.T) {
	tokens := newTokens(t, "s3cret")
	raw, _, err := tokens.Issue(map[string]any{"phone": "01712345678"})
	require.NoError(t, err)

	later := tokens.WithClock(func() time.Time { return fixedNow.Add(auth.DefaultTTL + time.Minute) })
	_, err = later.Verify(raw)
	assert.Equal(t, apperr.CodeInvalidToken, apperr.CodeOf(err))
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"phone": "01712345678",
		"exp":   fixedNow.Add(time.Hour).Unix(),
	})
	raw, err := tok.SignedString([]byte("s3cret"))
	require.NoError(t, err)

	_, err = newTokens(t, "s3cret").Verify(raw)
	assert.Equal(t, apperr.CodeInvalidToken, apperr.CodeOf(err))
}

func TestVerifyRequiresExpiry(t *testing.T) {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"phone": "01712345678"}).
		SignedString([]byte("s3cret"))
	require.NoError(t, err)

	_, err = newTokens(t, "s3cret").Verify(raw)
	assert.Equal(t, apperr.CodeInvalidToken, apperr.CodeOf(err))
}

func TestVerifyEmpty(t *testing.T) {
	_, err := newTokens(t, "s3cret").Verify("")
	assert.Equal(t, apperr.CodeInvalidToken, apperr.CodeOf(err))
}

func TestNewTokensRejectsEmptySecret(t *testing.T) {
	_, err := auth.NewTokens("", time.Hour)
	assert.ErrorIs(t, err, auth.ErrEmptySecret)
}
