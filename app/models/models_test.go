package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/holisticagro/agromart/app/models"
)

func TestCartLineIgnoresKeyOrder(t *testing.T) {
	a, err := models.NewCartLine(map[string]any{
		"title": "Sweet Corn",
		"price": 40.0,
		"meta":  map[string]any{"unit": "kg", "origin": "Bogura"},
	})
	require.NoError(t, err)
	b, err := models.NewCartLine(map[string]any{
		"meta":  map[string]any{"origin": "Bogura", "unit": "kg"},
		"price": 40.0,
		"title": "Sweet Corn",
	})
	require.NoError(t, err)

	rawA, err := bson.Marshal(a)
	require.NoError(t, err)
	rawB, err := bson.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, rawA, rawB)
	assert.Equal(t, "meta", a[0].Key)
}

func TestCartLineCanonicalisesArrays(t *testing.T) {
	line, err := models.NewCartLine(map[string]any{
		"variants": []any{map[string]any{"b": 1.0, "a": 2.0}},
	})
	require.NoError(t, err)

	variants := line[0].Value.(bson.A)
	assert.Equal(t, bson.D{{Key: "a", Value: 2.0}, {Key: "b", Value: 1.0}}, variants[0])
}

func TestCartLineRejectsEmpty(t *testing.T) {
	_, err := models.NewCartLine(map[string]any{})
	assert.ErrorIs(t, err, models.ErrEmptyCartLine)
}

func TestNewOrderOverridesServerFields(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	order := models.NewOrder(map[string]any{
		"_id":             "forged",
		"userLoginNumber": "01999999999",
		"status":          "delivered",
		"createdAt":       "yesterday",
		"items":           []any{"seed"},
	}, "01712345678", now)

	assert.NotContains(t, order, "_id")
	assert.Equal(t, "01712345678", order["userLoginNumber"])
	assert.Equal(t, "pending", order["status"])
	assert.Equal(t, now, order["createdAt"])
	assert.Equal(t, []any{"seed"}, order["items"])
}

func TestBlobName(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	assert.Equal(t, "1700000000123report.pdf", models.BlobName("report.pdf", now))
	assert.Equal(t, "1700000000123passwd", models.BlobName("../../etc/passwd", now))
	assert.Equal(t, "1700000000123x.pdf", models.BlobName(`C:\Users\x.pdf`, now))
	assert.Equal(t, "1700000000123upload", models.BlobName("..", now))
}

func TestNewUserIsCustomer(t *testing.T) {
	u := models.NewUser("017", "Rahim", "", "", time.Now())
	assert.Equal(t, "customer", u.Role)
	assert.NotNil(t, u.Cart)
}
