// Package repositories holds the MongoDB-backed stores. Each method is one
// store call; workflows that need several calls live in app/services.
package repositories

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/holisticagro/agromart/pkg/metrics"
)

var (
	// ErrNotFound is returned when a lookup by key matches nothing.
	ErrNotFound = errors.New("repositories: not found")
	// ErrDuplicate is returned when a unique index rejects an insert.
	ErrDuplicate = errors.New("repositories: duplicate key")
)

// UpdateResult reports how many documents an update matched and changed.
type UpdateResult struct {
	Matched  int64 `json:"matchedCount"`
	Modified int64 `json:"modifiedCount"`
}

func updateResult(res *mongo.UpdateResult) UpdateResult {
	if res == nil {
		return UpdateResult{}
	}
	return UpdateResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}
}

func observe(collection, op string, start time.Time, errp *error) {
	metrics.ObserveDB(collection, op, start, errp)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return errors.Join(ErrDuplicate, err)
	}
	return err
}
