package models

import (
	"errors"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrEmptyCartLine rejects a cart line with no fields.
var ErrEmptyCartLine = errors.New("cart line must be a non-empty JSON object")

// NewCartLine returns the canonical stored form of a product snapshot.
// Object keys are sorted at every depth, so two snapshots that differ only
// in key order encode to identical BSON and $addToSet treats them as the
// same line.
func NewCartLine(snapshot map[string]any) (bson.D, error) {
	if len(snapshot) == 0 {
		return nil, ErrEmptyCartLine
	}
	return canonicalObject(snapshot), nil
}

// Canonical returns v with every nested object converted to a key-sorted
// bson.D. Other values are returned unchanged.
func Canonical(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return canonicalObject(t)
	case bson.M:
		return canonicalObject(t)
	case []any:
		out := make(bson.A, len(t))
		for i, e := range t {
			out[i] = Canonical(e)
		}
		return out
	default:
		return v
	}
}

func canonicalObject(m map[string]any) bson.D {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(bson.D, 0, len(keys))
	for _, k := range keys {
		out = append(out, bson.E{Key: k, Value: Canonical(m[k])})
	}
	return out
}
