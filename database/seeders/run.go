// Package seeders holds the data seeders run at startup and by
// `agromart seed`.
package seeders

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/holisticagro/agromart/pkg/logger"
)

// Seeder inserts or updates baseline data. It must be idempotent.
type Seeder struct {
	Name string
	Run  func(ctx context.Context, db *mongo.Database) error
}

// RunAll executes seeders in order and stops on the first error.
func RunAll(ctx context.Context, db *mongo.Database, seeders ...Seeder) error {
	for _, s := range seeders {
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seeder %q: %w", s.Name, err)
		}
		logger.Info("seeded", "seeder", s.Name)
	}
	return nil
}
