// Package migration runs ordered, tracked schema changes against MongoDB.
//
// Usage (in database/migrations):
//
//	func init() {
//	    migration.Register("20260101000000_users_phone_unique", migration.Func(func(ctx context.Context, db *mongo.Database) error {
//	        _, err := db.Collection("users").Indexes().CreateOne(ctx, ...)
//	        return err
//	    }))
//	}
//
// Run from the CLI with `agromart migrate`; the server runs pending
// migrations at startup.
package migration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/holisticagro/agromart/pkg/logger"
)

// Collection records which migrations have run.
const Collection = "schema_migrations"

// Migration is one forward-only schema change. It must be safe to re-run.
type Migration interface {
	Up(ctx context.Context, db *mongo.Database) error
}

// Func adapts a function to Migration.
type Func func(ctx context.Context, db *mongo.Database) error

func (f Func) Up(ctx context.Context, db *mongo.Database) error { return f(ctx, db) }

type record struct {
	Name  string    `bson:"_id"`
	Batch int       `bson:"batch"`
	RunAt time.Time `bson:"runAt"`
}

type registered struct {
	name string
	m    Migration
}

var (
	mu       sync.Mutex
	registry []registered
)

// Register adds a migration. name should be timestamp-prefixed; pending
// migrations run in name order.
func Register(name string, m Migration) {
	mu.Lock()
	defer mu.Unlock()
	registry = append(registry, registered{name: name, m: m})
}

// Names lists the registered migrations in run order.
func Names() []string {
	all := snapshot()
	out := make([]string, len(all))
	for i, r := range all {
		out[i] = r.name
	}
	return out
}

func snapshot() []registered {
	mu.Lock()
	all := append([]registered(nil), registry...)
	mu.Unlock()
	sort.Slice(all, func(i, j int) bool { return all[i].name < all[j].name })
	return all
}

// Runner executes and tracks migrations.
type Runner struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Runner {
	return &Runner{db: db}
}

// Pending returns the names that have not yet run.
func (r *Runner) Pending(ctx context.Context) ([]string, error) {
	ran, err := r.ran(ctx)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, reg := range snapshot() {
		if !ran[reg.name] {
			out = append(out, reg.name)
		}
	}
	return out, nil
}

// Run executes all pending migrations as one batch and returns their names.
func (r *Runner) Run(ctx context.Context) ([]string, error) {
	ran, err := r.ran(ctx)
	if err != nil {
		return nil, err
	}
	batch, err := r.nextBatch(ctx)
	if err != nil {
		return nil, err
	}

	col := r.db.Collection(Collection)
	var applied []string
	for _, reg := range snapshot() {
		if ran[reg.name] {
			continue
		}
		if err := reg.m.Up(ctx, r.db); err != nil {
			return applied, fmt.Errorf("migration: %s: %w", reg.name, err)
		}
		if _, err := col.InsertOne(ctx, record{Name: reg.name, Batch: batch, RunAt: time.Now().UTC()}); err != nil {
			return applied, fmt.Errorf("migration: record %s: %w", reg.name, err)
		}
		logger.Info("migrated", "migration", reg.name, "batch", batch)
		applied = append(applied, reg.name)
	}
	return applied, nil
}

func (r *Runner) ran(ctx context.Context) (map[string]bool, error) {
	cur, err := r.db.Collection(Collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("migration: list ran: %w", err)
	}
	var recs []record
	if err := cur.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("migration: decode ran: %w", err)
	}
	out := make(map[string]bool, len(recs))
	for _, rec := range recs {
		out[rec.Name] = true
	}
	return out, nil
}

func (r *Runner) nextBatch(ctx context.Context) (int, error) {
	var last record
	err := r.db.Collection(Collection).
		FindOne(ctx, bson.D{}, options.FindOne().SetSort(bson.D{{Key: "batch", Value: -1}})).
		Decode(&last)
	switch {
	case err == mongo.ErrNoDocuments:
		return 1, nil
	case err != nil:
		return 0, fmt.Errorf("migration: last batch: %w", err)
	}
	return last.Batch + 1, nil
}
