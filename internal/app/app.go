// Package app wires the configuration, store handles and workflows into
// one Application. Every handle is opened in New and released in Close.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/multierr"

	"github.com/holisticagro/agromart/app/controllers"
	"github.com/holisticagro/agromart/app/repositories"
	"github.com/holisticagro/agromart/app/routes"
	"github.com/holisticagro/agromart/app/services"
	"github.com/holisticagro/agromart/config"
	"github.com/holisticagro/agromart/database/seeders"
	"github.com/holisticagro/agromart/internal/kernel"
	"github.com/holisticagro/agromart/pkg/auth"
	"github.com/holisticagro/agromart/pkg/cache"
	"github.com/holisticagro/agromart/pkg/database"
	"github.com/holisticagro/agromart/pkg/logger"
	"github.com/holisticagro/agromart/pkg/migration"
	"github.com/holisticagro/agromart/pkg/router"
	"github.com/holisticagro/agromart/pkg/storage"

	// Registers the index migrations.
	_ "github.com/holisticagro/agromart/database/migrations"
)

// Application owns every long-lived dependency of the process.
type Application struct {
	Config *config.Config
	Client *mongo.Client
	DB     *mongo.Database
	Tokens *auth.Tokens
	Disk   storage.Disk

	counter  cache.Counter
	users    *repositories.UserRepository
	handlers *controllers.Set
	logSink  *logger.MongoHandler
	closers  []func(context.Context) error
}

// New connects to MongoDB, the counter store and the blob store and builds
// the services. On error everything opened so far is closed.
func New(ctx context.Context, cfg *config.Config) (_ *Application, err error) {
	a := &Application{Config: cfg}
	defer func() {
		if err != nil {
			_ = a.Close(context.Background())
		}
	}()

	logger.Setup(logger.Options{Level: cfg.App.LogLevel, Production: cfg.App.IsProduction()})

	a.Tokens, err = auth.NewTokens(cfg.Token.Secret, cfg.Token.TTL)
	if err != nil {
		return nil, err
	}

	a.Client, a.DB, err = database.Connect(ctx, cfg.Mongo)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, a.Client.Disconnect)

	if cfg.App.LogCollection != "" {
		a.attachLogSink(ctx, cfg)
	}

	a.counter = a.openCounter(ctx, cfg.Redis)

	a.Disk, err = storage.New(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	a.users = repositories.NewUserRepository(a.DB)
	orders := repositories.NewOrderRepository(a.DB)
	documents := repositories.NewDocumentRepository(a.DB)
	records := repositories.NewRecordRepository(a.DB)

	a.handlers = controllers.NewSet(controllers.Services{
		Auth:      services.NewAuthService(a.Tokens),
		Users:     services.NewUserService(a.users),
		Catalog:   services.NewCatalogService(records),
		Cart:      services.NewCartService(a.users),
		Orders:    services.NewOrderService(orders, a.users, a.users),
		Documents: services.NewDocumentService(documents, a.Disk),
	}, cfg.HTTP.MaxUploadBytes)

	logger.Info("application ready",
		"env", cfg.App.Env,
		"database", cfg.Mongo.Database,
		"disk", a.Disk.Driver(),
	)
	return a, nil
}

// attachLogSink adds the MongoDB log handler next to the console one.
func (a *Application) attachLogSink(ctx context.Context, cfg *config.Config) {
	col := a.DB.Collection(cfg.App.LogCollection)
	if err := logger.EnsureLogIndex(ctx, col); err != nil {
		logger.Warn("log index not created", "collection", cfg.App.LogCollection, "error", err)
	}
	a.logSink = logger.NewMongoHandler(col, logger.ParseLevel(cfg.App.LogLevel))
	logger.Setup(logger.Options{
		Level:      cfg.App.LogLevel,
		Production: cfg.App.IsProduction(),
		Extra:      []slog.Handler{a.logSink},
	})
	a.closers = append(a.closers, func(context.Context) error {
		a.logSink.Close()
		return nil
	})
}

// openCounter prefers Redis and falls back to process memory when no
// address is configured or the server does not answer.
func (a *Application) openCounter(ctx context.Context, cfg config.RedisConfig) cache.Counter {
	if cfg.Addr != "" {
		r, err := cache.Connect(ctx, cache.RedisOptions{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
		if err == nil {
			a.closers = append(a.closers, func(context.Context) error { return r.Close() })
			logger.Info("rate limit counters in redis", "addr", cfg.Addr)
			return r
		}
		logger.Warn("redis unavailable, counting in memory", "addr", cfg.Addr, "error", err)
	}
	m := cache.NewMemory(time.Minute)
	a.closers = append(a.closers, func(context.Context) error { return m.Close() })
	return m
}

// Bootstrap runs pending migrations and the admin seeder.
func (a *Application) Bootstrap(ctx context.Context) error {
	applied, err := migration.New(a.DB).Run(ctx)
	if err != nil {
		return err
	}
	if len(applied) > 0 {
		logger.Info("migrations applied", "count", len(applied))
	}
	return seeders.RunAll(ctx, a.DB, a.Seeders()...)
}

// Seeders lists the seeders run at startup and by the seed command.
func (a *Application) Seeders() []seeders.Seeder {
	return []seeders.Seeder{seeders.Admins(a.Config.App.AdminPhones)}
}

// Router builds the full route table with the global middleware.
func (a *Application) Router() *router.Router {
	return kernel.NewRouter(routes.Deps{
		Controllers: a.handlers,
		Verifier:    a.Tokens,
		Roles:       a.users,
	}, kernel.Options{
		CORSOrigins:            a.Config.HTTP.CORSOrigins,
		Counter:                a.counter,
		RateLimitPerMinute:     a.Config.HTTP.RateLimitPerMinute,
		AuthRateLimitPerMinute: a.Config.HTTP.AuthRateLimitPerMin,
		MaxBodyBytes:           a.Config.HTTP.MaxBodyBytes,
	})
}

// Handler is Router().Handler().
func (a *Application) Handler() http.Handler {
	return a.Router().Handler()
}

// Close releases every handle in reverse order of opening and reports all
// failures together.
func (a *Application) Close(ctx context.Context) error {
	var err error
	for i := len(a.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, a.closers[i](ctx))
	}
	a.closers = nil
	if err != nil {
		return fmt.Errorf("app: close: %w", err)
	}
	return nil
}

// RouteTable lists the routes without opening any connection.
func RouteTable(cfg *config.Config) []router.RouteInfo {
	a := &Application{Config: cfg, handlers: &controllers.Set{}}
	return a.Router().Routes()
}
