package container

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"steamdeals/scanner/internal/batch"
	"steamdeals/scanner/internal/client"
	"steamdeals/scanner/internal/config"
	"steamdeals/scanner/internal/cursor"
	"steamdeals/scanner/internal/fetch"
	"steamdeals/scanner/internal/ingest"
	"steamdeals/scanner/internal/repository"
	"steamdeals/scanner/internal/scanner"
	"steamdeals/scanner/internal/server"
	"steamdeals/scanner/internal/state"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config   *config.Config
	Client   client.SteamClient
	Catalog  repository.CatalogRepository
	Deals    repository.DealRepository
	Scanner  *scanner.Service
	Ingestor *ingest.Ingestor

	server *http.Server
	db     *pgxpool.Pool
	redis  *redis.Client
}

// New creates a new container with all dependencies initialized
func New(cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	db, err := pgxpool.New(context.Background(),
		fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.Name,
		))
	if err != nil {
		return nil, err
	}
	container.db = db

	catalogRepo := repository.NewCatalogRepository(db)
	container.Catalog = catalogRepo

	dealRepo := repository.NewDealRepository(db)
	container.Deals = dealRepo

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.Database,
	})

	if _, err = rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Info("✅ Connected to Redis successfully")
	container.redis = rdb

	steamClient := client.NewSteamClient(cfg.Steam)
	container.Client = steamClient

	fetcher := fetch.NewFetcher(steamClient, fetch.Policy{
		MaxAttempts: cfg.Scanner.MaxAttempts,
		BaseDelay:   time.Duration(cfg.Scanner.BaseBackoffMS) * time.Millisecond,
		Multiplier:  2.0,
	})
	executor := batch.NewExecutor(fetcher)

	scanService := scanner.NewService(
		catalogRepo,
		executor,
		dealRepo,
		cursor.NewTable(),
		state.NewRedisManager(rdb),
		scanner.Options{
			WindowSize: cfg.Scanner.WindowSize,
			Quota:      cfg.Scanner.Quota,
			Limit:      cfg.Scanner.Limit,
		},
	)
	container.Scanner = scanService

	container.Ingestor = ingest.NewIngestor(steamClient, catalogRepo)
	container.server = server.New(cfg.Server, server.NewDealsHandler(scanService))

	return container, nil
}

// Run serves the scan trigger API until the context is cancelled.
func (c *Container) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("🚀 Listening on %s", c.server.Addr)
		if err := c.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		return server.Shutdown(context.Background(), c.server)
	})

	return g.Wait()
}

// Ingest runs the one-time catalog load instead of serving.
func (c *Container) Ingest(ctx context.Context) error {
	return c.Ingestor.Run(ctx)
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	c.db.Close()
	if err := c.redis.Close(); err != nil {
		return err
	}

	log.Info("Container shut down successfully")
	return nil
}
