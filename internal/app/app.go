// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package app opens the backends selected by configuration and assembles the
domain services on top of them. Both cmd/api and cmd/cmsctl start here.

Backends:

  - Store: MongoDB, PostgreSQL (migrated on open) or memory.
  - Storage: S3-compatible object storage or memory.
  - Page cache: Redis when REDIS_URL is set, memory otherwise.
*/
package app

import (
	stdctx "context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/taibuivan/readverse/internal/core/content"
	"github.com/taibuivan/readverse/internal/core/genre"
	"github.com/taibuivan/readverse/internal/platform/blob"
	"github.com/taibuivan/readverse/internal/platform/config"
	"github.com/taibuivan/readverse/internal/platform/migration"
	mongostore "github.com/taibuivan/readverse/internal/platform/mongo"
	"github.com/taibuivan/readverse/internal/platform/pagecache"
	pgstore "github.com/taibuivan/readverse/internal/platform/postgres"
	redisstore "github.com/taibuivan/readverse/internal/platform/redis"
	"github.com/taibuivan/readverse/internal/social/comment"
	"github.com/taibuivan/readverse/migrations"
)

// Check is a named readiness probe.
type Check struct {
	Name string
	Ping func(context stdctx.Context) error
}

// Backends holds the opened repositories and infrastructure clients.
type Backends struct {
	Genres   genre.Repository
	Contents content.Repository
	Comments comment.Repository
	Storage  blob.Store
	Cache    pagecache.Cache

	// Checks lists the external dependencies probed by /ready.
	Checks []Check

	closers []func()
}

// Services are the domain services built on [Backends].
type Services struct {
	Genres   *genre.Service
	Contents *content.Service
	Comments *comment.Service
}

/*
Open connects every configured backend.

Description: PostgreSQL migrations and MongoDB indexes are applied here so a
fresh database is usable right away. On failure, everything opened so far is
closed again.

Parameters:
  - context: stdctx.Context (Bounds the connection attempts)
  - cfg: *config.Config
  - logger: *slog.Logger

Returns:
  - *Backends: Close it on shutdown
  - error: The first connection, migration or index failure
*/
func Open(context stdctx.Context, cfg *config.Config, logger *slog.Logger) (*Backends, error) {
	backends := &Backends{}

	if err := backends.openStore(context, cfg, logger); err != nil {
		backends.Close()
		return nil, err
	}
	if err := backends.openStorage(context, cfg, logger); err != nil {
		backends.Close()
		return nil, err
	}
	if err := backends.openCache(context, cfg, logger); err != nil {
		backends.Close()
		return nil, err
	}

	return backends, nil
}

// Services assembles the domain services.
func (backends *Backends) Services(cfg *config.Config, logger *slog.Logger) Services {
	genres := genre.NewService(backends.Genres, logger)

	return Services{
		Genres: genres,
		Contents: content.NewService(backends.Contents, genres, backends.Storage, backends.Cache, logger, content.Options{
			DefaultLimit: cfg.ContentListDefaultLimit,
			ImageSchemes: imageSchemes(cfg),
		}),
		Comments: comment.NewService(backends.Comments, logger),
	}
}

// Close releases the clients in reverse opening order.
func (backends *Backends) Close() {
	for i := len(backends.closers) - 1; i >= 0; i-- {
		backends.closers[i]()
	}
	backends.closers = nil
}

// # Store

func (backends *Backends) openStore(context stdctx.Context, cfg *config.Config, logger *slog.Logger) error {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		client, database, err := mongostore.Connect(context, cfg.MongoURI, cfg.MongoDatabase, logger)
		if err != nil {
			return err
		}
		backends.closers = append(backends.closers, func() {
			if err := client.Disconnect(stdctx.Background()); err != nil {
				logger.Error("mongo_disconnect_failed", slog.Any("error", err))
			}
		})
		return backends.useMongo(context, client, database)

	case config.StorePostgres:
		if err := migration.RunUp(cfg.DatabaseURL, migrations.FS, logger); err != nil {
			return err
		}
		pool, err := pgstore.NewPool(context, cfg.DatabaseURL, logger)
		if err != nil {
			return err
		}
		backends.closers = append(backends.closers, pool.Close)
		backends.usePostgres(pool)
		return nil

	default:
		backends.Genres = genre.NewMemoryRepository()
		backends.Contents = content.NewMemoryRepository()
		backends.Comments = comment.NewMemoryRepository()
		logger.Warn("memory_store_selected", slog.String("hint", "records are lost on restart"))
		return nil
	}
}

func (backends *Backends) useMongo(context stdctx.Context, client *mongodriver.Client, database *mongodriver.Database) error {
	genres := genre.NewMongoRepository(database)
	contents := content.NewMongoRepository(database)
	comments := comment.NewMongoRepository(database)

	for _, ensure := range []func(stdctx.Context) error{genres.EnsureIndexes, contents.EnsureIndexes, comments.EnsureIndexes} {
		if err := ensure(context); err != nil {
			return err
		}
	}

	backends.Genres, backends.Contents, backends.Comments = genres, contents, comments
	backends.Checks = append(backends.Checks, Check{Name: "mongo", Ping: func(context stdctx.Context) error {
		return mongostore.Ping(context, client)
	}})
	return nil
}

func (backends *Backends) usePostgres(pool *pgxpool.Pool) {
	backends.Genres = genre.NewPostgresRepository(pool)
	backends.Contents = content.NewPostgresRepository(pool)
	backends.Comments = comment.NewPostgresRepository(pool)
	backends.Checks = append(backends.Checks, Check{Name: "postgres", Ping: func(context stdctx.Context) error {
		return pgstore.Ping(context, pool)
	}})
}

// # Object Storage

func (backends *Backends) openStorage(context stdctx.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.StorageDriver == config.StorageMemory {
		backends.Storage = blob.NewMemory(cfg.PublicBaseURL())
		logger.Warn("memory_storage_selected", slog.String("base_url", cfg.PublicBaseURL()))
		return nil
	}

	store, err := blob.NewS3(context, blob.S3Config{
		Bucket:          cfg.S3Bucket,
		Region:          cfg.S3Region,
		Endpoint:        cfg.S3Endpoint,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretKey,
		UsePathStyle:    cfg.S3UsePathStyle,
		PublicBaseURL:   cfg.PublicBaseURL(),
	})
	if err != nil {
		return fmt.Errorf("app: open storage: %w", err)
	}

	backends.Storage = store
	backends.Checks = append(backends.Checks, Check{Name: "s3", Ping: store.Ping})
	logger.Info("s3_storage_ready", slog.String("bucket", cfg.S3Bucket))
	return nil
}

// # Page Cache

func (backends *Backends) openCache(context stdctx.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.RedisURL == "" {
		backends.Cache = pagecache.NewMemory(cfg.PageCacheTTL)
		return nil
	}

	client, err := redisstore.NewClient(context, cfg.RedisURL, logger)
	if err != nil {
		return err
	}
	backends.closers = append(backends.closers, func() {
		if err := client.Close(); err != nil {
			logger.Error("redis_close_failed", slog.Any("error", err))
		}
	})

	backends.Cache = pagecache.NewRedis(client, cfg.PageCacheTTL)
	backends.Checks = append(backends.Checks, Check{Name: "redis", Ping: func(context stdctx.Context) error {
		return redisstore.Ping(context, client)
	}})
	return nil
}

// imageSchemes lists the URL schemes accepted for submitted image references.
func imageSchemes(cfg *config.Config) []string {
	if cfg.StorageDriver == config.StorageMemory {
		return []string{"http", "https", blob.MemoryScheme}
	}
	return []string{"http", "https"}
}
