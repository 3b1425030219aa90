package bootstrap

import (
	"context"
	"fmt"

	"medstory-be/internal/config"
	"medstory-be/internal/pkg/logger"
	"medstory-be/pkg/blobstore"
	blobmemory "medstory-be/pkg/blobstore/memory"
	blobminio "medstory-be/pkg/blobstore/minio"
	"medstory-be/pkg/database"
	"medstory-be/pkg/docstore"
	docfirestore "medstory-be/pkg/docstore/firestore"
	docmemory "medstory-be/pkg/docstore/memory"
	docmongo "medstory-be/pkg/docstore/mongo"
	docpostgres "medstory-be/pkg/docstore/postgres"
	pktNats "medstory-be/pkg/nats"

	"github.com/redis/go-redis/v9"
)

const bootstrapModule = "BOOTSTRAP"

// Infrastructure holds the remote clients the container is built on.
// Redis and Nats are optional and stay nil when not configured or unreachable.
type Infrastructure struct {
	Docs  docstore.Driver
	Blobs blobstore.Driver
	Redis *redis.Client
	Nats  *pktNats.Publisher
}

// OpenInfrastructure connects the drivers selected in cfg.
func OpenInfrastructure(ctx context.Context, cfg *config.Config, log logger.ILogger) (*Infrastructure, error) {
	docs, err := openDocStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	blobs, err := openBlobStore(ctx, cfg)
	if err != nil {
		_ = docs.Close(ctx)
		return nil, err
	}
	log.Info(bootstrapModule, "Stores ready", map[string]interface{}{"docstore": docs.Name(), "blobstore": blobs.Name()})

	infra := &Infrastructure{Docs: docs, Blobs: blobs}

	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Warn(bootstrapModule, "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
		} else {
			infra.Nats = natsPub
		}
	}

	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Warn(bootstrapModule, "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb := redis.NewClient(opt)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn(bootstrapModule, "Failed to connect to Redis, hub stays local", map[string]interface{}{"error": err.Error()})
			_ = rdb.Close()
		} else {
			infra.Redis = rdb
		}
	}

	return infra, nil
}

func openDocStore(ctx context.Context, cfg *config.Config) (docstore.Driver, error) {
	switch cfg.DocStore.Driver {
	case "firestore":
		return docfirestore.New(ctx, docfirestore.Config{
			ProjectID:       cfg.DocStore.FirestoreProjectID,
			CredentialsFile: cfg.DocStore.FirestoreCreds,
		})
	case "mongo":
		return docmongo.New(ctx, docmongo.Config{
			URI:      cfg.DocStore.MongoURI,
			Database: cfg.DocStore.MongoDatabase,
			Username: cfg.DocStore.MongoUsername,
			Password: cfg.DocStore.MongoPassword,
			Timeout:  cfg.App.RemoteTimeout,
		})
	case "postgres":
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection, !cfg.IsProduction())
		if err != nil {
			return nil, fmt.Errorf("unable to connect to postgres: %w", err)
		}
		return docpostgres.New(db)
	case "memory", "":
		return docmemory.New(), nil
	default:
		return nil, fmt.Errorf("unknown DOCSTORE_DRIVER %q", cfg.DocStore.Driver)
	}
}

func openBlobStore(ctx context.Context, cfg *config.Config) (blobstore.Driver, error) {
	switch cfg.BlobStore.Driver {
	case "minio":
		return blobminio.New(ctx, blobminio.Config{
			Endpoint:     cfg.BlobStore.MinioEndpoint,
			AccessKey:    cfg.BlobStore.MinioAccessKey,
			SecretKey:    cfg.BlobStore.MinioSecretKey,
			Bucket:       cfg.BlobStore.MinioBucket,
			Region:       cfg.BlobStore.MinioRegion,
			UseSSL:       cfg.BlobStore.MinioUseSSL,
			CreateBucket: !cfg.IsProduction(),
		})
	case "memory", "":
		return blobmemory.New("http://localhost:" + cfg.App.Port + "/blobs"), nil
	default:
		return nil, fmt.Errorf("unknown BLOBSTORE_DRIVER %q", cfg.BlobStore.Driver)
	}
}

// Close releases every client that was opened.
func (i *Infrastructure) Close(ctx context.Context) error {
	var firstErr error
	if i.Docs != nil {
		firstErr = i.Docs.Close(ctx)
	}
	if i.Redis != nil {
		if err := i.Redis.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if i.Nats != nil {
		i.Nats.Close()
	}
	return firstErr
}
