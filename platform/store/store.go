// Package store provides the MongoDB connection wrapper used by repositories
package store

import (
	"context"
	"time"

	"dockit/platform/config"
	perr "dockit/platform/errors"
	"dockit/platform/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Config configures Mongo connectivity
type Config struct {
	URI      string
	Database string
	AppName  string

	MaxPoolSize    uint64
	ConnectTimeout time.Duration

	// Boot guardrails
	ConnectRetries int           // default 6
	PingTimeout    time.Duration // default 3s
}

// FromConf reads the MONGO_ namespace off cfg
func FromConf(cfg config.Conf) Config {
	mc := cfg.Prefix("MONGO_")
	return Config{
		URI:            mc.MayString("URI", "mongodb://localhost:27017"),
		Database:       mc.MustString("DATABASE"),
		AppName:        mc.MayString("APP_NAME", ""),
		MaxPoolSize:    uint64(mc.MayInt("MAX_POOL_SIZE", 0)),
		ConnectTimeout: mc.MayDuration("CONNECT_TIMEOUT", 10*time.Second),
		ConnectRetries: mc.MayInt("CONNECT_RETRIES", 6),
		PingTimeout:    mc.MayDuration("PING_TIMEOUT", 3*time.Second),
	}
}

// Store wraps a connected client plus the configured database handle
// A Store is safe for concurrent use; collections are cheap views
type Store struct {
	Log logger.Logger

	client *mongo.Client
	db     *mongo.Database
}

// Open connects, verifies the deployment with a retried ping, and returns the store
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Database == "" {
		return nil, perr.InvalidArgf("store: database name is required")
	}

	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.AppName != "" {
		opts = opts.SetAppName(cfg.AppName)
	}
	if cfg.MaxPoolSize > 0 {
		opts = opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	if cfg.ConnectTimeout > 0 {
		opts = opts.SetConnectTimeout(cfg.ConnectTimeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, perr.FromMongo(err, "store: connect")
	}

	retries := cfg.ConnectRetries
	if retries <= 0 {
		retries = 6
	}
	pingTimeout := cfg.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 3 * time.Second
	}

	var lastErr error
	backoff := 150 * time.Millisecond
	for i := 0; i < retries; i++ {
		toCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = client.Ping(toCtx, readpref.Primary())
		cancel()

		if lastErr == nil {
			return &Store{
				Log:    *logger.Named("store"),
				client: client,
				db:     client.Database(cfg.Database),
			}, nil
		}
		if ctx.Err() != nil {
			_ = client.Disconnect(context.Background())
			return nil, ctx.Err()
		}
		time.Sleep(backoff)
		if backoff < 2*time.Second {
			backoff *= 2
		}
	}
	_ = client.Disconnect(context.Background())
	return nil, perr.FromMongo(lastErr, "store: ping")
}

// Client returns the underlying driver client
func (s *Store) Client() *mongo.Client { return s.client }

// DB returns the configured database handle
func (s *Store) DB() *mongo.Database { return s.db }

// Collection returns a collection handle by name
func (s *Store) Collection(name string) *mongo.Collection { return s.db.Collection(name) }

// Ping verifies the deployment is still reachable
func (s *Store) Ping(ctx context.Context) error {
	return perr.FromMongo(s.client.Ping(ctx, readpref.Primary()), "store: ping")
}

// Close disconnects the client
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// DropCollections drops the named collections, or every collection when none given
func (s *Store) DropCollections(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		var err error
		names, err = s.db.ListCollectionNames(ctx, map[string]any{})
		if err != nil {
			return perr.FromMongo(err, "store: list collections")
		}
	}
	for _, name := range names {
		if err := s.db.Collection(name).Drop(ctx); err != nil {
			return perr.FromMongof(err, "store: drop %s", name)
		}
	}
	return nil
}
