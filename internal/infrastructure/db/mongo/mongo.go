package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/taskforge/rewards-api/internal/infrastructure/config"
)

// connectTimeout bounds dialing and the startup ping; defaultTimeout bounds
// individual repository operations.
const (
	connectTimeout = 10 * time.Second
	defaultTimeout = 10 * time.Second
)

// clientOptions maps service configuration onto driver options. Server
// selection is bounded so a down database fails startup fast instead of
// sitting on the driver's 30s default.
func clientOptions(cfg config.MongoConfig) *options.ClientOptions {
	return options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(connectTimeout)
}

// Connect dials MongoDB, verifies connectivity against the primary, and
// returns the service database together with a disconnect function for
// shutdown.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Database, func(context.Context) error, error) {
	dialCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(dialCtx, clientOptions(cfg))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(dialCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(dialCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client.Database(cfg.Database), client.Disconnect, nil
}
