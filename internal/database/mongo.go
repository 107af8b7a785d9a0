package database

import (
	"context"
	"fmt"
	"time"

	"github.com/newrelic/go-agent/v3/integrations/nrmongo"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/deppfellow/kringe-music/internal/config"
	loggerConfig "github.com/deppfellow/kringe-music/internal/logger"
)

// Mongo wraps the document store client and the news database handle.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
	log    *zerolog.Logger
}

// NewMongo connects to MongoDB and pings the primary.
//
// With New Relic enabled every command is reported as a datastore segment
// through the nrmongo command monitor.
func NewMongo(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Mongo, error) {
	opts := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetAppName(config.ServiceName).
		SetServerSelectionTimeout(DatabasePingTimeout * time.Second)

	if loggerService.GetApplication() != nil {
		opts.SetMonitor(nrmongo.NewCommandMonitor(nil))
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	logger.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongo")

	return &Mongo{
		Client: client,
		DB:     client.Database(cfg.Mongo.Database),
		log:    logger,
	}, nil
}

// Ping reports whether the primary is reachable.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	m.log.Info().Msg("closing mongo connection")
	return m.Client.Disconnect(ctx)
}
