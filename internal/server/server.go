// Package server defines the core Server struct that composes the app's main dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - PostgreSQL pool (catalog, users, feedback)
//   - MongoDB client (news)
//   - redis client (sessions, job queue)
//   - background job worker server (asynq)
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/deppfellow/kringe-music/internal/config"
	"github.com/deppfellow/kringe-music/internal/database"
	"github.com/deppfellow/kringe-music/internal/lib/job"
	loggerPkg "github.com/deppfellow/kringe-music/internal/logger"
)

// Server is the application container that holds shared resources.
//
// It is not the HTTP server itself; that lives in httpServer and is set up by
// SetupHTTPServer.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService

	DB    *database.Database
	Mongo *database.Mongo

	// Redis is nil when Redis was unreachable at startup. Sessions then
	// fall back to process memory.
	Redis *redis.Client

	Job *job.JobService

	httpServer *http.Server
}

// New constructs a Server and initializes core dependencies.
//
// PostgreSQL and MongoDB are required. Redis is optional: without it sessions
// are kept in memory and welcome emails are not queued.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	mongoClient, err := database.NewMongo(cfg, logger, loggerService)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize mongo: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	if loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	server := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Mongo:         mongoClient,
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Msg("Failed to connect to Redis, continuing with in-memory sessions")
		_ = redisClient.Close()
		return server, nil
	}
	server.Redis = redisClient

	jobService := job.NewJobService(logger, cfg)
	jobService.InitHandlers(cfg, logger)
	if startWorker(logger, jobService) {
		server.Job = jobService
	}

	return server, nil
}

// worker is the part of *job.JobService New needs to start the queue.
type worker interface {
	Start() error
	Close() error
}

// startWorker starts w and reports whether it runs. A worker that fails to
// start is closed and the server continues without a job queue, like it
// does without Redis.
func startWorker(logger *zerolog.Logger, w worker) bool {
	if err := w.Start(); err != nil {
		logger.Error().Err(err).Msg("Failed to start job worker, continuing without welcome emails")
		if err := w.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close job client")
		}
		return false
	}
	return true
}

// SetupHTTPServer configures the internal net/http server.
// Config timeouts are in seconds.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server. It blocks until the server stops.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server and its dependencies.
//
// In-flight requests finish (until ctx expires) before stores are closed.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	var errs []error

	if err := s.DB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close database connection: %w", err))
	}

	if err := s.Mongo.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to close mongo connection: %w", err))
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis connection: %w", err))
		}
	}

	return errors.Join(errs...)
}
