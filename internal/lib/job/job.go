// Package job runs post-registration work (welcome emails) on an asynq
// queue stored in the same Redis as the sessions. Without Redis the queue
// is not started and registration skips the email.
package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/kringe-music/internal/config"
	"github.com/deppfellow/kringe-music/internal/lib/email"
)

// WelcomeSender delivers welcome emails; *email.Client satisfies it.
type WelcomeSender interface {
	SendWelcomeEmail(ctx context.Context, to, username string) error
}

// JobService enqueues tasks through Client and runs them in its own
// worker server.
type JobService struct {
	Client *asynq.Client

	server *asynq.Server
	emails WelcomeSender
	logger *zerolog.Logger
}

// workerConcurrency bounds parallel email sends.
const workerConcurrency = 4

func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: workerConcurrency,
		Queues:      map[string]int{welcomeQueue: 1},
		Logger:      asynqLogger{logger},
		LogLevel:    asynq.WarnLevel,
	})

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
	}
}

// Start registers task handlers and starts the worker server.
// asynq.Server.Start returns once workers are running.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)

	j.logger.Info().Int("concurrency", workerConcurrency).Msg("starting job worker")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	return nil
}

// EnqueueWelcomeEmail schedules a welcome email for a new user.
func (j *JobService) EnqueueWelcomeEmail(ctx context.Context, to, username string) error {
	task, err := NewWelcomeEmailTask(to, username)
	if err != nil {
		return err
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return err
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Str("login", username).
		Msg("welcome email enqueued")
	return nil
}

// Stop waits for running tasks, then closes the client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping job worker")
	j.server.Shutdown()
	j.Client.Close()
}

// Close releases the client of a worker that never started.
func (j *JobService) Close() error {
	return j.Client.Close()
}

var _ WelcomeSender = (*email.Client)(nil)

// asynqLogger routes asynq's own messages into zerolog.
type asynqLogger struct {
	log *zerolog.Logger
}

func (l asynqLogger) Debug(args ...interface{}) { l.log.Debug().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Info(args ...interface{})  { l.log.Info().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Warn(args ...interface{})  { l.log.Warn().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Error(args ...interface{}) { l.log.Error().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Fatal(args ...interface{}) { l.log.Fatal().Msg(fmt.Sprint(args...)) }
