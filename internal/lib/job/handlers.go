package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/kringe-music/internal/config"
	"github.com/deppfellow/kringe-music/internal/lib/email"
)

// InitHandlers builds the Resend client the task handlers send through.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	j.emails = email.NewClient(cfg, logger)
}

// handleWelcomeEmailTask greets a freshly registered listener. A payload
// that cannot be decoded is dropped; send failures are retried by asynq.
func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("decode %s payload: %w: %w", TaskWelcome, err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("task", TaskWelcome).
		Str("login", p.Username).
		Logger()

	retried, _ := asynq.GetRetryCount(ctx)
	log.Debug().Int("retry", retried).Msg("sending welcome email")

	if err := j.emails.SendWelcomeEmail(ctx, p.To, p.Username); err != nil {
		log.Error().Err(err).Int("retry", retried).Msg("welcome email failed")
		return err
	}

	log.Info().Msg("welcome email sent")
	return nil
}
