package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// TaskWelcome is the asynq type of the post-registration greeting.
const TaskWelcome = "email:welcome"

// Welcome emails are best effort: a few retries, then the task is archived.
const (
	welcomeMaxRetry = 3
	welcomeTimeout  = 30 * time.Second
	welcomeQueue    = "default"
)

type WelcomeEmailPayload struct {
	To       string `json:"to"`
	Username string `json:"username"`
}

// NewWelcomeEmailTask builds the task queued after a successful
// registration.
func NewWelcomeEmailTask(to, username string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{To: to, Username: username})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(TaskWelcome, payload,
		asynq.MaxRetry(welcomeMaxRetry),
		asynq.Queue(welcomeQueue),
		asynq.Timeout(welcomeTimeout),
	), nil
}
