package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

type fakeSender struct {
	to, username string
	err          error
}

func (f *fakeSender) SendWelcomeEmail(_ context.Context, to, username string) error {
	f.to, f.username = to, username
	return f.err
}

func TestNewWelcomeEmailTask(t *testing.T) {
	task, err := NewWelcomeEmailTask("fan@kringe.music", "fan")
	if err != nil {
		t.Fatalf("NewWelcomeEmailTask() error = %v", err)
	}
	if task.Type() != TaskWelcome {
		t.Errorf("Type() = %q, want %q", task.Type(), TaskWelcome)
	}

	var p WelcomeEmailPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if p.To != "fan@kringe.music" || p.Username != "fan" {
		t.Errorf("payload = %+v", p)
	}
}

func TestHandleWelcomeEmailTask(t *testing.T) {
	logger := zerolog.Nop()
	sender := &fakeSender{}
	j := &JobService{emails: sender, logger: &logger}

	task, _ := NewWelcomeEmailTask("fan@kringe.music", "fan")
	if err := j.handleWelcomeEmailTask(context.Background(), task); err != nil {
		t.Fatalf("handleWelcomeEmailTask() error = %v", err)
	}
	if sender.to != "fan@kringe.music" || sender.username != "fan" {
		t.Errorf("sender got to=%q username=%q", sender.to, sender.username)
	}
}

func TestHandleWelcomeEmailTaskErrors(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("send failure is retried", func(t *testing.T) {
		sendErr := errors.New("resend down")
		j := &JobService{emails: &fakeSender{err: sendErr}, logger: &logger}
		task, _ := NewWelcomeEmailTask("fan@kringe.music", "fan")

		if err := j.handleWelcomeEmailTask(context.Background(), task); !errors.Is(err, sendErr) {
			t.Errorf("err = %v, want %v", err, sendErr)
		}
	})

	t.Run("bad payload skips retry", func(t *testing.T) {
		j := &JobService{emails: &fakeSender{}, logger: &logger}
		task := asynq.NewTask(TaskWelcome, []byte("{"))

		if err := j.handleWelcomeEmailTask(context.Background(), task); !errors.Is(err, asynq.SkipRetry) {
			t.Errorf("err = %v, want asynq.SkipRetry", err)
		}
	})
}
