package myqueue

import (
	"context"
	"time"
)

type Task struct {
	UID            string
	WebhookURLPath string
	Payload        []byte
	Delay          time.Duration
}

// Target identifies a Cloud Tasks queue; an empty ProjectID selects the in-memory fake
type Target struct {
	ProjectID  string
	LocationID string
	QueueName  string
}

func New(c context.Context, target Target) (TaskQueuer, func(), error) {
	if target.ProjectID == "" {
		return &FakeTaskQueue{}, func() {}, nil
	}
	return newGcloudQueue(c, target)
}

//go:generate mockgen -source=api.go -package myqueue -destination queuer_mock.go TaskQueuer
type TaskQueuer interface {
	Enqueue(c context.Context, task Task) error
}
