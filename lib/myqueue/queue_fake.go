package myqueue

import (
	"context"
	"sync"
)

// FakeTaskQueue only remembers what was enqueued; nothing is ever dispatched
type FakeTaskQueue struct {
	sync.Mutex
	Tasks []Task
}

func (q *FakeTaskQueue) Enqueue(c context.Context, task Task) error {
	q.Lock()
	defer q.Unlock()

	q.Tasks = append(q.Tasks, task)
	return nil
}
