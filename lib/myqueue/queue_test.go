package myqueue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue(t *testing.T) {
	c := context.TODO()

	t.Run("No project selects fake", func(t *testing.T) {
		// when
		queue, cleanup, err := New(c, Target{LocationID: "europe-west1"})

		// then
		require.NoError(t, err)
		defer cleanup()
		fake, ok := queue.(*FakeTaskQueue)
		require.True(t, ok)

		assert.NoError(t, queue.Enqueue(c, Task{UID: "123", WebhookURLPath: "/api/outbox"}))
		assert.Len(t, fake.Tasks, 1)
	})

	t.Run("Queue name from target", func(t *testing.T) {
		assert.Equal(t, "projects/my-project/locations/europe-west1/queues/default",
			composeQueueName(Target{ProjectID: "my-project", LocationID: "europe-west1"}))
		assert.Equal(t, "projects/my-project/locations/europe-west1/queues/outbox/tasks/123",
			composeTaskName(composeQueueName(Target{ProjectID: "my-project", LocationID: "europe-west1", QueueName: "outbox"}), "123"))
	})
}
