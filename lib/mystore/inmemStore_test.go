package mystore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/stashpaysample/lib/mytime"
)

type Attempt struct {
	UID       string
	URL       string
	Published bool
	CreatedAt time.Time
}

var (
	attempt1 = Attempt{UID: "123", URL: "https://pay.example.com/a", Published: false, CreatedAt: mytime.ExampleTime.Add(time.Minute)}
	attempt2 = Attempt{UID: "456", URL: "https://pay.example.com/b", Published: true, CreatedAt: mytime.ExampleTime}
	attempt3 = Attempt{UID: "789", URL: "https://pay.example.com/c", Published: false, CreatedAt: mytime.ExampleTime}
)

func TestStore(t *testing.T) {
	c := context.TODO()
	store, cleanup, err := NewInMemoryStore[Attempt](c)
	assert.NoError(t, err)
	defer cleanup()

	t.Run("No project selects in-memory store", func(t *testing.T) {
		local, localCleanup, err := New[Attempt](c, "")
		assert.NoError(t, err)
		defer localCleanup()
		assert.IsType(t, &InMemoryStore[Attempt]{}, local)
	})

	t.Run("Get not found", func(t *testing.T) {
		_, found, err := store.Get(c, attempt1.UID)
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Put", func(t *testing.T) {
		assert.NoError(t, store.Put(c, attempt1.UID, attempt1))
	})

	t.Run("Get found", func(t *testing.T) {
		got, found, err := store.Get(c, attempt1.UID)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, attempt1, got)
	})

	t.Run("List", func(t *testing.T) {
		all, err := store.List(c)
		assert.NoError(t, err)
		assert.Equal(t, []Attempt{attempt1}, all)
	})

	t.Run("Transaction commits", func(t *testing.T) {
		err := store.RunInTransaction(c, func(c context.Context) error {
			err := store.Put(c, attempt2.UID, attempt2)
			if err != nil {
				return err
			}
			return store.Put(c, attempt3.UID, attempt3)
		})
		assert.NoError(t, err)

		all, err := store.List(c)
		assert.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("Transaction reports error", func(t *testing.T) {
		err := store.RunInTransaction(c, func(c context.Context) error {
			return errors.New("boom")
		})
		assert.EqualError(t, err, "boom")
	})

	t.Run("Query filters and orders", func(t *testing.T) {
		unpublished, err := store.Query(c, []Filter{{Field: "Published", Compare: "=", Value: false}}, "CreatedAt")
		assert.NoError(t, err)
		assert.Equal(t, []Attempt{attempt3, attempt1}, unpublished)
	})

	t.Run("Query unsupported comparison", func(t *testing.T) {
		_, err := store.Query(c, []Filter{{Field: "CreatedAt", Compare: ">", Value: mytime.ExampleTime}}, "")
		assert.Error(t, err)
	})
}
