package mypubsub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPubSub(t *testing.T) {
	c := context.TODO()

	t.Run("No project selects fake", func(t *testing.T) {
		// when
		ps, cleanup, err := New(c, "")

		// then
		require.NoError(t, err)
		defer cleanup()
		fake, ok := ps.(*FakePubSub)
		require.True(t, ok)

		assert.NoError(t, ps.CreateTopic(c, "checkout"))
		assert.NoError(t, ps.Publish(c, "checkout", "payload"))
		assert.Equal(t, []string{"payload"}, fake.Published("checkout"))
	})
}
