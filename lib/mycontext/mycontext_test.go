package mycontext

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraceContext(t *testing.T) {
	t.Run("Trace header present", func(t *testing.T) {
		t.Setenv("GOOGLE_CLOUD_PROJECT", "my-project")
		request, err := http.NewRequest(http.MethodGet, "/status", nil)
		assert.NoError(t, err)
		request.Header.Set("X-Cloud-Trace-Context", "abc123/1;o=1")

		c := ContextFromHTTPRequest(request)

		assert.Equal(t, "projects/my-project/traces/abc123", TraceFromContext(c))
	})

	t.Run("Trace header absent", func(t *testing.T) {
		request, err := http.NewRequest(http.MethodGet, "/status", nil)
		assert.NoError(t, err)

		assert.Equal(t, "", TraceFromContext(ContextFromHTTPRequest(request)))
	})

	t.Run("Plain context", func(t *testing.T) {
		assert.Equal(t, "", TraceFromContext(context.Background()))
	})
}
