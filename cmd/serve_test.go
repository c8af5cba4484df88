package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcGrol/stashpaysample/lib/myconfig"
)

func TestServeConfig(t *testing.T) {
	t.Run("Project from dotenv file reaches config", func(t *testing.T) {
		// setup
		if _, exists := os.LookupEnv("GOOGLE_CLOUD_PROJECT"); exists {
			t.Skip("GOOGLE_CLOUD_PROJECT already set in environment")
		}
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GOOGLE_CLOUD_PROJECT=dotenv-project\n"), 0o600))
		t.Chdir(dir)
		t.Cleanup(func() {
			os.Unsetenv("GOOGLE_CLOUD_PROJECT")
		})

		// given
		rootCmd.SetOut(&bytes.Buffer{})
		rootCmd.SetArgs([]string{"classify", "https://example.com"})
		require.NoError(t, rootCmd.Execute())

		// when
		cfg, err := myconfig.Load()

		// then
		require.NoError(t, err)
		assert.Equal(t, "dotenv-project", cfg.GoogleCloudProject)
	})

	t.Run("Local publisher without project", func(t *testing.T) {
		// setup
		c := context.TODO()

		// when
		publisher, cleanup, err := createPublisher(c, myconfig.Config{QueueName: "default"})

		// then
		require.NoError(t, err)
		defer cleanup()
		published, err := publisher.Flush(c)
		assert.NoError(t, err)
		assert.Equal(t, 0, published)
	})
}
