package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyCommand(t *testing.T) {
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"classify", "myapp://stash/purchaseSuccess", "myapp://stash/purchaseFailure?x=1", "https://example.com"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "myapp://stash/purchaseSuccess\tsuccess\n"+
		"myapp://stash/purchaseFailure?x=1\tfailure\n"+
		"https://example.com\tunrelated\n", out.String())
}
