package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stashpaysample",
	Short: "Sample host for the Stash Pay checkout",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// a missing .env file is fine: the environment may be set by other means
		_ = godotenv.Load()
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}
