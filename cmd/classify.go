package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MarcGrol/stashpaysample/services/checkoutsession"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <uri>...",
	Short: "Tell which checkout result a redirect uri carries",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, uri := range args {
			outcome, matched := checkoutsession.ClassifyRedirect(uri)
			if !matched {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\tunrelated\n", uri)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", uri, outcome)
		}
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
