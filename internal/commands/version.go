// ABOUTME: Version command
// ABOUTME: Prints build version information
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Resonate-Protocol/pcmstream/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
