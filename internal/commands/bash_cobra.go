package commands

import (
	"github.com/spf13/cobra"
)

// BashCmd is the administrative CLI equivalent of the lead-agent tool
// surface's bash tool, including its run_in_background mode.
var BashCmd = &cobra.Command{
	Use:   "bash <command>",
	Short: "Run a shell command, optionally detached in the background",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		background, _ := cmd.Flags().GetBool("background")
		RunBash(args[0], background)
	},
}

func init() {
	BashCmd.Flags().Bool("background", false, "detach the command and print a task ID and output file instead of waiting")
}
