package commands

import (
	"github.com/spf13/cobra"
)

// SendCmd implements send_message from the CLI: direct message, broadcast,
// or a shutdown_request/shutdown_response/plan_approval_response signal.
var SendCmd = &cobra.Command{
	Use:   "send <content>",
	Short: "Send a message to a teammate or broadcast to a team",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		recipient, _ := cmd.Flags().GetString("to")
		team, _ := cmd.Flags().GetString("team")
		sender, _ := cmd.Flags().GetString("from")
		msgType, _ := cmd.Flags().GetString("type")
		broadcast, _ := cmd.Flags().GetBool("broadcast")
		RunSend(recipient, args[0], msgType, sender, team, broadcast)
	},
}

func init() {
	SendCmd.Flags().String("to", "", "recipient teammate name")
	SendCmd.Flags().String("team", "", "team to scope the lookup/broadcast to")
	SendCmd.Flags().String("from", "", "sending teammate's name, excluded from broadcast fan-out")
	SendCmd.Flags().String("type", "", "message, shutdown_request, shutdown_response, or plan_approval_response")
	SendCmd.Flags().Bool("broadcast", false, "broadcast to every member of --team except --from")
}
