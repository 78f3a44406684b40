package commands

import (
	"github.com/spf13/cobra"
)

// TeamCmd administers the team registry (TeamCreate/TeamDelete plus a
// status view built on get_team_status).
var TeamCmd = &cobra.Command{
	Use:   "team",
	Short: "Team management",
	Long:  "Create, delete, and inspect teams.",
}

var teamCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a team",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		RunTeamCreate(args[0])
	},
}

var teamDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a team and shut down its members",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		RunTeamDelete(args[0])
	},
}

var teamStatusCmd = &cobra.Command{
	Use:   "status <name>",
	Short: "Show a team's member summary",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		RunTeamStatus(args[0])
	},
}

var teamSpawnCmd = &cobra.Command{
	Use:   "spawn <team> <name> <prompt>",
	Short: "Spawn a new teammate into a team",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		RunTeamSpawn(args[0], args[1], args[2])
	},
}

func init() {
	TeamCmd.AddCommand(teamCreateCmd)
	TeamCmd.AddCommand(teamDeleteCmd)
	TeamCmd.AddCommand(teamStatusCmd)
	TeamCmd.AddCommand(teamSpawnCmd)
}
