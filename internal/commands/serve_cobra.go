package commands

import (
	"github.com/spf13/cobra"
)

var serveTeammate bool

// ServeCmd starts the MCP server over stdio, the boundary a model-driven
// loop (lead or teammate) talks to (spec.md §1).
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the MCP tool surface over stdio",
	Long:  "Wires the Background Manager and Teammate Manager into an MCP server and runs it over stdio until the process receives an interrupt or the client closes the connection.",
	Run: func(cmd *cobra.Command, args []string) {
		RunServe(serveTeammate)
	},
}

func init() {
	ServeCmd.Flags().BoolVar(&serveTeammate, "teammate", false, "Serve the restricted teammate tool surface instead of the lead surface")
}
