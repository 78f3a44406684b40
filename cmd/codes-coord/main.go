package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ourines/codes-coord/internal/commands"
	"github.com/ourines/codes-coord/internal/output"
)

var jsonFlag bool

var rootCmd = &cobra.Command{
	Use:   "codes-coord",
	Short: "Administer background tasks and teammate coordination state",
	Long:  "A Go-based CLI over the background-task and teammate-coordination state a lead agent's tool surface manages.",
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Output in JSON format")

	rootCmd.AddCommand(commands.TaskCmd)
	rootCmd.AddCommand(commands.TeamCmd)
	rootCmd.AddCommand(commands.SendCmd)
	rootCmd.AddCommand(commands.BashCmd)
	rootCmd.AddCommand(commands.ServeCmd)
}

func main() {
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		output.JSONMode = jsonFlag
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
