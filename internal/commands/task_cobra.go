package commands

import (
	"github.com/spf13/cobra"
)

// TaskCmd is the top-level task board command, administering the same
// operations the lead-agent tool surface exposes as TaskCreate/TaskList/
// TaskUpdate.
var TaskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"t"},
	Short:   "Task board management",
	Long:    "Create, list, and update items on a team's task board.",
}

var taskCreateCmd = &cobra.Command{
	Use:   "create <team> <subject>",
	Short: "Create a task board item",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		priority, _ := cmd.Flags().GetString("priority")
		RunTaskCreate(args[0], args[1], priority)
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list <team>",
	Short: "List a team's task board",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		RunTaskList(args[0])
	},
}

var taskUpdateCmd = &cobra.Command{
	Use:   "update <team> <id>",
	Short: "Update a task board item",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		status, _ := cmd.Flags().GetString("status")
		owner, _ := cmd.Flags().GetString("owner")
		RunTaskUpdate(args[0], args[1], status, owner)
	},
}

func init() {
	taskCreateCmd.Flags().StringP("priority", "p", "", "high, normal, or low")
	taskUpdateCmd.Flags().String("status", "", "pending, in_progress, completed, or cancelled")
	taskUpdateCmd.Flags().String("owner", "", "teammate name to assign as owner")

	TaskCmd.AddCommand(taskCreateCmd)
	TaskCmd.AddCommand(taskListCmd)
	TaskCmd.AddCommand(taskUpdateCmd)
}
