package commands

import (
	"fmt"

	"github.com/ourines/codes-coord/internal/output"
	"github.com/ourines/codes-coord/internal/teammate"
)

// RunTaskCreate creates a board item on team's board.
func RunTaskCreate(team, subject, priority string) {
	board := teammate.NewBoard(team)
	item, err := board.Create(subject, teammate.Priority(priority), nil, nil)
	if err != nil {
		output.PrintError(err)
		return
	}

	output.Print(item, func() {
		fmt.Printf("task #%s created: %s\n", item.ID, item.Subject)
	})
}

// RunTaskList lists every item on team's board.
func RunTaskList(team string) {
	board := teammate.NewBoard(team)
	items, err := board.ListAll()
	if err != nil {
		output.PrintError(err)
		return
	}

	output.Print(items, func() {
		if len(items) == 0 {
			fmt.Println("no tasks")
			return
		}
		for _, item := range items {
			owner := ""
			if item.Owner != "" {
				owner = fmt.Sprintf(" → %s", item.Owner)
			}
			fmt.Printf("  %s #%-4s %s%s\n", statusIcon(item.Status), item.ID, item.Subject, owner)
		}
	})
}

// RunTaskUpdate applies status and/or owner changes to a board item.
func RunTaskUpdate(team, id, status, owner string) {
	board := teammate.NewBoard(team)

	opts := teammate.UpdateOptions{}
	if status != "" {
		s := teammate.BoardStatus(status)
		opts.Status = &s
	}
	if owner != "" {
		opts.Owner = &owner
	}

	item, err := board.Update(id, opts)
	if err != nil {
		output.PrintError(err)
		return
	}

	output.Print(item, func() {
		fmt.Printf("task #%s updated: status=%s owner=%s\n", item.ID, item.Status, item.Owner)
	})
}

func statusIcon(s teammate.BoardStatus) string {
	switch s {
	case teammate.BoardCompleted:
		return "✔"
	case teammate.BoardInProgress:
		return "▶"
	case teammate.BoardCancelled:
		return "✘"
	default:
		return "○"
	}
}
