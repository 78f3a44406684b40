package toolsurface

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ourines/codes-coord/internal/teammate"
)

// The board tools operate on a team named by the caller on every call,
// rather than a Surface-bound team, because both lead agents and
// teammates may work across several teams' boards in one process.

type taskCreateInput struct {
	Team      string   `json:"team" jsonschema:"Team whose board to create the item on"`
	Subject   string   `json:"subject" jsonschema:"Short description of the work"`
	Priority  string   `json:"priority,omitempty" jsonschema:"high, normal, or low"`
	BlockedBy []string `json:"blockedBy,omitempty" jsonschema:"Board item IDs that must complete first"`
	DependsOn []string `json:"dependsOn,omitempty" jsonschema:"Related board item IDs"`
}

type taskCreateOutput struct {
	Item *teammate.BoardItem `json:"item"`
}

func taskCreateHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input taskCreateInput) (*mcpsdk.CallToolResult, taskCreateOutput, error) {
	if input.Subject == "" {
		return nil, taskCreateOutput{}, fmt.Errorf("subject is required")
	}
	board := teammate.NewBoard(input.Team)
	item, err := board.Create(input.Subject, teammate.Priority(input.Priority), input.BlockedBy, input.DependsOn)
	if err != nil {
		return nil, taskCreateOutput{}, err
	}
	return nil, taskCreateOutput{Item: item}, nil
}

type taskListInput struct {
	Team string `json:"team" jsonschema:"Team whose board to list"`
}

type taskListOutput struct {
	Items []*teammate.BoardItem `json:"items"`
}

func taskListHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input taskListInput) (*mcpsdk.CallToolResult, taskListOutput, error) {
	board := teammate.NewBoard(input.Team)
	items, err := board.ListAll()
	if err != nil {
		return nil, taskListOutput{}, err
	}
	return nil, taskListOutput{Items: items}, nil
}

type taskUpdateInput struct {
	Team            string   `json:"team" jsonschema:"Team whose board item to update"`
	ID              string   `json:"id" jsonschema:"Board item ID"`
	Status          string   `json:"status,omitempty" jsonschema:"pending, in_progress, completed, or cancelled"`
	Owner           string   `json:"owner,omitempty" jsonschema:"Teammate name to assign as owner"`
	AddBlockedBy    []string `json:"addBlockedBy,omitempty"`
	RemoveBlockedBy []string `json:"removeBlockedBy,omitempty"`
	AddDepends      []string `json:"addDepends,omitempty"`
	RemoveDepends   []string `json:"removeDepends,omitempty"`
}

type taskUpdateOutput struct {
	Item *teammate.BoardItem `json:"item"`
}

func taskUpdateHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input taskUpdateInput) (*mcpsdk.CallToolResult, taskUpdateOutput, error) {
	board := teammate.NewBoard(input.Team)

	opts := teammate.UpdateOptions{
		AddBlockedBy:    input.AddBlockedBy,
		RemoveBlockedBy: input.RemoveBlockedBy,
		AddDepends:      input.AddDepends,
		RemoveDepends:   input.RemoveDepends,
	}
	if input.Status != "" {
		status := teammate.BoardStatus(input.Status)
		opts.Status = &status
	}
	if input.Owner != "" {
		opts.Owner = &input.Owner
	}

	item, err := board.Update(input.ID, opts)
	if err != nil {
		return nil, taskUpdateOutput{}, err
	}
	return nil, taskUpdateOutput{Item: item}, nil
}

func registerBoardTools(server *mcpsdk.Server) {
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "TaskCreate",
		Description: "Create a new task board item",
	}, taskCreateHandler)
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "TaskList",
		Description: "List every task board item, sorted by priority then ID",
	}, taskListHandler)
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "TaskUpdate",
		Description: "Update a task board item's status, owner, or blockers",
	}, taskUpdateHandler)
}
