package toolsurface

import (
	"context"
	"fmt"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ourines/codes-coord/internal/teammate"
)

type taskOutputInput struct {
	TaskID     string `json:"taskId" jsonschema:"Background task ID returned by bash/run_in_background"`
	Block      bool   `json:"block,omitempty" jsonschema:"Wait for completion up to timeoutMs"`
	TimeoutMs  int    `json:"timeoutMs,omitempty" jsonschema:"Maximum time to wait, in milliseconds"`
}

type taskOutputOutput struct {
	TaskID string `json:"taskId"`
	Status string `json:"status"`
	Output string `json:"output"`
}

func (s *Surface) taskOutputHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input taskOutputInput) (*mcpsdk.CallToolResult, taskOutputOutput, error) {
	timeout := time.Duration(input.TimeoutMs) * time.Millisecond
	snap, err := s.Background.GetOutput(input.TaskID, input.Block, timeout)
	if err != nil {
		return nil, taskOutputOutput{}, err
	}
	return nil, taskOutputOutput{TaskID: snap.TaskID, Status: string(snap.Status), Output: snap.Output}, nil
}

type taskStopInput struct {
	TaskID string `json:"taskId" jsonschema:"Background task ID to cancel"`
}

type taskStopOutput struct {
	TaskID string `json:"taskId"`
	Status string `json:"status"`
}

func (s *Surface) taskStopHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input taskStopInput) (*mcpsdk.CallToolResult, taskStopOutput, error) {
	snap, err := s.Background.StopTask(input.TaskID)
	if err != nil {
		return nil, taskStopOutput{}, err
	}
	return nil, taskStopOutput{TaskID: snap.TaskID, Status: string(snap.Status)}, nil
}

type teamCreateInput struct {
	Name string `json:"name" jsonschema:"Team name"`
}

type teamCreateOutput struct {
	Result string `json:"result"`
}

func (s *Surface) teamCreateHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input teamCreateInput) (*mcpsdk.CallToolResult, teamCreateOutput, error) {
	if input.Name == "" {
		return nil, teamCreateOutput{}, fmt.Errorf("name is required")
	}
	result, err := s.Teammates.CreateTeam(input.Name)
	if err != nil {
		return nil, teamCreateOutput{}, err
	}
	return nil, teamCreateOutput{Result: result}, nil
}

type teamDeleteInput struct {
	Name string `json:"name" jsonschema:"Team name to delete"`
}

type teamDeleteOutput struct {
	Result string `json:"result"`
}

func (s *Surface) teamDeleteHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input teamDeleteInput) (*mcpsdk.CallToolResult, teamDeleteOutput, error) {
	result, err := s.Teammates.DeleteTeam(input.Name)
	if err != nil {
		return nil, teamDeleteOutput{}, err
	}
	return nil, teamDeleteOutput{Result: result}, nil
}

type teamSpawnInput struct {
	Name   string `json:"name" jsonschema:"Teammate name, unique within team"`
	Team   string `json:"team" jsonschema:"Team to spawn the teammate into"`
	Prompt string `json:"prompt" jsonschema:"Initial instructions for the teammate's first model step"`
}

type teamSpawnOutput struct {
	Name   string `json:"name"`
	Team   string `json:"team"`
	Status string `json:"status"`
}

func (s *Surface) teamSpawnHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input teamSpawnInput) (*mcpsdk.CallToolResult, teamSpawnOutput, error) {
	if input.Name == "" || input.Team == "" {
		return nil, teamSpawnOutput{}, fmt.Errorf("name and team are required")
	}
	rec, err := s.Teammates.SpawnTeammate(input.Name, input.Team, input.Prompt)
	if err != nil {
		return nil, teamSpawnOutput{}, err
	}
	return nil, teamSpawnOutput{Name: rec.Name, Team: rec.TeamName, Status: string(rec.GetStatus())}, nil
}

type sendMessageInput struct {
	Recipient string `json:"recipient,omitempty" jsonschema:"Teammate name; empty means broadcast"`
	Content   string `json:"content" jsonschema:"Message body"`
	Type      string `json:"type,omitempty" jsonschema:"message, broadcast, shutdown_request, shutdown_response, or plan_approval_response"`
	Sender    string `json:"sender,omitempty" jsonschema:"Sending teammate's name, excluded from broadcast fan-out"`
	Team      string `json:"team,omitempty" jsonschema:"Team to scope the lookup/broadcast to"`
}

type sendMessageOutput struct {
	Result string `json:"result"`
}

func (s *Surface) sendMessageHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input sendMessageInput) (*mcpsdk.CallToolResult, sendMessageOutput, error) {
	if input.Content == "" {
		return nil, sendMessageOutput{}, fmt.Errorf("content is required")
	}
	msgType := teammate.MessageType(input.Type)
	if msgType == "" {
		msgType = teammate.MsgMessage
	}
	result, err := s.Teammates.SendMessage(input.Recipient, input.Content, msgType, input.Sender, input.Team)
	if err != nil {
		return nil, sendMessageOutput{}, err
	}
	return nil, sendMessageOutput{Result: result}, nil
}
