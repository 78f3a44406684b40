// Package toolsurface registers the tool set of §6.1 as MCP tools,
// dispatching each into the background and teammate managers. The model
// call transport, system prompt construction, and tool schema design are
// external collaborators (spec.md §1); this package only wires names to
// manager operations.
package toolsurface

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ourines/codes-coord/internal/background"
	"github.com/ourines/codes-coord/internal/teammate"
)

// Surface bundles the managers a tool handler needs to dispatch into.
type Surface struct {
	Background *background.Manager
	Teammates  *teammate.Manager
}

// NewLeadServer builds the lead-agent surface: bash, read_file,
// write_file, edit_file, TaskCreate/TaskList/TaskUpdate, TaskOutput,
// TaskStop, TeamCreate, TeamDelete, TeamSpawn, SendMessage.
func (s *Surface) NewLeadServer() *mcpsdk.Server {
	server := mcpsdk.NewServer(&mcpsdk.Implementation{Name: "codes-coord", Version: "1.0.0"}, nil)

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "bash",
		Description: "Run a shell command, optionally detached in the background",
	}, s.bashHandler)
	registerFileAndShellTools(server)
	registerBoardTools(server)

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "TaskOutput",
		Description: "Retrieve a background task's output, optionally blocking up to a timeout",
	}, s.taskOutputHandler)
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "TaskStop",
		Description: "Cooperatively cancel a running background task",
	}, s.taskStopHandler)
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "TeamCreate",
		Description: "Create a new team; idempotent if the team already exists",
	}, s.teamCreateHandler)
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "TeamDelete",
		Description: "Delete a team, shutting down every member",
	}, s.teamDeleteHandler)
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "TeamSpawn",
		Description: "Register a new teammate in a team",
	}, s.teamSpawnHandler)
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "SendMessage",
		Description: "Send or broadcast a message to a teammate",
	}, s.sendMessageHandler)

	return server
}

// NewTeammateServer builds the teammate toolset: a proper subset of the
// lead surface — file/shell tools, board create/list/update, and SendMessage.
// Teammates cannot create/delete teams or query/stop background tasks.
func (s *Surface) NewTeammateServer() *mcpsdk.Server {
	server := mcpsdk.NewServer(&mcpsdk.Implementation{Name: "codes-coord-teammate", Version: "1.0.0"}, nil)

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "bash",
		Description: "Run a shell command, optionally detached in the background",
	}, s.bashHandler)
	registerFileAndShellTools(server)
	registerBoardTools(server)

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "SendMessage",
		Description: "Send or broadcast a message to a teammate",
	}, s.sendMessageHandler)

	return server
}

// -- bash / read_file / write_file / edit_file --

type bashInput struct {
	Command         string `json:"command" jsonschema:"Shell command to run"`
	RunInBackground bool   `json:"run_in_background,omitempty" jsonschema:"Run detached and return a task ID instead of waiting"`
}

type bashOutput struct {
	TaskID string `json:"taskId,omitempty"`
	Output string `json:"output,omitempty"`
}

func (s *Surface) bashHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input bashInput) (*mcpsdk.CallToolResult, bashOutput, error) {
	if input.Command == "" {
		return nil, bashOutput{}, fmt.Errorf("command is required")
	}

	if !input.RunInBackground {
		out, err := exec.CommandContext(ctx, "sh", "-c", input.Command).CombinedOutput()
		return nil, bashOutput{Output: string(out)}, err
	}

	cmd := input.Command
	id := s.Background.RunInBackground(func(taskCtx context.Context) (string, error) {
		out, err := exec.CommandContext(taskCtx, "sh", "-c", cmd).CombinedOutput()
		return string(out), err
	}, background.TaskShell)
	return nil, bashOutput{TaskID: id}, nil
}

type readFileInput struct {
	Path string `json:"path" jsonschema:"File path to read"`
}

type readFileOutput struct {
	Content string `json:"content"`
}

func readFileHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input readFileInput) (*mcpsdk.CallToolResult, readFileOutput, error) {
	data, err := os.ReadFile(input.Path)
	if err != nil {
		return nil, readFileOutput{}, err
	}
	return nil, readFileOutput{Content: string(data)}, nil
}

type writeFileInput struct {
	Path    string `json:"path" jsonschema:"File path to write"`
	Content string `json:"content" jsonschema:"Content to write"`
}

type writeFileOutput struct {
	Written bool `json:"written"`
}

func writeFileHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input writeFileInput) (*mcpsdk.CallToolResult, writeFileOutput, error) {
	if err := os.WriteFile(input.Path, []byte(input.Content), 0644); err != nil {
		return nil, writeFileOutput{}, err
	}
	return nil, writeFileOutput{Written: true}, nil
}

type editFileInput struct {
	Path    string `json:"path" jsonschema:"File path to edit"`
	Old     string `json:"old" jsonschema:"Exact text to replace"`
	New     string `json:"new" jsonschema:"Replacement text"`
}

type editFileOutput struct {
	Replacements int `json:"replacements"`
}

func editFileHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input editFileInput) (*mcpsdk.CallToolResult, editFileOutput, error) {
	data, err := os.ReadFile(input.Path)
	if err != nil {
		return nil, editFileOutput{}, err
	}
	content := string(data)
	count := strings.Count(content, input.Old)
	if count == 0 {
		return nil, editFileOutput{}, fmt.Errorf("old text not found in %s", input.Path)
	}
	updated := strings.ReplaceAll(content, input.Old, input.New)
	if err := os.WriteFile(input.Path, []byte(updated), 0644); err != nil {
		return nil, editFileOutput{}, err
	}
	return nil, editFileOutput{Replacements: count}, nil
}

func registerFileAndShellTools(server *mcpsdk.Server) {
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "read_file",
		Description: "Read a file's contents",
	}, readFileHandler)
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "write_file",
		Description: "Write content to a file, creating or overwriting it",
	}, writeFileHandler)
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "edit_file",
		Description: "Replace exact text within a file",
	}, editFileHandler)
}
