package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ourines/codes-coord/internal/background"
	"github.com/ourines/codes-coord/internal/config"
	"github.com/ourines/codes-coord/internal/notify"
	"github.com/ourines/codes-coord/internal/teammate"
	"github.com/ourines/codes-coord/internal/toolsurface"
)

const hookScriptEnv = "CODES_COORD_HOOK_SCRIPT"

// RunServe wires a live Background Manager and Teammate Manager into the
// tool surface and serves it over stdio until ctx is cancelled (SIGINT,
// SIGTERM, or the client closing the connection). asTeammate selects the
// restricted teammate surface instead of the lead surface.
func RunServe(asTeammate bool) {
	if err := config.EnsureRootDir(); err != nil {
		fmt.Fprintf(os.Stderr, "create root dir: %v\n", err)
		os.Exit(1)
	}

	surface := &toolsurface.Surface{
		Background: background.NewManager(background.NewBus(), buildSink()),
		Teammates:  teammate.NewManager(),
	}

	var server *mcpsdk.Server
	if asTeammate {
		server = surface.NewTeammateServer()
	} else {
		server = surface.NewLeadServer()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.SetOutput(os.Stderr) // stdout is reserved for the MCP JSON-RPC stream

	if err := server.Run(ctx, &mcpsdk.StdioTransport{}); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "[mcp-stdio] error: %v\n", err)
		os.Exit(1)
	}
}

// buildSink assembles the best-effort notification sink (C4's secondary
// fan-out): a desktop notifier always, plus a shell hook when
// CODES_COORD_HOOK_SCRIPT names a script.
func buildSink() *notify.BackgroundSink {
	sink := &notify.BackgroundSink{Notifier: notify.NewDesktopNotifier()}
	if script := os.Getenv(hookScriptEnv); script != "" {
		sink.Hook = notify.NewHookRunner(script)
	}
	return sink
}
