package teammate

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
)

// idlePollInterval and idleMaxTicks implement §4.6's "sleep 2 seconds,
// repeat up to 30 times" idle phase. They are variables so tests can speed
// up the poll cadence without changing the loop's shape.
var (
	idlePollInterval = 2 * time.Second
	idleMaxTicks     = 30
)

// ToolDispatcher applies a model-emitted tool call against the owning
// agent's surface (task ops, send_message, file/bash tools). The concrete
// dispatcher lives in internal/toolsurface; the idle loop only needs the
// interface so it can be driven in tests with a fake.
type ToolDispatcher interface {
	Dispatch(ctx context.Context, call ToolCall) (string, error)
}

// NotificationDrainer supplies background-task completion events to fold
// into the model context before each invocation. internal/background's
// TeammateDrainer adapts a background.Bus to this interface.
type NotificationDrainer interface {
	Drain() []NotificationEvent
}

// NotificationEvent mirrors background.Event's shape without importing
// internal/background, keeping the idle loop decoupled from the execution
// subsystem's internals; callers adapt background.Event{TaskID, Status,
// Summary} into this type.
type NotificationEvent struct {
	TaskID  string
	Status  string
	Summary string
}

// IdleLoop is the Teammate Idle Loop (C9): one worker per spawned
// teammate, alternating between model-driven work and autonomous board
// claiming during quiescent periods.
type IdleLoop struct {
	Record   *Record
	Manager  *Manager
	Board    *Board
	History  *History
	Stepper  ModelStepper
	Dispatch ToolDispatcher
	Drainer  NotificationDrainer

	logger          *log.Logger
	shutdownPending bool
}

// NewIdleLoop wires up a C9 loop for rec.
func NewIdleLoop(rec *Record, mgr *Manager, board *Board, history *History, stepper ModelStepper, dispatch ToolDispatcher, drainer NotificationDrainer) *IdleLoop {
	return &IdleLoop{
		Record:   rec,
		Manager:  mgr,
		Board:    board,
		History:  history,
		Stepper:  stepper,
		Dispatch: dispatch,
		Drainer:  drainer,
		logger:   log.New(os.Stderr, fmt.Sprintf("[teammate:%s] ", rec.Name), log.LstdFlags),
	}
}

// Run executes the loop until the record's status becomes shutdown or ctx
// is cancelled.
func (l *IdleLoop) Run(ctx context.Context) {
	for l.Record.GetStatus() != StatusShutdown {
		select {
		case <-ctx.Done():
			return
		default:
		}

		l.foldNotifications()

		if l.History.MaybeCompact() {
			l.logger.Println("history compacted, identity re-injected")
		}

		reply, calls, err := l.Stepper.Step(l.History.Messages)
		if err != nil {
			l.logger.Printf("model step error: %v", err)
			continue
		}
		l.History.Append(reply)

		for _, call := range calls {
			if l.Dispatch == nil {
				continue
			}
			if _, err := l.Dispatch.Dispatch(ctx, call); err != nil {
				l.logger.Printf("dispatch %s: %v", call.Name, err)
			}
		}

		if len(calls) == 0 {
			l.idlePhase(ctx)
		}

		if l.pendingShutdown() {
			return
		}
	}
}

// foldNotifications drains background completion events, if a drainer is
// wired, and folds them into history as a user-role context message.
func (l *IdleLoop) foldNotifications() {
	if l.Drainer == nil {
		return
	}
	events := l.Drainer.Drain()
	if len(events) == 0 {
		return
	}
	var text string
	for _, e := range events {
		text += fmt.Sprintf("<task-notification><task-id>%s</task-id><status>%s</status><summary>%s</summary></task-notification>", e.TaskID, e.Status, e.Summary)
	}
	l.History.Append(anthropic.NewBetaUserMessage(anthropic.NewBetaTextBlock(text)))
}

// idlePhase runs up to idleMaxTicks polling ticks. It returns true if the
// outer loop should re-evaluate immediately (either a message arrived, a
// task was claimed, or 30 ticks elapsed with nothing to do).
func (l *IdleLoop) idlePhase(ctx context.Context) bool {
	l.Record.SetStatus(StatusIdle)

	for i := 0; i < idleMaxTicks; i++ {
		select {
		case <-ctx.Done():
			return true
		case <-time.After(idlePollInterval):
		}

		if l.Record.GetStatus() == StatusShutdown {
			return true
		}

		msgs, err := l.Manager.CheckInbox(l.Record.Name, l.Record.TeamName)
		if err != nil {
			l.logger.Printf("check_inbox: %v", err)
			continue
		}
		if len(msgs) > 0 {
			l.deliverMessages(msgs)
			l.Record.SetStatus(StatusActive)
			return true
		}

		if l.claimUnclaimedTask() {
			l.Record.SetStatus(StatusActive)
			return true
		}
	}

	return true
}

func (l *IdleLoop) deliverMessages(msgs []InboxMessage) {
	var text string
	for _, m := range msgs {
		text += fmt.Sprintf("[%s from %s] %s\n", m.Type, m.Sender, m.Content)
		if m.Type == MsgShutdownRequest {
			l.shutdownPending = true
		}
	}
	l.History.Append(anthropic.NewBetaUserMessage(anthropic.NewBetaTextBlock(text)))
}

// claimUnclaimedTask picks the lowest-ID unclaimed item, if any, assigns
// ownership to this teammate, and delivers a claim prompt.
func (l *IdleLoop) claimUnclaimedTask() bool {
	unclaimed, err := l.Board.Unclaimed()
	if err != nil {
		l.logger.Printf("unclaimed: %v", err)
		return false
	}
	if len(unclaimed) == 0 {
		return false
	}

	item := unclaimed[0]
	for _, it := range unclaimed[1:] {
		if boardIDLess(it.ID, item.ID) {
			item = it
		}
	}
	owner := l.Record.Name
	inProgress := BoardInProgress
	if _, err := l.Board.Update(item.ID, UpdateOptions{Owner: &owner}); err != nil {
		l.logger.Printf("claim %s (assign owner): %v", item.ID, err)
		return false
	}
	if _, err := l.Board.Update(item.ID, UpdateOptions{Status: &inProgress}); err != nil {
		l.logger.Printf("claim %s (set in_progress): %v", item.ID, err)
		return false
	}

	prompt := fmt.Sprintf("you claimed task %s: %s", item.ID, item.Subject)
	l.History.Append(anthropic.NewBetaUserMessage(anthropic.NewBetaTextBlock(prompt)))
	return true
}

// pendingShutdown reports whether a shutdown_request message was delivered
// during this iteration — used so the loop exits promptly after the
// current model call returns, per §4.6's contract, even when the status
// flip (delete_team's direct path) hasn't also happened.
func (l *IdleLoop) pendingShutdown() bool {
	if l.shutdownPending {
		l.Record.SetStatus(StatusShutdown)
		return true
	}
	return l.Record.GetStatus() == StatusShutdown
}
