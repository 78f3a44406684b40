package teammate

import (
	anthropic "github.com/anthropics/anthropic-sdk-go"
)

// historyLimit is the message count above which History triggers
// compaction. It is intentionally small so tests can exercise compaction
// without constructing hundreds of turns.
const historyLimit = 40

// ModelStepper invokes the model-call transport with the current history
// and returns the assistant's reply plus any tool calls it emitted. The
// transport itself, system prompt construction, and context compression
// are out of scope for this core (spec.md §1) — production wiring plugs in
// a real anthropic-sdk-go-backed implementation; tests inject a fake.
type ModelStepper interface {
	Step(history []anthropic.BetaMessageParam) (reply anthropic.BetaMessageParam, toolCalls []ToolCall, err error)
}

// ToolCall is a single tool invocation the model emitted for the agent
// loop to dispatch against the background/teammate managers.
type ToolCall struct {
	Name string
	Args map[string]any
}

// Compactor reduces history to fit within bounds (spec.md calls this
// "auto_compact"); it is an external collaborator per spec.md §1. A nil
// Compactor means History falls back to a simple drop-oldest compaction.
type Compactor interface {
	Compact(history []anthropic.BetaMessageParam) []anthropic.BetaMessageParam
}

// History holds a teammate's conversation-context messages (grounded on
// the teacher's assistant.Session, which stores history the same way).
// Compaction triggers when the message count exceeds historyLimit;
// identity is re-injected immediately afterward so the teammate's
// self-identity survives truncation.
type History struct {
	TeammateName string
	TeamName     string
	Messages     []anthropic.BetaMessageParam
	compactor    Compactor
}

// NewHistory returns an empty History for the given teammate, using
// compactor if non-nil or an internal drop-oldest fallback otherwise.
func NewHistory(teammateName, teamName string, compactor Compactor) *History {
	return &History{TeammateName: teammateName, TeamName: teamName, compactor: compactor}
}

// Append adds msg to the history.
func (h *History) Append(msg anthropic.BetaMessageParam) {
	h.Messages = append(h.Messages, msg)
}

// MaybeCompact compacts and re-injects identity if the history has grown
// past historyLimit. Returns true if compaction happened.
func (h *History) MaybeCompact() bool {
	if len(h.Messages) <= historyLimit {
		return false
	}

	if h.compactor != nil {
		h.Messages = h.compactor.Compact(h.Messages)
	} else {
		keep := historyLimit / 2
		h.Messages = h.Messages[len(h.Messages)-keep:]
	}

	h.reinjectIdentity()
	return true
}

// reinjectIdentity appends the teammate's self-identity message. Must run
// immediately after compaction (§4.6) so identity survives truncation.
func (h *History) reinjectIdentity() {
	identity := "You are " + h.TeammateName + " on team " + h.TeamName
	h.Messages = append(h.Messages, anthropic.NewBetaUserMessage(anthropic.NewBetaTextBlock(identity)))
}
