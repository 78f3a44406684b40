package teammate

import "testing"

// S4 — Inbox FIFO, drain-on-read.
func TestInboxDrainIsFIFOAndClearsOnRead(t *testing.T) {
	setupTestDir(t)
	ib := NewInbox("team-a", "alice")

	if err := ib.Append(InboxMessage{Type: MsgMessage, Content: "First"}); err != nil {
		t.Fatalf("append First: %v", err)
	}
	if err := ib.Append(InboxMessage{Type: MsgMessage, Content: "Second"}); err != nil {
		t.Fatalf("append Second: %v", err)
	}

	msgs, err := ib.Drain()
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if len(msgs) != 2 || msgs[0].Content != "First" || msgs[1].Content != "Second" {
		t.Fatalf("msgs = %+v, want [First, Second] in order", msgs)
	}

	again, err := ib.Drain()
	if err != nil {
		t.Fatalf("second Drain: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("second drain = %+v, want empty", again)
	}
}

func TestInboxDrainOnEmptyFileReturnsNil(t *testing.T) {
	setupTestDir(t)
	ib := NewInbox("team-a", "nobody-sent-yet")

	msgs, err := ib.Drain()
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("msgs = %+v, want empty", msgs)
	}
}

func TestInboxAppendPreservesSenderAndType(t *testing.T) {
	setupTestDir(t)
	ib := NewInbox("team-a", "bob")

	if err := ib.Append(InboxMessage{Type: MsgShutdownRequest, Content: "team deleted", Sender: "lead"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	msgs, err := ib.Drain()
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("len = %d, want 1", len(msgs))
	}
	if msgs[0].Type != MsgShutdownRequest || msgs[0].Sender != "lead" {
		t.Fatalf("msg = %+v", msgs[0])
	}
}
