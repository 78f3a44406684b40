package toolsurface

import (
	"context"
	"testing"

	"github.com/ourines/codes-coord/internal/background"
	"github.com/ourines/codes-coord/internal/teammate"
)

func newTestSurface(t *testing.T) *Surface {
	t.Helper()
	t.Setenv("CODES_COORD_HOME", t.TempDir())
	return &Surface{
		Background: background.NewManager(background.NewBus(), nil),
		Teammates:  teammate.NewManager(),
	}
}

func TestBashHandlerForeground(t *testing.T) {
	s := newTestSurface(t)
	_, out, err := s.bashHandler(context.Background(), nil, bashInput{Command: "echo hi"})
	if err != nil {
		t.Fatalf("bashHandler: %v", err)
	}
	if out.Output != "hi\n" {
		t.Fatalf("output = %q, want %q", out.Output, "hi\n")
	}
}

func TestBashHandlerBackgroundReturnsTaskID(t *testing.T) {
	s := newTestSurface(t)
	_, out, err := s.bashHandler(context.Background(), nil, bashInput{Command: "echo hi", RunInBackground: true})
	if err != nil {
		t.Fatalf("bashHandler: %v", err)
	}
	if out.TaskID == "" || out.TaskID[0] != 'b' {
		t.Fatalf("taskId = %q, want b-prefixed", out.TaskID)
	}
}

func TestTaskCreateAndListRoundTrip(t *testing.T) {
	newTestSurface(t)

	_, created, err := taskCreateHandler(context.Background(), nil, taskCreateInput{Team: "team-a", Subject: "write docs"})
	if err != nil {
		t.Fatalf("taskCreateHandler: %v", err)
	}
	if created.Item.ID == "" {
		t.Fatal("expected a non-empty ID")
	}

	_, listed, err := taskListHandler(context.Background(), nil, taskListInput{Team: "team-a"})
	if err != nil {
		t.Fatalf("taskListHandler: %v", err)
	}
	if len(listed.Items) != 1 || listed.Items[0].ID != created.Item.ID {
		t.Fatalf("items = %+v", listed.Items)
	}
}

func TestTeamCreateThenSendMessageRoundTrip(t *testing.T) {
	s := newTestSurface(t)

	if _, _, err := s.teamCreateHandler(context.Background(), nil, teamCreateInput{Name: "team-a"}); err != nil {
		t.Fatalf("teamCreateHandler: %v", err)
	}
	s.Teammates.SetSpawnFunc(func(*teammate.Record) {})
	if _, err := s.Teammates.SpawnTeammate("alice", "team-a", "start"); err != nil {
		t.Fatalf("SpawnTeammate: %v", err)
	}

	_, sent, err := s.sendMessageHandler(context.Background(), nil, sendMessageInput{
		Recipient: "alice", Content: "hello", Team: "team-a",
	})
	if err != nil {
		t.Fatalf("sendMessageHandler: %v", err)
	}
	if sent.Result != "sent" {
		t.Fatalf("result = %q, want sent", sent.Result)
	}

	msgs, err := s.Teammates.CheckInbox("alice", "team-a")
	if err != nil {
		t.Fatalf("CheckInbox: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Content != "hello" {
		t.Fatalf("msgs = %+v", msgs)
	}
}
