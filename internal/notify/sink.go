package notify

import (
	"fmt"
	"time"

	"github.com/ourines/codes-coord/internal/background"
)

// BackgroundSink adapts a Notifier (and optionally a HookRunner) into a
// background.Sink, so a completed or failed background task can also raise a
// desktop notification or fire a webhook/shell hook, independent of the
// drain-once Notification Bus the owning agent polls.
type BackgroundSink struct {
	Notifier Notifier
	Hook     *HookRunner
}

// Notify implements background.Sink. Failures from the underlying notifier
// or hook are swallowed — a broken external sink must never affect the
// background task it is reporting on.
func (s *BackgroundSink) Notify(evt background.Event) {
	if s.Notifier != nil {
		title := fmt.Sprintf("task %s", evt.Status)
		_ = s.Notifier.Send(Notification{
			Title:   title,
			Message: fmt.Sprintf("%s: %s", evt.TaskID, evt.Summary),
			Sound:   evt.Status == background.StatusError,
		})
	}
	if s.Hook != nil {
		_ = s.Hook.Execute(HookPayload{
			TaskID:    evt.TaskID,
			Status:    string(evt.Status),
			Summary:   evt.Summary,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}

var _ background.Sink = (*BackgroundSink)(nil)
