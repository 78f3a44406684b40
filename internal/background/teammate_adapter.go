package background

import "github.com/ourines/codes-coord/internal/teammate"

// TeammateDrainer adapts a Bus into teammate.NotificationDrainer, so a
// teammate's idle loop (C9) can fold background completion events into its
// model context without the teammate package depending on this one.
type TeammateDrainer struct {
	Bus *Bus
}

// Drain implements teammate.NotificationDrainer.
func (d *TeammateDrainer) Drain() []teammate.NotificationEvent {
	events := d.Bus.Drain()
	if len(events) == 0 {
		return nil
	}
	out := make([]teammate.NotificationEvent, len(events))
	for i, e := range events {
		out[i] = teammate.NotificationEvent{
			TaskID:  e.TaskID,
			Status:  string(e.Status),
			Summary: e.Summary,
		}
	}
	return out
}

var _ teammate.NotificationDrainer = (*TeammateDrainer)(nil)
