package commands

import (
	"fmt"

	"github.com/ourines/codes-coord/internal/output"
	"github.com/ourines/codes-coord/internal/teammate"
)

// RunSend appends content to recipient's inbox, or broadcasts it to team
// when broadcast is set (recipient is then ignored).
func RunSend(recipient, content, msgType, sender, team string, broadcast bool) {
	m := teammate.NewManager()

	t := teammate.MessageType(msgType)
	if t == "" {
		t = teammate.MsgMessage
	}
	if broadcast {
		t = teammate.MsgBroadcast
		recipient = ""
	}

	result, err := m.SendMessage(recipient, content, t, sender, team)
	if err != nil {
		output.PrintError(err)
		return
	}

	output.Print(struct {
		Result string `json:"result"`
	}{Result: result}, func() {
		fmt.Printf("%s\n", result)
	})
}
