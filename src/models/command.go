package models

import "encoding/json"

// -----------------------------------------------------------------------------
// Client Commands (WebSocket wire protocol, client -> server)
// -----------------------------------------------------------------------------

// ClientAction is the closed set of actions a client may send.
type ClientAction string

const (
	ActionSubscribe   ClientAction = "subscribe"
	ActionUnsubscribe ClientAction = "unsubscribe"
	ActionPing        ClientAction = "ping"
	ActionUnknown     ClientAction = ""
)

// MClientCommand is a decoded client frame.
// Raw preserves the original action string for error reporting.
type MClientCommand struct {
	Action   ClientAction
	Raw      string
	Channels []string
}

// rawClientCommand is the JSON shape on the wire.
type rawClientCommand struct {
	Action   string   `json:"action"`
	Channels []string `json:"channels"`
}

// DecodeClientCommand parses a raw frame into the command enum.
// A JSON error is returned as-is; an unrecognized action decodes
// successfully as ActionUnknown with Raw carrying the original string.
func DecodeClientCommand(frame []byte) (MClientCommand, error) {
	var raw rawClientCommand
	if err := json.Unmarshal(frame, &raw); err != nil {
		return MClientCommand{}, err
	}

	cmd := MClientCommand{Raw: raw.Action, Channels: raw.Channels}
	switch ClientAction(raw.Action) {
	case ActionSubscribe, ActionUnsubscribe, ActionPing:
		cmd.Action = ClientAction(raw.Action)
	default:
		cmd.Action = ActionUnknown
	}
	return cmd, nil
}
