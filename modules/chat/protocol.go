package chat

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedFrame is returned for frames that are not valid chat envelopes.
var ErrMalformedFrame = errors.New("malformed frame")

// HandleFrame decodes one inbound websocket frame from connID and dispatches it.
// Unknown events are ignored.
func (s *Service) HandleFrame(connID string, frame []byte) error {
	var in InboundFrame
	if err := json.Unmarshal(frame, &in); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}

	switch in.Event {
	case EventJoin:
		var username string
		if err := json.Unmarshal(in.Data, &username); err != nil {
			return fmt.Errorf("%w: join data must be a string", ErrMalformedFrame)
		}
		s.OnJoin(connID, username)
	case EventChatMessage:
		var msg ChatMessageInput
		if err := json.Unmarshal(in.Data, &msg); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedFrame, err)
		}
		s.OnChatMessage(connID, msg.Message, msg.IsCode)
	default:
		s.logger.Debug("Ignoring unknown event", "connID", connID, "event", in.Event)
	}
	return nil
}
