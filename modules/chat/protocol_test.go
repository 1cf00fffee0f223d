package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_HandleFrame(t *testing.T) {
	s, b := newTestService(t)

	require.NoError(t, s.HandleFrame("A", []byte(`{"event":"join","data":"alice"}`)))
	require.NoError(t, s.HandleFrame("A", []byte(`{"event":"chat_message","data":{"message":"hi","isCode":false}}`)))

	events := b.seenBy("A")
	require.Len(t, events, 3)
	assert.Equal(t, EventUserJoined, events[0].Name)
	assert.Equal(t, EventUserList, events[1].Name)
	assert.Equal(t, EventChatMessage, events[2].Name)
}

func TestService_HandleFrame_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		frame string
	}{
		{name: "not json", frame: `hello`},
		{name: "join without data", frame: `{"event":"join"}`},
		{name: "join with object", frame: `{"event":"join","data":{"name":"alice"}}`},
		{name: "message with string data", frame: `{"event":"chat_message","data":"hi"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, b := newTestService(t)

			err := s.HandleFrame("A", []byte(tt.frame))
			assert.ErrorIs(t, err, ErrMalformedFrame)
			assert.Empty(t, b.all())
		})
	}
}

func TestService_HandleFrame_UnknownEventIgnored(t *testing.T) {
	s, b := newTestService(t)

	assert.NoError(t, s.HandleFrame("A", []byte(`{"event":"typing","data":true}`)))
	assert.Empty(t, b.all())
}
