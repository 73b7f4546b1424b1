package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_String(t *testing.T) {
	ev := Event{Type: EventAdminAction, Payload: map[string]any{
		"action":          "DELETE_BLOG_POST",
		"previous_status": 1,
	}}

	assert.Equal(t, "DELETE_BLOG_POST", ev.String("action"))
	assert.Equal(t, "", ev.String("previous_status"))
	assert.Equal(t, "", ev.String("missing"))
	assert.Equal(t, "", Event{}.String("action"))
}

func TestEvent_WireShape(t *testing.T) {
	data, err := json.Marshal(Event{Type: EventAdminAction, Payload: map[string]any{"target_id": "p-1", "new_status": 2}})
	require.NoError(t, err)

	var decoded Event
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "p-1", decoded.String("target_id"))
	// numbers come back as float64 after the redis hop
	assert.Equal(t, float64(2), decoded.Payload["new_status"])
}
