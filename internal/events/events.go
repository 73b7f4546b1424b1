package events

import "context"

// Streams
const (
	StreamAdmin = "events:admin"
)

// Event types
const (
	EventAdminAction = "admin_action"
)

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}

// String reads a string field from the payload; missing or non-string values yield "".
func (e Event) String(key string) string {
	s, _ := e.Payload[key].(string)
	return s
}
