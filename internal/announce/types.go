package announce

import "context"

type Field struct {
	Name   string
	Value  string
	Inline bool
}

type Message struct {
	Title       string
	Description string
	Color       int
	Timestamp   string
	Footer      string
	Fields      []Field
}

// Sender delivers one message to one webhook endpoint.
type Sender interface {
	Send(ctx context.Context, endpoint string, msg Message) error
}

type job struct {
	Endpoint string
	Message  Message
	Attempt  int
}
