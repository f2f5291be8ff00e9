package notify

import "context"

// Payload is a composed notification ready to send.
type Payload struct {
	Subject   string
	Body      string
	Recipient string
}

// Dispatcher sends a payload to its recipient. Implementations may perform
// blocking network I/O; callers treat dispatch as best-effort and never roll
// back persisted state when Send fails.
type Dispatcher interface {
	Send(ctx context.Context, payload Payload) error
}
