package email

import "context"

// Message is a single outbound email with both plaintext and HTML bodies.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

type Sender interface {
	Send(ctx context.Context, msg *Message) error
}
