package mail

import "context"

// Message is a single outbound email.
type Message struct {
	ToName    string
	ToAddress string
	Subject   string
	TextBody  string
	HTMLBody  string
}

// Mailer delivers notification emails. Implementations must not block on
// per-recipient failures; callers only need an aggregate success count.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
