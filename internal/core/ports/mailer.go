package ports

import "context"

// Mailer dispatches transactional mail through an external channel.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
