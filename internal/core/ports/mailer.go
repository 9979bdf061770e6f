package ports

import "context"

// Mailer delivers outbound email. Implementations are external collaborators;
// the core only composes subject and body.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
