package adapter

import "context"

// Mailer delivers chapter emails. Implementations must be safe for
// concurrent use by the delivery worker.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
