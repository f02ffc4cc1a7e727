package domain

import (
	"errors"
	"fmt"
)

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrAlreadyExists      = errors.New("entity already exists")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrOperationFailed    = errors.New("operation failed")
	ErrReadDatabaseRow    = errors.New("failed to read database row")
	ErrInvalidExecContext = errors.New("invalid execution context")

	// Payment flow errors
	ErrGatewayUnavailable = errors.New("payment gateway call failed")
	// ErrActivationConflict means the gateway confirmed the payment but the
	// subscription write did not land. Callers must not present this as a
	// payment failure; re-verifying with the same session id is safe.
	ErrActivationConflict = errors.New("payment confirmed but activation not persisted")
)

// PaymentIncompleteError signals that the gateway has not (yet) collected the
// payment. It is informational rather than a hard failure: the caller should
// prompt the user again or poll with the same session id.
type PaymentIncompleteError struct {
	Status string // gateway-reported payment status, e.g. "unpaid"
}

func (e *PaymentIncompleteError) Error() string {
	return fmt.Sprintf("payment not completed (status=%s)", e.Status)
}
