package payment

import "errors"

var (
	// ErrNotFound is returned when the payment id is not in the ledger
	ErrNotFound = errors.New("payment not found")
	// ErrDuplicateID is returned when inserting an id the ledger already holds
	ErrDuplicateID = errors.New("payment id already exists")
	// ErrInvalidState is returned when an operation needs a status the payment is not in
	ErrInvalidState = errors.New("payment is not in a valid state for this operation")
	// ErrInvalidRequest is returned when a create request fails validation
	ErrInvalidRequest = errors.New("invalid payment request")
	// ErrCallbackURLNotPublic is returned when the configured callback base URL points at this machine
	ErrCallbackURLNotPublic = errors.New("callback url must be publicly accessible")
)
