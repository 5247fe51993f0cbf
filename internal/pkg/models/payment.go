package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// PaymentStatus represents the lifecycle state of a payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusStarted   PaymentStatus = "STARTED"
	PaymentStatusConfirmed PaymentStatus = "CONFIRMED"
	PaymentStatusFinalized PaymentStatus = "FINALIZED"
	PaymentStatusCanceled  PaymentStatus = "CANCELED"
)

// Payment gateway types
const (
	PGTypeCrypto = "CRYPTO"
	PGTypeStripe = "STRIPE"
)

// Payment is a ledger record for a payment created on or reported by the upstream API
type Payment struct {
	ID          string          `json:"id"`
	Status      PaymentStatus   `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	FinalizedAt *time.Time      `json:"finalizedAt,omitempty"`
	Upstream    json.RawMessage `json:"upstream,omitempty"`
}

// Clone returns a deep copy of the payment
func (p *Payment) Clone() *Payment {
	if p == nil {
		return nil
	}
	cp := *p
	if p.FinalizedAt != nil {
		t := *p.FinalizedAt
		cp.FinalizedAt = &t
	}
	if p.Upstream != nil {
		cp.Upstream = append(json.RawMessage(nil), p.Upstream...)
	}
	return &cp
}

// PaymentItem is a purchasable item attached to a payment
type PaymentItem struct {
	ItemIdentifier string `json:"itemIdentifier"`
	Name           string `json:"name"`
	ImageURL       string `json:"imageUrl,omitempty"`
	Price          string `json:"price"`
	CurrencyCode   string `json:"currencyCode,omitempty"`
}

// PaymentItemRequest is an item as sent by the client; prices may be JSON numbers or strings
type PaymentItemRequest struct {
	ItemIdentifier string      `json:"itemIdentifier"`
	Name           string      `json:"name"`
	ImageURL       string      `json:"imageUrl"`
	Price          json.Number `json:"price"`
	CurrencyCode   string      `json:"currencyCode"`
}

// CreatePaymentRequest is the client request to create a payment
type CreatePaymentRequest struct {
	BuyerDappPortalAddress string               `json:"buyerDappPortalAddress"`
	Items                  []PaymentItemRequest `json:"items"`
	PGType                 string               `json:"pgType"`
	CurrencyCode           string               `json:"currencyCode"`
	Price                  json.Number          `json:"price"`
	TestMode               *bool                `json:"testMode"`
}

// UpstreamCreateRequest is the body sent to the upstream create endpoint
type UpstreamCreateRequest struct {
	BuyerDappPortalAddress         string        `json:"buyerDappPortalAddress"`
	PGType                         string        `json:"pgType"`
	CurrencyCode                   string        `json:"currencyCode"`
	Price                          string        `json:"price"`
	PaymentStatusChangeCallbackURL string        `json:"paymentStatusChangeCallbackUrl"`
	LockURL                        *string       `json:"lockUrl"`
	UnlockURL                      *string       `json:"unlockUrl"`
	Items                          []PaymentItem `json:"items"`
	TestMode                       bool          `json:"testMode"`
}

// CreatePaymentResult is the upstream create response.
// Raw keeps the body verbatim for the ledger.
type CreatePaymentResult struct {
	ID  string          `json:"id"`
	Raw json.RawMessage `json:"-"`
}

// FinalizeResult is the upstream finalize response
type FinalizeResult struct {
	ID     string          `json:"id"`
	Status string          `json:"status,omitempty"`
	Raw    json.RawMessage `json:"-"`
}

// StatusCallback is the body of an upstream status-change notification
type StatusCallback struct {
	PaymentID string        `json:"paymentId"`
	Status    PaymentStatus `json:"status"`
}

// FinalizeRequest is the client request to finalize a payment manually
type FinalizeRequest struct {
	PaymentID string `json:"paymentId"`
}

// ItemLockRequest is the body of the lock and unlock callbacks
type ItemLockRequest struct {
	ID    string            `json:"id"`
	Items []json.RawMessage `json:"items"`
}

// TransitionOutcome describes what ApplyStatusChange did with a notification
type TransitionOutcome string

const (
	// TransitionApplied means the status was advanced
	TransitionApplied TransitionOutcome = "applied"
	// TransitionFinalized means the status reached CONFIRMED and was then finalized
	TransitionFinalized TransitionOutcome = "finalized"
	// TransitionRejected means the table forbids the transition; nothing changed
	TransitionRejected TransitionOutcome = "rejected"
	// TransitionUnknownPayment means the id is not in the ledger; nothing changed
	TransitionUnknownPayment TransitionOutcome = "unknown_payment"
)

// PaymentEvent is published whenever a payment enters the ledger or changes status
type PaymentEvent struct {
	PaymentID      string        `json:"paymentId"`
	Status         PaymentStatus `json:"status"`
	PreviousStatus PaymentStatus `json:"previousStatus,omitempty"`
	OccurredAt     time.Time     `json:"occurredAt"`
}

// GatewayError is a non-success response from the upstream payment API
type GatewayError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment api %s failed with status %d: %s", e.Operation, e.StatusCode, e.Body)
}

// IsInvalidStatus reports whether the upstream rejected the call because of the payment's status
func (e *GatewayError) IsInvalidStatus() bool {
	return strings.Contains(strings.ToLower(e.Body), "invalid payment status")
}
