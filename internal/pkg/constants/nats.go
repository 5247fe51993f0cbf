package constants

// NATS Subjects
const (
	SubjectPaymentCreated       = "payment.created"
	SubjectPaymentStatusChanged = "payment.status_changed"
	SubjectPaymentFinalized     = "payment.finalized"
)
