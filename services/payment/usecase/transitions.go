package usecase

import "github.com/piresc/payrelay/internal/pkg/models"

// allowedTransitions maps each status to the statuses it may move to.
// FINALIZED and CANCELED are terminal.
var allowedTransitions = map[models.PaymentStatus][]models.PaymentStatus{
	models.PaymentStatusPending:   {models.PaymentStatusStarted, models.PaymentStatusCanceled},
	models.PaymentStatusStarted:   {models.PaymentStatusConfirmed, models.PaymentStatusCanceled},
	models.PaymentStatusConfirmed: {models.PaymentStatusFinalized, models.PaymentStatusCanceled},
	models.PaymentStatusFinalized: {},
	models.PaymentStatusCanceled:  {},
}

// CanTransition reports whether from may move to to
func CanTransition(from, to models.PaymentStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether status has no outgoing transitions
func IsTerminal(status models.PaymentStatus) bool {
	next, known := allowedTransitions[status]
	return known && len(next) == 0
}
