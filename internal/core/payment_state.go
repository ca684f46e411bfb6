package core

// paymentTransitions encodes the payment lifecycle. completed and
// cancelled are terminal; nothing leaves them without an explicit
// status edit, which this machine does not model.
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending: {PaymentPartial, PaymentCompleted, PaymentOverdue, PaymentCancelled},
	PaymentPartial: {PaymentCompleted, PaymentOverdue, PaymentCancelled},
	PaymentOverdue: {PaymentCompleted, PaymentCancelled},
}

// CanTransition reports whether a payment may move from one status to
// another.
func CanTransition(from, to PaymentStatus) bool {
	for _, next := range paymentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a payment status admits no further
// transitions.
func IsTerminal(s PaymentStatus) bool {
	return len(paymentTransitions[s]) == 0
}

// CheckTransition validates a status change for a payment, including
// the funding-account rule: completing a payment requires knowing the
// account the money left. The source system only warned about this in
// the UI; here it is rejected before persistence.
func (p Payment) CheckTransition(to PaymentStatus) error {
	if !to.IsValid() {
		return ValidationErr("invalid payment status", ErrInvalidStatus)
	}
	if !CanTransition(p.Status, to) {
		return ConsistencyErr("invalid status transition",
			string(p.Status)+" cannot become "+string(to))
	}
	if to == PaymentCompleted && (p.AccountID == "" || !p.AccountType.IsValid()) {
		return ConsistencyErr("payment completed without funding account",
			"a completed payment must reference the account that funded it")
	}
	return nil
}
