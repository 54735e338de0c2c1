package types

// PaymentMethod is how the patient settled the bill. It is recorded, not charged.
type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "CARD"
	PaymentMethodCash PaymentMethod = "CASH"
	PaymentMethodUPI  PaymentMethod = "UPI"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodCash, PaymentMethodUPI:
		return true
	}
	return false
}

// PaymentStatus is the lifecycle state of a ledger record.
type PaymentStatus string

const (
	// PaymentStatusCompleted marks an applied payment.
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	// PaymentStatusRefund marks the record itself as a reversing entry.
	PaymentStatusRefund PaymentStatus = "REFUND"
	// PaymentStatusRefunded marks a payment that has been reversed.
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
	// PaymentStatusPending is reserved and not produced by any current flow.
	PaymentStatusPending PaymentStatus = "PENDING"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusCompleted, PaymentStatusRefund, PaymentStatusRefunded, PaymentStatusPending:
		return true
	}
	return false
}

// LedgerEventType names the post-commit events of the ledger.
type LedgerEventType string

const (
	LedgerEventPaymentCompleted LedgerEventType = "payment.completed"
	LedgerEventPaymentRefunded  LedgerEventType = "payment.refunded"
)
