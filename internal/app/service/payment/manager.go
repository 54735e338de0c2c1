package payment

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fatflowers/hms-payment/internal/models"
	"github.com/fatflowers/hms-payment/pkg/types"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	MaxIdempotencyKeyLen = 255
	MaxReasonLen         = 500
)

// maxAmount is the largest value a decimal(10,2) column holds.
var maxAmount = decimal.RequireFromString("99999999.99")

type Outcome string

const (
	OutcomeCreated   Outcome = "created"
	OutcomeDuplicate Outcome = "duplicate"
)

type PaymentRequest struct {
	BillID         int64
	PatientID      int64
	Amount         decimal.Decimal
	PaymentMethod  types.PaymentMethod
	IdempotencyKey string
}

func (r *PaymentRequest) validate() error {
	switch {
	case r == nil:
		return validationError("request is required")
	case r.BillID <= 0:
		return validationError("bill_id must be a positive integer")
	case r.PatientID <= 0:
		return validationError("patient_id must be a positive integer")
	case !r.PaymentMethod.Valid():
		return validationError("payment_method must be one of CARD, CASH, UPI")
	case strings.TrimSpace(r.IdempotencyKey) == "":
		return validationError("idempotency_key is required")
	case len(r.IdempotencyKey) > MaxIdempotencyKeyLen:
		return validationError("idempotency_key must be at most %d characters", MaxIdempotencyKeyLen)
	}
	return validateAmount("amount", r.Amount)
}

// PaymentResult is either a newly created payment or the replay of an earlier one.
type PaymentResult struct {
	Payment *models.Payment
	Outcome Outcome
}

func (r *PaymentResult) IsDuplicate() bool { return r != nil && r.Outcome == OutcomeDuplicate }

type RefundRequest struct {
	PaymentID    int64
	RefundAmount decimal.Decimal
	Reason       string
}

func (r *RefundRequest) validate() error {
	switch {
	case r == nil:
		return validationError("request is required")
	case r.PaymentID <= 0:
		return validationError("payment_id must be a positive integer")
	case len(r.Reason) > MaxReasonLen:
		return validationError("reason must be at most %d characters", MaxReasonLen)
	}
	return validateAmount("refund_amount", r.RefundAmount)
}

type RefundResult struct {
	// Refund is the reversing entry.
	Refund *models.Payment
	// Original is the payment after its transition to REFUNDED.
	Original *models.Payment
}

type ListRequest struct {
	PatientID *int64
	Status    *types.PaymentStatus
	// Page and Limit default to DefaultPage and DefaultLimit when zero.
	Page  int
	Limit int
}

func (r *ListRequest) normalize() error {
	if r.Page == 0 {
		r.Page = DefaultPage
	}
	if r.Limit == 0 {
		r.Limit = DefaultLimit
	}
	switch {
	case r.Page < 1:
		return validationError("page must be at least 1")
	case r.Limit < 1 || r.Limit > MaxLimit:
		return validationError("limit must be between 1 and %d", MaxLimit)
	case r.PatientID != nil && *r.PatientID <= 0:
		return validationError("patient_id must be a positive integer")
	case r.Status != nil && !r.Status.Valid():
		return validationError("status must be one of COMPLETED, REFUNDED, REFUND, PENDING")
	}
	return nil
}

type ListResult struct {
	Items      []*models.Payment
	Page       int
	Limit      int
	TotalCount int64
	TotalPages int64
}

func validateAmount(field string, amount decimal.Decimal) error {
	switch {
	case !amount.IsPositive():
		return validationError("%s must be positive", field)
	case !amount.Equal(amount.Round(2)):
		return validationError("%s must have at most 2 decimal places", field)
	case amount.GreaterThan(maxAmount):
		return validationError("%s must not exceed %s", field, maxAmount.StringFixed(2))
	}
	return nil
}

// Manager is the payment/refund transaction engine over the ledger.
type Manager interface {
	// ProcessPayment records a payment exactly once per idempotency key.
	ProcessPayment(ctx context.Context, req *PaymentRequest) (*PaymentResult, error)
	// ProcessRefund reverses a COMPLETED payment. At most one refund per payment succeeds.
	ProcessRefund(ctx context.Context, req *RefundRequest) (*RefundResult, error)
	GetPayment(ctx context.Context, paymentID int64) (*models.Payment, error)
	ListPayments(ctx context.Context, req *ListRequest) (*ListResult, error)
}
