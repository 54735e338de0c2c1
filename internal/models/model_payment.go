package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatflowers/hms-payment/pkg/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrAmountSign is returned when a record's amount sign contradicts its status.
var ErrAmountSign = errors.New("amount sign does not match status")

// Payment is one ledger record: a payment, or the reversing entry of a refund.
// Records are insert-only; Status is the single mutable column (COMPLETED -> REFUNDED).
type Payment struct {
	PaymentID     int64               `gorm:"column:payment_id;primaryKey;autoIncrement" json:"payment_id"`
	BillID        int64               `gorm:"column:bill_id;not null;index:idx_payments_bill" json:"bill_id"`
	PatientID     int64               `gorm:"column:patient_id;not null;index:idx_payments_patient" json:"patient_id"`
	Amount        decimal.Decimal     `gorm:"column:amount;type:decimal(10,2);not null" json:"amount"`
	PaymentMethod types.PaymentMethod `gorm:"column:payment_method;type:varchar(16);not null" json:"payment_method"`
	Status        types.PaymentStatus `gorm:"column:status;type:varchar(16);not null" json:"status"`
	TransactionID string              `gorm:"column:transaction_id;type:varchar(100);not null;uniqueIndex:idx_payments_transaction" json:"transaction_id"`
	// IdempotencyKey is nil for refund-generated records.
	IdempotencyKey *string   `gorm:"column:idempotency_key;type:varchar(255);uniqueIndex:idx_payments_idempotency" json:"idempotency_key"`
	CreatedAt      time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (Payment) TableName() string { return "payments" }

// BeforeCreate enforces the amount sign invariant before any insert reaches storage.
func (p *Payment) BeforeCreate(*gorm.DB) error {
	return p.CheckAmountSign()
}

func (p *Payment) CheckAmountSign() error {
	switch p.Status {
	case types.PaymentStatusRefund:
		if !p.Amount.IsNegative() {
			return fmt.Errorf("%w: %s record with amount %s", ErrAmountSign, p.Status, p.Amount.StringFixed(2))
		}
	case types.PaymentStatusCompleted, types.PaymentStatusPending:
		if !p.Amount.IsPositive() {
			return fmt.Errorf("%w: %s record with amount %s", ErrAmountSign, p.Status, p.Amount.StringFixed(2))
		}
	default:
		return fmt.Errorf("%w: status %q cannot be inserted", ErrAmountSign, p.Status)
	}
	return nil
}

// IsRefundable reports whether the record is an applied payment that was never reversed.
func (p *Payment) IsRefundable() bool {
	return p != nil && p.Status == types.PaymentStatusCompleted
}
