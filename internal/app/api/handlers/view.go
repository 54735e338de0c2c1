package handlers

import (
	"encoding/json"
	"time"

	"github.com/samber/lo"

	"github.com/fatflowers/hms-payment/internal/models"
)

// PaymentView is the wire form of a ledger record; amount always carries 2 decimals.
type PaymentView struct {
	PaymentID      int64       `json:"payment_id" example:"42"`
	BillID         int64       `json:"bill_id" example:"10"`
	PatientID      int64       `json:"patient_id" example:"5"`
	Amount         json.Number `json:"amount" swaggertype:"number" example:"150.00"`
	PaymentMethod  string      `json:"payment_method" example:"CARD"`
	Status         string      `json:"status" example:"COMPLETED"`
	TransactionID  string      `json:"transaction_id" example:"TXN-1767225600000-3f2a9c1b7d4e"`
	IdempotencyKey *string     `json:"idempotency_key" example:"abc"`
	CreatedAt      time.Time   `json:"created_at"`
}

func NewPaymentView(p *models.Payment) *PaymentView {
	if p == nil {
		return nil
	}
	return &PaymentView{
		PaymentID:      p.PaymentID,
		BillID:         p.BillID,
		PatientID:      p.PatientID,
		Amount:         json.Number(p.Amount.StringFixed(2)),
		PaymentMethod:  string(p.PaymentMethod),
		Status:         string(p.Status),
		TransactionID:  p.TransactionID,
		IdempotencyKey: p.IdempotencyKey,
		CreatedAt:      p.CreatedAt,
	}
}

func newPaymentViews(rows []*models.Payment) []*PaymentView {
	return lo.Map(rows, func(p *models.Payment, _ int) *PaymentView { return NewPaymentView(p) })
}
