package notifier

import (
	"context"
	"encoding/json"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/fatflowers/hms-payment/internal/models"
	"github.com/fatflowers/hms-payment/internal/platform/collaborator"
	"github.com/fatflowers/hms-payment/pkg/types"
)

const (
	CollaboratorBilling      = "billing"
	CollaboratorNotification = "notification"
	CollaboratorEventBus     = "event_bus"
)

// Event is a committed ledger change handed to the post-commit hooks.
type Event struct {
	Type types.LedgerEventType
	// Payment is the committed record: the new payment, or the reversing entry of a refund.
	Payment *models.Payment
	// Original is the refunded payment. Nil for payment events.
	Original *models.Payment
	Reason   string
}

// Hook is one best-effort side effect of a committed ledger change.
type Hook struct {
	Name   string
	Events []types.LedgerEventType
	// Request is the audited payload of the call.
	Request func(ev Event) any
	Call    func(ctx context.Context, ev Event) error
}

func (h Hook) handles(t types.LedgerEventType) bool {
	return lo.Contains(h.Events, t)
}

type BillingNotifier interface {
	NotifyBillingPaid(ctx context.Context, billID, paymentID int64) error
}

type PatientNotifier interface {
	NotifyPatientPaymentReceived(ctx context.Context, patientID int64, amount decimal.Decimal, paymentID int64, transactionID string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, eventType, msgID string, payload any) error
}

func BillingHook(c BillingNotifier) Hook {
	return Hook{
		Name:   CollaboratorBilling,
		Events: []types.LedgerEventType{types.LedgerEventPaymentCompleted},
		Request: func(ev Event) any {
			return map[string]any{"bill_id": ev.Payment.BillID, "payment_id": ev.Payment.PaymentID}
		},
		Call: func(ctx context.Context, ev Event) error {
			return c.NotifyBillingPaid(ctx, ev.Payment.BillID, ev.Payment.PaymentID)
		},
	}
}

func PatientNotificationHook(c PatientNotifier) Hook {
	return Hook{
		Name:   CollaboratorNotification,
		Events: []types.LedgerEventType{types.LedgerEventPaymentCompleted},
		Request: func(ev Event) any {
			p := ev.Payment
			return collaborator.PaymentReceivedNotification(p.PatientID, p.Amount, p.PaymentID, p.TransactionID)
		},
		Call: func(ctx context.Context, ev Event) error {
			p := ev.Payment
			return c.NotifyPatientPaymentReceived(ctx, p.PatientID, p.Amount, p.PaymentID, p.TransactionID)
		},
	}
}

// LedgerEvent is the JSON body published for every ledger change.
type LedgerEvent struct {
	Event             string      `json:"event"`
	PaymentID         int64       `json:"payment_id"`
	BillID            int64       `json:"bill_id"`
	PatientID         int64       `json:"patient_id"`
	Amount            json.Number `json:"amount"`
	PaymentMethod     string      `json:"payment_method"`
	Status            string      `json:"status"`
	TransactionID     string      `json:"transaction_id"`
	OriginalPaymentID *int64      `json:"original_payment_id,omitempty"`
	Reason            string      `json:"reason,omitempty"`
	OccurredAt        time.Time   `json:"occurred_at"`
}

func NewLedgerEvent(ev Event) LedgerEvent {
	p := ev.Payment
	out := LedgerEvent{
		Event:         string(ev.Type),
		PaymentID:     p.PaymentID,
		BillID:        p.BillID,
		PatientID:     p.PatientID,
		Amount:        json.Number(p.Amount.StringFixed(2)),
		PaymentMethod: string(p.PaymentMethod),
		Status:        string(p.Status),
		TransactionID: p.TransactionID,
		Reason:        ev.Reason,
		OccurredAt:    p.CreatedAt.UTC(),
	}
	if ev.Original != nil {
		out.OriginalPaymentID = lo.ToPtr(ev.Original.PaymentID)
	}
	return out
}

func EventHook(pub EventPublisher) Hook {
	return Hook{
		Name:   CollaboratorEventBus,
		Events: []types.LedgerEventType{types.LedgerEventPaymentCompleted, types.LedgerEventPaymentRefunded},
		Request: func(ev Event) any {
			return NewLedgerEvent(ev)
		},
		Call: func(ctx context.Context, ev Event) error {
			return pub.Publish(ctx, string(ev.Type), ev.Payment.TransactionID, NewLedgerEvent(ev))
		},
	}
}
