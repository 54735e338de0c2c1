package payment

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/fatflowers/hms-payment/internal/app/service/ledger"
	"github.com/fatflowers/hms-payment/internal/app/service/notifier"
	"github.com/fatflowers/hms-payment/internal/models"
	"github.com/fatflowers/hms-payment/pkg/logctx"
	"github.com/fatflowers/hms-payment/pkg/tool"
	"github.com/fatflowers/hms-payment/pkg/types"
)

// ProcessRefund inserts the reversing entry and marks the original REFUNDED in one
// transaction. The refund amount is not checked against the original amount.
func (s *Service) ProcessRefund(ctx context.Context, req *RefundRequest) (*RefundResult, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "payment.ProcessRefund")
	defer span.End()
	log := logctx.FromCtx(ctx, s.log)

	if err := req.validate(); err != nil {
		s.finish(span, "refund", "invalid", start, err)
		log.Infow("refund_rejected", "error", err)
		return nil, err
	}
	span.SetAttributes(attribute.Int64("payment.id", req.PaymentID))

	var result RefundResult
	err := s.store.Transaction(ctx, func(tx ledger.Store) error {
		original, err := tx.FindByID(ctx, req.PaymentID, true)
		if errors.Is(err, ledger.ErrNotFound) {
			return notFoundError(req.PaymentID)
		}
		if err != nil {
			return err
		}
		switch {
		case original.Status == types.PaymentStatusRefunded:
			return alreadyRefundedError(original.PaymentID, nil)
		case !original.IsRefundable():
			return notRefundableError(original.PaymentID, original.Status)
		}
		if req.RefundAmount.GreaterThan(original.Amount) {
			log.Warnw("refund_exceeds_original",
				"payment_id", original.PaymentID,
				"original_amount", original.Amount.StringFixed(2),
				"refund_amount", req.RefundAmount.StringFixed(2),
			)
		}

		now := s.now()
		refund := &models.Payment{
			BillID:        original.BillID,
			PatientID:     original.PatientID,
			Amount:        req.RefundAmount.Round(2).Neg(),
			PaymentMethod: original.PaymentMethod,
			Status:        types.PaymentStatusRefund,
			TransactionID: s.transactionID(tool.RefundTransactionPrefix, now),
			CreatedAt:     now,
		}
		if err := tx.Insert(ctx, refund); err != nil {
			return err
		}
		if err := tx.MarkRefunded(ctx, original.PaymentID); err != nil {
			if errors.Is(err, ledger.ErrStatusConflict) {
				return alreadyRefundedError(original.PaymentID, err)
			}
			return err
		}
		original.Status = types.PaymentStatusRefunded
		result = RefundResult{Refund: refund, Original: original}
		return nil
	})

	if err != nil {
		var perr *Error
		if !errors.As(err, &perr) {
			perr = persistenceError("process refund", err)
		}
		s.finish(span, "refund", perr.Kind.String(), start, perr)
		if perr.Kind == KindPersistence {
			log.Errorw("refund_failed", "payment_id", req.PaymentID, "error", err)
		} else {
			log.Infow("refund_rejected", "payment_id", req.PaymentID, "code", perr.Code, "error", err)
		}
		return nil, perr
	}

	s.finish(span, "refund", "refunded", start, nil)
	log.Infow("refund_processed",
		"payment_id", result.Original.PaymentID,
		"refund_payment_id", result.Refund.PaymentID,
		"refund_amount", req.RefundAmount.StringFixed(2),
		"reason", req.Reason,
	)
	s.hooks.Dispatch(ctx, notifier.Event{
		Type:     types.LedgerEventPaymentRefunded,
		Payment:  result.Refund,
		Original: result.Original,
		Reason:   req.Reason,
	})
	return &result, nil
}
