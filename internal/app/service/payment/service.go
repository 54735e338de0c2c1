package payment

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fatflowers/hms-payment/internal/app/service/ledger"
	"github.com/fatflowers/hms-payment/internal/app/service/notifier"
	"github.com/fatflowers/hms-payment/internal/models"
	"github.com/fatflowers/hms-payment/pkg/logctx"
	"github.com/fatflowers/hms-payment/pkg/metrics"
	"github.com/fatflowers/hms-payment/pkg/tool"
	"github.com/fatflowers/hms-payment/pkg/types"
)

const tracerName = "github.com/fatflowers/hms-payment/internal/app/service/payment"

// PostCommit receives ledger events after their transaction committed.
type PostCommit interface {
	Dispatch(ctx context.Context, ev notifier.Event)
}

type Service struct {
	store   ledger.Store
	hooks   PostCommit
	log     *zap.SugaredLogger
	metrics *metrics.Ledger
	tracer  trace.Tracer

	now           func() time.Time
	transactionID func(prefix string, now time.Time) string
}

func NewService(store ledger.Store, hooks PostCommit, log *zap.SugaredLogger, m *metrics.Ledger, tp trace.TracerProvider) *Service {
	return &Service{
		store:         store,
		hooks:         hooks,
		log:           log,
		metrics:       m,
		tracer:        tp.Tracer(tracerName),
		now:           func() time.Time { return time.Now().UTC() },
		transactionID: tool.NewTransactionID,
	}
}

func (s *Service) ProcessPayment(ctx context.Context, req *PaymentRequest) (*PaymentResult, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "payment.ProcessPayment")
	defer span.End()
	log := logctx.FromCtx(ctx, s.log)

	if err := req.validate(); err != nil {
		s.finish(span, "payment", "invalid", start, err)
		log.Infow("payment_rejected", "error", err)
		return nil, err
	}
	span.SetAttributes(
		attribute.Int64("payment.bill_id", req.BillID),
		attribute.String("payment.method", string(req.PaymentMethod)),
	)

	var result *PaymentResult
	err := s.store.Transaction(ctx, func(tx ledger.Store) error {
		existing, err := tx.FindByIdempotencyKey(ctx, req.IdempotencyKey)
		if err == nil {
			result = &PaymentResult{Payment: existing, Outcome: OutcomeDuplicate}
			return nil
		}
		if !errors.Is(err, ledger.ErrNotFound) {
			return err
		}

		now := s.now()
		key := req.IdempotencyKey
		p := &models.Payment{
			BillID:         req.BillID,
			PatientID:      req.PatientID,
			Amount:         req.Amount.Round(2),
			PaymentMethod:  req.PaymentMethod,
			Status:         types.PaymentStatusCompleted,
			TransactionID:  s.transactionID(tool.PaymentTransactionPrefix, now),
			IdempotencyKey: &key,
			CreatedAt:      now,
		}
		if err := tx.Insert(ctx, p); err != nil {
			return err
		}
		result = &PaymentResult{Payment: p, Outcome: OutcomeCreated}
		return nil
	})

	if errors.Is(err, ledger.ErrDuplicateKey) {
		// A concurrent request with the same key committed first; its record is the answer.
		winner, ferr := s.store.FindByIdempotencyKey(ctx, req.IdempotencyKey)
		if ferr == nil {
			log.Infow("payment_idempotency_race", "payment_id", winner.PaymentID)
			result, err = &PaymentResult{Payment: winner, Outcome: OutcomeDuplicate}, nil
		} else {
			err = errors.Join(err, ferr)
		}
	}
	if err != nil {
		perr := persistenceError("process payment", err)
		if errors.Is(err, models.ErrAmountSign) {
			perr = validationError("amount must be positive")
		}
		s.finish(span, "payment", perr.Kind.String(), start, perr)
		log.Errorw("payment_failed", "error", err)
		return nil, perr
	}

	span.SetAttributes(attribute.Int64("payment.id", result.Payment.PaymentID), attribute.String("payment.outcome", string(result.Outcome)))
	s.finish(span, "payment", string(result.Outcome), start, nil)
	if result.IsDuplicate() {
		log.Infow("payment_duplicate", "payment_id", result.Payment.PaymentID)
		return result, nil
	}

	log.Infow("payment_processed",
		"payment_id", result.Payment.PaymentID,
		"bill_id", result.Payment.BillID,
		"transaction_id", result.Payment.TransactionID,
	)
	s.hooks.Dispatch(ctx, notifier.Event{Type: types.LedgerEventPaymentCompleted, Payment: result.Payment})
	return result, nil
}

// finish records the outcome of one operation on the span and the ledger metrics.
func (s *Service) finish(span trace.Span, op, outcome string, start time.Time, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
	switch op {
	case "payment":
		s.metrics.PaymentOutcome(outcome)
	case "refund":
		s.metrics.RefundOutcome(outcome)
	}
	s.metrics.ObserveProcess(op, outcome, start)
}

func newManager(s *Service) Manager { return s }

func newPostCommit(d *notifier.Dispatcher) PostCommit { return d }

var Module = fx.Options(
	fx.Provide(NewService),
	fx.Provide(newManager),
	fx.Provide(newPostCommit),
)
