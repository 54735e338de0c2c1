package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/fatflowers/hms-payment/internal/app/service/calllog"
	"github.com/fatflowers/hms-payment/internal/models"
	"github.com/fatflowers/hms-payment/internal/platform/collaborator"
	"github.com/fatflowers/hms-payment/internal/platform/eventbus"
	cfgpkg "github.com/fatflowers/hms-payment/pkg/config"
	"github.com/fatflowers/hms-payment/pkg/logctx"
	"github.com/fatflowers/hms-payment/pkg/metrics"
)

// Auditor records collaborator call attempts.
type Auditor interface {
	Save(ctx context.Context, entry *models.CollaboratorCallLog)
}

// Dispatcher runs the post-commit hooks of a ledger event. Each hook runs on its own
// goroutine under its own timeout; failures are logged, counted and audited, never returned.
type Dispatcher struct {
	hooks   []Hook
	timeout time.Duration
	log     *zap.SugaredLogger
	metrics *metrics.Ledger
	audit   Auditor
	wg      sync.WaitGroup
}

func NewDispatcher(hooks []Hook, timeout time.Duration, log *zap.SugaredLogger, m *metrics.Ledger, audit Auditor) *Dispatcher {
	return &Dispatcher{hooks: hooks, timeout: timeout, log: log, metrics: m, audit: audit}
}

// Dispatch returns immediately. ctx is detached from cancellation but keeps its
// values (correlation id, request logger).
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) {
	if ev.Payment == nil {
		return
	}
	base := context.WithoutCancel(ctx)
	for _, h := range d.hooks {
		if !h.handles(ev.Type) {
			continue
		}
		d.wg.Add(1)
		go func(h Hook) {
			defer d.wg.Done()
			d.run(base, h, ev)
		}(h)
	}
}

func (d *Dispatcher) run(base context.Context, h Hook, ev Event) {
	ctx, cancel := context.WithTimeout(base, d.timeout)
	defer cancel()
	log := logctx.FromCtx(ctx, d.log)

	start := time.Now()
	err := safeCall(ctx, h, ev)
	elapsed := time.Since(start)

	entry := &models.CollaboratorCallLog{
		PaymentID:     ev.Payment.PaymentID,
		Collaborator:  h.Name,
		Event:         string(ev.Type),
		CorrelationID: logctx.CorrelationID(ctx),
		Request:       encodeRequest(h, ev),
		Status:        models.CollaboratorCallStatusSucceeded,
		DurationMs:    elapsed.Milliseconds(),
	}
	if err != nil {
		msg := err.Error()
		entry.Status = models.CollaboratorCallStatusFailed
		entry.Error = &msg
		d.metrics.CollaboratorFailure(h.Name)
		log.Warnw("collaborator_call_failed",
			"collaborator", h.Name,
			"event", ev.Type,
			"payment_id", ev.Payment.PaymentID,
			"elapsed_ms", elapsed.Milliseconds(),
			"error", err,
		)
	} else {
		log.Debugw("collaborator_call_succeeded", "collaborator", h.Name, "event", ev.Type, "payment_id", ev.Payment.PaymentID)
	}
	if d.audit != nil {
		d.audit.Save(base, entry)
	}
}

func safeCall(ctx context.Context, h Hook, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("hook %s panicked: %v", h.Name, r)
		}
	}()
	return h.Call(ctx, ev)
}

func encodeRequest(h Hook, ev Event) datatypes.JSON {
	if h.Request == nil {
		return nil
	}
	raw, err := json.Marshal(h.Request(ev))
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

// Wait blocks until in-flight hooks finish or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func newDispatcher(
	lc fx.Lifecycle,
	cfg *cfgpkg.Config,
	client *collaborator.Client,
	pub *eventbus.Publisher,
	audit *calllog.Service,
	m *metrics.Ledger,
	log *zap.SugaredLogger,
) *Dispatcher {
	hooks := []Hook{BillingHook(client), PatientNotificationHook(client)}
	if pub != nil {
		hooks = append(hooks, EventHook(pub))
	}
	d := NewDispatcher(hooks, cfg.Collaborators.Timeout, log, m, audit)
	// stop order is reverse of registration, so hooks drain before the call log does
	lc.Append(fx.StopHook(d.Wait))
	return d
}

var Module = fx.Options(
	fx.Provide(newDispatcher),
)
