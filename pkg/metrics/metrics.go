package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// HistogramBuckets are millisecond bounds sized for a few-second collaborator timeout.
var HistogramBuckets = []float64{
	5, 10, 25, 50, 75, 100, 150, 200, 300, 400, 500,
	750, 1000, 1500, 2000, 3000, 5000, 10000,
}

// Metric is a definition for the name, description, type, ID, and
// prometheus.Collector type (i.e. CounterVec, Summary, etc) of each metric
type Metric struct {
	MetricCollector prometheus.Collector
	ID              string
	Name            string
	Description     string
	Type            string
	Args            []string
}

// NewMetric associates prometheus.Collector based on Metric.Type
func NewMetric(m *Metric, subsystem string) prometheus.Collector {
	switch m.Type {
	case "counter_vec":
		return prometheus.NewCounterVec(
			prometheus.CounterOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description},
			m.Args,
		)
	case "histogram_vec":
		return prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description, Buckets: HistogramBuckets},
			m.Args,
		)
	case "summary_vec":
		return prometheus.NewSummaryVec(
			prometheus.SummaryOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description},
			m.Args,
		)
	}
	return nil
}

var MetricsBusinessProcess = &Metric{
	ID:          "bpDur",
	Name:        "bp_dur",
	Description: "process latency in milliseconds",
	Type:        "histogram_vec",
	Args:        []string{"type", "subtype"},
}

var metricsPaymentsProcessed = &Metric{
	ID:          "paymentsProcessed",
	Name:        "payments_processed_total",
	Description: "Payment requests handled, partitioned by outcome.",
	Type:        "counter_vec",
	Args:        []string{"outcome"},
}

var metricsRefundsProcessed = &Metric{
	ID:          "refundsProcessed",
	Name:        "refunds_processed_total",
	Description: "Refund requests handled, partitioned by outcome.",
	Type:        "counter_vec",
	Args:        []string{"outcome"},
}

var metricsCollaboratorFailures = &Metric{
	ID:          "collaboratorFailures",
	Name:        "collaborator_failures_total",
	Description: "Post-commit collaborator calls that failed.",
	Type:        "counter_vec",
	Args:        []string{"collaborator"},
}

const (
	RefererKey = "X-Referer"

	// Subsystem prefixes every collector of the service.
	Subsystem = "payments"
)

// Ledger holds the business counters of the payment ledger. A nil *Ledger records nothing.
type Ledger struct {
	payments      *prometheus.CounterVec
	refunds       *prometheus.CounterVec
	collaborators *prometheus.CounterVec
	process       *prometheus.HistogramVec
}

// NewLedger builds and registers the ledger collectors on reg.
func NewLedger(reg prometheus.Registerer) (*Ledger, error) {
	l := &Ledger{
		payments:      NewMetric(metricsPaymentsProcessed, Subsystem).(*prometheus.CounterVec),
		refunds:       NewMetric(metricsRefundsProcessed, Subsystem).(*prometheus.CounterVec),
		collaborators: NewMetric(metricsCollaboratorFailures, Subsystem).(*prometheus.CounterVec),
		process:       NewMetric(MetricsBusinessProcess, Subsystem).(*prometheus.HistogramVec),
	}
	for _, c := range []prometheus.Collector{l.payments, l.refunds, l.collaborators, l.process} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (l *Ledger) PaymentOutcome(outcome string) {
	if l == nil {
		return
	}
	l.payments.WithLabelValues(outcome).Inc()
}

func (l *Ledger) RefundOutcome(outcome string) {
	if l == nil {
		return
	}
	l.refunds.WithLabelValues(outcome).Inc()
}

func (l *Ledger) CollaboratorFailure(collaborator string) {
	if l == nil {
		return
	}
	l.collaborators.WithLabelValues(collaborator).Inc()
}

// ObserveProcess records the latency of a business step started at start.
func (l *Ledger) ObserveProcess(typ, subtype string, start time.Time) {
	if l == nil {
		return
	}
	l.process.WithLabelValues(typ, subtype).Observe(MillisecondsSince(start))
}

func MillisecondsSince(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}

func newDefaultLedger() (*Ledger, error) {
	return NewLedger(prometheus.DefaultRegisterer)
}

var Module = fx.Options(
	fx.Provide(newDefaultLedger),
)
