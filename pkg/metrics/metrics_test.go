package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	l, err := NewLedger(reg)
	require.NoError(t, err)

	l.PaymentOutcome("created")
	l.PaymentOutcome("created")
	l.PaymentOutcome("duplicate")
	l.RefundOutcome("already_refunded")
	l.CollaboratorFailure("billing")
	l.ObserveProcess("payment", "process", time.Now())

	assert.Equal(t, 2.0, counterValue(t, l.payments, "created"))
	assert.Equal(t, 1.0, counterValue(t, l.payments, "duplicate"))
	assert.Equal(t, 1.0, counterValue(t, l.refunds, "already_refunded"))
	assert.Equal(t, 1.0, counterValue(t, l.collaborators, "billing"))

	_, err = NewLedger(reg)
	require.Error(t, err, "second registration on the same registry must fail")
}

func TestLedger_NilIsNoop(t *testing.T) {
	var l *Ledger
	assert.NotPanics(t, func() {
		l.PaymentOutcome("created")
		l.RefundOutcome("refunded")
		l.CollaboratorFailure("notification")
		l.ObserveProcess("refund", "process", time.Now())
	})
}

func TestPrometheus_ServesOnEngine(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	p := NewPrometheus(NewPrometheusOptions{Subsystem: "t", Registerer: reg, Gatherer: reg})

	r := gin.New()
	require.Nil(t, p.Use(r, ""))
	r.GET("/v1/payments/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/payments/42", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `t_req_total{code="200",method="GET",ref="",url="/v1/payments/:id"} 1`), body)
}

func TestPrometheus_SeparateListener(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(NewPrometheusOptions{Subsystem: "sep", Registerer: reg, Gatherer: reg})
	srv := p.Use(gin.New(), "127.0.0.1:0")
	require.NotNil(t, srv)
	assert.Equal(t, "127.0.0.1:0", srv.Addr)
}

func counterValue(t *testing.T, vec *prometheus.CounterVec, label string) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, vec.WithLabelValues(label).Write(&m))
	return m.GetCounter().GetValue()
}
