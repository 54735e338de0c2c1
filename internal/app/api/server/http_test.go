package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	mw "github.com/fatflowers/hms-payment/internal/app/api/middleware"
	"github.com/fatflowers/hms-payment/internal/app/service/ledger"
	"github.com/fatflowers/hms-payment/internal/app/service/payment"
	"github.com/fatflowers/hms-payment/internal/models"
	"github.com/fatflowers/hms-payment/internal/platform/db/dbtest"
	cfgpkg "github.com/fatflowers/hms-payment/pkg/config"
)

type noopManager struct{}

func (noopManager) ProcessPayment(context.Context, *payment.PaymentRequest) (*payment.PaymentResult, error) {
	return nil, payment.ErrPersistence
}

func (noopManager) ProcessRefund(context.Context, *payment.RefundRequest) (*payment.RefundResult, error) {
	return nil, payment.ErrPersistence
}

func (noopManager) GetPayment(context.Context, int64) (*models.Payment, error) {
	return nil, payment.ErrPaymentNotFound
}

func (noopManager) ListPayments(context.Context, *payment.ListRequest) (*payment.ListResult, error) {
	return &payment.ListResult{Page: 1, Limit: 10}, nil
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out struct {
		Error map[string]any `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out.Error
}

func TestEngine_RouteNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := newEngine(zap.NewNop().Sugar())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v2/nowhere", nil)
	req.Header.Set(mw.HeaderCorrelationID, "cid-404")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	e := decodeError(t, w)
	assert.Equal(t, "NOT_FOUND", e["code"])
	assert.Equal(t, "Route not found", e["message"])
	assert.Equal(t, "/v2/nowhere", e["path"])
	assert.Equal(t, "cid-404", e["correlationId"])
	assert.NotEmpty(t, e["timestamp"])
}

func TestEngine_RecoversPanics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := newEngine(zap.NewNop().Sugar())
	r.GET("/boom", func(*gin.Context) { panic("kaboom") })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(mw.HeaderCorrelationID, "cid-panic")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	e := decodeError(t, w)
	assert.Equal(t, "INTERNAL_ERROR", e["code"])
	assert.Equal(t, "cid-panic", e["correlationId"])
	assert.NotContains(t, w.Body.String(), "kaboom")
	assert.Equal(t, "cid-panic", w.Header().Get(mw.HeaderCorrelationID))
}

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := zap.NewNop().Sugar()
	lc := fxtest.NewLifecycle(t)
	r := newEngine(log)
	store := ledger.NewGormStore(dbtest.NewSQLite(t), log)

	registerRoutes(lc, r, log, noopManager{}, store, &cfgpkg.Config{})
	lc.RequireStart()
	defer lc.RequireStop()

	cases := map[string]int{
		"/live":                  http.StatusOK,
		"/ready":                 http.StatusOK,
		"/health":                http.StatusOK,
		"/metrics":               http.StatusOK,
		"/v1/payments":           http.StatusOK,
		"/v1/payments/7":         http.StatusNotFound,
		"/v1/payments/not-an-id": http.StatusBadRequest,
		"/swagger/doc.json":      http.StatusOK,
		"/v1/payments/7/unknown": http.StatusNotFound,
	}
	for path, want := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, w.Code, path)
		assert.NotEmpty(t, w.Header().Get(mw.HeaderCorrelationID), path)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), "payments_req_total")
}
