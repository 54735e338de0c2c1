package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fatflowers/hms-payment/pkg/logctx"
)

func newEngine(base *zap.SugaredLogger, seen *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CorrelationMiddleware(), RequestLoggerMiddleware(base), AccessLogMiddleware(base))
	r.GET("/ping", func(c *gin.Context) {
		*seen = logctx.CorrelationID(c.Request.Context())
		logctx.FromCtx(c.Request.Context(), base).Infow("inside_handler")
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestCorrelation_UsesClientHeader(t *testing.T) {
	var seen string
	r := newEngine(zap.NewNop().Sugar(), &seen)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderCorrelationID, "cid-abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "cid-abc", seen)
	assert.Equal(t, "cid-abc", w.Header().Get(HeaderCorrelationID))
}

func TestCorrelation_FallsBackToRequestIDThenUUID(t *testing.T) {
	var seen string
	r := newEngine(zap.NewNop().Sugar(), &seen)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "req-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-1", seen)

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderCorrelationID, strings.Repeat("x", maxCorrelationIDLen+1))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, w.Header().Get(HeaderCorrelationID))
}

func TestRequestLogger_EnrichesEveryLine(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	var seen string
	r := newEngine(zap.New(core).Sugar(), &seen)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderCorrelationID, "cid-log")
	r.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, 2, logs.Len())
	for _, e := range logs.All() {
		assert.Equal(t, "cid-log", e.ContextMap()["correlation_id"], e.Message)
	}
	access := logs.FilterMessage("http_access").All()
	require.Len(t, access, 1)
	assert.Equal(t, int64(http.StatusNoContent), access[0].ContextMap()["status"])
	assert.Equal(t, "/ping", access[0].ContextMap()["path"])
}
