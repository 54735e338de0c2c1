package metrics

/* adapted from https://github.com/zsais/go-gin-prometheus
edits:
- logger is the zap sugared logger interface
- registry is injectable
- no push gateway, no basic auth
*/

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var reqCnt = &Metric{
	ID:          "reqCnt",
	Name:        "req_total",
	Description: "How many HTTP requests processed, partitioned by status code and HTTP method.",
	Type:        "counter_vec",
	Args:        []string{"code", "method", "url", "ref"},
}

var reqDur = &Metric{
	ID:          "reqDur",
	Name:        "req_dur_ms",
	Description: "The HTTP request latencies in milliseconds.",
	Type:        "histogram_vec",
	Args:        []string{"code", "method", "url", "ref"},
}

var resSz = &Metric{
	ID:          "resSz",
	Name:        "resp_sz_bytes",
	Description: "The HTTP response sizes in bytes.",
	Type:        "summary_vec",
	Args:        []string{"code", "method", "url", "ref"},
}

var reqSz = &Metric{
	ID:          "reqSz",
	Name:        "req_sz_bytes",
	Description: "The HTTP request sizes in bytes.",
	Type:        "summary_vec",
	Args:        []string{"code", "method", "url", "ref"},
}

var defaultMetricPath = "/metrics"

type Logger interface {
	Errorw(msg string, keysAndValues ...interface{})
}

// RequestCounterURLLabelMappingFn controls the cardinality of the "url" label,
// e.g. map "/v1/payments/12" to "/v1/payments/:id".
type RequestCounterURLLabelMappingFn func(c *gin.Context) string

// Prometheus contains the HTTP metrics gathered by the instance and its path
type Prometheus struct {
	reqCnt       *prometheus.CounterVec
	reqDur       *prometheus.HistogramVec
	reqSz, resSz *prometheus.SummaryVec

	registry prometheus.Gatherer
	router   *gin.Engine
	server   *http.Server

	MetricsPath             string
	ReqCntURLLabelMappingFn RequestCounterURLLabelMappingFn

	logger Logger
}

type NewPrometheusOptions struct {
	Subsystem               string
	MetricsPath             string
	ReqCntURLLabelMappingFn func(c *gin.Context) string
	Logger                  Logger
	// Registerer defaults to prometheus.DefaultRegisterer, Gatherer to prometheus.DefaultGatherer.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewPrometheus generates the standard HTTP metrics with a certain subsystem name
func NewPrometheus(options NewPrometheusOptions) *Prometheus {
	p := &Prometheus{
		MetricsPath:             options.MetricsPath,
		ReqCntURLLabelMappingFn: options.ReqCntURLLabelMappingFn,
		registry:                options.Gatherer,
		logger:                  options.Logger,
	}
	if p.MetricsPath == "" {
		p.MetricsPath = defaultMetricPath
	}
	if p.ReqCntURLLabelMappingFn == nil {
		p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
			if fp := c.FullPath(); fp != "" {
				return fp
			}
			return c.Request.URL.Path
		}
	}
	if p.registry == nil {
		p.registry = prometheus.DefaultGatherer
	}
	reg := options.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	p.reqCnt = p.register(reg, reqCnt, options.Subsystem).(*prometheus.CounterVec)
	p.reqDur = p.register(reg, reqDur, options.Subsystem).(*prometheus.HistogramVec)
	p.reqSz = p.register(reg, reqSz, options.Subsystem).(*prometheus.SummaryVec)
	p.resSz = p.register(reg, resSz, options.Subsystem).(*prometheus.SummaryVec)
	return p
}

func (p *Prometheus) register(reg prometheus.Registerer, def *Metric, subsystem string) prometheus.Collector {
	metric := NewMetric(def, subsystem)
	if err := reg.Register(metric); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector
		}
		if p.logger != nil {
			p.logger.Errorw("metric_register_failed", "metric", def.Name, "error", err)
		}
	}
	return metric
}

// Handler serves the gathered metrics.
func (p *Prometheus) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// Use adds the middleware to a gin engine. With an empty listenAddress the metrics
// path is served by e itself; otherwise a dedicated router is returned for the caller
// to start and stop.
func (p *Prometheus) Use(e *gin.Engine, listenAddress string) *http.Server {
	e.Use(p.HandlerFunc())
	if listenAddress == "" {
		e.GET(p.MetricsPath, p.Handler())
		return nil
	}
	p.router = gin.New()
	p.router.Use(gin.Recovery())
	p.router.GET(p.MetricsPath, p.Handler())
	p.server = &http.Server{Addr: listenAddress, Handler: p.router, ReadHeaderTimeout: 5 * time.Second}
	return p.server
}

// HandlerFunc defines handler function for middleware
func (p *Prometheus) HandlerFunc() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == p.MetricsPath {
			c.Next()
			return
		}

		start := time.Now()
		reqSize := computeApproximateRequestSize(c.Request)

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		elapsed := MillisecondsSince(start)
		respSize := float64(c.Writer.Size())
		url := p.ReqCntURLLabelMappingFn(c)
		ref := c.Request.Header.Get(RefererKey)

		p.reqDur.WithLabelValues(status, c.Request.Method, url, ref).Observe(elapsed)
		p.reqCnt.WithLabelValues(status, c.Request.Method, url, ref).Inc()
		p.reqSz.WithLabelValues(status, c.Request.Method, url, ref).Observe(float64(reqSize))
		p.resSz.WithLabelValues(status, c.Request.Method, url, ref).Observe(respSize)
	}
}

func computeApproximateRequestSize(r *http.Request) int {
	s := 0
	if r.URL != nil {
		s = len(r.URL.Path)
	}
	s += len(r.Method)
	s += len(r.Proto)
	for name, values := range r.Header {
		s += len(name)
		for _, value := range values {
			s += len(value)
		}
	}
	s += len(r.Host)
	if r.ContentLength != -1 {
		s += int(r.ContentLength)
	}
	return s
}
