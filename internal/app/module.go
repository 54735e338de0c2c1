package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/fatflowers/hms-payment/internal/app/api/server"
	"github.com/fatflowers/hms-payment/internal/app/service/calllog"
	"github.com/fatflowers/hms-payment/internal/app/service/ledger"
	"github.com/fatflowers/hms-payment/internal/app/service/notifier"
	"github.com/fatflowers/hms-payment/internal/app/service/payment"
	"github.com/fatflowers/hms-payment/internal/platform/collaborator"
	"github.com/fatflowers/hms-payment/internal/platform/db"
	"github.com/fatflowers/hms-payment/internal/platform/eventbus"
	"github.com/fatflowers/hms-payment/pkg/config"
	"github.com/fatflowers/hms-payment/pkg/logger"
	"github.com/fatflowers/hms-payment/pkg/metrics"
	"github.com/fatflowers/hms-payment/pkg/tracer"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 20 * time.Second
)

// Stop hooks run in reverse order: the HTTP server stops first, then post-commit
// hooks drain, then the call log, and the database closes last.
var Module = fx.Options(
	logger.Module,
	config.Module,
	tracer.Module,
	metrics.Module,
	db.Module,
	ledger.Module,
	calllog.Module,
	collaborator.Module,
	eventbus.Module,
	notifier.Module,
	payment.Module,
	server.Module,
)
