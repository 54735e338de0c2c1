package calllog

import (
	"context"
	"sync"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fatflowers/hms-payment/internal/models"
	"github.com/fatflowers/hms-payment/pkg/logctx"
	"github.com/fatflowers/hms-payment/pkg/tool"
)

const saveTimeout = 5 * time.Second

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
	wg  sync.WaitGroup
}

func New(db *gorm.DB, log *zap.SugaredLogger) *Service { return &Service{db: db, log: log} }

// Save asynchronously persists a collaborator call log. Nil input is ignored.
func (s *Service) Save(ctx context.Context, entry *models.CollaboratorCallLog) {
	if entry == nil {
		return
	}
	if entry.ID == "" {
		entry.ID = tool.GenerateUUIDV7()
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
		defer cancel()
		if err := s.db.WithContext(saveCtx).Create(entry).Error; err != nil {
			logctx.FromCtx(ctx, s.log).Errorw("call_log_save_failed", "payment_id", entry.PaymentID, "collaborator", entry.Collaborator, "error", err)
		}
	}()
}

// Wait blocks until pending saves finish or ctx is done.
func (s *Service) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func registerDrain(lc fx.Lifecycle, s *Service) {
	lc.Append(fx.StopHook(s.Wait))
}

var Module = fx.Options(
	fx.Provide(New),
	fx.Invoke(registerDrain),
)
