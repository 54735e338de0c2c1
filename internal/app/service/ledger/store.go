package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/lo"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fatflowers/hms-payment/internal/models"
	"github.com/fatflowers/hms-payment/pkg/logctx"
	"github.com/fatflowers/hms-payment/pkg/types"
)

var (
	ErrNotFound = errors.New("ledger: record not found")
	// ErrDuplicateKey reports a unique constraint violation (idempotency key or transaction id).
	ErrDuplicateKey = errors.New("ledger: duplicate key")
	// ErrStatusConflict reports a status transition whose precondition no longer holds.
	ErrStatusConflict = errors.New("ledger: status conflict")
)

const pgUniqueViolation = "23505"

// ListFilter narrows a ledger listing. Nil fields match everything.
type ListFilter struct {
	PatientID *int64
	Status    *types.PaymentStatus
}

func (f ListFilter) filters() types.FiltersAnd {
	var out types.FiltersAnd
	if f.PatientID != nil {
		out = append(out, types.Eq("patient_id", *f.PatientID))
	}
	if f.Status != nil {
		out = append(out, types.Eq("status", string(*f.Status)))
	}
	return out
}

// Store is the durable ledger of payment records. Implementations returned by
// Transaction run every call inside the same database transaction.
type Store interface {
	// Transaction runs fn in one database transaction; an error or panic from fn rolls it back.
	Transaction(ctx context.Context, fn func(tx Store) error) error
	FindByIdempotencyKey(ctx context.Context, key string) (*models.Payment, error)
	// FindByID with forUpdate locks the row until the enclosing transaction ends.
	FindByID(ctx context.Context, id int64, forUpdate bool) (*models.Payment, error)
	Insert(ctx context.Context, p *models.Payment) error
	// MarkRefunded moves a COMPLETED record to REFUNDED, or fails with ErrStatusConflict.
	MarkRefunded(ctx context.Context, id int64) error
	List(ctx context.Context, filter ListFilter, offset, limit int) ([]*models.Payment, int64, error)
	Ping(ctx context.Context) error
}

type GormStore struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewGormStore(db *gorm.DB, log *zap.SugaredLogger) *GormStore {
	return &GormStore{db: db, log: log}
}

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx, log: s.log})
	})
}

func (s *GormStore) FindByIdempotencyKey(ctx context.Context, key string) (*models.Payment, error) {
	var p models.Payment
	err := s.db.WithContext(ctx).Where("idempotency_key = ?", key).Take(&p).Error
	if err != nil {
		return nil, translate(err, "find by idempotency key")
	}
	return &p, nil
}

func (s *GormStore) FindByID(ctx context.Context, id int64, forUpdate bool) (*models.Payment, error) {
	q := s.db.WithContext(ctx)
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}
	var p models.Payment
	if err := q.Where("payment_id = ?", id).Take(&p).Error; err != nil {
		return nil, translate(err, "find by id")
	}
	return &p, nil
}

func (s *GormStore) Insert(ctx context.Context, p *models.Payment) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return translate(err, "insert")
	}
	logctx.FromCtx(ctx, s.log).Debugw("ledger_record_inserted", "payment_id", p.PaymentID, "status", p.Status)
	return nil
}

func (s *GormStore) MarkRefunded(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("payment_id = ? AND status = ?", id, types.PaymentStatusCompleted).
		UpdateColumn("status", types.PaymentStatusRefunded)
	if res.Error != nil {
		return translate(res.Error, "mark refunded")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("mark refunded %d: %w", id, ErrStatusConflict)
	}
	return nil
}

func (s *GormStore) List(ctx context.Context, filter ListFilter, offset, limit int) ([]*models.Payment, int64, error) {
	base := s.db.WithContext(ctx).Model(&models.Payment{})
	if fs := filter.filters(); len(fs) > 0 {
		base = base.Where(clause.Where{Exprs: []clause.Expression{fs}})
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err, "count")
	}

	rows := make([]*models.Payment, 0, lo.Clamp(limit, 0, 100))
	if total == 0 || offset < 0 || int64(offset) >= total {
		return rows, total, nil
	}
	err := base.Session(&gorm.Session{}).
		Order(clause.OrderBy{Columns: []clause.OrderByColumn{
			{Column: clause.Column{Name: "created_at"}, Desc: true},
			{Column: clause.Column{Name: "payment_id"}, Desc: true},
		}}).
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, translate(err, "list")
	}
	return rows, total, nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// translate maps driver errors onto the ledger sentinels, keeping the cause.
func translate(err error, op string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w: %w", op, ErrDuplicateKey, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func newStore(db *gorm.DB, log *zap.SugaredLogger) Store {
	return NewGormStore(db, log)
}

var Module = fx.Options(
	fx.Provide(newStore),
)
