package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fatflowers/hms-payment/internal/app/service/ledger"
	"github.com/fatflowers/hms-payment/internal/models"
	"github.com/fatflowers/hms-payment/internal/platform/db"
	"github.com/fatflowers/hms-payment/pkg/types"
)

func TestLedgerStore(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Ledger Store Suite")
}

func newPayment(key string, patientID int64, amount string, createdAt time.Time) *models.Payment {
	return &models.Payment{
		BillID:         10,
		PatientID:      patientID,
		Amount:         decimal.RequireFromString(amount),
		PaymentMethod:  types.PaymentMethodCard,
		Status:         types.PaymentStatusCompleted,
		TransactionID:  "TXN-" + key,
		IdempotencyKey: lo.ToPtr(key),
		CreatedAt:      createdAt,
	}
}

var _ = Describe("GormStore", func() {
	var (
		gdb   *gorm.DB
		store ledger.Store
		ctx   context.Context
		base  time.Time
	)

	BeforeEach(func() {
		var err error
		gdb, err = gorm.Open(sqlite.Open(":memory:"), db.GormConfig(zap.NewNop().Sugar()))
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := gdb.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)
		DeferCleanup(sqlDB.Close)

		Expect(gdb.AutoMigrate(db.Models()...)).To(Succeed())
		store = ledger.NewGormStore(gdb, zap.NewNop().Sugar())
		ctx = context.Background()
		base = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	})

	Describe("Insert and find", func() {
		It("assigns increasing payment ids", func() {
			p1 := newPayment("k1", 5, "150.00", base)
			p2 := newPayment("k2", 5, "20.50", base)
			Expect(store.Insert(ctx, p1)).To(Succeed())
			Expect(store.Insert(ctx, p2)).To(Succeed())
			Expect(p1.PaymentID).To(BeNumerically(">", 0))
			Expect(p2.PaymentID).To(BeNumerically(">", p1.PaymentID))
		})

		It("finds a record by idempotency key and by id", func() {
			p := newPayment("abc", 5, "150.00", base)
			Expect(store.Insert(ctx, p)).To(Succeed())

			byKey, err := store.FindByIdempotencyKey(ctx, "abc")
			Expect(err).NotTo(HaveOccurred())
			Expect(byKey.PaymentID).To(Equal(p.PaymentID))
			Expect(byKey.Amount.StringFixed(2)).To(Equal("150.00"))

			byID, err := store.FindByID(ctx, p.PaymentID, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(byID.TransactionID).To(Equal("TXN-abc"))
		})

		It("reports missing records as ErrNotFound", func() {
			_, err := store.FindByIdempotencyKey(ctx, "nope")
			Expect(errors.Is(err, ledger.ErrNotFound)).To(BeTrue())
			_, err = store.FindByID(ctx, 999, false)
			Expect(errors.Is(err, ledger.ErrNotFound)).To(BeTrue())
		})

		It("rejects a second record with the same idempotency key", func() {
			Expect(store.Insert(ctx, newPayment("dup", 5, "1.00", base))).To(Succeed())
			second := newPayment("dup", 5, "1.00", base)
			second.TransactionID = "TXN-other"
			err := store.Insert(ctx, second)
			Expect(errors.Is(err, ledger.ErrDuplicateKey)).To(BeTrue())

			var count int64
			Expect(gdb.Model(&models.Payment{}).Count(&count).Error).To(Succeed())
			Expect(count).To(Equal(int64(1)))
		})

		It("allows many records without an idempotency key", func() {
			for _, txn := range []string{"REFUND-1", "REFUND-2"} {
				Expect(store.Insert(ctx, &models.Payment{
					BillID: 1, PatientID: 1, Amount: decimal.RequireFromString("-5"),
					PaymentMethod: types.PaymentMethodCash, Status: types.PaymentStatusRefund, TransactionID: txn,
				})).To(Succeed())
			}
		})

		It("refuses records whose amount sign contradicts the status", func() {
			p := newPayment("neg", 5, "-1.00", base)
			err := store.Insert(ctx, p)
			Expect(errors.Is(err, models.ErrAmountSign)).To(BeTrue())
		})
	})

	Describe("MarkRefunded", func() {
		It("moves COMPLETED to REFUNDED exactly once", func() {
			p := newPayment("r1", 5, "10.00", base)
			Expect(store.Insert(ctx, p)).To(Succeed())

			Expect(store.MarkRefunded(ctx, p.PaymentID)).To(Succeed())
			got, err := store.FindByID(ctx, p.PaymentID, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Status).To(Equal(types.PaymentStatusRefunded))

			err = store.MarkRefunded(ctx, p.PaymentID)
			Expect(errors.Is(err, ledger.ErrStatusConflict)).To(BeTrue())
		})
	})

	Describe("Transaction", func() {
		It("rolls back every write when fn fails", func() {
			boom := errors.New("boom")
			err := store.Transaction(ctx, func(tx ledger.Store) error {
				Expect(tx.Insert(ctx, newPayment("t1", 5, "1.00", base))).To(Succeed())
				return boom
			})
			Expect(err).To(MatchError(boom))

			_, err = store.FindByIdempotencyKey(ctx, "t1")
			Expect(errors.Is(err, ledger.ErrNotFound)).To(BeTrue())
		})

		It("rolls back and releases the connection when fn panics", func() {
			Expect(func() {
				_ = store.Transaction(ctx, func(tx ledger.Store) error {
					Expect(tx.Insert(ctx, newPayment("t2", 5, "1.00", base))).To(Succeed())
					panic("fault")
				})
			}).To(Panic())

			// the single pooled connection must be usable again
			_, err := store.FindByIdempotencyKey(ctx, "t2")
			Expect(errors.Is(err, ledger.ErrNotFound)).To(BeTrue())
		})

		It("commits when fn succeeds", func() {
			Expect(store.Transaction(ctx, func(tx ledger.Store) error {
				return tx.Insert(ctx, newPayment("t3", 5, "1.00", base))
			})).To(Succeed())
			_, err := store.FindByIdempotencyKey(ctx, "t3")
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			for i, key := range []string{"a", "b", "c", "d", "e"} {
				patient := int64(5)
				if i%2 == 1 {
					patient = 6
				}
				Expect(store.Insert(ctx, newPayment(key, patient, "1.00", base.Add(time.Duration(i)*time.Minute)))).To(Succeed())
			}
		})

		It("orders newest first and counts before paging", func() {
			rows, total, err := store.List(ctx, ledger.ListFilter{}, 0, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(5)))
			Expect(rows).To(HaveLen(2))
			Expect(*rows[0].IdempotencyKey).To(Equal("e"))
			Expect(*rows[1].IdempotencyKey).To(Equal("d"))
		})

		It("filters by patient and status", func() {
			rows, total, err := store.List(ctx, ledger.ListFilter{PatientID: lo.ToPtr(int64(6))}, 0, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(2)))
			Expect(rows).To(HaveLen(2))

			rows, total, err = store.List(ctx, ledger.ListFilter{Status: lo.ToPtr(types.PaymentStatusRefunded)}, 0, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(BeZero())
			Expect(rows).To(BeEmpty())
		})

		It("returns an empty page past the end", func() {
			rows, total, err := store.List(ctx, ledger.ListFilter{}, 10, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(5)))
			Expect(rows).To(BeEmpty())
		})
	})

	It("pings the database", func() {
		Expect(store.Ping(ctx)).To(Succeed())
	})
})
