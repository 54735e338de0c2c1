package calllog

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/datatypes"

	"github.com/fatflowers/hms-payment/internal/models"
	"github.com/fatflowers/hms-payment/internal/platform/db/dbtest"
)

func TestSave_PersistsAsynchronously(t *testing.T) {
	gdb := dbtest.NewSQLite(t)
	s := New(gdb, zaptest.NewLogger(t).Sugar())

	ctx, cancel := context.WithCancel(context.Background())
	s.Save(ctx, &models.CollaboratorCallLog{
		PaymentID:    7,
		Collaborator: "billing",
		Event:        "payment.completed",
		Request:      datatypes.JSON(`{"payment_id":7}`),
		Status:       models.CollaboratorCallStatusFailed,
		Error:        lo.ToPtr("connection refused"),
	})
	s.Save(ctx, nil)
	// a cancelled request context must not drop the audit row
	cancel()
	require.NoError(t, s.Wait(context.Background()))

	var rows []*models.CollaboratorCallLog
	require.NoError(t, gdb.Where("payment_id = ?", 7).Find(&rows).Error)
	require.Len(t, rows, 1)
	require.NotEmpty(t, rows[0].ID)
	require.Equal(t, "billing", rows[0].Collaborator)
	require.Equal(t, "connection refused", *rows[0].Error)
	require.JSONEq(t, `{"payment_id":7}`, string(rows[0].Request))
}
