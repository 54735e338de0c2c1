package models

import (
	"testing"

	"github.com/fatflowers/hms-payment/pkg/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestPayment_CheckAmountSign(t *testing.T) {
	cases := []struct {
		name   string
		status types.PaymentStatus
		amount string
		ok     bool
	}{
		{"completed positive", types.PaymentStatusCompleted, "150.00", true},
		{"completed zero", types.PaymentStatusCompleted, "0", false},
		{"completed negative", types.PaymentStatusCompleted, "-1", false},
		{"pending positive", types.PaymentStatusPending, "0.01", true},
		{"refund negative", types.PaymentStatusRefund, "-150.00", true},
		{"refund positive", types.PaymentStatusRefund, "150.00", false},
		{"refunded is never inserted", types.PaymentStatusRefunded, "150.00", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &Payment{Status: tc.status, Amount: decimal.RequireFromString(tc.amount)}
			err := p.CheckAmountSign()
			if tc.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrAmountSign)
		})
	}
}

func TestPayment_IsRefundable(t *testing.T) {
	require.True(t, (&Payment{Status: types.PaymentStatusCompleted}).IsRefundable())
	require.False(t, (&Payment{Status: types.PaymentStatusRefunded}).IsRefundable())
	require.False(t, (&Payment{Status: types.PaymentStatusRefund}).IsRefundable())
	var p *Payment
	require.False(t, p.IsRefundable())
}
