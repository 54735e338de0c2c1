package tool

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewTransactionID(t *testing.T) {
	now := time.UnixMilli(1760000000000)
	pattern := regexp.MustCompile(`^TXN-1760000000000-[0-9a-f]{12}$`)

	seen := map[string]struct{}{}
	for i := 0; i < 100; i++ {
		id := NewTransactionID(PaymentTransactionPrefix, now)
		require.Regexp(t, pattern, id)
		seen[id] = struct{}{}
	}
	require.Len(t, seen, 100)

	require.Regexp(t, `^REFUND-`, NewTransactionID(RefundTransactionPrefix, now))
}
