package tool

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	PaymentTransactionPrefix = "TXN"
	RefundTransactionPrefix  = "REFUND"
)

func GenerateUUIDV7() string {
	return uuid.Must(uuid.NewV7()).String()
}

// NewTransactionID returns "<prefix>-<unix millis>-<12 random hex chars>",
// e.g. TXN-1760000000000-3f9a0c1b2d4e.
func NewTransactionID(prefix string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s-%d-%s", prefix, now.UnixMilli(), suffix)
}
