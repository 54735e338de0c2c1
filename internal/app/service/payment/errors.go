package payment

import (
	"fmt"

	"github.com/fatflowers/hms-payment/pkg/response"
	"github.com/fatflowers/hms-payment/pkg/types"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindAlreadyRefunded
	KindNotRefundable
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindAlreadyRefunded:
		return "already_refunded"
	case KindNotRefundable:
		return "not_refundable"
	case KindPersistence:
		return "persistence"
	}
	return "unknown"
}

// Error is the failure variant of every ledger operation. Message is safe to show
// to clients; Err carries the internal cause and is only logged.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound) works on wrapped values.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrValidation      = &Error{Kind: KindValidation, Code: response.CodeValidation, Message: "validation failed"}
	ErrPaymentNotFound = &Error{Kind: KindNotFound, Code: response.CodePaymentNotFound, Message: "Payment not found"}
	ErrAlreadyRefunded = &Error{Kind: KindAlreadyRefunded, Code: response.CodeAlreadyRefunded, Message: "Payment already refunded"}
	ErrNotRefundable   = &Error{Kind: KindNotRefundable, Code: response.CodeNotRefundable, Message: "Payment cannot be refunded"}
	ErrPersistence     = &Error{Kind: KindPersistence, Code: response.CodeInternal, Message: "An unexpected error occurred"}
)

func validationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Code: response.CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func notFoundError(paymentID int64) *Error {
	return &Error{Kind: KindNotFound, Code: response.CodePaymentNotFound, Message: ErrPaymentNotFound.Message, Err: fmt.Errorf("payment_id %d", paymentID)}
}

func alreadyRefundedError(paymentID int64, cause error) *Error {
	if cause == nil {
		cause = fmt.Errorf("payment_id %d", paymentID)
	}
	return &Error{Kind: KindAlreadyRefunded, Code: response.CodeAlreadyRefunded, Message: ErrAlreadyRefunded.Message, Err: cause}
}

func notRefundableError(paymentID int64, status types.PaymentStatus) *Error {
	return &Error{Kind: KindNotRefundable, Code: response.CodeNotRefundable, Message: ErrNotRefundable.Message, Err: fmt.Errorf("payment_id %d has status %s", paymentID, status)}
}

func persistenceError(op string, err error) *Error {
	return &Error{Kind: KindPersistence, Code: response.CodeInternal, Message: ErrPersistence.Message, Err: fmt.Errorf("%s: %w", op, err)}
}
