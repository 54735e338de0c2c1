package response

import "time"

// Error codes shared by every HTTP API of the service.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodePaymentNotFound  = "PAYMENT_NOT_FOUND"
	CodeAlreadyRefunded  = "ALREADY_REFUNDED"
	CodeNotRefundable    = "PAYMENT_NOT_REFUNDABLE"
	CodeInternal         = "INTERNAL_ERROR"
	CodeRouteNotFound    = "NOT_FOUND"
	messageInternalError = "An unexpected error occurred"
)

// Pagination accompanies list responses.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int64 `json:"totalPages"`
}

func NewPagination(page, limit int, total int64) *Pagination {
	p := &Pagination{Page: page, Limit: limit, TotalCount: total}
	if limit > 0 {
		p.TotalPages = (total + int64(limit) - 1) / int64(limit)
	}
	return p
}

// APIResponse is the success envelope used by HTTP APIs.
// Use OKT / ListT helpers to construct instances.
type APIResponse[T any] struct {
	Success       bool        `json:"success"`
	Data          T           `json:"data"`
	Duplicate     bool        `json:"duplicate,omitempty"`
	Pagination    *Pagination `json:"pagination,omitempty"`
	CorrelationID string      `json:"correlationId"`
}

// OKT returns a successful response with data.
func OKT[T any](data T, correlationID string) *APIResponse[T] {
	return &APIResponse[T]{Success: true, Data: data, CorrelationID: correlationID}
}

// DuplicateT marks an idempotent replay of an earlier request.
func DuplicateT[T any](data T, correlationID string) *APIResponse[T] {
	r := OKT(data, correlationID)
	r.Duplicate = true
	return r
}

// ListT returns one page of records.
func ListT[T any](data []T, p *Pagination, correlationID string) *APIResponse[[]T] {
	r := OKT(data, correlationID)
	r.Pagination = p
	return r
}

type ErrorBody struct {
	Code          string `json:"code"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
	Path          string `json:"path,omitempty"`
	Timestamp     string `json:"timestamp,omitempty"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorT returns an error response stamped with the current time.
func ErrorT(code, message, correlationID string) *ErrorResponse {
	return &ErrorResponse{Error: ErrorBody{
		Code:          code,
		Message:       message,
		CorrelationID: correlationID,
		Timestamp:     time.Now().UTC().Format(time.RFC3339Nano),
	}}
}

// InternalError hides the cause of a server-side failure.
func InternalError(correlationID string) *ErrorResponse {
	return ErrorT(CodeInternal, messageInternalError, correlationID)
}

func RouteNotFound(path, correlationID string) *ErrorResponse {
	r := ErrorT(CodeRouteNotFound, "Route not found", correlationID)
	r.Error.Path = path
	return r
}
