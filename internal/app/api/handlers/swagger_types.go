package handlers

// RespPayment documents the envelope of a single ledger record.
type RespPayment struct {
	Success       bool         `json:"success" example:"true"`
	Data          *PaymentView `json:"data"`
	Duplicate     bool         `json:"duplicate,omitempty"`
	CorrelationID string       `json:"correlationId" example:"6f1c2a4e-8d0b-4a57-9d1e-2b3c4d5e6f70"`
}

type SwaggerPagination struct {
	Page       int   `json:"page" example:"1"`
	Limit      int   `json:"limit" example:"10"`
	TotalCount int64 `json:"totalCount" example:"23"`
	TotalPages int64 `json:"totalPages" example:"3"`
}

// RespPaymentList documents the envelope of a ledger page.
type RespPaymentList struct {
	Success       bool              `json:"success" example:"true"`
	Data          []*PaymentView    `json:"data"`
	Pagination    SwaggerPagination `json:"pagination"`
	CorrelationID string            `json:"correlationId"`
}
