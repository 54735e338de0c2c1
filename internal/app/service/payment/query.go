package payment

import (
	"context"
	"errors"
	"math"

	"github.com/fatflowers/hms-payment/internal/app/service/ledger"
	"github.com/fatflowers/hms-payment/internal/models"
	"github.com/fatflowers/hms-payment/pkg/logctx"
)

func (s *Service) GetPayment(ctx context.Context, paymentID int64) (*models.Payment, error) {
	if paymentID <= 0 {
		return nil, validationError("payment id must be a positive integer")
	}
	p, err := s.store.FindByID(ctx, paymentID, false)
	if errors.Is(err, ledger.ErrNotFound) {
		return nil, notFoundError(paymentID)
	}
	if err != nil {
		logctx.FromCtx(ctx, s.log).Errorw("payment_lookup_failed", "payment_id", paymentID, "error", err)
		return nil, persistenceError("get payment", err)
	}
	return p, nil
}

// ListPayments returns one page of records, newest first.
func (s *Service) ListPayments(ctx context.Context, req *ListRequest) (*ListResult, error) {
	if req == nil {
		req = &ListRequest{}
	}
	if err := req.normalize(); err != nil {
		return nil, err
	}

	// a page whose offset does not fit an int lies past any ledger
	offset := math.MaxInt
	if req.Page-1 <= math.MaxInt/req.Limit {
		offset = (req.Page - 1) * req.Limit
	}
	rows, total, err := s.store.List(ctx, ledger.ListFilter{PatientID: req.PatientID, Status: req.Status}, offset, req.Limit)
	if err != nil {
		logctx.FromCtx(ctx, s.log).Errorw("payment_list_failed", "error", err)
		return nil, persistenceError("list payments", err)
	}
	return &ListResult{
		Items:      rows,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalCount: total,
		TotalPages: (total + int64(req.Limit) - 1) / int64(req.Limit),
	}, nil
}
