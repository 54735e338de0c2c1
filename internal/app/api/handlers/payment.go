package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"

	mw "github.com/fatflowers/hms-payment/internal/app/api/middleware"
	"github.com/fatflowers/hms-payment/internal/app/service/payment"
	"github.com/fatflowers/hms-payment/pkg/response"
	"github.com/fatflowers/hms-payment/pkg/types"
)

type CreatePaymentRequest struct {
	BillID         int64       `json:"bill_id" binding:"required,gt=0" example:"10"`
	PatientID      int64       `json:"patient_id" binding:"required,gt=0" example:"5"`
	Amount         json.Number `json:"amount" binding:"required,money" swaggertype:"number" example:"150.00"`
	PaymentMethod  string      `json:"payment_method" binding:"required,oneof=CARD CASH UPI" example:"CARD"`
	IdempotencyKey string      `json:"idempotency_key" binding:"required,max=255" example:"abc"`
}

type RefundPaymentRequest struct {
	PaymentID    int64       `json:"payment_id" binding:"required,gt=0" example:"42"`
	RefundAmount json.Number `json:"refund_amount" binding:"required,money" swaggertype:"number" example:"150.00"`
	Reason       string      `json:"reason" binding:"max=500" example:"duplicate charge"`
}

type ListPaymentsQuery struct {
	PatientID *int64  `form:"patient_id" binding:"omitempty,gt=0"`
	Status    *string `form:"status" binding:"omitempty,oneof=COMPLETED REFUNDED REFUND PENDING"`
	Page      int     `form:"page,default=1" binding:"gte=1"`
	Limit     int     `form:"limit,default=10" binding:"gte=1,lte=100"`
}

// @Summary      Process payment
// @Description  Records a payment against a bill exactly once per idempotency key. A replay returns the original record with duplicate=true.
// @Tags         Payments
// @Accept       json
// @Produce      json
// @Param        X-Correlation-Id header string false "Correlation id"
// @Param        request body handlers.CreatePaymentRequest true "Payment"
// @Success      201  {object}  handlers.RespPayment
// @Success      200  {object}  handlers.RespPayment "duplicate request"
// @Failure      400  {object}  response.ErrorResponse
// @Failure      500  {object}  response.ErrorResponse
// @Router       /v1/payments [post]
func ApiProcessPayment(mgr payment.Manager, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreatePaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeValidationError(c, log, err)
			return
		}

		res, err := mgr.ProcessPayment(c.Request.Context(), &payment.PaymentRequest{
			BillID:         req.BillID,
			PatientID:      req.PatientID,
			Amount:         parseMoney(req.Amount),
			PaymentMethod:  types.PaymentMethod(req.PaymentMethod),
			IdempotencyKey: req.IdempotencyKey,
		})
		if err != nil {
			writeError(c, log, err)
			return
		}

		cid := mw.CorrelationID(c)
		if res.IsDuplicate() {
			c.JSON(http.StatusOK, response.DuplicateT(NewPaymentView(res.Payment), cid))
			return
		}
		c.JSON(http.StatusCreated, response.OKT(NewPaymentView(res.Payment), cid))
	}
}

// @Summary      Refund payment
// @Description  Reverses a COMPLETED payment with a negative REFUND entry and marks it REFUNDED. Only one refund per payment is accepted.
// @Tags         Payments
// @Accept       json
// @Produce      json
// @Param        request body handlers.RefundPaymentRequest true "Refund"
// @Success      200  {object}  handlers.RespPayment
// @Failure      400  {object}  response.ErrorResponse
// @Failure      404  {object}  response.ErrorResponse
// @Failure      500  {object}  response.ErrorResponse
// @Router       /v1/payments/refund [post]
func ApiProcessRefund(mgr payment.Manager, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RefundPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeValidationError(c, log, err)
			return
		}

		res, err := mgr.ProcessRefund(c.Request.Context(), &payment.RefundRequest{
			PaymentID:    req.PaymentID,
			RefundAmount: parseMoney(req.RefundAmount),
			Reason:       req.Reason,
		})
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(NewPaymentView(res.Refund), mw.CorrelationID(c)))
	}
}

// @Summary      Get payment
// @Tags         Payments
// @Produce      json
// @Param        id   path      int  true  "Payment id"
// @Success      200  {object}  handlers.RespPayment
// @Failure      400  {object}  response.ErrorResponse
// @Failure      404  {object}  response.ErrorResponse
// @Router       /v1/payments/{id} [get]
func ApiGetPayment(mgr payment.Manager, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, response.ErrorT(response.CodeValidation, `"id" must be a positive integer`, mw.CorrelationID(c)))
			return
		}
		p, err := mgr.GetPayment(c.Request.Context(), id)
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(NewPaymentView(p), mw.CorrelationID(c)))
	}
}

// @Summary      List payments
// @Description  Pages through the ledger newest first, optionally filtered by patient and status.
// @Tags         Payments
// @Produce      json
// @Param        patient_id  query  int     false  "Patient id"
// @Param        status      query  string  false  "Status"  Enums(COMPLETED, REFUNDED, REFUND, PENDING)
// @Param        page        query  int     false  "Page"    default(1)
// @Param        limit       query  int     false  "Limit"   default(10)  maximum(100)
// @Success      200  {object}  handlers.RespPaymentList
// @Failure      400  {object}  response.ErrorResponse
// @Router       /v1/payments [get]
func ApiListPayments(mgr payment.Manager, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q ListPaymentsQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			writeValidationError(c, log, err)
			return
		}

		req := &payment.ListRequest{PatientID: q.PatientID, Page: q.Page, Limit: q.Limit}
		if q.Status != nil {
			req.Status = lo.ToPtr(types.PaymentStatus(*q.Status))
		}
		res, err := mgr.ListPayments(c.Request.Context(), req)
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.ListT(
			newPaymentViews(res.Items),
			response.NewPagination(res.Page, res.Limit, res.TotalCount),
			mw.CorrelationID(c),
		))
	}
}

func RegisterPaymentRoutes(r gin.IRouter, mgr payment.Manager, log *zap.SugaredLogger) {
	RegisterValidators()
	r.POST("", ApiProcessPayment(mgr, log))
	r.GET("", ApiListPayments(mgr, log))
	r.POST("/refund", ApiProcessRefund(mgr, log))
	r.GET("/:id", ApiGetPayment(mgr, log))
}
