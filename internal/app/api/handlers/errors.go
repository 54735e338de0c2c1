package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	mw "github.com/fatflowers/hms-payment/internal/app/api/middleware"
	"github.com/fatflowers/hms-payment/internal/app/service/payment"
	"github.com/fatflowers/hms-payment/pkg/logctx"
	"github.com/fatflowers/hms-payment/pkg/response"
)

func statusFor(kind payment.Kind) int {
	switch kind {
	case payment.KindValidation, payment.KindAlreadyRefunded, payment.KindNotRefundable:
		return http.StatusBadRequest
	case payment.KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// writeError answers with the stable code of err. Causes of server-side failures stay in logs.
func writeError(c *gin.Context, base *zap.SugaredLogger, err error) {
	cid := mw.CorrelationID(c)
	var perr *payment.Error
	if !errors.As(err, &perr) || perr.Kind == payment.KindPersistence {
		logctx.FromGin(c, base).Errorw("request_failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, response.InternalError(cid))
		return
	}
	c.JSON(statusFor(perr.Kind), response.ErrorT(perr.Code, perr.Message, cid))
}

func writeValidationError(c *gin.Context, base *zap.SugaredLogger, err error) {
	logctx.FromGin(c, base).Infow("request_binding_failed", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusBadRequest, response.ErrorT(response.CodeValidation, bindingMessage(err), mw.CorrelationID(c)))
}
