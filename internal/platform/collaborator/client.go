package collaborator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	cfgpkg "github.com/fatflowers/hms-payment/pkg/config"
	"github.com/fatflowers/hms-payment/pkg/logctx"
)

const (
	HeaderCorrelationID = "X-Correlation-Id"

	NotificationTypePaymentReceived = "PAYMENT_RECEIVED"
)

// StatusError is returned for any non-2xx collaborator response.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

type BillPaidRequest struct {
	PaymentID int64 `json:"payment_id"`
}

type NotificationMetadata struct {
	PaymentID     int64       `json:"paymentId"`
	Amount        json.Number `json:"amount"`
	TransactionID string      `json:"transactionId"`
}

type NotificationRequest struct {
	Type      string               `json:"type"`
	PatientID int64                `json:"patient_id"`
	Message   string               `json:"message"`
	Metadata  NotificationMetadata `json:"metadata"`
}

// Client calls the Billing and Notification services. It applies no timeout of its
// own; callers bound every call through ctx.
type Client struct {
	http            *http.Client
	billingURL      string
	notificationURL string
}

func New(cfg *cfgpkg.Config) *Client {
	return NewClient(&http.Client{}, cfg.Collaborators.BillingURL, cfg.Collaborators.NotificationURL)
}

func NewClient(hc *http.Client, billingURL, notificationURL string) *Client {
	return &Client{
		http:            hc,
		billingURL:      strings.TrimRight(billingURL, "/"),
		notificationURL: strings.TrimRight(notificationURL, "/"),
	}
}

// NotifyBillingPaid marks billID as paid by paymentID.
func (c *Client) NotifyBillingPaid(ctx context.Context, billID, paymentID int64) error {
	url := c.billingURL + "/v1/bills/" + strconv.FormatInt(billID, 10) + "/pay"
	return c.send(ctx, http.MethodPut, url, BillPaidRequest{PaymentID: paymentID})
}

// NotifyPatientPaymentReceived asks the Notification service to inform the patient.
func (c *Client) NotifyPatientPaymentReceived(ctx context.Context, patientID int64, amount decimal.Decimal, paymentID int64, transactionID string) error {
	return c.send(ctx, http.MethodPost, c.notificationURL+"/v1/notifications", PaymentReceivedNotification(patientID, amount, paymentID, transactionID))
}

func PaymentReceivedNotification(patientID int64, amount decimal.Decimal, paymentID int64, transactionID string) NotificationRequest {
	fixed := amount.StringFixed(2)
	return NotificationRequest{
		Type:      NotificationTypePaymentReceived,
		PatientID: patientID,
		Message:   "Payment of $" + fixed + " received successfully",
		Metadata: NotificationMetadata{
			PaymentID:     paymentID,
			Amount:        json.Number(fixed),
			TransactionID: transactionID,
		},
	}
}

func (c *Client) send(ctx context.Context, method, url string, body any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s body: %w", url, err)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cid := logctx.CorrelationID(ctx); cid != "" {
		req.Header.Set(HeaderCorrelationID, cid)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Method: method, URL: url, StatusCode: resp.StatusCode, Body: string(snippet)}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

var Module = fx.Options(
	fx.Provide(New),
)
