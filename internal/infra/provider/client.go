package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/maysqunaibi/strollers-mvp/internal/domain/payment"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/config"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/errs"
)

var (
	ErrPaymentNotFound = errs.New("payment not found at provider")
	ErrProviderCall    = errs.New("provider call failed")
)

// Payment is the provider's authoritative view of a payment. Raw keeps the
// unparsed body for support escalation.
type Payment struct {
	ID            string
	Status        payment.Status
	Mode          string
	Scheme        *string
	AmountHalalas int64
	CreatedAt     time.Time
	Raw           json.RawMessage
}

type Client struct {
	baseURL   string
	secretKey string
	http      *http.Client
}

func NewClient(cfg config.ProviderConfig) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		secretKey: cfg.SecretKey,
		http:      &http.Client{Timeout: cfg.Timeout},
	}
}

type paymentBody struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	CreatedAt string `json:"created_at"`
	Source    struct {
		Type    string `json:"type"`
		Company string `json:"company"`
	} `json:"source"`
}

// FetchPayment verifies the payment state directly with the provider. The
// status reported in the return URL is advisory only and never consulted.
func (c *Client) FetchPayment(ctx context.Context, id string) (*Payment, error) {
	url := fmt.Sprintf("%s/payments/%s", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errs.Mark(err, ErrProviderCall)
	}
	req.SetBasicAuth(c.secretKey, "")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errs.Mark(err, ErrProviderCall)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Mark(err, ErrProviderCall)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrPaymentNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, errs.Mark(
			errs.New(fmt.Sprintf("provider returned status %d", resp.StatusCode)),
			ErrProviderCall,
		)
	}

	var body paymentBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, errs.Mark(err, ErrProviderCall)
	}

	createdAt, err := time.Parse(time.RFC3339, body.CreatedAt)
	if err != nil {
		createdAt = time.Time{}
	}

	var scheme *string
	if body.Source.Company != "" {
		company := body.Source.Company
		scheme = &company
	}

	return &Payment{
		ID:            body.ID,
		Status:        mapStatus(body.Status),
		Mode:          body.Source.Type,
		Scheme:        scheme,
		AmountHalalas: body.Amount,
		CreatedAt:     createdAt,
		Raw:           raw,
	}, nil
}

func mapStatus(s string) payment.Status {
	switch s {
	case "paid", "captured":
		return payment.StatusPaid
	case "failed":
		return payment.StatusFailed
	case "voided", "refunded":
		return payment.StatusCanceled
	default:
		// initiated, authorized, verified
		return payment.StatusPending
	}
}
