package payments

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const razorpayBaseURL = "https://api.razorpay.com/v1"

// RazorpayClient talks to the Razorpay orders API using basic auth.
type RazorpayClient struct {
	KeyID      string
	KeySecret  string
	BaseURL    string
	HTTPClient *http.Client
}

// NewRazorpayClient constructs a client. Configured reports false when the
// keys are missing, which puts the payments service in demo mode.
func NewRazorpayClient(keyID, keySecret string) *RazorpayClient {
	return &RazorpayClient{
		KeyID:      keyID,
		KeySecret:  keySecret,
		BaseURL:    razorpayBaseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Configured reports whether live credentials are present.
func (c *RazorpayClient) Configured() bool {
	return c != nil && c.KeyID != "" && c.KeySecret != ""
}

// Order is the subset of the Razorpay order object the service uses.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type createOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// CreateOrder creates an order. Amount is in the smallest currency unit
// (paise for INR).
func (c *RazorpayClient) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (Order, error) {
	payload, err := json.Marshal(createOrderRequest{
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		Notes:    notes,
	})
	if err != nil {
		return Order{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return Order{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.KeyID, c.KeySecret)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Order{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Order{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return Order{}, fmt.Errorf("razorpay create order: status %d: %s", resp.StatusCode, body)
	}

	var order Order
	if err := json.Unmarshal(body, &order); err != nil {
		return Order{}, fmt.Errorf("razorpay create order: decode: %w", err)
	}
	return order, nil
}

// VerifySignature checks the checkout callback signature, an HMAC-SHA256 of
// "<order_id>|<payment_id>" keyed with the secret.
func (c *RazorpayClient) VerifySignature(orderID, paymentID, signature string) bool {
	if c == nil || c.KeySecret == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(c.KeySecret))
	fmt.Fprintf(mac, "%s|%s", orderID, paymentID)
	expected := hex.EncodeToString(mac.Sum(nil))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
