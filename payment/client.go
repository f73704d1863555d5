// Package payment is the client for the hosted-checkout payment gateway:
// session creation, refunds, and signed webhook event parsing.
package payment

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Gateway is the surface the handlers depend on; *Client is the production
// implementation.
type Gateway interface {
	CreateCheckoutSession(params SessionParams) (*Session, error)
	CreateRefund(paymentIntent string) error
	ConstructEvent(payload []byte, sigHeader string) (*Event, error)
}

// LineItem is one purchasable row of a checkout session. UnitAmount is in
// minor currency units.
type LineItem struct {
	Name       string   `json:"name"`
	Images     []string `json:"images,omitempty"`
	Currency   string   `json:"currency"`
	UnitAmount int64    `json:"unit_amount"`
	Quantity   int      `json:"quantity"`
}

type SessionParams struct {
	LineItems  []LineItem        `json:"line_items"`
	SuccessURL string            `json:"success_url"`
	CancelURL  string            `json:"cancel_url"`
	Metadata   map[string]string `json:"metadata"`
}

// Session is the gateway's representation of a hosted checkout session. The
// same shape arrives back inside webhook events.
type Session struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	PaymentIntent string            `json:"payment_intent"`
	Metadata      map[string]string `json:"metadata"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type sessionResponse struct {
	Session
	Error *apiError `json:"error,omitempty"`
}

type Client struct {
	apiURL        string
	secretKey     string
	webhookSecret string
	http          *http.Client
}

func NewClient(apiURL, secretKey, webhookSecret string) *Client {
	return &Client{
		apiURL:        apiURL,
		secretKey:     secretKey,
		webhookSecret: webhookSecret,
		http:          &http.Client{Timeout: 30 * time.Second},
	}
}

// CreateCheckoutSession requests a hosted payment page and returns the session
// with its redirect URL.
func (c *Client) CreateCheckoutSession(params SessionParams) (*Session, error) {
	var resp sessionResponse
	if err := c.post("/checkout/sessions", params, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("gateway error: %s", resp.Error.Message)
	}
	if resp.URL == "" {
		return nil, errors.New("gateway returned empty payment URL")
	}
	return &resp.Session, nil
}

// CreateRefund refunds the full amount of a payment intent.
func (c *Client) CreateRefund(paymentIntent string) error {
	body := map[string]string{"payment_intent": paymentIntent}
	var resp struct {
		Error *apiError `json:"error,omitempty"`
	}
	if err := c.post("/refunds", body, &resp); err != nil {
		return err
	}
	if resp.Error != nil {
		return fmt.Errorf("gateway error: %s", resp.Error.Message)
	}
	return nil
}

func (c *Client) post(path string, payload, out interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, c.apiURL+path, bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach payment gateway: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("payment gateway error (%d): %s", resp.StatusCode, string(body))
	}
	return json.Unmarshal(body, out)
}
