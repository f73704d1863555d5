package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SignatureHeader carries the webhook signature: "t=<unix>,v1=<hex hmac>".
const SignatureHeader = "Gateway-Signature"

// EventCheckoutSessionCompleted is the only event type the backend acts on.
const EventCheckoutSessionCompleted = "checkout.session.completed"

var ErrInvalidSignature = errors.New("invalid webhook signature")

// Event is a signed notification delivered by the gateway.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object Session `json:"object"`
	} `json:"data"`
}

// ConstructEvent verifies the signature over the raw payload and unmarshals
// the event. Verification happens before the payload is trusted in any way.
func (c *Client) ConstructEvent(payload []byte, sigHeader string) (*Event, error) {
	timestamp, signature, err := parseSignatureHeader(sigHeader)
	if err != nil {
		return nil, err
	}

	expected := computeSignature(c.webhookSecret, timestamp, payload)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return nil, ErrInvalidSignature
	}

	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("malformed webhook payload: %w", err)
	}
	return &event, nil
}

// SignPayload produces a valid signature header for a payload. The gateway
// does this on its side; exported for webhook delivery tests.
func SignPayload(secret string, t time.Time, payload []byte) string {
	ts := fmt.Sprintf("%d", t.Unix())
	return fmt.Sprintf("t=%s,v1=%s", ts, computeSignature(secret, ts, payload))
}

func parseSignatureHeader(header string) (timestamp, signature string, err error) {
	if header == "" {
		return "", "", ErrInvalidSignature
	}
	for _, part := range strings.Split(header, ",") {
		k, v, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		switch k {
		case "t":
			timestamp = v
		case "v1":
			signature = v
		}
	}
	if timestamp == "" || signature == "" {
		return "", "", ErrInvalidSignature
	}
	return timestamp, signature, nil
}

func computeSignature(secret, timestamp string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
