package onepipe

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"strings"
)

// WebhookEvent is the payload OnePipe posts when a pending transaction
// settles. Amount arrives in kobo.
type WebhookEvent struct {
	Event   string `json:"event"`
	Details struct {
		TransactionRef string `json:"transaction_ref"`
		MandateID      string `json:"mandate_id"`
		ProviderRef    string `json:"provider_ref"`
		Status         string `json:"status"`
		Amount         int64  `json:"amount"`
		Message        string `json:"message"`
	} `json:"details"`
}

// Successful reports whether the event settles the transaction in our favor.
func (e *WebhookEvent) Successful() bool {
	switch strings.ToLower(strings.TrimSpace(e.Details.Status)) {
	case "successful", "success":
		return true
	default:
		return false
	}
}

// VerifyWebhookSignature checks the Signature header on a webhook delivery.
// The provider signs with HMAC-MD5; a SHA256 fallback covers environments
// configured for the newer scheme.
func VerifyWebhookSignature(payload []byte, signatureHeader, secret string) bool {
	sig := strings.TrimSpace(signatureHeader)
	key := strings.TrimSpace(secret)
	if sig == "" || key == "" {
		return false
	}

	decoded, err := hex.DecodeString(strings.ToLower(sig))
	if err != nil {
		return false
	}

	if verifyHMAC(payload, decoded, []byte(key), md5.New) {
		return true
	}
	return verifyHMAC(payload, decoded, []byte(key), sha256.New)
}

func verifyHMAC(payload, expected, key []byte, hashFunc func() hash.Hash) bool {
	mac := hmac.New(hashFunc, key)
	mac.Write(payload)
	return hmac.Equal(mac.Sum(nil), expected)
}
