package onepipe

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"testing"
)

func signMD5(payload []byte, secret string) string {
	mac := hmac.New(md5.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	payload := []byte(`{"event":"transaction.settled"}`)
	secret := "topsecret"

	if !VerifyWebhookSignature(payload, signMD5(payload, secret), secret) {
		t.Error("valid MD5 signature rejected")
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	if !VerifyWebhookSignature(payload, hex.EncodeToString(mac.Sum(nil)), secret) {
		t.Error("valid SHA256 signature rejected")
	}

	if VerifyWebhookSignature(payload, signMD5(payload, "wrong"), secret) {
		t.Error("signature with wrong secret accepted")
	}
	if VerifyWebhookSignature(payload, "", secret) {
		t.Error("empty signature accepted")
	}
	if VerifyWebhookSignature(payload, "zzzz", secret) {
		t.Error("non-hex signature accepted")
	}
	if VerifyWebhookSignature(payload, signMD5(payload, secret), "") {
		t.Error("empty secret accepted")
	}
}

func TestWebhookEventSuccessful(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{"Successful", true},
		{"success", true},
		{"Failed", false},
		{"", false},
	}
	for _, tt := range tests {
		raw := []byte(`{"event":"transaction.settled","details":{"status":"` + tt.status + `"}}`)
		var ev WebhookEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			t.Fatal(err)
		}
		if got := ev.Successful(); got != tt.want {
			t.Errorf("Successful() with status %q = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestRequestSignatureIsStable(t *testing.T) {
	a := RequestSignature("REQ-1", "secret")
	b := RequestSignature("REQ-1", "secret")
	if a != b {
		t.Error("signature not deterministic")
	}
	if a == RequestSignature("REQ-2", "secret") {
		t.Error("different refs produced the same signature")
	}
	if len(a) != 32 {
		t.Errorf("signature length = %d, want 32 hex chars", len(a))
	}
}
