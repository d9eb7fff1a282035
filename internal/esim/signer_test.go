package esim

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"testing"
)

var testCreds = Credentials{
	AccountID: "acct-123",
	Salt:      "pepper",
	SecretKey: "s3cret",
	BaseURL:   "https://vendor.example",
}

func TestDeriveKeyDeterministic(t *testing.T) {
	signer := NewSigner(KeyParams{})

	first := signer.DeriveKey(testCreds.SecretKey, testCreds.Salt)
	second := signer.DeriveKey(testCreds.SecretKey, testCreds.Salt)
	if first != second {
		t.Fatalf("expected identical derived keys, got %s vs %s", first, second)
	}

	if len(first) != DefaultKeyParams.KeyLength*2 {
		t.Fatalf("expected %d hex chars, got %d", DefaultKeyParams.KeyLength*2, len(first))
	}

	other := signer.DeriveKey(testCreds.SecretKey, "different-salt")
	if other == first {
		t.Fatalf("different salt must change derived key")
	}
}

func TestKeyParamsOverride(t *testing.T) {
	short := NewSigner(KeyParams{Iterations: 2000, KeyLength: 16})

	key := short.DeriveKey(testCreds.SecretKey, testCreds.Salt)
	if len(key) != 32 {
		t.Fatalf("expected 32 hex chars for 16-byte key, got %d", len(key))
	}

	def := NewSigner(KeyParams{})
	if def.DeriveKey(testCreds.SecretKey, testCreds.Salt) == key {
		t.Fatalf("overridden params must produce a different key")
	}
}

func TestSignProducesFreshNonceAndSignature(t *testing.T) {
	signer := NewSigner(KeyParams{})

	first, err := signer.Sign(testCreds)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	second, err := signer.Sign(testCreds)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if first.Nonce == second.Nonce {
		t.Fatalf("nonce repeated across calls: %s", first.Nonce)
	}
	if first.Signature == second.Signature {
		t.Fatalf("signature repeated across calls: %s", first.Signature)
	}
	if len(first.Nonce) != nonceBytes*2 {
		t.Fatalf("expected %d hex chars of nonce, got %d", nonceBytes*2, len(first.Nonce))
	}
	if _, err := hex.DecodeString(first.Nonce); err != nil {
		t.Fatalf("nonce is not hex: %v", err)
	}
	if _, err := strconv.ParseInt(first.Timestamp, 10, 64); err != nil {
		t.Fatalf("timestamp is not a decimal integer: %v", err)
	}
}

func TestSignCoversAccountNonceTimestamp(t *testing.T) {
	signer := NewSigner(KeyParams{})

	signed, err := signer.Sign(testCreds)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	stringToSign := testCreds.AccountID + "," + signed.Nonce + "," + signed.Timestamp
	if strings.Count(stringToSign, ",") != 2 {
		t.Fatalf("expected exactly two commas in %q", stringToSign)
	}

	mac := hmac.New(sha256.New, []byte(signer.DeriveKey(testCreds.SecretKey, testCreds.Salt)))
	mac.Write([]byte(stringToSign))
	expected := hex.EncodeToString(mac.Sum(nil))

	if signed.Signature != expected {
		t.Fatalf("signature mismatch: got %s want %s", signed.Signature, expected)
	}
}
