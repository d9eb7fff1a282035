package esim

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/crypto/pbkdf2"
)

const nonceBytes = 16

// KeyParams controls the PBKDF2 stretch applied to the account secret before
// it is used as HMAC key material. The defaults mirror the values the vendor
// integration was validated against; they have not been confirmed in vendor
// documentation, which is why they are overridable rather than constants.
type KeyParams struct {
	Iterations int
	KeyLength  int
}

// DefaultKeyParams are the reference stretch parameters.
var DefaultKeyParams = KeyParams{Iterations: 1000, KeyLength: 32}

func (p KeyParams) withDefaults() KeyParams {
	if p.Iterations <= 0 {
		p.Iterations = DefaultKeyParams.Iterations
	}
	if p.KeyLength <= 0 {
		p.KeyLength = DefaultKeyParams.KeyLength
	}
	return p
}

// SignedRequest carries the per-call authentication values placed into the
// vendor headers. A value is built fresh for every call and never reused.
type SignedRequest struct {
	Timestamp string
	Nonce     string
	Signature string
}

// Signer derives per-request authentication headers without ever transmitting
// the raw secret. It performs no I/O beyond reading the process random source
// and is safe for concurrent use.
type Signer struct {
	params KeyParams
}

// NewSigner builds a signer with the given stretch parameters; zero fields
// fall back to DefaultKeyParams.
func NewSigner(params KeyParams) Signer {
	return Signer{params: params.withDefaults()}
}

// DeriveKey stretches the secret key with PBKDF2-SHA256 and the account salt,
// returning the hex encoding. Deterministic for fixed inputs and parameters.
func (s Signer) DeriveKey(secretKey, salt string) string {
	key := pbkdf2.Key([]byte(secretKey), []byte(salt), s.params.Iterations, s.params.KeyLength, sha256.New)
	return hex.EncodeToString(key)
}

// Sign produces the timestamp, nonce and signature for one vendor call.
// The signature is HMAC-SHA256 over "accountId,nonce,timestamp" keyed with
// the hex-encoded derived key.
func (s Signer) Sign(creds Credentials) (SignedRequest, error) {
	timestamp := strconv.FormatInt(time.Now().UnixMilli(), 10)

	buf := make([]byte, nonceBytes)
	if _, err := rand.Read(buf); err != nil {
		return SignedRequest{}, fmt.Errorf("generate nonce: %w", err)
	}
	nonce := hex.EncodeToString(buf)

	hashedPassword := s.DeriveKey(creds.SecretKey, creds.Salt)

	stringToSign := creds.AccountID + "," + nonce + "," + timestamp

	mac := hmac.New(sha256.New, []byte(hashedPassword))
	mac.Write([]byte(stringToSign))
	signature := hex.EncodeToString(mac.Sum(nil))

	return SignedRequest{Timestamp: timestamp, Nonce: nonce, Signature: signature}, nil
}
