package esim

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// DeviceDetailPath is the fixed vendor path for device lookups.
const DeviceDetailPath = "/ali/esim/v1/deviceDetail"

const (
	headerAccount   = "MICROESIM-ACCOUNT"
	headerNonce     = "MICROESIM-NONCE"
	headerTimestamp = "MICROESIM-TIMESTAMP"
	headerSign      = "MICROESIM-SIGN"
)

// HTTPDoer abstracts the transport for dependency injection. The standard
// *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client performs authenticated device-detail calls against the vendor API
// and classifies every possible result into an Outcome. It holds no mutable
// state; concurrent calls are independent.
type Client struct {
	creds  Credentials
	signer Signer
	doer   HTTPDoer
	logger *slog.Logger
}

// NewClient wires a vendor client. A nil doer falls back to the default
// http.Client; a nil logger discards output.
func NewClient(creds Credentials, signer Signer, doer HTTPDoer, logger *slog.Logger) *Client {
	if doer == nil {
		doer = &http.Client{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{creds: creds, signer: signer, doer: doer, logger: logger}
}

// DeviceDetail looks up one ICCID. It never returns an error: every failure
// mode is folded into the Outcome so callers cannot forget a case.
func (c *Client) DeviceDetail(ctx context.Context, iccid string) Outcome {
	if strings.TrimSpace(iccid) == "" {
		return missingInputOutcome()
	}
	if err := c.creds.Validate(); err != nil {
		return configErrorOutcome(err.Error())
	}

	signed, err := c.signer.Sign(c.creds)
	if err != nil {
		return transportErrorOutcome(fmt.Sprintf("sign request: %v", err))
	}

	body, err := json.Marshal(DeviceQuery{ICCID: iccid})
	if err != nil {
		return transportErrorOutcome(fmt.Sprintf("encode request body: %v", err))
	}

	url := strings.TrimRight(c.creds.BaseURL, "/") + DeviceDetailPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return transportErrorOutcome(fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerAccount, c.creds.AccountID)
	req.Header.Set(headerNonce, signed.Nonce)
	req.Header.Set(headerTimestamp, signed.Timestamp)
	req.Header.Set(headerSign, signed.Signature)

	resp, err := c.doer.Do(req)
	if err != nil {
		c.logger.Warn("vendor call failed", "error", err)
		return transportErrorOutcome(err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportErrorOutcome(fmt.Sprintf("read response body: %v", err))
	}

	var parsed json.RawMessage
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return transportErrorOutcome(fmt.Sprintf("decode response body: %v", err))
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return successOutcome(parsed)
	}

	message := vendorMessage(parsed, resp.StatusCode)
	c.logger.Info("vendor rejected lookup", "status", resp.StatusCode, "message", message)
	return vendorErrorOutcome(resp.StatusCode, message, parsed)
}

// vendorMessage pulls the message field from an error body, falling back to a
// generic status string when absent.
func vendorMessage(body json.RawMessage, status int) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	return fmt.Sprintf("status %d", status)
}
