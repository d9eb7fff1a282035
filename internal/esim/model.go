package esim

import (
	"encoding/json"
	"fmt"
)

// Credentials holds the vendor account material required to sign device-detail
// calls. All four fields must be present before a call is attempted; a missing
// field is a deployment problem, not a per-request one.
type Credentials struct {
	AccountID string
	Salt      string
	SecretKey string
	BaseURL   string
}

// Validate reports the first missing credential field, if any.
func (c Credentials) Validate() error {
	switch {
	case c.AccountID == "":
		return fmt.Errorf("account id is not configured")
	case c.Salt == "":
		return fmt.Errorf("salt is not configured")
	case c.SecretKey == "":
		return fmt.Errorf("secret key is not configured")
	case c.BaseURL == "":
		return fmt.Errorf("api base url is not configured")
	}
	return nil
}

// DeviceQuery identifies the eSIM profile to look up.
type DeviceQuery struct {
	ICCID string `json:"iccid"`
}

// OutcomeKind discriminates the result of a device-detail call.
type OutcomeKind string

const (
	// KindSuccess carries the vendor payload verbatim.
	KindSuccess OutcomeKind = "success"
	// KindVendorError means the vendor rejected or failed the request.
	KindVendorError OutcomeKind = "vendor_error"
	// KindTransportError covers network failures and unreadable responses.
	KindTransportError OutcomeKind = "transport_error"
	// KindMissingInput means no ICCID was supplied; expected, not a failure.
	KindMissingInput OutcomeKind = "missing_input"
	// KindConfigError means vendor credentials are absent or incomplete.
	KindConfigError OutcomeKind = "config_error"
)

// Outcome is the single result type of a device-detail call. Exactly one kind
// is set per call; callers switch on Kind and must handle all five. It never
// contains secret material.
type Outcome struct {
	Kind OutcomeKind

	// Payload is the parsed vendor body on success.
	Payload json.RawMessage

	// HTTPStatus and RawBody are set for vendor errors.
	HTTPStatus int
	RawBody    json.RawMessage

	// Message describes vendor, transport and config errors.
	Message string
}

func successOutcome(payload json.RawMessage) Outcome {
	return Outcome{Kind: KindSuccess, Payload: payload}
}

func vendorErrorOutcome(status int, message string, raw json.RawMessage) Outcome {
	return Outcome{Kind: KindVendorError, HTTPStatus: status, Message: message, RawBody: raw}
}

func transportErrorOutcome(message string) Outcome {
	return Outcome{Kind: KindTransportError, Message: message}
}

func missingInputOutcome() Outcome {
	return Outcome{Kind: KindMissingInput}
}

func configErrorOutcome(message string) Outcome {
	return Outcome{Kind: KindConfigError, Message: message}
}
