package esim

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the lookup page and its JSON counterpart.
type Handler struct {
	client *Client
}

// NewHandler builds the eSIM HTTP handler.
func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

type lookupResponse struct {
	ICCID      string          `json:"iccid"`
	Outcome    OutcomeKind     `json:"outcome"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	HTTPStatus int             `json:"http_status,omitempty"`
	Message    string          `json:"message,omitempty"`
	RawBody    json.RawMessage `json:"raw_body,omitempty"`
}

// Lookup serves the JSON device-detail endpoint. The vendor status is passed
// through for vendor rejections; config and transport failures map to 500.
func (h *Handler) Lookup(c *fiber.Ctx) error {
	iccid := c.Query("iccid")
	outcome := h.client.DeviceDetail(c.UserContext(), iccid)

	resp := lookupResponse{
		ICCID:      iccid,
		Outcome:    outcome.Kind,
		Payload:    outcome.Payload,
		HTTPStatus: outcome.HTTPStatus,
		Message:    outcome.Message,
		RawBody:    outcome.RawBody,
	}

	switch outcome.Kind {
	case KindSuccess:
		return c.Status(http.StatusOK).JSON(resp)
	case KindMissingInput:
		resp.Message = "supply an iccid query parameter"
		return c.Status(http.StatusBadRequest).JSON(resp)
	case KindVendorError:
		return c.Status(outcome.HTTPStatus).JSON(resp)
	case KindConfigError, KindTransportError:
		return c.Status(http.StatusInternalServerError).JSON(resp)
	default:
		return c.Status(http.StatusInternalServerError).JSON(resp)
	}
}

// Page serves the server-rendered lookup page. An absent ICCID renders the
// search prompt; vendor rejections render with the raw payload for diagnosis.
func (h *Handler) Page(c *fiber.Ctx) error {
	iccid := c.Query("iccid")
	outcome := h.client.DeviceDetail(c.UserContext(), iccid)

	view := pageView{ICCID: iccid, Kind: string(outcome.Kind), Message: outcome.Message, Status: outcome.HTTPStatus}
	switch outcome.Kind {
	case KindSuccess:
		view.Payload = prettyJSON(outcome.Payload)
	case KindVendorError:
		view.Payload = prettyJSON(outcome.RawBody)
	}

	httpStatus := http.StatusOK
	if outcome.Kind == KindConfigError || outcome.Kind == KindTransportError {
		httpStatus = http.StatusInternalServerError
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(httpStatus).Send(buf.Bytes())
}

func prettyJSON(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
