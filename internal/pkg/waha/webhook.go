package waha

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
)

const (
	HeaderHMAC          = "X-Webhook-Hmac"
	HeaderHMACAlgorithm = "X-Webhook-Hmac-Algorithm"

	EventMessage    = "message"
	EventMessageAny = "message.any"
)

// WebhookVerifier checks the HMAC WAHA attaches to webhook calls.
type WebhookVerifier struct {
	secret []byte
}

func NewWebhookVerifier(secret string) *WebhookVerifier {
	return &WebhookVerifier{secret: []byte(secret)}
}

// Enabled reports whether a secret is configured.
func (v *WebhookVerifier) Enabled() bool {
	return v != nil && len(v.secret) > 0
}

// Verify compares the hex HMAC-SHA512 of body with signature.
func (v *WebhookVerifier) Verify(body []byte, signature string) bool {
	mac := hmac.New(sha512.New, v.secret)
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(strings.TrimSpace(signature))))
}

// Sign returns the signature WAHA would send for body.
func (v *WebhookVerifier) Sign(body []byte) string {
	mac := hmac.New(sha512.New, v.secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// WebhookEvent is the envelope of every WAHA callback.
type WebhookEvent struct {
	ID      string         `json:"id"`
	Event   string         `json:"event"`
	Session string         `json:"session"`
	Payload MessagePayload `json:"payload"`
}

type MessagePayload struct {
	ID       string    `json:"id"`
	From     string    `json:"from"`
	FromMe   bool      `json:"fromMe"`
	Body     string    `json:"body"`
	HasMedia bool      `json:"hasMedia"`
	Location *Location `json:"location,omitempty"`
}

// Location is a shared pin. Some WAHA engines send the coordinates as
// strings, FlexFloat accepts both.
type Location struct {
	Latitude    FlexFloat `json:"latitude"`
	Longitude   FlexFloat `json:"longitude"`
	Description string    `json:"description,omitempty"`
}

type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return err
		}
		*f = FlexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

// IsMessage reports whether the event carries an inbound chat message.
func (e WebhookEvent) IsMessage() bool {
	return e.Event == EventMessage || e.Event == EventMessageAny
}

// IsGroup reports whether the message came from a group chat.
func (p MessagePayload) IsGroup() bool {
	return strings.HasSuffix(p.From, "@g.us")
}

// Caption is the text sent with the message. For a location it is the
// pin description when the body is empty. Some engines put a base64 JPEG
// thumbnail in the body of location messages, that is not a caption.
func (p MessagePayload) Caption() string {
	body := strings.TrimSpace(p.Body)
	if body != "" && !(p.Location != nil && strings.HasPrefix(body, "/9j/")) {
		return p.Body
	}
	if p.Location != nil {
		return p.Location.Description
	}
	return ""
}
