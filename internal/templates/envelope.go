package templates

import "encoding/json"

// WhatsApp template bodies are stored as a small JSON envelope:
//
//	{"type":"text","text":{"body":"<raw text>"}}
//
// The editing surface works on raw text, so the envelope must round-trip
// exactly: extract for editing, re-wrap before persisting.

type whatsAppEnvelope struct {
	Type string `json:"type"`
	Text struct {
		Body string `json:"body"`
	} `json:"text"`
}

// WrapWhatsAppBody wraps raw text into the stored envelope form.
func WrapWhatsAppBody(text string) string {
	var env whatsAppEnvelope
	env.Type = "text"
	env.Text.Body = text
	raw, err := json.Marshal(env)
	if err != nil {
		// Marshal of a plain string field cannot fail; keep the raw text if it ever does.
		return text
	}
	return string(raw)
}

// ExtractWhatsAppBody pulls the raw text back out of a stored body. A value
// that is not the expected envelope is treated as already-raw text; older
// rows predate the envelope and must keep working.
func ExtractWhatsAppBody(stored string) string {
	var env whatsAppEnvelope
	if err := json.Unmarshal([]byte(stored), &env); err != nil {
		return stored
	}
	if env.Type != "text" {
		return stored
	}
	return env.Text.Body
}
