package chatlog

import (
	"bytes"
	"encoding/json"
)

// Chat-history payloads are written by several generations of the automation
// and have no fixed schema: a bare string, {text}, {content}, {message}, or a
// role/type-tagged object. All shape detection lives here; everything else in
// the codebase consumes the parsed form.

type PayloadKind string

const (
	KindPlainText PayloadKind = "plain_text"
	KindTagged    PayloadKind = "tagged"
	KindUnknown   PayloadKind = "unknown"
)

// Author is who the message is attributed to.
type Author string

const (
	AuthorAgente  Author = "agente"
	AuthorCliente Author = "cliente"
)

// Parsed is the normalized form of a chat payload.
type Parsed struct {
	Kind    PayloadKind `json:"kind"`
	Author  Author      `json:"autor"`
	Content string      `json:"conteudo"`
}

type taggedPayload struct {
	Role    string `json:"role"`
	Type    string `json:"type"`
	Text    string `json:"text"`
	Content string `json:"content"`
	Message string `json:"message"`
}

// ParsePayload normalizes a raw chat payload. It never fails: anything it
// cannot make sense of comes back as KindUnknown with a readable dump.
func ParsePayload(raw []byte) Parsed {
	if len(bytes.TrimSpace(raw)) == 0 {
		return Parsed{Kind: KindUnknown, Author: AuthorCliente, Content: ""}
	}

	// Bare JSON string.
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return Parsed{Kind: KindPlainText, Author: AuthorCliente, Content: s}
	}

	var tagged taggedPayload
	if err := json.Unmarshal(raw, &tagged); err == nil {
		content, ok := firstNonEmpty(tagged.Text, tagged.Content, tagged.Message)
		author := attribution(tagged.Role, tagged.Type)
		if ok {
			kind := KindTagged
			if tagged.Role == "" && tagged.Type == "" {
				kind = KindPlainText
			}
			return Parsed{Kind: kind, Author: author, Content: content}
		}
		// Tagged but no recognizable content field: dump the payload.
		return Parsed{Kind: KindUnknown, Author: author, Content: prettyDump(raw)}
	}

	// Not valid JSON at all: show it as-is.
	return Parsed{Kind: KindPlainText, Author: AuthorCliente, Content: string(raw)}
}

// attribution follows the historical rules: assistant/ai is the agent,
// user/human is the customer, anything else defaults to the customer.
func attribution(role, typ string) Author {
	switch {
	case role == "assistant" || typ == "ai":
		return AuthorAgente
	case role == "user" || typ == "human":
		return AuthorCliente
	default:
		return AuthorCliente
	}
}

func firstNonEmpty(vals ...string) (string, bool) {
	for _, v := range vals {
		if v != "" {
			return v, true
		}
	}
	return "", false
}

func prettyDump(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
