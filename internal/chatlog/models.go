package chatlog

import (
	"encoding/json"
	"time"
)

// Message is one entry of the external chat-history log, keyed by the
// session the conversation ran under.

type Message struct {
	ID        int64           `json:"id" db:"id"`
	SessionID string          `json:"session_id" db:"session_id"`
	Payload   json.RawMessage `json:"payload" db:"payload"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// View is a Message with its payload resolved for display.
type View struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Author    Author    `json:"autor"`
	Content   string    `json:"conteudo"`
	CreatedAt time.Time `json:"created_at"`
}

// Render resolves the payload of each message.
func Render(msgs []Message) []View {
	out := make([]View, 0, len(msgs))
	for _, m := range msgs {
		p := ParsePayload(m.Payload)
		out = append(out, View{
			ID:        m.ID,
			SessionID: m.SessionID,
			Author:    p.Author,
			Content:   p.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	return out
}
