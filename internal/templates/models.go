package templates

import "time"

// Template is a message template for one channel and one cadence stage.
//
// Stage codes are grouped by hundreds: 1xx runs on cadence day 1, 2xx on
// day 2, 3xx on day 3. Within a day the automation picks by exact code.
//
// Body encoding differs per channel: whatsapp bodies are stored inside a
// small JSON envelope (see envelope.go), email bodies are raw HTML.

type Template struct {
	ID string `json:"id" db:"id"`

	Channel   Channel `json:"canal" db:"canal"`
	StageCode int     `json:"codigo_etapa" db:"codigo_etapa"`

	Name    string `json:"nome" db:"nome"`
	Subject string `json:"assunto,omitempty" db:"assunto"` // email only
	Body    string `json:"corpo" db:"corpo"`

	Active      bool   `json:"ativo" db:"ativo"`
	Description string `json:"descricao,omitempty" db:"descricao"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelEmail    Channel = "email"
)

// StageDay maps a stage code to its cadence day (1xx→1, 2xx→2, 3xx→3).
// Codes outside those bands return 0.
func StageDay(code int) int {
	switch {
	case code >= 100 && code < 200:
		return 1
	case code >= 200 && code < 300:
		return 2
	case code >= 300 && code < 400:
		return 3
	default:
		return 0
	}
}
