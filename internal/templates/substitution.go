package templates

import "strings"

// Placeholder substitution for message previews. The variable vocabulary is
// fixed; anything else stays verbatim in the output so the editor can see
// exactly which placeholders the automation will not resolve.

// SampleVariables maps each recognized placeholder to its preview value.
var SampleVariables = map[string]string{
	"nome_lead":        "João Silva",
	"dominio":          "padariacentral.com.br",
	"tipo_erro":        "Certificado SSL expirado",
	"empresa_nome":     "Padaria Central",
	"url_erro":         "https://padariacentral.com.br/contato",
	"data_deteccao":    "15/08/2026",
	"link_agendamento": "https://agenda.exemplo.com.br/reuniao",
	"nome_consultor":   "Ana Costa",
}

// Substitute replaces {{variable}} placeholders using SampleVariables.
// Unrecognized placeholders are left untouched; input without recognized
// placeholders comes back unchanged.
func Substitute(body string) string {
	return SubstituteWith(body, SampleVariables)
}

// SubstituteWith is Substitute with a caller-supplied variable table.
func SubstituteWith(body string, vars map[string]string) string {
	if body == "" || len(vars) == 0 {
		return body
	}

	var b strings.Builder
	b.Grow(len(body))

	rest := body
	for {
		open := strings.Index(rest, "{{")
		if open < 0 {
			b.WriteString(rest)
			return b.String()
		}
		end := strings.Index(rest[open:], "}}")
		if end < 0 {
			b.WriteString(rest)
			return b.String()
		}
		end += open

		name := rest[open+2 : end]
		if v, ok := vars[strings.TrimSpace(name)]; ok {
			b.WriteString(rest[:open])
			b.WriteString(v)
		} else {
			// Keep the placeholder verbatim.
			b.WriteString(rest[:end+2])
		}
		rest = rest[end+2:]
	}
}
