package templates

import "testing"

func TestWhatsAppEnvelopeRoundTrip(t *testing.T) {
	cases := []string{
		"Olá {{nome_lead}}, detectamos um problema no site {{dominio}}.",
		"",
		"texto simples sem placeholder",
		"com aspas \" e barras \\ e {{placeholder_nao_resolvido}}",
		"quebras\nde\nlinha",
	}
	for _, text := range cases {
		if got := ExtractWhatsAppBody(WrapWhatsAppBody(text)); got != text {
			t.Fatalf("round trip mismatch:\nin:  %q\nout: %q", text, got)
		}
	}
}

func TestWrapWhatsAppBody_ProducesEnvelope(t *testing.T) {
	got := WrapWhatsAppBody("oi")
	want := `{"type":"text","text":{"body":"oi"}}`
	if got != want {
		t.Fatalf("unexpected envelope: %s", got)
	}
}

func TestExtractWhatsAppBody_InvalidJSONPassesThrough(t *testing.T) {
	for _, stored := range []string{
		"not valid json",
		"{quase json",
		`"uma string json"`, // valid JSON but not the envelope
		`{"type":"image","url":"x"}`,
	} {
		if got := ExtractWhatsAppBody(stored); got != stored {
			t.Fatalf("expected passthrough for %q, got %q", stored, got)
		}
	}
}
