package templates

import "testing"

func TestSubstitute_ReplacesKnownVariables(t *testing.T) {
	in := "Olá {{nome_lead}}, a {{empresa_nome}} tem um problema: {{tipo_erro}}."
	got := Substitute(in)
	want := "Olá João Silva, a Padaria Central tem um problema: Certificado SSL expirado."
	if got != want {
		t.Fatalf("unexpected output:\n%s", got)
	}
}

func TestSubstitute_LeavesUnknownPlaceholdersVerbatim(t *testing.T) {
	in := "Oi {{nome_lead}}, veja {{variavel_misteriosa}} aqui."
	got := Substitute(in)
	want := "Oi João Silva, veja {{variavel_misteriosa}} aqui."
	if got != want {
		t.Fatalf("unexpected output:\n%s", got)
	}
}

func TestSubstitute_IdempotentWithoutRecognizedPlaceholders(t *testing.T) {
	cases := []string{
		"",
		"sem placeholder nenhum",
		"chaves soltas {{ sem fechar",
		"{{desconhecida}} no início",
		"fecha }} antes de abrir {{",
	}
	for _, in := range cases {
		if got := Substitute(in); got != in {
			t.Fatalf("expected input unchanged:\nin:  %q\nout: %q", in, got)
		}
		// applying twice changes nothing either
		if got := Substitute(Substitute(in)); got != in {
			t.Fatalf("double substitution changed input %q", in)
		}
	}
}

func TestSubstituteWith_CustomTable(t *testing.T) {
	got := SubstituteWith("{{a}}-{{b}}-{{a}}", map[string]string{"a": "1", "b": "2"})
	if got != "1-2-1" {
		t.Fatalf("unexpected output: %s", got)
	}
}

func TestStageDay(t *testing.T) {
	cases := map[int]int{101: 1, 199: 1, 201: 2, 305: 3, 400: 0, 99: 0, 0: 0}
	for code, want := range cases {
		if got := StageDay(code); got != want {
			t.Fatalf("StageDay(%d) = %d, want %d", code, got, want)
		}
	}
}
