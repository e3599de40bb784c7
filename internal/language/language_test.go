package language

import "testing"

func TestParse_Labels(t *testing.T) {
	tests := []struct {
		input string
		want  Language
	}{
		{"French", French},
		{"french", French},
		{"Chinese (Simplified)", Chinese},
		{"Chinese (Traditional)", ChineseTraditional},
		{"Portuguese (Brazil)", PortugueseBrazil},
		{"Arabic (Standard)", ArabicStandard},
		{"Latin (Classical)", LatinClassical},
		{"UKRAINIAN", Ukrainian},
		{"  Swedish  ", Swedish},
	}

	for _, tt := range tests {
		got, ok := Parse(tt.input)
		if !ok {
			t.Errorf("Parse(%q): expected match", tt.input)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParse_ISOCodes(t *testing.T) {
	tests := []struct {
		input string
		want  Language
	}{
		{"fr", French},
		{"de", German},
		{"uk", Ukrainian},
		{"ja", Japanese},
		{"eo", Esperanto},
	}

	for _, tt := range tests {
		got, ok := Parse(tt.input)
		if !ok || got != tt.want {
			t.Errorf("Parse(%q) = %v, %v; want %v, true", tt.input, got, ok, tt.want)
		}
	}
}

// Shared ISO codes must resolve to the same variant on every call.
func TestParse_SharedISOCodesDeterministic(t *testing.T) {
	tests := []struct {
		input string
		want  Language
	}{
		{"zh", Chinese},
		{"pt", PortugueseBrazil},
		{"ar", Arabic},
	}

	for _, tt := range tests {
		for i := 0; i < 20; i++ {
			got, ok := Parse(tt.input)
			if !ok || got != tt.want {
				t.Fatalf("Parse(%q) = %v, %v; want %v, true", tt.input, got, ok, tt.want)
			}
		}
	}
}

func TestParse_BareNames(t *testing.T) {
	tests := []struct {
		input string
		want  Language
	}{
		{"chinese", Chinese},
		{"portuguese", PortuguesePortugal},
		{"latin", LatinClassical},
		{"nb", Norwegian},
	}

	for _, tt := range tests {
		got, ok := Parse(tt.input)
		if !ok || got != tt.want {
			t.Errorf("Parse(%q) = %v, %v; want %v, true", tt.input, got, ok, tt.want)
		}
	}
}

func TestParse_Unknown(t *testing.T) {
	for _, input := range []string{"", "klingon", "xx", "an unspecified language"} {
		if got, ok := Parse(input); ok {
			t.Errorf("Parse(%q) = %v; expected no match", input, got)
		}
	}
}

func TestLLMFormat(t *testing.T) {
	if got := Unknown.LLMFormat(); got != "an unspecified language" {
		t.Errorf("Unknown.LLMFormat() = %q", got)
	}
	if got := Chinese.LLMFormat(); got != "Chinese (Simplified)" {
		t.Errorf("Chinese.LLMFormat() = %q", got)
	}
	if got := Language(999).LLMFormat(); got != "an unspecified language" {
		t.Errorf("out-of-range LLMFormat() = %q", got)
	}
}

func TestDeepLSupport(t *testing.T) {
	if !French.SupportsDeepL() {
		t.Error("French should support DeepL")
	}
	if Esperanto.SupportsDeepL() {
		t.Error("Esperanto should not support DeepL")
	}
	if ChineseTraditional.SupportsDeepL() {
		t.Error("Chinese (Traditional) should not support DeepL")
	}
	if Unknown.SupportsDeepL() {
		t.Error("Unknown should not support DeepL")
	}

	if got := PortugueseBrazil.DeepLCode(); got != "PT-BR" {
		t.Errorf("PortugueseBrazil.DeepLCode() = %q", got)
	}
	if got := Norwegian.DeepLCode(); got != "NB" {
		t.Errorf("Norwegian.DeepLCode() = %q", got)
	}
}

func TestAll(t *testing.T) {
	all := All()
	if len(all) != 40 {
		t.Fatalf("expected 40 languages, got %d", len(all))
	}
	if all[0] != Arabic {
		t.Errorf("expected Arabic first, got %v", all[0])
	}
	if all[len(all)-1] != Vietnamese {
		t.Errorf("expected Vietnamese last, got %v", all[len(all)-1])
	}
	for _, l := range all {
		if l == Unknown {
			t.Error("All() must not include Unknown")
		}
		if l.LLMFormat() == "an unspecified language" {
			t.Errorf("language %d has no label", l)
		}
	}
}
