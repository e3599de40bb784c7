package postprocess

import "testing"

func TestClean_ThinkingBlocks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "complete think block",
			input: "<think>the user wants French</think>Bonjour le monde",
			want:  "Bonjour le monde",
		},
		{
			name:  "complete thinking block",
			input: "<thinking>\nlots of deliberation\n</thinking>\nHola mundo",
			want:  "Hola mundo",
		},
		{
			name:  "reasoning block",
			input: "<reasoning>because</reasoning>Hallo Welt",
			want:  "Hallo Welt",
		},
		{
			name:  "truncated block swallows the rest",
			input: "Hej världen\n<think>never closed",
			want:  "Hej världen",
		},
		{
			name:  "no block",
			input: "Привіт, світе",
			want:  "Привіт, світе",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClean_InstructionEchoes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Here's the translation: Bonjour", "Bonjour"},
		{"Here is the translated text: Bonjour", "Bonjour"},
		{"The translation: Bonjour", "Bonjour"},
		{"Translation: Bonjour", "Bonjour"},
		{"Sure, here's the translation: Bonjour", "Bonjour"},
		// A colon inside the sentence proper must survive.
		{"Note: les résultats sont là", "Note: les résultats sont là"},
	}

	for _, tt := range tests {
		if got := Clean(tt.input); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestClean_QuoteWrapping(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"Bonjour le monde"`, "Bonjour le monde"},
		{"'Hola mundo'", "Hola mundo"},
		{"«Привіт, світе»", "Привіт, світе"},
		{"“Hallo Welt”", "Hallo Welt"},
		// Interior quotes are content, not wrapping.
		{`He said "hello" to me`, `He said "hello" to me`},
		// Mismatched pair stays.
		{`"Bonjour'`, `"Bonjour'`},
	}

	for _, tt := range tests {
		if got := Clean(tt.input); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestClean_Combined(t *testing.T) {
	input := "<think>plan</think>\nHere's the translation: \"Bonjour le monde\""
	if got := Clean(input); got != "Bonjour le monde" {
		t.Errorf("Clean(%q) = %q", input, got)
	}
}

func TestClean_Whitespace(t *testing.T) {
	if got := Clean("  Bonjour  "); got != "Bonjour" {
		t.Errorf("Clean = %q", got)
	}
	if got := Clean(""); got != "" {
		t.Errorf("Clean(\"\") = %q", got)
	}
}
