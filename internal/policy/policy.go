// Package policy decides which backends translate a given language and
// which one evaluates the candidates. The table is hand-tuned per
// language; treat the model identifiers as opaque configuration data.
package policy

import "fmt"

// SourceKind discriminates the closed set of backend kinds a source can
// refer to.
type SourceKind int

const (
	// KindLLM is an OpenRouter chat-completion backend identified by model.
	KindLLM SourceKind = iota
	// KindDedicated is the purpose-built translation service. It never
	// evaluates.
	KindDedicated
)

// Source identifies one translation backend. Model is set only for
// KindLLM.
type Source struct {
	Kind  SourceKind
	Model string
}

func LLM(model string) Source {
	return Source{Kind: KindLLM, Model: model}
}

func Dedicated() Source {
	return Source{Kind: KindDedicated}
}

// Name is the stable identifier used in prompts, results, and logs.
func (s Source) Name() string {
	if s.Kind == KindDedicated {
		return "dedicated"
	}
	return s.Model
}

func (s Source) String() string {
	return s.Name()
}

// Selection is an ordered list of translation sources plus the single
// evaluator. The evaluator must be an LLM source.
type Selection struct {
	Translate []Source
	Evaluator Source
}

// Validate enforces the evaluator contract before any network call.
func (s Selection) Validate() error {
	if len(s.Translate) == 0 {
		return fmt.Errorf("selection has no translation sources")
	}
	if s.Evaluator.Kind != KindLLM {
		return fmt.Errorf("evaluator must be an LLM backend, got %s", s.Evaluator.Name())
	}
	return nil
}

// Model identifiers known empirically to translate well. Kept as constants
// so the table below reads as data.
const (
	gpt4o        = "openai/gpt-4o-2024-11-20"
	gpt41        = "openai/gpt-4.1"
	geminiFlash2 = "google/gemini-2.0-flash-001"
	llama3370b   = "meta-llama/llama-3.3-70b-instruct"
	sonnet35     = "anthropic/claude-3.5-sonnet"
	gemma327b    = "google/gemma-3-27b-it"
)
