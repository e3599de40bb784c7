package policy

import "github.com/valpere/contran/internal/language"

// Select returns the translation sources and evaluator for a language.
// lang is the language the choice is optimised for: the target when
// translating out of English, otherwise the (possibly Unknown) source.
//
// dedicatedEnabled substitutes the dedicated translation service into the
// candidate list for the languages it is known to handle well. The
// substitution is an explicit per-deployment toggle and defaults to off;
// the dedicated provider's terms may restrict this use.
//
// Select is pure: identical inputs always yield the identical ordered
// selection.
func Select(lang language.Language, dedicatedEnabled bool) Selection {
	switch lang {
	case language.Chinese, language.ChineseTraditional:
		return Selection{
			Translate: []Source{LLM(gpt4o), LLM(gpt41), LLM(geminiFlash2)},
			Evaluator: LLM(gpt4o),
		}
	case language.Esperanto:
		return Selection{
			Translate: []Source{LLM(gpt41), LLM(sonnet35), LLM(gpt4o)},
			Evaluator: LLM(gpt41),
		}
	case language.French:
		if dedicatedEnabled {
			return Selection{
				Translate: []Source{Dedicated(), LLM(gpt41), LLM(gpt4o)},
				Evaluator: LLM(gpt41),
			}
		}
		return Selection{
			Translate: []Source{LLM(llama3370b), LLM(gpt41), LLM(gpt4o)},
			Evaluator: LLM(gpt41),
		}
	case language.German:
		return Selection{
			Translate: []Source{LLM(gpt41), LLM(gpt4o), LLM(gemma327b)},
			Evaluator: LLM(gpt41),
		}
	case language.Hungarian:
		return Selection{
			Translate: []Source{LLM(gpt41), LLM(gpt4o), LLM(sonnet35)},
			Evaluator: LLM(gpt41),
		}
	case language.Italian:
		return Selection{
			Translate: []Source{LLM(gpt41), LLM(gpt4o), LLM(gemma327b)},
			Evaluator: LLM(gpt41),
		}
	case language.Japanese:
		if dedicatedEnabled {
			return Selection{
				Translate: []Source{LLM(gpt41), LLM(gpt4o), Dedicated()},
				Evaluator: LLM(gpt41),
			}
		}
		return Selection{
			Translate: []Source{LLM(gpt41), LLM(gpt4o), LLM(sonnet35)},
			Evaluator: LLM(gpt41),
		}
	case language.Korean:
		return Selection{
			Translate: []Source{LLM(gpt41), LLM(sonnet35), LLM(gemma327b)},
			Evaluator: LLM(gpt41),
		}
	case language.Spanish:
		if dedicatedEnabled {
			return Selection{
				Translate: []Source{LLM(gpt41), LLM(sonnet35), Dedicated()},
				Evaluator: LLM(gpt41),
			}
		}
		return Selection{
			Translate: []Source{LLM(gpt41), LLM(sonnet35), LLM(gpt4o)},
			Evaluator: LLM(gpt41),
		}
	case language.Swedish:
		if dedicatedEnabled {
			return Selection{
				Translate: []Source{Dedicated(), LLM(gpt4o), LLM(gpt41)},
				Evaluator: LLM(gpt41),
			}
		}
		return Selection{
			Translate: []Source{LLM(llama3370b), LLM(gpt4o), LLM(gpt41)},
			Evaluator: LLM(gpt41),
		}
	case language.Ukrainian:
		return Selection{
			Translate: []Source{LLM(gpt41), LLM(geminiFlash2), LLM(gpt4o)},
			Evaluator: LLM(gpt41),
		}
	case language.Vietnamese:
		return Selection{
			Translate: []Source{LLM(gpt41), LLM(gemma327b), LLM(gpt4o)},
			Evaluator: LLM(gpt41),
		}
	default:
		if dedicatedEnabled && lang.SupportsDeepL() {
			return Selection{
				Translate: []Source{LLM(gpt41), Dedicated(), LLM(gpt4o)},
				Evaluator: LLM(gpt41),
			}
		}
		return Selection{
			Translate: []Source{LLM(gpt41), LLM(gemma327b), LLM(gpt4o)},
			Evaluator: LLM(gpt41),
		}
	}
}
