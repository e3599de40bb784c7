package language

// Formality is the stylistic register requested for a translation.
type Formality int

const (
	NormalFormality Formality = iota
	LessFormal
	MoreFormal
)

// PromptClause is the fragment appended to the translation system prompt.
// Normal formality adds nothing.
func (f Formality) PromptClause() string {
	switch f {
	case LessFormal:
		return "; Be informal"
	case MoreFormal:
		return "; Be formal"
	default:
		return ""
	}
}

// Explicit is the spelled-out form used in the evaluation prompt.
func (f Formality) Explicit() string {
	switch f {
	case LessFormal:
		return "Less formal"
	case MoreFormal:
		return "More formal"
	default:
		return "Normal, standard formality"
	}
}

// DeepLParam maps the register onto DeepL's formality parameter. Normal
// formality omits the parameter.
func (f Formality) DeepLParam() string {
	switch f {
	case LessFormal:
		return "less"
	case MoreFormal:
		return "more"
	default:
		return ""
	}
}

func (f Formality) String() string {
	switch f {
	case LessFormal:
		return "less"
	case MoreFormal:
		return "more"
	default:
		return "normal"
	}
}

// ParseFormality accepts the CLI spellings: less/informal, more/formal,
// normal/"" and returns false for anything else.
func ParseFormality(s string) (Formality, bool) {
	switch s {
	case "less", "informal":
		return LessFormal, true
	case "more", "formal":
		return MoreFormal, true
	case "normal", "":
		return NormalFormality, true
	}
	return NormalFormality, false
}
