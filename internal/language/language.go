// Package language is the catalog of languages the pipeline can translate
// between. The set is closed; Unknown is the sentinel for an undeclared
// source language.
package language

import "strings"

type Language int

const (
	Unknown Language = iota
	Arabic
	ArabicStandard
	Bulgarian
	Chinese
	ChineseTraditional
	Croatian
	Czech
	Danish
	Dutch
	English
	Esperanto
	Estonian
	Finnish
	French
	German
	Greek
	Hebrew
	Hindi
	Hungarian
	Indonesian
	Italian
	Japanese
	Korean
	LatinClassical
	Latvian
	Lithuanian
	Norwegian
	Persian
	Polish
	PortugueseBrazil
	PortuguesePortugal
	Romanian
	Russian
	Slovak
	Slovenian
	Spanish
	Swedish
	Turkish
	Ukrainian
	Vietnamese
)

type languageInfo struct {
	label     string // human-readable form embedded in prompts
	iso       string // ISO 639-1 code, empty when none applies
	deeplCode string // DeepL target_lang code, empty when unsupported
}

var languages = map[Language]languageInfo{
	Unknown:            {label: "an unspecified language"},
	Arabic:             {label: "Arabic", iso: "ar", deeplCode: "AR"},
	ArabicStandard:     {label: "Arabic (Standard)", iso: "ar", deeplCode: "AR"},
	Bulgarian:          {label: "Bulgarian", iso: "bg", deeplCode: "BG"},
	Chinese:            {label: "Chinese (Simplified)", iso: "zh", deeplCode: "ZH"},
	ChineseTraditional: {label: "Chinese (Traditional)", iso: "zh"},
	Croatian:           {label: "Croatian", iso: "hr"},
	Czech:              {label: "Czech", iso: "cs", deeplCode: "CS"},
	Danish:             {label: "Danish", iso: "da", deeplCode: "DA"},
	Dutch:              {label: "Dutch", iso: "nl", deeplCode: "NL"},
	English:            {label: "English", iso: "en", deeplCode: "EN"},
	Esperanto:          {label: "Esperanto", iso: "eo"},
	Estonian:           {label: "Estonian", iso: "et", deeplCode: "ET"},
	Finnish:            {label: "Finnish", iso: "fi", deeplCode: "FI"},
	French:             {label: "French", iso: "fr", deeplCode: "FR"},
	German:             {label: "German", iso: "de", deeplCode: "DE"},
	Greek:              {label: "Greek", iso: "el", deeplCode: "EL"},
	Hebrew:             {label: "Hebrew", iso: "he"},
	Hindi:              {label: "Hindi", iso: "hi"},
	Hungarian:          {label: "Hungarian", iso: "hu", deeplCode: "HU"},
	Indonesian:         {label: "Indonesian", iso: "id", deeplCode: "ID"},
	Italian:            {label: "Italian", iso: "it", deeplCode: "IT"},
	Japanese:           {label: "Japanese", iso: "ja", deeplCode: "JA"},
	Korean:             {label: "Korean", iso: "ko", deeplCode: "KO"},
	LatinClassical:     {label: "Latin (Classical)", iso: "la"},
	Latvian:            {label: "Latvian", iso: "lv", deeplCode: "LV"},
	Lithuanian:         {label: "Lithuanian", iso: "lt", deeplCode: "LT"},
	Norwegian:          {label: "Norwegian", iso: "no", deeplCode: "NB"},
	Persian:            {label: "Persian", iso: "fa"},
	Polish:             {label: "Polish", iso: "pl", deeplCode: "PL"},
	PortugueseBrazil:   {label: "Portuguese (Brazil)", iso: "pt", deeplCode: "PT-BR"},
	PortuguesePortugal: {label: "Portuguese (Portugal)", iso: "pt", deeplCode: "PT-PT"},
	Romanian:           {label: "Romanian", iso: "ro", deeplCode: "RO"},
	Russian:            {label: "Russian", iso: "ru", deeplCode: "RU"},
	Slovak:             {label: "Slovak", iso: "sk", deeplCode: "SK"},
	Slovenian:          {label: "Slovenian", iso: "sl", deeplCode: "SL"},
	Spanish:            {label: "Spanish", iso: "es", deeplCode: "ES"},
	Swedish:            {label: "Swedish", iso: "sv", deeplCode: "SV"},
	Turkish:            {label: "Turkish", iso: "tr", deeplCode: "TR"},
	Ukrainian:          {label: "Ukrainian", iso: "uk", deeplCode: "UK"},
	Vietnamese:         {label: "Vietnamese", iso: "vi"},
}

// LLMFormat returns the human-readable label used when the language is
// embedded in a prompt.
func (l Language) LLMFormat() string {
	if info, ok := languages[l]; ok {
		return info.label
	}
	return languages[Unknown].label
}

func (l Language) String() string {
	return l.LLMFormat()
}

// ISO639 returns the ISO 639-1 code, or "" for Unknown and languages
// without one.
func (l Language) ISO639() string {
	return languages[l].iso
}

// DeepLCode returns the DeepL API language code, or "" when DeepL does not
// support the language.
func (l Language) DeepLCode() string {
	return languages[l].deeplCode
}

// SupportsDeepL reports whether the dedicated translation service can
// target this language.
func (l Language) SupportsDeepL() bool {
	return languages[l].deeplCode != ""
}

// All returns every catalog language except Unknown, in declaration order.
func All() []Language {
	all := make([]Language, 0, len(languages)-1)
	for l := Arabic; l <= Vietnamese; l++ {
		all = append(all, l)
	}
	return all
}

// Parse resolves a language from its label, enum-style name, or ISO 639-1
// code. Matching is case-insensitive. Returns Unknown, false when nothing
// matches.
func Parse(s string) (Language, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Unknown, false
	}
	// Declaration order keeps matching deterministic for ISO codes shared
	// by variants (zh, pt, ar).
	for l := Arabic; l <= Vietnamese; l++ {
		info := languages[l]
		if strings.EqualFold(s, info.label) || (info.iso != "" && strings.EqualFold(s, info.iso)) {
			return l, true
		}
	}
	// Labels with a parenthesised qualifier also match their bare form.
	switch strings.ToLower(s) {
	case "chinese":
		return Chinese, true
	case "portuguese":
		return PortuguesePortugal, true
	case "latin":
		return LatinClassical, true
	case "norwegian bokmål", "nb":
		return Norwegian, true
	}
	return Unknown, false
}
