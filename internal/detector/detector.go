// Package detector guesses the language of an input sentence. It only
// feeds the optional source-language hint; the pipeline never depends on
// detection succeeding.
package detector

import (
	lingua "github.com/pemistahl/lingua-go"

	"github.com/valpere/contran/internal/language"
)

// Detector wraps a lingua language detector. Building one is expensive;
// reuse the instance.
type Detector struct {
	detector lingua.LanguageDetector
}

func New() *Detector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromAllLanguages().
		Build()

	return &Detector{detector: detector}
}

// Detect maps the detected language into the catalog. Returns Unknown,
// false for empty input, ambiguous text, or languages outside the catalog.
func (d *Detector) Detect(text string) (language.Language, bool) {
	if text == "" {
		return language.Unknown, false
	}
	detected, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return language.Unknown, false
	}
	return language.Parse(detected.IsoCode639_1().String())
}
