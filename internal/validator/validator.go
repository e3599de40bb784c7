// Package validator checks whether a synthesized translation appears to be
// written in the requested target language. The check is advisory: the CLI
// warns on a mismatch but never fails the run over it.
package validator

import (
	"fmt"
	"strings"

	"github.com/valpere/contran/internal/detector"
	"github.com/valpere/contran/internal/language"
)

// minValidationLength is the minimum rune count required to attempt
// detection. Shorter texts produce unreliable results and pass unchecked.
const minValidationLength = 20

type Validator struct {
	det *detector.Detector
}

func New() *Validator {
	return &Validator{det: detector.New()}
}

// IsValid returns true when text appears to be written in target. Short or
// ambiguous texts pass without error; an empty text never does.
func (v *Validator) IsValid(text string, target language.Language) (bool, error) {
	if target == language.Unknown || target.ISO639() == "" {
		return true, nil
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return false, fmt.Errorf("translation is empty")
	}

	if len([]rune(text)) < minValidationLength {
		return true, nil
	}

	detected, ok := v.det.Detect(text)
	if !ok {
		return true, nil
	}

	if !strings.EqualFold(detected.ISO639(), target.ISO639()) {
		return false, fmt.Errorf("expected %s but detected %s", target.LLMFormat(), detected.LLMFormat())
	}

	return true, nil
}
