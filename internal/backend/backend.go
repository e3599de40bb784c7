// Package backend holds the clients for the external translation and
// completion providers. The pipeline consumes them through two narrow
// contracts: Completer for LLM chat backends and DedicatedTranslator for
// the purpose-built translation API.
package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/valpere/contran/internal/language"
)

// Completer is one LLM completion call. cost is the dollar amount the
// provider reports for that single call.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt, model string, temperature float64) (text string, cost float64, err error)
}

// DedicatedTranslator is the optional purpose-built translation service.
// It produces text directly and cannot act as an evaluator.
type DedicatedTranslator interface {
	Name() string
	Translate(ctx context.Context, text string, target, source language.Language, formality language.Formality) (string, error)
}

// ErrEmptyResponse marks a well-formed provider reply that carried no
// usable content.
var ErrEmptyResponse = errors.New("empty response from provider")

// StatusError is a non-success HTTP status from a provider, with whatever
// message the provider supplied.
type StatusError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s returned status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.StatusCode, e.Message)
}
