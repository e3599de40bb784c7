// Package orchestrator fans one translation request out to every selected
// backend concurrently and collects the surviving candidates.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/valpere/contran/internal/backend"
	"github.com/valpere/contran/internal/language"
	"github.com/valpere/contran/internal/policy"
	"github.com/valpere/contran/internal/postprocess"
)

// RefusalSentinel is the marker every LLM backend is instructed to return
// instead of a translation when it refuses. Candidates containing it are
// dropped without being treated as branch errors.
const RefusalSentinel = "483"

// translationTemperature is used for every fan-out completion call.
const translationTemperature = 0.7

// ErrNoCandidates is returned when every branch failed or was filtered.
var ErrNoCandidates = errors.New("no valid translations after filtering")

// Candidate is one surviving translation from a single backend.
type Candidate struct {
	Source  policy.Source
	Text    string
	Latency time.Duration
	Cost    float64
}

// Config bounds each branch independently; one slow backend must not stall
// the whole request.
type Config struct {
	Timeout time.Duration
}

// Translator issues the concurrent fan-out. The dedicated client may be
// nil when the deployment has not enabled it.
type Translator struct {
	completer backend.Completer
	dedicated backend.DedicatedTranslator
	config    Config
	logger    *zap.Logger
}

func New(completer backend.Completer, dedicated backend.DedicatedTranslator, config Config, logger *zap.Logger) *Translator {
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Translator{
		completer: completer,
		dedicated: dedicated,
		config:    config,
		logger:    logger,
	}
}

// Request carries the shared, read-only inputs for every branch.
type Request struct {
	Sentence     string
	SystemPrompt string
	Target       language.Language
	Source       language.Language
	Formality    language.Formality
}

// TranslateAll runs one branch per source concurrently and returns the
// surviving candidates in source order plus the total billed cost. A
// branch failure excludes only that branch; candidates containing the
// refusal sentinel are dropped silently but still billed. The error is
// non-nil only when zero branches survive.
func (t *Translator) TranslateAll(ctx context.Context, req Request, sources []policy.Source) ([]Candidate, float64, error) {
	type branchResult struct {
		index int
		cand  Candidate
		err   error
	}

	results := make(chan branchResult, len(sources))

	for i, src := range sources {
		go func(index int, source policy.Source) {
			branchCtx, cancel := context.WithTimeout(ctx, t.config.Timeout)
			defer cancel()

			start := time.Now()
			text, cost, err := t.translateOne(branchCtx, source, req)
			results <- branchResult{
				index: index,
				cand: Candidate{
					Source:  source,
					Text:    text,
					Latency: time.Since(start),
					Cost:    cost,
				},
				err: err,
			}
		}(i, src)
	}

	// Re-sequence to source order regardless of completion order.
	ordered := make([]*branchResult, len(sources))
	for range sources {
		rc := <-results
		rcCopy := rc
		ordered[rc.index] = &rcCopy
	}

	var candidates []Candidate
	var totalCost float64
	for _, rc := range ordered {
		if rc.err != nil {
			t.logger.Error("translation branch failed",
				zap.String("source", rc.cand.Source.Name()),
				zap.Error(rc.err))
			continue
		}
		totalCost += rc.cand.Cost
		if strings.Contains(rc.cand.Text, RefusalSentinel) {
			t.logger.Warn("dropping refused translation",
				zap.String("source", rc.cand.Source.Name()),
				zap.String("text", rc.cand.Text))
			continue
		}
		t.logger.Info("translation received",
			zap.String("source", rc.cand.Source.Name()),
			zap.Duration("latency", rc.cand.Latency),
			zap.Float64("cost_usd", rc.cand.Cost))
		candidates = append(candidates, rc.cand)
	}

	if len(candidates) == 0 {
		return nil, totalCost, ErrNoCandidates
	}
	return candidates, totalCost, nil
}

func (t *Translator) translateOne(ctx context.Context, source policy.Source, req Request) (string, float64, error) {
	switch source.Kind {
	case policy.KindLLM:
		text, cost, err := t.completer.Complete(ctx, req.SystemPrompt, req.Sentence, source.Model, translationTemperature)
		if err != nil {
			return "", 0, fmt.Errorf("completion error for %s: %w", source.Model, err)
		}
		return postprocess.Clean(text), cost, nil
	case policy.KindDedicated:
		if t.dedicated == nil {
			return "", 0, fmt.Errorf("dedicated translation service selected but not configured")
		}
		// The dedicated service reports no per-call dollar cost.
		text, err := t.dedicated.Translate(ctx, req.Sentence, req.Target, req.Source, req.Formality)
		if err != nil {
			return "", 0, fmt.Errorf("%s error: %w", t.dedicated.Name(), err)
		}
		return text, 0, nil
	default:
		return "", 0, fmt.Errorf("unknown source kind %d", source.Kind)
	}
}
