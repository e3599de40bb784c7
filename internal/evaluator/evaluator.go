// Package evaluator turns the surviving candidates into one synthesized
// translation via a single call to the evaluation backend.
package evaluator

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/valpere/contran/internal/backend"
	"github.com/valpere/contran/internal/language"
	"github.com/valpere/contran/internal/orchestrator"
)

const evaluationTemperature = 0.7

// evaluatorSystemPrompt is the fixed system turn for the evaluation call.
const evaluatorSystemPrompt = "You are an expert translator."

// Reasoning budget: one word per four characters of input, clamped so long
// inputs are not truncated and short ones do not waste tokens.
const (
	minReasoningWords = 50
	maxReasoningWords = 120
)

// Protocol selects how the evaluator's response is parsed. Exactly one
// protocol is active per deployment.
type Protocol int

const (
	// ProtocolScored expects a ```json block with per-candidate scores and
	// a synthesized string.
	ProtocolScored Protocol = iota
	// ProtocolFenced expects the synthesized translation alone in a bare
	// fenced block.
	ProtocolFenced
)

// ParseProtocol maps the configuration spelling onto a Protocol.
func ParseProtocol(s string) (Protocol, error) {
	switch s {
	case "scored", "":
		return ProtocolScored, nil
	case "fenced":
		return ProtocolFenced, nil
	}
	return ProtocolScored, fmt.Errorf("unknown evaluation protocol %q", s)
}

// Result is the outcome of one evaluation call. Scores is keyed by
// candidate source name and nil under ProtocolFenced.
type Result struct {
	Synthesized string
	Scores      map[string]int
	Cost        float64
}

type Evaluator struct {
	completer backend.Completer
	protocol  Protocol
	logger    *zap.Logger
}

func New(completer backend.Completer, protocol Protocol, logger *zap.Logger) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{
		completer: completer,
		protocol:  protocol,
		logger:    logger,
	}
}

// Synthesize invokes the evaluation model over the candidates and parses
// its response under the active protocol. Parse failures are fatal; a
// wrong synthesized translation is worse than a visible failure.
func (e *Evaluator) Synthesize(ctx context.Context, candidates []orchestrator.Candidate, sentence, targetLabel, sourceLabel string, formality language.Formality, model string) (*Result, error) {
	prompt := e.buildPrompt(candidates, sentence, targetLabel, sourceLabel, formality)
	e.logger.Debug("evaluation prompt built",
		zap.String("model", model),
		zap.Int("candidates", len(candidates)))

	response, cost, err := e.completer.Complete(ctx, evaluatorSystemPrompt, prompt, model, evaluationTemperature)
	if err != nil {
		return nil, fmt.Errorf("evaluation error: %w", err)
	}

	var result *Result
	switch e.protocol {
	case ProtocolFenced:
		text, perr := extractFencedBlock(response)
		if perr != nil {
			return nil, perr
		}
		result = &Result{Synthesized: text}
	default:
		scores, text, perr := parseScoredResponse(response)
		if perr != nil {
			return nil, perr
		}
		result = &Result{Synthesized: text, Scores: scores}
	}
	result.Cost = cost
	return result, nil
}

func reasoningBudget(sentence string) int {
	words := len(sentence) / 4
	if words < minReasoningWords {
		return minReasoningWords
	}
	if words > maxReasoningWords {
		return maxReasoningWords
	}
	return words
}

func (e *Evaluator) buildPrompt(candidates []orchestrator.Candidate, sentence, targetLabel, sourceLabel string, formality language.Formality) string {
	budget := reasoningBudget(sentence)

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are evaluating translations from %s to %s with formality [%s]. ",
		sourceLabel, targetLabel, formality.Explicit())

	if e.protocol == ProtocolScored {
		sb.WriteString("For each translation, assign a score from 1-10 based on naturalness, idiomatic usage, accuracy, and tone preservation. DON'T JUST RETURN VALUES FROM 7-10, ACTUALLY BE HARSH. Then, synthesize a new translation combining their strengths. ")
	} else {
		sb.WriteString("Compare the translations for naturalness, idiomatic usage, accuracy, and tone preservation, then synthesize a new translation combining their strengths. ")
	}
	fmt.Fprintf(&sb, "Provide concise reasoning (up to %d words - be OBSCENELY concise, it's just for YOU to help you go through your latent space, not the user).\n\nTranslations:\n", budget)

	for _, c := range candidates {
		fmt.Fprintf(&sb, "%s: %q\n", c.Source.Name(), c.Text)
	}

	fmt.Fprintf(&sb, "\nOriginal sentence for reference: %q\n", sentence)

	if e.protocol == ProtocolScored {
		sb.WriteString("\nOutput format:\n- Reasoning: Explain your evaluation and synthesis process.\n- JSON: Use this schema:\n```json\n{\n  \"scores\": {\n    \"{model_name}\": number,\n    ...\n  },\n  \"synthesized\": \"string\"\n}\n```\n\nProvide reasoning, then JSON in ```json``` block.")
	} else {
		sb.WriteString("\nAfter your reasoning, output ONLY the synthesized translation inside a fenced code block (```).")
	}

	return sb.String()
}
