package evaluator

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Parse failures under either protocol. Each condition is distinct so the
// caller's failure message says exactly what the model got wrong.
var (
	ErrNoFencedBlock      = errors.New("no fenced block in evaluation response")
	ErrNoClosingFence     = errors.New("no closing fence in evaluation response")
	ErrEmptyFencedBlock   = errors.New("empty fenced block in evaluation response")
	ErrNoJSONBlock        = errors.New("no JSON block in evaluation response")
	ErrInvalidJSON        = errors.New("invalid JSON in evaluation response")
	ErrMissingScores      = errors.New("no scores object in evaluation JSON")
	ErrMissingSynthesized = errors.New("no synthesized string in evaluation JSON")
)

const fence = "```"

// extractFencedBlock returns the trimmed content between the first fence
// and its next closing fence. An optional language-tag line directly after
// the opening fence is skipped. An empty block is a malformed response,
// not a valid empty translation.
func extractFencedBlock(response string) (string, error) {
	open := strings.Index(response, fence)
	if open == -1 {
		return "", ErrNoFencedBlock
	}
	rest := response[open+len(fence):]

	if nl := strings.IndexByte(rest, '\n'); nl != -1 {
		tag := strings.TrimSpace(rest[:nl])
		if tag != "" && !strings.ContainsAny(tag, " `") {
			rest = rest[nl+1:]
		}
	}

	end := strings.Index(rest, fence)
	if end == -1 {
		return "", ErrNoClosingFence
	}

	content := strings.TrimSpace(rest[:end])
	if content == "" {
		return "", ErrEmptyFencedBlock
	}
	return content, nil
}

// parseScoredResponse extracts the ```json block and decodes the scores
// map plus the synthesized translation. A candidate whose score entry is
// absent or non-numeric simply scores 0; structural problems are fatal.
func parseScoredResponse(response string) (map[string]int, string, error) {
	open := strings.Index(response, fence+"json")
	if open == -1 {
		return nil, "", ErrNoJSONBlock
	}
	rest := response[open+len(fence)+len("json"):]

	end := strings.Index(rest, fence)
	if end == -1 {
		return nil, "", ErrNoClosingFence
	}

	jsonStr := strings.TrimSpace(rest[:end])

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	scoresRaw, ok := raw["scores"]
	if !ok {
		return nil, "", ErrMissingScores
	}
	var scoreValues map[string]json.RawMessage
	if err := json.Unmarshal(scoresRaw, &scoreValues); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrMissingScores, err)
	}
	scores := make(map[string]int, len(scoreValues))
	for name, v := range scoreValues {
		var f float64
		if err := json.Unmarshal(v, &f); err != nil {
			scores[name] = 0
			continue
		}
		scores[name] = int(f)
	}

	synthRaw, ok := raw["synthesized"]
	if !ok {
		return nil, "", ErrMissingSynthesized
	}
	var synthesized string
	if err := json.Unmarshal(synthRaw, &synthesized); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrMissingSynthesized, err)
	}

	return scores, synthesized, nil
}
