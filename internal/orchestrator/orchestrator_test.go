package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/valpere/contran/internal/language"
	"github.com/valpere/contran/internal/policy"
)

type mockReply struct {
	text  string
	cost  float64
	err   error
	delay time.Duration
}

// mockCompleter answers per model from a fixed table. Read-only after
// construction, safe for the concurrent fan-out.
type mockCompleter struct {
	replies map[string]mockReply
}

func (m *mockCompleter) Complete(ctx context.Context, systemPrompt, userPrompt, model string, temperature float64) (string, float64, error) {
	reply, ok := m.replies[model]
	if !ok {
		return "", 0, fmt.Errorf("unexpected model %s", model)
	}
	if reply.delay > 0 {
		select {
		case <-time.After(reply.delay):
		case <-ctx.Done():
			return "", 0, ctx.Err()
		}
	}
	return reply.text, reply.cost, reply.err
}

type mockDedicated struct {
	text string
	err  error
}

func (m *mockDedicated) Name() string { return "mock" }

func (m *mockDedicated) Translate(ctx context.Context, text string, target, source language.Language, formality language.Formality) (string, error) {
	return m.text, m.err
}

func testRequest() Request {
	return Request{
		Sentence:     "Hello, world.",
		SystemPrompt: "translate",
		Target:       language.Spanish,
		Source:       language.English,
	}
}

func TestTranslateAll_PreservesSourceOrder(t *testing.T) {
	// The slowest backend comes first; the result order must still follow
	// the source order, not the completion order.
	completer := &mockCompleter{replies: map[string]mockReply{
		"slow":   {text: "uno", cost: 0.001, delay: 50 * time.Millisecond},
		"medium": {text: "dos", cost: 0.002, delay: 20 * time.Millisecond},
		"fast":   {text: "tres", cost: 0.003},
	}}

	tr := New(completer, nil, Config{}, nil)
	sources := []policy.Source{policy.LLM("slow"), policy.LLM("medium"), policy.LLM("fast")}

	candidates, totalCost, err := tr.TranslateAll(context.Background(), testRequest(), sources)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(candidates))
	}
	for i, want := range []string{"uno", "dos", "tres"} {
		if candidates[i].Text != want {
			t.Errorf("candidate %d = %q, want %q", i, candidates[i].Text, want)
		}
	}
	if wantCost := 0.006; totalCost < wantCost-1e-9 || totalCost > wantCost+1e-9 {
		t.Errorf("total cost = %v, want %v", totalCost, wantCost)
	}
}

func TestTranslateAll_DropsRefusals(t *testing.T) {
	completer := &mockCompleter{replies: map[string]mockReply{
		"a": {text: "Hola mundo", cost: 0.001},
		"b": {text: RefusalSentinel, cost: 0.002},
		"c": {text: "I must refuse: 483", cost: 0.003},
	}}

	tr := New(completer, nil, Config{}, nil)
	sources := []policy.Source{policy.LLM("a"), policy.LLM("b"), policy.LLM("c")}

	candidates, totalCost, err := tr.TranslateAll(context.Background(), testRequest(), sources)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if candidates[0].Text != "Hola mundo" {
		t.Errorf("surviving candidate = %q", candidates[0].Text)
	}
	// Refused branches still cost money.
	if wantCost := 0.006; totalCost < wantCost-1e-9 || totalCost > wantCost+1e-9 {
		t.Errorf("total cost = %v, want %v", totalCost, wantCost)
	}
}

func TestTranslateAll_ToleratesBranchFailures(t *testing.T) {
	completer := &mockCompleter{replies: map[string]mockReply{
		"ok":     {text: "Bonjour", cost: 0.001},
		"broken": {err: errors.New("boom")},
	}}

	tr := New(completer, nil, Config{}, nil)
	sources := []policy.Source{policy.LLM("broken"), policy.LLM("ok")}

	candidates, totalCost, err := tr.TranslateAll(context.Background(), testRequest(), sources)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 1 || candidates[0].Text != "Bonjour" {
		t.Fatalf("expected only the healthy branch, got %+v", candidates)
	}
	if wantCost := 0.001; totalCost < wantCost-1e-9 || totalCost > wantCost+1e-9 {
		t.Errorf("total cost = %v, want %v", totalCost, wantCost)
	}
}

func TestTranslateAll_AllBranchesFail(t *testing.T) {
	completer := &mockCompleter{replies: map[string]mockReply{
		"a": {err: errors.New("down")},
		"b": {err: errors.New("down")},
	}}

	tr := New(completer, nil, Config{}, nil)
	sources := []policy.Source{policy.LLM("a"), policy.LLM("b")}

	_, _, err := tr.TranslateAll(context.Background(), testRequest(), sources)
	if !errors.Is(err, ErrNoCandidates) {
		t.Errorf("expected ErrNoCandidates, got %v", err)
	}
}

func TestTranslateAll_AllRefused(t *testing.T) {
	completer := &mockCompleter{replies: map[string]mockReply{
		"a": {text: RefusalSentinel, cost: 0.001},
		"b": {text: RefusalSentinel, cost: 0.002},
	}}

	tr := New(completer, nil, Config{}, nil)
	sources := []policy.Source{policy.LLM("a"), policy.LLM("b")}

	_, totalCost, err := tr.TranslateAll(context.Background(), testRequest(), sources)
	if !errors.Is(err, ErrNoCandidates) {
		t.Errorf("expected ErrNoCandidates, got %v", err)
	}
	if wantCost := 0.003; totalCost < wantCost-1e-9 || totalCost > wantCost+1e-9 {
		t.Errorf("total cost = %v, want %v", totalCost, wantCost)
	}
}

func TestTranslateAll_DedicatedBranch(t *testing.T) {
	completer := &mockCompleter{replies: map[string]mockReply{
		"llm": {text: "Hej världen", cost: 0.001},
	}}
	dedicated := &mockDedicated{text: "Hej, världen"}

	tr := New(completer, dedicated, Config{}, nil)
	sources := []policy.Source{policy.Dedicated(), policy.LLM("llm")}

	candidates, totalCost, err := tr.TranslateAll(context.Background(), testRequest(), sources)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].Text != "Hej, världen" {
		t.Errorf("dedicated candidate = %q", candidates[0].Text)
	}
	if candidates[0].Cost != 0 {
		t.Errorf("dedicated branch cost = %v, want 0", candidates[0].Cost)
	}
	if wantCost := 0.001; totalCost < wantCost-1e-9 || totalCost > wantCost+1e-9 {
		t.Errorf("total cost = %v, want %v", totalCost, wantCost)
	}
}

func TestTranslateAll_DedicatedNotConfigured(t *testing.T) {
	completer := &mockCompleter{replies: map[string]mockReply{
		"llm": {text: "ok", cost: 0.001},
	}}

	tr := New(completer, nil, Config{}, nil)
	sources := []policy.Source{policy.Dedicated(), policy.LLM("llm")}

	// The misconfigured branch fails; the LLM branch still survives.
	candidates, _, err := tr.TranslateAll(context.Background(), testRequest(), sources)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 1 || candidates[0].Text != "ok" {
		t.Fatalf("expected only the LLM branch, got %+v", candidates)
	}
}

func TestTranslateAll_BranchTimeout(t *testing.T) {
	completer := &mockCompleter{replies: map[string]mockReply{
		"hung": {text: "never", delay: time.Second},
		"fast": {text: "done", cost: 0.001},
	}}

	tr := New(completer, nil, Config{Timeout: 20 * time.Millisecond}, nil)
	sources := []policy.Source{policy.LLM("hung"), policy.LLM("fast")}

	candidates, _, err := tr.TranslateAll(context.Background(), testRequest(), sources)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 1 || candidates[0].Text != "done" {
		t.Fatalf("expected only the fast branch, got %+v", candidates)
	}
}

func TestTranslateAll_CleansLLMOutput(t *testing.T) {
	completer := &mockCompleter{replies: map[string]mockReply{
		"chatty": {text: "<think>hmm</think>\n\"Hola mundo\"", cost: 0.001},
	}}

	tr := New(completer, nil, Config{}, nil)
	candidates, _, err := tr.TranslateAll(context.Background(), testRequest(), []policy.Source{policy.LLM("chatty")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if candidates[0].Text != "Hola mundo" {
		t.Errorf("cleaned candidate = %q, want %q", candidates[0].Text, "Hola mundo")
	}
}
