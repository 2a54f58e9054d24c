// Package pipeline sequences extraction stages over an LLM. Each node is
// one prompt-call-parse unit; the orchestrator runs nodes strictly in
// order, feeding every node the merged outputs of the ones before it.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shortlist-hq/shortlist-api/internal/llmjson"
)

// ErrExhausted reports that a required node could not produce a valid
// payload within its retry budget.
var ErrExhausted = errors.New("extraction retries exhausted")

// StageError wraps the failure of a named stage.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %q failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// DefaultMaxRetries is the validation retry budget per node, on top of
// the first attempt.
const DefaultMaxRetries = 2

// LLM is the one call the pipeline needs from a provider.
type LLM interface {
	GenerateText(ctx context.Context, prompt string, temperature float32, maxTokens int32) (string, error)
}

// State is the shared context flowing through a pipeline run. Nodes read
// the keys they need and return deltas to merge back.
type State map[string]any

// Delta is a node's contribution to the state.
type Delta map[string]any

// Node is one stage. LLM-backed nodes set BuildPrompt/Parse; fully
// deterministic nodes set Run instead and are never retried.
type Node struct {
	Name        string
	Required    bool // exhaustion halts the pipeline instead of degrading
	MaxRetries  int  // validation retries; 0 means DefaultMaxRetries
	Temperature float32
	MaxTokens   int32

	BuildPrompt func(s State) (string, error)
	// Parse validates the raw response. Returning *llmjson.ValidationFailure
	// triggers a retry with the failure reason fed back into the prompt.
	Parse func(raw string) (Delta, error)
	// Degraded produces the partial fallback payload once retries are
	// exhausted on a non-required node. raw is the last model response.
	Degraded func(s State, raw string) Delta

	Run func(ctx context.Context, s State) (Delta, error)
}

// Result captures a pipeline run: the merged state, which stages
// completed, per-stage wall-clock timings, and the first failure if any.
// Completed stage outputs are always preserved, failure or not.
type Result struct {
	State     State
	Completed []string
	Degraded  []string
	StageMs   map[string]int64
	Attempts  map[string]int
	TotalMs   int64

	Failed      bool
	FailedStage string
	Err         error
}

// ErrorMessage renders the failure for persistence; empty when the run
// succeeded.
func (r *Result) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Run executes nodes strictly in order. A required node exhausting its
// retries (or an LLM transport failure) halts the chain; everything
// computed before the failing stage stays in the result.
func Run(ctx context.Context, llm LLM, nodes []Node, initial State) *Result {
	st := State{}
	for k, v := range initial {
		st[k] = v
	}
	res := &Result{
		State:    st,
		StageMs:  make(map[string]int64, len(nodes)),
		Attempts: make(map[string]int, len(nodes)),
	}

	start := time.Now()
	for _, node := range nodes {
		stageStart := time.Now()
		delta, err := runNode(ctx, llm, node, st, res)
		res.StageMs[node.Name] = time.Since(stageStart).Milliseconds()
		if err != nil {
			res.Failed = true
			res.FailedStage = node.Name
			res.Err = &StageError{Stage: node.Name, Err: err}
			log.Printf("pipeline halted at stage %s: %v", node.Name, err)
			break
		}
		for k, v := range delta {
			st[k] = v
		}
		res.Completed = append(res.Completed, node.Name)
	}
	res.TotalMs = time.Since(start).Milliseconds()
	return res
}

func runNode(ctx context.Context, llm LLM, node Node, st State, res *Result) (Delta, error) {
	if node.Run != nil {
		res.Attempts[node.Name] = 1
		return node.Run(ctx, st)
	}

	basePrompt, err := node.BuildPrompt(st)
	if err != nil {
		return nil, err
	}

	retries := node.MaxRetries
	if retries <= 0 {
		retries = DefaultMaxRetries
	}

	var lastRaw string
	var lastFailure error
	for attempt := 0; attempt <= retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res.Attempts[node.Name] = attempt + 1

		prompt := basePrompt
		if lastFailure != nil {
			prompt = retryPrompt(basePrompt, lastFailure)
		}

		raw, err := llm.GenerateText(ctx, prompt, node.Temperature, node.MaxTokens)
		if err != nil {
			// Transport-level failure: the provider already retried
			// internally, nothing left to do at this layer.
			return nil, err
		}
		lastRaw = raw

		delta, err := node.Parse(raw)
		if err == nil {
			return delta, nil
		}

		var vf *llmjson.ValidationFailure
		if !errors.As(err, &vf) {
			return nil, err
		}
		lastFailure = vf
		log.Printf("stage %s attempt %d/%d rejected: %v", node.Name, attempt+1, retries+1, vf)
	}

	if node.Required || node.Degraded == nil {
		return nil, fmt.Errorf("%w: %v", ErrExhausted, lastFailure)
	}
	log.Printf("stage %s degraded after %d attempts: %v", node.Name, retries+1, lastFailure)
	res.Degraded = append(res.Degraded, node.Name)
	return node.Degraded(st, lastRaw), nil
}

func retryPrompt(base string, failure error) string {
	return base + fmt.Sprintf(
		"\n\nYour previous response was rejected: %v.\nReturn ONLY the JSON object described above, with no markdown fences, no commentary, and no surrounding text.",
		failure,
	)
}
