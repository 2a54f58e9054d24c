package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shortlist-hq/shortlist-api/internal/llmjson"
)

// scriptedLLM replays canned responses per prompt call and records the
// prompts it was given.
type scriptedLLM struct {
	responses []string
	prompts   []string
	err       error
}

func (s *scriptedLLM) GenerateText(_ context.Context, prompt string, _ float32, _ int32) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	i := len(s.prompts) - 1
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	return s.responses[i], nil
}

func passthroughNode(name, key, value string) Node {
	return Node{
		Name:        name,
		BuildPrompt: func(State) (string, error) { return "prompt for " + name, nil },
		Parse: func(raw string) (Delta, error) {
			return Delta{key: value}, nil
		},
	}
}

func TestRunMergesStateAcrossStages(t *testing.T) {
	llm := &scriptedLLM{responses: []string{"ok"}}
	res := Run(context.Background(), llm, []Node{
		passthroughNode("first", "a", "1"),
		passthroughNode("second", "b", "2"),
	}, State{"seed": "s"})

	require.False(t, res.Failed)
	assert.Equal(t, []string{"first", "second"}, res.Completed)
	assert.Equal(t, "s", res.State["seed"])
	assert.Equal(t, "1", res.State["a"])
	assert.Equal(t, "2", res.State["b"])
	assert.Equal(t, 1, res.Attempts["first"])
}

func TestRunRetriesWithFailureFeedback(t *testing.T) {
	llm := &scriptedLLM{responses: []string{"garbage", `{"ok": true}`}}
	node := Node{
		Name:        "flaky",
		BuildPrompt: func(State) (string, error) { return "base prompt", nil },
		Parse: func(raw string) (Delta, error) {
			if raw != `{"ok": true}` {
				return nil, llmjson.Failf("ok", "payload was not the expected object")
			}
			return Delta{"done": true}, nil
		},
	}

	res := Run(context.Background(), llm, []Node{node}, nil)
	require.False(t, res.Failed)
	assert.Equal(t, 2, res.Attempts["flaky"])

	// the retry prompt carries the previous rejection reason
	require.Len(t, llm.prompts, 2)
	assert.Equal(t, "base prompt", llm.prompts[0])
	assert.Contains(t, llm.prompts[1], "previous response was rejected")
	assert.Contains(t, llm.prompts[1], "payload was not the expected object")
}

func TestRunRequiredNodeExhaustsAndHalts(t *testing.T) {
	llm := &scriptedLLM{responses: []string{"junk"}}
	bad := Node{
		Name:        "extract",
		Required:    true,
		BuildPrompt: func(State) (string, error) { return "p", nil },
		Parse: func(string) (Delta, error) {
			return nil, llmjson.Failf("skills", "always invalid")
		},
	}

	res := Run(context.Background(), llm, []Node{
		passthroughNode("warmup", "w", "1"),
		bad,
		passthroughNode("never", "n", "1"),
	}, nil)

	require.True(t, res.Failed)
	assert.Equal(t, "extract", res.FailedStage)
	assert.ErrorIs(t, res.Err, ErrExhausted)
	assert.Equal(t, DefaultMaxRetries+1, res.Attempts["extract"])

	// partial state from the completed stage survives
	assert.Equal(t, []string{"warmup"}, res.Completed)
	assert.Equal(t, "1", res.State["w"])
	assert.Nil(t, res.State["n"])

	var se *StageError
	require.ErrorAs(t, res.Err, &se)
	assert.Equal(t, "extract", se.Stage)
}

func TestRunDegradedFallback(t *testing.T) {
	llm := &scriptedLLM{responses: []string{"junk"}}
	node := Node{
		Name:        "optional",
		BuildPrompt: func(State) (string, error) { return "p", nil },
		Parse: func(string) (Delta, error) {
			return nil, llmjson.Failf("card", "nope")
		},
		Degraded: func(State, string) Delta {
			return Delta{"fallback": true}
		},
	}

	res := Run(context.Background(), llm, []Node{node}, nil)
	require.False(t, res.Failed)
	assert.Equal(t, true, res.State["fallback"])
	assert.Equal(t, []string{"optional"}, res.Degraded)
	assert.Equal(t, []string{"optional"}, res.Completed)
}

func TestRunTransportErrorHaltsImmediately(t *testing.T) {
	llm := &scriptedLLM{err: errors.New("upstream 503")}
	node := Node{
		Name:        "jd",
		Required:    true,
		BuildPrompt: func(State) (string, error) { return "p", nil },
		Parse:       func(string) (Delta, error) { return Delta{}, nil },
	}

	res := Run(context.Background(), llm, []Node{node}, nil)
	require.True(t, res.Failed)
	assert.Len(t, llm.prompts, 1, "no validation retry on transport errors")
	assert.Contains(t, res.ErrorMessage(), "upstream 503")
}

func TestRunDeterministicNodeNeverCallsLLM(t *testing.T) {
	llm := &scriptedLLM{responses: []string{"unused"}}
	node := Node{
		Name: "deterministic",
		Run: func(_ context.Context, s State) (Delta, error) {
			v, _ := s["in"].(int)
			return Delta{"out": v * 2}, nil
		},
	}

	res := Run(context.Background(), llm, []Node{node}, State{"in": 21})
	require.False(t, res.Failed)
	assert.Equal(t, 42, res.State["out"])
	assert.Empty(t, llm.prompts)
}

func TestRunNonValidationParseErrorIsFatal(t *testing.T) {
	llm := &scriptedLLM{responses: []string{"ok"}}
	node := Node{
		Name:        "strict",
		BuildPrompt: func(State) (string, error) { return "p", nil },
		Parse: func(string) (Delta, error) {
			return nil, fmt.Errorf("programming error")
		},
	}

	res := Run(context.Background(), llm, []Node{node}, nil)
	require.True(t, res.Failed)
	assert.Len(t, llm.prompts, 1, "only validation failures retry")
	assert.True(t, strings.Contains(res.ErrorMessage(), "programming error"))
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	llm := &scriptedLLM{responses: []string{"ok"}}
	res := Run(ctx, llm, []Node{passthroughNode("n", "k", "v")}, nil)
	require.True(t, res.Failed)
	assert.ErrorIs(t, res.Err, context.Canceled)
}
