// Package llm wraps the model backend behind a small Completer interface
// (spec.md explicitly scopes out the LLM backend and prompt templates — this
// package is the seam a real backend plugs into, not the backend itself).
// Grounded on Simon-Peleska-werewolf-go's Storyteller interface: a single
// narrow method, a provider-specific implementation behind it, and a nil/no-op
// fallback when unconfigured.
package llm

import (
	"context"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// Completer is the seam every Policy implementation calls through. system is
// the role/situation framing, prompt is the concrete ask (speak, vote,
// night-act, reflect); thinking-mode output, if any, is expected to already
// be stripped by the time the string is returned (see extract.go).
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// OllamaCompleter is the default local-model backend, matching
// SPEC_FULL.md's ambient config defaults (model qwen3:0.6b, temperature 1.1,
// local Ollama server).
type OllamaCompleter struct {
	model       llms.Model
	temperature float64
	maxTokens   int
	thinking    bool
}

// OllamaOptions configures a new OllamaCompleter.
type OllamaOptions struct {
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	ThinkingMode bool
}

func NewOllamaCompleter(opts OllamaOptions) (*OllamaCompleter, error) {
	model, err := ollama.New(ollama.WithModel(opts.Model), ollama.WithServerURL(opts.BaseURL))
	if err != nil {
		return nil, err
	}
	return &OllamaCompleter{
		model:       model,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
		thinking:    opts.ThinkingMode,
	}, nil
}

func (c *OllamaCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	opts := []llms.CallOption{
		llms.WithTemperature(c.temperature),
		llms.WithMaxTokens(c.maxTokens),
	}
	if c.thinking {
		opts = append(opts, llms.WithThinkingMode(llms.ThinkingModeAuto))
	}

	resp, err := c.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return StripThinking(resp.Choices[0].Content), nil
}

// Scripted is a deterministic Completer test double: each call consumes the
// next queued response, or falls back to Default once exhausted.
type Scripted struct {
	Responses []string
	Default   string
	calls     int
}

func (s *Scripted) Complete(ctx context.Context, system, prompt string) (string, error) {
	if s.calls < len(s.Responses) {
		r := s.Responses[s.calls]
		s.calls++
		return r, nil
	}
	s.calls++
	return s.Default, nil
}

// Calls reports how many times Complete has been invoked.
func (s *Scripted) Calls() int { return s.calls }

var _ Completer = (*Scripted)(nil)
var _ Completer = (*OllamaCompleter)(nil)
