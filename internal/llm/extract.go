package llm

import "strings"

// thinkOpen/thinkClose bound a model's chain-of-thought block when
// thinking_mode is enabled (SPEC_FULL.md §6 — models like qwen3 emit
// <think>...</think> before their actual answer).
const (
	thinkOpen  = "<think>"
	thinkClose = "</think>"
)

// StripThinking removes one leading <think>...</think> block and trims the
// remainder. Malformed or unterminated thinking blocks are left as-is rather
// than silently eaten, so a prompt-template bug surfaces instead of vanishing.
func StripThinking(text string) string {
	start := strings.Index(text, thinkOpen)
	if start != 0 {
		return strings.TrimSpace(text)
	}
	end := strings.Index(text, thinkClose)
	if end == -1 {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(text[end+len(thinkClose):])
}
