package metrics

// TokenUsage captures LLM token counts used to satisfy a request.
// Field tags match the OpenAI wire format so responses decode directly.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens"`
}

// IsZero reports whether usage data is absent.
func (u TokenUsage) IsZero() bool {
	return u.PromptTokens == 0 && u.CompletionTokens == 0 && u.TotalTokens == 0
}
