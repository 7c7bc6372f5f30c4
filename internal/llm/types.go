// Package llm provides a provider-agnostic client for text generation APIs.
// Provider-specific request/response mapping lives in Dialect implementations.
package llm

// Message represents a single chat message.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// CompletionRequest is the universal input for all generation providers.
type CompletionRequest struct {
	// Model overrides the adapter's default model.
	Model string `json:"model,omitempty"`
	// Messages is the conversation history. For single-turn use, one user message.
	Messages []Message `json:"messages"`
	// SystemPrompt steers the model's behavior for the whole request.
	SystemPrompt string `json:"system_prompt,omitempty"`
	// Temperature controls randomness. 0 means provider default.
	Temperature float64 `json:"temperature,omitempty"`
	// MaxTokens limits the response length. 0 means provider default.
	MaxTokens int `json:"max_tokens,omitempty"`
}

// CompletionResponse is the universal output from all generation providers.
type CompletionResponse struct {
	// Content is the generated text.
	Content string `json:"content"`
	// Model is the model that produced the response, when reported.
	Model string `json:"model,omitempty"`
}
