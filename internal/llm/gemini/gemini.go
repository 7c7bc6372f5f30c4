// Package gemini implements the llm.Dialect for Google's Generative Language
// API (generateContent).
package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/skillsenselab/audioscribe/internal/llm"
)

// DialectName is the registered name for the Gemini dialect.
const DialectName = "gemini"

// DefaultBaseURL is the public Generative Language API endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

func init() {
	llm.RegisterDialect(DialectName, &Dialect{})
}

// Dialect maps universal completion types to the Gemini generateContent format.
type Dialect struct{}

// Name returns the dialect identifier.
func (d *Dialect) Name() string { return DialectName }

// GeneratePath returns the generateContent endpoint for the given model.
func (d *Dialect) GeneratePath(model string) string {
	return fmt.Sprintf("/v1beta/models/%s:generateContent", model)
}

// --- wire types ---

type generateRequest struct {
	Contents          []content       `json:"contents"`
	SystemInstruction *content        `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConf `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConf struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	ModelVersion string `json:"modelVersion"`
}

// BuildRequest maps a universal request to the generateContent JSON body.
// Gemini uses "model" as the assistant role name.
func (d *Dialect) BuildRequest(req llm.CompletionRequest) (any, error) {
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("gemini: at least one message is required")
	}

	out := generateRequest{
		Contents: make([]content, 0, len(req.Messages)),
	}
	for _, m := range req.Messages {
		role := m.Role
		if role == "assistant" {
			role = "model"
		}
		out.Contents = append(out.Contents, content{
			Role:  role,
			Parts: []part{{Text: m.Content}},
		})
	}

	if req.SystemPrompt != "" {
		out.SystemInstruction = &content{Parts: []part{{Text: req.SystemPrompt}}}
	}
	if req.Temperature != 0 || req.MaxTokens != 0 {
		out.GenerationConfig = &generationConf{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxTokens,
		}
	}
	return out, nil
}

// ParseResponse extracts the first candidate's text from a generateContent
// response. Returns llm.ErrNoContent when no candidate carries text.
func (d *Dialect) ParseResponse(body []byte) (*llm.CompletionResponse, error) {
	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("gemini: decode response: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, llm.ErrNoContent
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return nil, llm.ErrNoContent
	}

	var sb strings.Builder
	for _, p := range parts {
		sb.WriteString(p.Text)
	}
	if sb.Len() == 0 {
		return nil, llm.ErrNoContent
	}

	return &llm.CompletionResponse{
		Content: sb.String(),
		Model:   resp.ModelVersion,
	}, nil
}
