package gemini

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/skillsenselab/audioscribe/internal/llm"
)

func TestGeneratePath(t *testing.T) {
	d := &Dialect{}
	got := d.GeneratePath("gemini-2.5-flash")
	want := "/v1beta/models/gemini-2.5-flash:generateContent"
	if got != want {
		t.Errorf("GeneratePath = %q, want %q", got, want)
	}
}

func TestBuildRequest_Shape(t *testing.T) {
	d := &Dialect{}
	body, err := d.BuildRequest(llm.CompletionRequest{
		Messages:     []llm.Message{{Role: "user", Content: "fix this text"}},
		SystemPrompt: "You are an editor.",
	})
	if err != nil {
		t.Fatalf("BuildRequest failed: %v", err)
	}

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	contents, ok := decoded["contents"].([]any)
	if !ok || len(contents) != 1 {
		t.Fatalf("contents = %v, want one entry", decoded["contents"])
	}
	first := contents[0].(map[string]any)
	parts := first["parts"].([]any)
	if text := parts[0].(map[string]any)["text"]; text != "fix this text" {
		t.Errorf("contents[0].parts[0].text = %v", text)
	}

	si, ok := decoded["systemInstruction"].(map[string]any)
	if !ok {
		t.Fatal("systemInstruction missing")
	}
	siParts := si["parts"].([]any)
	if text := siParts[0].(map[string]any)["text"]; text != "You are an editor." {
		t.Errorf("systemInstruction text = %v", text)
	}
}

func TestBuildRequest_AssistantRoleMapsToModel(t *testing.T) {
	d := &Dialect{}
	body, err := d.BuildRequest(llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: "user", Content: "hi"},
			{Role: "assistant", Content: "hello"},
		},
	})
	if err != nil {
		t.Fatalf("BuildRequest failed: %v", err)
	}
	req := body.(generateRequest)
	if req.Contents[1].Role != "model" {
		t.Errorf("assistant role = %q, want %q", req.Contents[1].Role, "model")
	}
}

func TestBuildRequest_RequiresMessages(t *testing.T) {
	d := &Dialect{}
	if _, err := d.BuildRequest(llm.CompletionRequest{}); err == nil {
		t.Fatal("expected error for empty messages")
	}
}

func TestParseResponse_ExtractsFirstCandidate(t *testing.T) {
	d := &Dialect{}
	body := `{
		"candidates": [
			{"content": {"parts": [{"text": "The corrected text."}]}, "finishReason": "STOP"}
		],
		"modelVersion": "gemini-2.5-flash"
	}`
	resp, err := d.ParseResponse([]byte(body))
	if err != nil {
		t.Fatalf("ParseResponse failed: %v", err)
	}
	if resp.Content != "The corrected text." {
		t.Errorf("Content = %q", resp.Content)
	}
	if resp.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %q", resp.Model)
	}
}

func TestParseResponse_MultiPartConcatenation(t *testing.T) {
	d := &Dialect{}
	body := `{"candidates":[{"content":{"parts":[{"text":"Hello "},{"text":"world."}]}}]}`
	resp, err := d.ParseResponse([]byte(body))
	if err != nil {
		t.Fatalf("ParseResponse failed: %v", err)
	}
	if resp.Content != "Hello world." {
		t.Errorf("Content = %q", resp.Content)
	}
}

func TestParseResponse_NoCandidates(t *testing.T) {
	d := &Dialect{}
	_, err := d.ParseResponse([]byte(`{"candidates":[]}`))
	if !errors.Is(err, llm.ErrNoContent) {
		t.Errorf("error = %v, want ErrNoContent", err)
	}
}

func TestParseResponse_EmptyParts(t *testing.T) {
	d := &Dialect{}
	_, err := d.ParseResponse([]byte(`{"candidates":[{"content":{"parts":[]}}]}`))
	if !errors.Is(err, llm.ErrNoContent) {
		t.Errorf("error = %v, want ErrNoContent", err)
	}
}

func TestParseResponse_MalformedJSON(t *testing.T) {
	d := &Dialect{}
	if _, err := d.ParseResponse([]byte(`{nope`)); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestRegisteredInGlobalRegistry(t *testing.T) {
	d, err := llm.GetDialect(DialectName)
	if err != nil {
		t.Fatalf("GetDialect: %v", err)
	}
	if d.Name() != DialectName {
		t.Errorf("Name = %q", d.Name())
	}
}
