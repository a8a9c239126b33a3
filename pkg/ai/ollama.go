package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrAudioUnsupported is returned by providers that cannot process audio.
var ErrAudioUnsupported = errors.New("ai: provider does not support audio input")

// OllamaService implements GenerativeService using an Ollama local LLM.
// Ollama has no audio endpoint, so Transcribe always fails and the fallback
// router keeps transcription on Gemini.
type OllamaService struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllamaService creates a new Ollama service
func NewOllamaService(baseURL, model string) *OllamaService {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3"
	}
	return &OllamaService{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{},
	}
}

// GenerateJSON implements GenerativeService. The prompt must instruct the
// model to answer with a single JSON value; anything the model wraps around
// it (markdown fences, chatter) is sliced away.
func (o *OllamaService) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	url := o.baseURL + "/api/generate"

	payload := map[string]interface{}{
		"model":  o.model,
		"prompt": prompt,
		"stream": false,
		"format": "json",
		"options": map[string]interface{}{
			"temperature": 0.2,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Response string `json:"response"`
		Done     bool   `json:"done"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	return extractJSON(result.Response), nil
}

// Transcribe implements GenerativeService.
func (o *OllamaService) Transcribe(ctx context.Context, mimeType, base64Data string) (string, error) {
	return "", ErrAudioUnsupported
}

// extractJSON slices the first JSON object or array out of model output,
// tolerating markdown fences and surrounding prose.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)

	objStart := strings.Index(text, "{")
	arrStart := strings.Index(text, "[")

	start, closing := objStart, "}"
	if objStart == -1 || (arrStart != -1 && arrStart < objStart) {
		start, closing = arrStart, "]"
	}
	if start == -1 {
		return text
	}

	end := strings.LastIndex(text, closing)
	if end == -1 || end < start {
		return text
	}
	return text[start : end+1]
}
