package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const defaultModel = "gemini-2.0-flash"

// Service talks to the Gemini generateContent REST API. It satisfies
// ai.GenerativeService: structured JSON generation and audio transcription.
type Service struct {
	apiKey string
	model  string
	client *http.Client
}

func NewService(apiKey, model string) *Service {
	if model == "" {
		model = defaultModel
	}
	return &Service{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{},
	}
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
	Temperature      float64 `json:"temperature"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateJSON runs the prompt in JSON mode and returns the raw JSON text.
// An empty candidate list is returned as ("", nil): the model declined, which
// callers treat differently from a transport failure.
func (s *Service) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			Temperature:      0.2,
		},
	}
	return s.generate(ctx, req)
}

// Transcribe sends the audio payload inline and asks for a verbatim transcription.
func (s *Service) Transcribe(ctx context.Context, mimeType, base64Data string) (string, error) {
	req := generateRequest{
		Contents: []content{{Parts: []part{
			{Text: "Transcribe the following audio recording to text. Return only the transcription, with no commentary."},
			{InlineData: &inlineData{MIMEType: mimeType, Data: base64Data}},
		}}},
		GenerationConfig: &generationConfig{Temperature: 0},
	}
	return s.generate(ctx, req)
}

func (s *Service) generate(ctx context.Context, payload generateRequest) (string, error) {
	url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", s.model, s.apiKey)

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result generateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}
