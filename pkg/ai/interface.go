package ai

import (
	"context"
)

// GenerativeService is the interface for structured LLM generation and audio
// transcription. Implement this interface to add new AI providers
// (Gemini, Ollama, OpenAI, etc.).
//
// GenerateJSON runs a prompt that is expected to produce a single JSON value
// and returns the raw JSON text. Callers unmarshal into their own output
// contract and validate the result. An empty response is returned as ("", nil)
// so callers can distinguish "model declined" from transport failure.
//
// Transcribe converts an audio payload (MIME type + base64 data) to plain
// text. Providers without audio support return ErrAudioUnsupported.
type GenerativeService interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	Transcribe(ctx context.Context, mimeType, base64Data string) (string, error)
}

// ProviderType represents the AI provider type
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
	ProviderOllama ProviderType = "ollama"
	ProviderAuto   ProviderType = "auto"
)
