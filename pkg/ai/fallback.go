package ai

import (
	"context"
	"fmt"
	"log"
	"net"
	"strings"
)

// FallbackService implements smart AI provider routing with fallback.
// - Structured generation: Gemini first (better schema adherence), fallback
//   to Ollama on quota exhaustion.
// - Transcription: Gemini only; Ollama has no audio support.
type FallbackService struct {
	gemini GenerativeService
	ollama *OllamaService
}

// NewFallbackService creates a new fallback service with both providers
func NewFallbackService(gemini GenerativeService, ollama *OllamaService) *FallbackService {
	return &FallbackService{
		gemini: gemini,
		ollama: ollama,
	}
}

// isConnectionError checks if the error is a network/connection error
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}

	if _, ok := err.(net.Error); ok {
		return true
	}

	errStr := strings.ToLower(err.Error())
	connectionIndicators := []string{
		"connection refused",
		"no such host",
		"network is unreachable",
		"connection reset",
		"timeout",
		"dial tcp",
		"eof",
	}

	for _, indicator := range connectionIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}

	return false
}

// isQuotaError checks if the error indicates API quota exhaustion (429)
func isQuotaError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	quotaIndicators := []string{
		"429",
		"quota",
		"rate limit",
		"too many requests",
		"resource exhausted",
	}

	for _, indicator := range quotaIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}

	return false
}

// GenerateJSON tries Gemini first, falls back to Ollama on quota errors
func (f *FallbackService) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	if f.gemini != nil {
		result, err := f.gemini.GenerateJSON(ctx, prompt)
		if err == nil {
			return result, nil
		}

		if isQuotaError(err) {
			log.Printf("[AI] Gemini quota exhausted: %v, falling back to Ollama", err)
		} else {
			log.Printf("[AI] Gemini error: %v, falling back to Ollama", err)
		}
	}

	if f.ollama != nil {
		result, err := f.ollama.GenerateJSON(ctx, prompt)
		if err == nil {
			return result, nil
		}

		// If Ollama also fails with a connection error, retry Gemini once
		if isConnectionError(err) && f.gemini != nil {
			log.Printf("[AI] Ollama connection failed: %v, retrying Gemini", err)
			return f.gemini.GenerateJSON(ctx, prompt)
		}

		return "", fmt.Errorf("ollama generation failed: %w", err)
	}

	return "", fmt.Errorf("no AI provider available for generation")
}

// Transcribe routes audio to Gemini; Ollama cannot serve it.
func (f *FallbackService) Transcribe(ctx context.Context, mimeType, base64Data string) (string, error) {
	if f.gemini == nil {
		return "", fmt.Errorf("no AI provider available for transcription")
	}
	return f.gemini.Transcribe(ctx, mimeType, base64Data)
}
