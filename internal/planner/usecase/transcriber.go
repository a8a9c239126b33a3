package usecase

import (
	"context"
	"strings"

	"voxplan-backend/internal/planner/domain"
	"voxplan-backend/pkg/ai"
)

// Transcriber converts a recorded audio payload to text through a single
// model call. An empty transcription is terminal for the whole recording
// attempt; callers never retry it automatically.
type Transcriber struct {
	ai ai.GenerativeService
}

func NewTranscriber(svc ai.GenerativeService) *Transcriber {
	return &Transcriber{ai: svc}
}

// Transcribe accepts a "data:<mime>;base64,<data>" URI and returns the
// spoken text.
func (t *Transcriber) Transcribe(ctx context.Context, audioDataURI string) (string, error) {
	clip, err := domain.ParseAudioDataURI(audioDataURI)
	if err != nil {
		return "", &domain.TranscriptionError{Cause: err}
	}

	text, err := t.ai.Transcribe(ctx, clip.MIMEType, clip.Base64Data)
	if err != nil {
		return "", &domain.TranscriptionError{Cause: err}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", &domain.TranscriptionError{}
	}
	return text, nil
}
