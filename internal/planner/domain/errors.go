package domain

import (
	"fmt"
	"strings"
)

// TranscriptionError indicates the model produced no usable transcription.
// Fatal to the calling operation; never retried automatically.
type TranscriptionError struct {
	Cause error
}

func (e *TranscriptionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("transcription failed: %v", e.Cause)
	}
	return "transcription failed: empty transcription"
}

func (e *TranscriptionError) Unwrap() error { return e.Cause }

// GenerationError indicates a generation step returned no output or could
// not be reached. Fatal to that operation.
type GenerationError struct {
	Step  string // "plan", "itinerary", "subtasks", "insights"
	Cause error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s generation failed: %v", e.Step, e.Cause)
	}
	return fmt.Sprintf("%s generation failed: the model did not return any output", e.Step)
}

func (e *GenerationError) Unwrap() error { return e.Cause }

// ExtractionError indicates task-detail extraction returned no output.
// Non-fatal inside the plan generator's enrichment pass; fatal standalone.
type ExtractionError struct {
	Cause error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("task detail extraction failed: %v", e.Cause)
	}
	return "task detail extraction failed: the model did not return any output"
}

func (e *ExtractionError) Unwrap() error { return e.Cause }

// ValidationError indicates model output does not conform to the expected
// schema. Fatal: downstream consumers assume schema-valid data.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return "invalid model output: " + strings.Join(e.Issues, "; ")
}
