package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"voxplan-backend/pkg/ai"
)

// Intent is the three-way routing decision for a transcribed request.
type Intent string

const (
	IntentPlan        Intent = "plan"
	IntentItinerary   Intent = "itinerary"
	IntentUnsupported Intent = "unsupported"
)

// ContextHint names the screen the user was viewing when they recorded.
// It biases classification but never forces an intent against the text.
type ContextHint string

const (
	HintNone      ContextHint = ""
	HintPlan      ContextHint = "plan"
	HintItinerary ContextHint = "itinerary"
)

// IntentRouter classifies transcribed text into plan / itinerary /
// unsupported with a single labeling prompt.
type IntentRouter struct {
	ai ai.GenerativeService
}

func NewIntentRouter(svc ai.GenerativeService) *IntentRouter {
	return &IntentRouter{ai: svc}
}

const intentPromptFormat = `Analyze the following text and determine the user's primary intent. The user wants to create either a plan (like a to-do list or project plan) or a travel itinerary.

- If the text clearly describes tasks, to-do lists, goals, schedules, or explicitly asks to create a plan, the intent is "createPlan".
- If the text describes a trip, vacation, travel dates, destinations, or explicitly asks for an itinerary, the intent is "createItinerary".
- For anything else that does not fit (simple questions, greetings, unrelated statements), the intent is "unsupported".
%s
Respond with a single JSON object: {"intent": "createPlan" | "createItinerary" | "unsupported"}

Transcribed Text:
%s`

// Route returns the classified intent. Classification failures at the label
// level degrade to IntentUnsupported; only transport errors propagate.
func (r *IntentRouter) Route(ctx context.Context, text string, hint ContextHint) (Intent, error) {
	contextNote := ""
	switch hint {
	case HintPlan:
		contextNote = "\n- The user is currently viewing a plan, so it is likely (but not certain) they want to update or create a plan.\n"
	case HintItinerary:
		contextNote = "\n- The user is currently viewing an itinerary, so it is likely (but not certain) they want to update or create an itinerary.\n"
	}

	raw, err := r.ai.GenerateJSON(ctx, fmt.Sprintf(intentPromptFormat, contextNote, text))
	if err != nil {
		return IntentUnsupported, fmt.Errorf("intent classification failed: %w", err)
	}

	var out struct {
		Intent string `json:"intent"`
	}
	// Unparseable or missing labels are ambiguous classifications, not
	// errors: fail safe to unsupported.
	_ = json.Unmarshal([]byte(raw), &out)
	return NormalizeIntent(out.Intent), nil
}

// NormalizeIntent maps a raw classifier label to the three-way enum. It is a
// pure total function: any unrecognized or missing label is unsupported.
func NormalizeIntent(raw string) Intent {
	switch strings.TrimSpace(raw) {
	case "createPlan":
		return IntentPlan
	case "createItinerary":
		return IntentItinerary
	default:
		return IntentUnsupported
	}
}
