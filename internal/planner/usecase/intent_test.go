package usecase

import (
	"context"
	"strings"
	"testing"
)

func TestNormalizeIntent(t *testing.T) {
	cases := []struct {
		raw  string
		want Intent
	}{
		{"createPlan", IntentPlan},
		{"createItinerary", IntentItinerary},
		{"unsupported", IntentUnsupported},
		{"", IntentUnsupported},
		{"CreatePlan", IntentUnsupported},
		{"something else", IntentUnsupported},
		{" createPlan ", IntentPlan},
	}

	for _, c := range cases {
		if got := NormalizeIntent(c.raw); got != c.want {
			t.Errorf("NormalizeIntent(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestIntentRouter(t *testing.T) {
	// The fake classifies on keywords the way the real model would.
	svc := &fakeAI{
		generateJSON: func(prompt string) (string, error) {
			switch {
			case strings.Contains(prompt, "Lisbon"):
				return `{"intent": "createItinerary"}`, nil
			case strings.Contains(prompt, "Buy milk"):
				return `{"intent": "createPlan"}`, nil
			default:
				return `{"intent": "unsupported"}`, nil
			}
		},
	}
	router := NewIntentRouter(svc)

	cases := []struct {
		text string
		want Intent
	}{
		{"Buy milk, eggs, and bread", IntentPlan},
		{"Plan a 3-day trip to Lisbon from June 1 to June 3", IntentItinerary},
		{"What's the weather today?", IntentUnsupported},
	}

	for _, c := range cases {
		got, err := router.Route(context.Background(), c.text, HintNone)
		if err != nil {
			t.Fatalf("Route(%q): %v", c.text, err)
		}
		if got != c.want {
			t.Errorf("Route(%q) = %q, want %q", c.text, got, c.want)
		}
	}

	t.Run("garbled classifier output degrades to unsupported", func(t *testing.T) {
		router := NewIntentRouter(&fakeAI{
			generateJSON: func(string) (string, error) { return "not json", nil },
		})
		got, err := router.Route(context.Background(), "anything", HintPlan)
		if err != nil {
			t.Fatalf("Route: %v", err)
		}
		if got != IntentUnsupported {
			t.Errorf("Route = %q, want unsupported", got)
		}
	})

	t.Run("context hint reaches the prompt", func(t *testing.T) {
		var seen string
		router := NewIntentRouter(&fakeAI{
			generateJSON: func(prompt string) (string, error) {
				seen = prompt
				return `{"intent": "createItinerary"}`, nil
			},
		})
		if _, err := router.Route(context.Background(), "move dinner to day two", HintItinerary); err != nil {
			t.Fatalf("Route: %v", err)
		}
		if !strings.Contains(seen, "currently viewing an itinerary") {
			t.Error("itinerary hint missing from classification prompt")
		}
	})
}
