package cultural

import (
	"context"
	"encoding/json"
	"fmt"

	"eventpipe/internal/events"
	"eventpipe/internal/services"
	"eventpipe/internal/services/llm"
)

// Verdict is the classifier's judgment of one event.
type Verdict struct {
	Admissible bool
	Confidence float64
	Reason     string
}

// Classifier scores a batch of events for cultural appropriateness. The
// returned slice is positional: verdict i applies to batch[i].
type Classifier interface {
	Classify(ctx context.Context, batch []events.Event) ([]Verdict, error)
}

const classifierSystemPrompt = `You review public event listings for publication in Qatar and judge whether each event is culturally appropriate for a general local audience.

Mark an event as not admissible when it is any of the following:
- a concert, live music performance, or event centered on a band or musical act
- held at or centered on a bar, nightclub, or similar nightlife venue
- otherwise inappropriate for a conservative general audience

Community, sporting, educational, culinary, artistic, and family events are admissible. Judge only from the information given; do not guess beyond it.

Respond with a JSON object of the form {"verdicts": [{"index": 0, "admissible": true, "confidence": 0.95, "reason": "short explanation"}, ...]} containing exactly one verdict per input event, using each event's index. Confidence is your certainty in the verdict from 0 to 1.`

type classifierInput struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
}

type classifierResponse struct {
	Verdicts []struct {
		Index      int     `json:"index"`
		Admissible bool    `json:"admissible"`
		Confidence float64 `json:"confidence"`
		Reason     string  `json:"reason"`
	} `json:"verdicts"`
}

// LLMClassifier scores events through a chat completion API.
type LLMClassifier struct {
	client *llm.Client
}

// NewLLMClassifier wraps an LLM client as a Classifier.
func NewLLMClassifier(client *llm.Client) *LLMClassifier {
	return &LLMClassifier{client: client}
}

// Classify sends one batch to the model and maps the verdicts back by index.
// A response that is missing events or references unknown indices is an
// error; partially scoring a batch would silently publish unvetted events.
func (c *LLMClassifier) Classify(ctx context.Context, batch []events.Event) ([]Verdict, error) {
	if len(batch) == 0 {
		return nil, nil
	}

	inputs := make([]classifierInput, len(batch))
	for i, event := range batch {
		inputs[i] = classifierInput{
			Index:       i,
			Name:        event.Name,
			Category:    event.Category,
			Description: event.Description,
			Location:    event.LocationName,
		}
	}
	payload, err := json.Marshal(inputs)
	if err != nil {
		return nil, fmt.Errorf("classify: encode batch: %w", err)
	}

	content, err := c.client.CompleteJSON(ctx, classifierSystemPrompt, string(payload))
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "cultural", "classify", "completion failed", err)
	}

	var parsed classifierResponse
	if err := llm.DecodeJSON(content, &parsed); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "cultural", "classify", "invalid response", err)
	}

	verdicts := make([]Verdict, len(batch))
	seen := make([]bool, len(batch))
	for _, v := range parsed.Verdicts {
		if v.Index < 0 || v.Index >= len(batch) {
			return nil, services.Wrap(services.ErrExternalTool, "cultural", "classify",
				fmt.Sprintf("verdict index %d out of range for batch of %d", v.Index, len(batch)), nil)
		}
		verdicts[v.Index] = Verdict{Admissible: v.Admissible, Confidence: v.Confidence, Reason: v.Reason}
		seen[v.Index] = true
	}
	for i, ok := range seen {
		if !ok {
			return nil, services.Wrap(services.ErrExternalTool, "cultural", "classify",
				fmt.Sprintf("no verdict for event %d", i), nil)
		}
	}
	return verdicts, nil
}
