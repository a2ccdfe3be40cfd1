package cultural

import (
	"context"
	"errors"
	"testing"

	"eventpipe/internal/events"
)

type fakeClassifier struct {
	verdicts map[string]Verdict
	err      error
	batches  [][]string
}

func (f *fakeClassifier) Classify(_ context.Context, batch []events.Event) ([]Verdict, error) {
	names := make([]string, len(batch))
	for i, event := range batch {
		names[i] = event.Name
	}
	f.batches = append(f.batches, names)
	if f.err != nil {
		return nil, f.err
	}
	verdicts := make([]Verdict, len(batch))
	for i, event := range batch {
		if v, ok := f.verdicts[event.Name]; ok {
			verdicts[i] = v
		} else {
			verdicts[i] = Verdict{Admissible: true, Confidence: 1}
		}
	}
	return verdicts, nil
}

func makeEvents(names ...string) []events.Event {
	list := make([]events.Event, len(names))
	for i, name := range names {
		list[i] = events.Event{Name: name, Source: "test"}
	}
	return list
}

func TestFilterKeepsAdmissibleEvents(t *testing.T) {
	classifier := &fakeClassifier{verdicts: map[string]Verdict{
		"Rooftop Concert":   {Admissible: false, Confidence: 0.97, Reason: "live music"},
		"Nightclub Opening": {Admissible: false, Confidence: 0.99, Reason: "nightlife venue"},
	}}
	filter := NewFilter(classifier, 0.6, 0, nil)

	got, err := filter.Apply(context.Background(),
		makeEvents("Food Festival", "Rooftop Concert", "Art Exhibition", "Nightclub Opening"))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	want := []string{"Food Festival", "Art Exhibition"}
	if len(got) != len(want) {
		t.Fatalf("kept %d events, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("kept[%d] = %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestFilterExcludesLowConfidenceVerdicts(t *testing.T) {
	classifier := &fakeClassifier{verdicts: map[string]Verdict{
		"Ambiguous Gathering": {Admissible: true, Confidence: 0.4, Reason: "unclear"},
		"Borderline Show":     {Admissible: true, Confidence: 0.6, Reason: "probably fine"},
	}}
	filter := NewFilter(classifier, 0.6, 0, nil)

	got, err := filter.Apply(context.Background(), makeEvents("Ambiguous Gathering", "Borderline Show"))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Borderline Show" {
		t.Fatalf("kept = %v, want only the at-threshold event", got)
	}
}

func TestFilterExcludesFailedBatch(t *testing.T) {
	classifier := &fakeClassifier{err: errors.New("model unavailable")}
	filter := NewFilter(classifier, 0.6, 0, nil)

	got, err := filter.Apply(context.Background(), makeEvents("Food Festival", "Art Exhibition"))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("kept %d events from a failed batch, want 0", len(got))
	}
}

func TestFilterBatches(t *testing.T) {
	classifier := &fakeClassifier{}
	filter := NewFilter(classifier, 0.6, 2, nil)

	got, err := filter.Apply(context.Background(), makeEvents("a", "b", "c", "d", "e"))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("kept %d events, want 5", len(got))
	}
	wantBatches := [][]string{{"a", "b"}, {"c", "d"}, {"e"}}
	if len(classifier.batches) != len(wantBatches) {
		t.Fatalf("batches = %v, want %v", classifier.batches, wantBatches)
	}
	for i, batch := range wantBatches {
		if len(classifier.batches[i]) != len(batch) {
			t.Errorf("batch %d = %v, want %v", i, classifier.batches[i], batch)
		}
	}
}

func TestFilterEmptyInput(t *testing.T) {
	filter := NewFilter(&fakeClassifier{}, 0.6, 0, nil)
	got, err := filter.Apply(context.Background(), nil)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("kept %d events from empty input", len(got))
	}
}

func TestFilterContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	filter := NewFilter(&fakeClassifier{}, 0.6, 0, nil)
	if _, err := filter.Apply(ctx, makeEvents("a")); !errors.Is(err, context.Canceled) {
		t.Fatalf("Apply = %v, want context.Canceled", err)
	}
}
