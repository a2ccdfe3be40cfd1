package ingest

import (
	"context"
	"errors"
	"testing"
)

type fakeScraper struct {
	pages map[string]string
	err   map[string]error
}

func (f *fakeScraper) Scrape(_ context.Context, target string) (string, error) {
	if err := f.err[target]; err != nil {
		return "", err
	}
	return f.pages[target], nil
}

type fakeExtractor struct {
	responses map[string]string
	err       error
	calls     int
}

func (f *fakeExtractor) CompleteJSON(_ context.Context, _, userPrompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	for page, response := range f.responses {
		if page == userPrompt {
			return response, nil
		}
	}
	return `{"events": []}`, nil
}

func TestCollectExtractsEventsPerSource(t *testing.T) {
	scraper := &fakeScraper{pages: map[string]string{
		"https://a.example": "page a",
		"https://b.example": "page b",
	}}
	extractor := &fakeExtractor{responses: map[string]string{
		"page a": `{"events":[{"name":"Food Festival","date":"2024-12-18","time":"4 PM","location":"Katara"}]}`,
		"page b": `{"events":[{"name":"Art Walk"},{"name":""}]}`,
	}}
	collector := NewCollector(scraper, extractor, []string{"https://a.example", "https://b.example"}, nil)

	got, err := collector.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2 (nameless record dropped)", len(got))
	}
	if got[0].Name != "Food Festival" || got[0].Source != "https://a.example" {
		t.Errorf("event[0] = %+v", got[0])
	}
	if got[0].Date != "2024-12-18" || got[0].Time != "4 PM" || got[0].LocationName != "Katara" {
		t.Errorf("event[0] fields = %+v", got[0])
	}
	if got[1].Name != "Art Walk" || got[1].Source != "https://b.example" {
		t.Errorf("event[1] = %+v", got[1])
	}
}

func TestCollectSkipsFailedSources(t *testing.T) {
	scraper := &fakeScraper{
		pages: map[string]string{"https://good.example": "page"},
		err:   map[string]error{"https://bad.example": errors.New("connection refused")},
	}
	extractor := &fakeExtractor{responses: map[string]string{
		"page": `{"events":[{"name":"Art Walk"}]}`,
	}}
	collector := NewCollector(scraper, extractor, []string{"https://bad.example", "https://good.example"}, nil)

	got, err := collector.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Art Walk" {
		t.Fatalf("got %v, want the surviving source's event", got)
	}
}

func TestCollectSkipsBadExtraction(t *testing.T) {
	scraper := &fakeScraper{pages: map[string]string{"https://a.example": "page"}}
	extractor := &fakeExtractor{err: errors.New("model unavailable")}
	collector := NewCollector(scraper, extractor, []string{"https://a.example"}, nil)

	got, err := collector.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d events from a failed extraction, want 0", len(got))
	}
}

func TestCollectEmptyPageSkipsExtraction(t *testing.T) {
	scraper := &fakeScraper{pages: map[string]string{"https://a.example": "   \n"}}
	extractor := &fakeExtractor{}
	collector := NewCollector(scraper, extractor, []string{"https://a.example"}, nil)

	got, err := collector.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(got) != 0 || extractor.calls != 0 {
		t.Fatalf("empty page should not reach the extractor (events=%d calls=%d)", len(got), extractor.calls)
	}
}

func TestCollectRequiresTargets(t *testing.T) {
	collector := NewCollector(&fakeScraper{}, &fakeExtractor{}, nil, nil)
	if _, err := collector.Collect(context.Background()); err == nil {
		t.Fatal("expected error when no targets configured")
	}
}
