package events

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateInvariants(t *testing.T) {
	valid := Event{Name: "Winter Festival", Source: "example.net"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid event, got %v", err)
	}

	cases := []struct {
		name  string
		event Event
	}{
		{"missing name", Event{Source: "example.net"}},
		{"missing source", Event{Name: "Winter Festival"}},
		{"end without start", Event{Name: "a", Source: "s", EndTimestamp: Int64Ptr(10)}},
		{"end before start", Event{Name: "a", Source: "s", StartTimestamp: Int64Ptr(20), EndTimestamp: Int64Ptr(10)}},
		{"lat without lng", Event{Name: "a", Source: "s", LocationLat: Float64Ptr(25.3)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.event.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestMarshalFieldOrder(t *testing.T) {
	event := Event{
		Name:           "Winter Festival",
		Date:           "2024-12-18",
		Time:           "4:00 PM - 10:00 PM",
		StartTimestamp: Int64Ptr(1734530400),
		EndTimestamp:   Int64Ptr(1734552000),
		LocationName:   "Souq Plaza",
		LocationLat:    Float64Ptr(25.287),
		LocationLng:    Float64Ptr(51.533),
		Description:    "Annual festival",
		Category:       "Festival",
		Website:        "https://example.net/festival",
		Source:         "example.net",
	}

	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	text := string(data)

	order := []string{
		`"name"`, `"date"`, `"time"`, `"startTimestamp"`, `"endTimestamp"`,
		`"locationName"`, `"locationLat"`, `"locationLng"`,
		`"description"`, `"category"`, `"website"`,
	}
	last := -1
	for _, key := range order {
		idx := strings.Index(text, key)
		if idx < 0 {
			t.Fatalf("missing key %s in %s", key, text)
		}
		if idx < last {
			t.Fatalf("key %s out of order in %s", key, text)
		}
		last = idx
	}
}

func TestAbsentFieldsOmitted(t *testing.T) {
	event := Event{Name: "Talk", Source: "example.net"}
	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	for _, key := range []string{"startTimestamp", "endTimestamp", "locationLat", "locationLng"} {
		if strings.Contains(string(data), key) {
			t.Fatalf("expected %s omitted for absent value, got %s", key, data)
		}
	}
}

func TestArtifactRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events_01_raw.json")

	records := []Event{
		{Name: "Winter Festival", Date: "2024-12-18", Source: "example.net"},
		{Name: "Art Walk", Date: "TBA", Source: "example.org"},
	}
	if err := WriteArtifact(path, records); err != nil {
		t.Fatalf("WriteArtifact returned error: %v", err)
	}

	loaded, err := ReadArtifact(path)
	if err != nil {
		t.Fatalf("ReadArtifact returned error: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 records, got %d", len(loaded))
	}
	if loaded[0].Name != "Winter Festival" || loaded[1].Date != "TBA" {
		t.Fatalf("unexpected round trip result %+v", loaded)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("temp file left behind after commit")
	}
}

func TestReadArtifactMissing(t *testing.T) {
	_, err := ReadArtifact(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("expected error for missing artifact")
	}
	if !strings.Contains(err.Error(), "missing") {
		t.Fatalf("expected missing marker, got %v", err)
	}
}

func TestWriteArtifactEmptySliceProducesArray(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events_04_final.json")
	if err := WriteArtifact(path, nil); err != nil {
		t.Fatalf("WriteArtifact returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Fatalf("expected empty array, got %q", data)
	}
}
