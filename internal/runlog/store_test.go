package runlog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runlog.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRunLifecycle(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.StartRun(ctx, "run-1", "full"); err != nil {
		t.Fatalf("StartRun: %v", err)
	}

	runs, err := store.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 || runs[0].Status != StatusRunning {
		t.Fatalf("runs = %+v, want one running run", runs)
	}
	if runs[0].FinishedAt != nil {
		t.Error("running run should have no finish time")
	}

	if err := store.FinishRun(ctx, "run-1", nil); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}
	runs, err = store.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if runs[0].Status != StatusCompleted || runs[0].FinishedAt == nil {
		t.Fatalf("run = %+v, want completed with finish time", runs[0])
	}
}

func TestFinishRunRecordsFailure(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.StartRun(ctx, "run-1", "filter"); err != nil {
		t.Fatalf("StartRun: %v", err)
	}
	if err := store.FinishRun(ctx, "run-1", errors.New("artifact write failed")); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	runs, err := store.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if runs[0].Status != StatusFailed || runs[0].Error != "artifact write failed" {
		t.Fatalf("run = %+v, want failed with message", runs[0])
	}
}

func TestRecordStageUpserts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.StartRun(ctx, "run-1", "full"); err != nil {
		t.Fatalf("StartRun: %v", err)
	}

	started := time.Now().UTC()
	if err := store.RecordStage(ctx, StageResult{
		RunID: "run-1", Stage: "timestamped", Status: StatusRunning,
		InputCount: 42, StartedAt: started,
	}); err != nil {
		t.Fatalf("RecordStage: %v", err)
	}

	finished := started.Add(2 * time.Second)
	if err := store.RecordStage(ctx, StageResult{
		RunID: "run-1", Stage: "timestamped", Status: StatusCompleted,
		InputCount: 42, OutputCount: 40, StartedAt: started, FinishedAt: &finished,
	}); err != nil {
		t.Fatalf("RecordStage update: %v", err)
	}

	results, err := store.StageResults(ctx, "run-1")
	if err != nil {
		t.Fatalf("StageResults: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d stage rows, want 1", len(results))
	}
	got := results[0]
	if got.Status != StatusCompleted || got.InputCount != 42 || got.OutputCount != 40 {
		t.Fatalf("stage = %+v", got)
	}
	if got.FinishedAt == nil || !got.FinishedAt.Equal(finished.Truncate(time.Nanosecond)) {
		t.Fatalf("finished_at = %v, want %v", got.FinishedAt, finished)
	}
}

func TestRecentRunsOrderAndLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"run-1", "run-2", "run-3"} {
		if err := store.StartRun(ctx, id, "full"); err != nil {
			t.Fatalf("StartRun(%s): %v", id, err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	runs, err := store.RecentRuns(ctx, 2)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].ID != "run-3" || runs[1].ID != "run-2" {
		t.Fatalf("order = %s,%s, want run-3,run-2", runs[0].ID, runs[1].ID)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runlog.db")

	first, err := Open(path)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	if err := first.StartRun(context.Background(), "run-1", "full"); err != nil {
		t.Fatalf("StartRun: %v", err)
	}
	first.Close()

	second, err := Open(path)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	defer second.Close()

	runs, err := second.RecentRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs after reopen, want 1", len(runs))
	}
}
