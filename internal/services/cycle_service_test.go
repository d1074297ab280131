package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/terraincognita07/cyclecare/internal/models"
)

type recordingObserver struct {
	mu       sync.Mutex
	changes  [][]models.CycleRecord
	finished []models.CycleRecord
}

func (observer *recordingObserver) HistoryChanged(history []models.CycleRecord) {
	observer.mu.Lock()
	defer observer.mu.Unlock()
	observer.changes = append(observer.changes, history)
}

func (observer *recordingObserver) CycleFinished(cycle models.CycleRecord) {
	observer.mu.Lock()
	defer observer.mu.Unlock()
	observer.finished = append(observer.finished, cycle)
}

func (observer *recordingObserver) changeCount() int {
	observer.mu.Lock()
	defer observer.mu.Unlock()
	return len(observer.changes)
}

func newTestCycleService(t *testing.T, records ...models.CycleRecord) (*CycleService, *memoryKeyValueStore, *recordingObserver) {
	t.Helper()
	kv := newMemoryKeyValueStore()
	store := NewCycleStore(kv, "", nil)
	for _, record := range records {
		store.Add(record)
	}
	observer := &recordingObserver{}
	service := NewCycleService(store, observer, nil)
	counter := 0
	service.newID = func() string {
		counter++
		return fmt.Sprintf("cycle-%d", counter)
	}
	return service, kv, observer
}

func TestStartPeriodCreatesOpenCycle(t *testing.T) {
	service, kv, observer := newTestCycleService(t)

	created, err := service.StartPeriod(context.Background(), mustDay(t, "2024-03-01"))
	if err != nil {
		t.Fatalf("start period: %v", err)
	}
	if created.ID != "cycle-1" || !created.IsOpen() || len(created.Symptoms) != 0 {
		t.Fatalf("unexpected created record %#v", created)
	}

	current, ok := service.CurrentCycle()
	if !ok || current.ID != created.ID {
		t.Fatalf("expected current cycle %s, got %#v (ok=%v)", created.ID, current, ok)
	}
	if kv.sets != 1 {
		t.Fatalf("expected one persisted write, got %d", kv.sets)
	}
	if observer.changeCount() != 1 {
		t.Fatalf("expected one history notification, got %d", observer.changeCount())
	}
}

func TestStartPeriodRejectsDuplicates(t *testing.T) {
	tests := []struct {
		name    string
		records []models.CycleRecord
		today   string
	}{
		{name: "same start", records: []models.CycleRecord{closedRecord(t, "a", "2024-03-01", "2024-03-01")}, today: "2024-03-01"},
		{name: "inside closed span", records: []models.CycleRecord{closedRecord(t, "a", "2024-03-01", "2024-03-05")}, today: "2024-03-04"},
		{name: "closed span end day", records: []models.CycleRecord{closedRecord(t, "a", "2024-03-01", "2024-03-05")}, today: "2024-03-05"},
		{name: "open cycle started earlier", records: []models.CycleRecord{openRecord(t, "a", "2024-03-01")}, today: "2024-03-09"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, kv, observer := newTestCycleService(t, tt.records...)

			_, err := service.StartPeriod(context.Background(), mustDay(t, tt.today))
			if !errors.Is(err, ErrDuplicateStart) {
				t.Fatalf("expected ErrDuplicateStart, got %v", err)
			}
			if len(service.Records()) != len(tt.records) {
				t.Fatalf("expected no mutation, got %d records", len(service.Records()))
			}
			if kv.sets != 0 || observer.changeCount() != 0 {
				t.Fatalf("expected no persistence or notification, got sets=%d changes=%d", kv.sets, observer.changeCount())
			}
		})
	}
}

func TestStartPeriodAfterClosedCycleSucceeds(t *testing.T) {
	service, _, _ := newTestCycleService(t, closedRecord(t, "a", "2024-03-01", "2024-03-05"))

	if _, err := service.StartPeriod(context.Background(), mustDay(t, "2024-03-29")); err != nil {
		t.Fatalf("expected new start after closed cycle, got %v", err)
	}
	if len(service.Records()) != 2 {
		t.Fatalf("expected 2 records, got %d", len(service.Records()))
	}
}

func TestStartPeriodRejectsSecondOpenCycle(t *testing.T) {
	service, _, _ := newTestCycleService(t, openRecord(t, "future", "2024-04-10"))

	_, err := service.StartPeriod(context.Background(), mustDay(t, "2024-04-01"))
	if !errors.Is(err, ErrOpenCycleExists) {
		t.Fatalf("expected ErrOpenCycleExists, got %v", err)
	}
}

func TestToggleSymptomDoubleToggleRestoresSet(t *testing.T) {
	record := openRecord(t, "a", "2024-03-01")
	record.Symptoms = []models.Symptom{models.SymptomFatigue}
	service, _, _ := newTestCycleService(t, record)
	ctx := context.Background()

	toggled, err := service.ToggleSymptom(ctx, "a", "Cramps")
	if err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if !toggled.HasSymptom(models.SymptomCramps) || len(toggled.Symptoms) != 2 {
		t.Fatalf("expected cramps added, got %#v", toggled.Symptoms)
	}

	restored, err := service.ToggleSymptom(ctx, "a", "cramps")
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if len(restored.Symptoms) != 1 || restored.Symptoms[0] != models.SymptomFatigue {
		t.Fatalf("expected original symptoms, got %#v", restored.Symptoms)
	}
}

func TestToggleSymptomGuards(t *testing.T) {
	service, kv, _ := newTestCycleService(t,
		closedRecord(t, "old", "2024-02-01", "2024-02-05"),
		openRecord(t, "current", "2024-03-01"),
	)
	ctx := context.Background()

	if _, err := service.ToggleSymptom(ctx, "current", "headache"); !errors.Is(err, ErrUnknownSymptom) {
		t.Fatalf("expected ErrUnknownSymptom, got %v", err)
	}
	if _, err := service.ToggleSymptom(ctx, "old", "acne"); !errors.Is(err, ErrCycleNotCurrent) {
		t.Fatalf("expected ErrCycleNotCurrent, got %v", err)
	}
	if _, err := service.ToggleSymptom(ctx, "missing", "acne"); !errors.Is(err, ErrCycleNotFound) {
		t.Fatalf("expected ErrCycleNotFound, got %v", err)
	}
	if kv.sets != 0 {
		t.Fatalf("expected no writes, got %d", kv.sets)
	}
	old, _ := service.Find("old")
	if len(old.Symptoms) != 0 {
		t.Fatalf("expected finished cycle untouched, got %#v", old.Symptoms)
	}
}

func TestFinishPeriodClosesCurrentCycle(t *testing.T) {
	service, _, observer := newTestCycleService(t, openRecord(t, "a", "2024-03-01"))

	finished, err := service.FinishPeriod(context.Background(), "a", mustDay(t, "2024-03-05"))
	if err != nil {
		t.Fatalf("finish period: %v", err)
	}
	if finished.EndDate == nil || models.FormatDay(*finished.EndDate) != "2024-03-05" {
		t.Fatalf("expected end date 2024-03-05, got %#v", finished.EndDate)
	}
	if _, ok := service.CurrentCycle(); ok {
		t.Fatalf("expected no current cycle after finish")
	}
	if len(observer.finished) != 1 || observer.finished[0].ID != "a" {
		t.Fatalf("expected finished notification for a, got %#v", observer.finished)
	}
}

func TestFinishPeriodGuards(t *testing.T) {
	service, _, observer := newTestCycleService(t,
		closedRecord(t, "done", "2024-02-01", "2024-02-05"),
		openRecord(t, "open", "2024-03-10"),
	)
	ctx := context.Background()

	if _, err := service.FinishPeriod(ctx, "missing", mustDay(t, "2024-03-12")); !errors.Is(err, ErrCycleNotFound) {
		t.Fatalf("expected ErrCycleNotFound, got %v", err)
	}
	if _, err := service.FinishPeriod(ctx, "done", mustDay(t, "2024-03-12")); !errors.Is(err, ErrCycleAlreadyFinished) {
		t.Fatalf("expected ErrCycleAlreadyFinished, got %v", err)
	}
	if _, err := service.FinishPeriod(ctx, "open", mustDay(t, "2024-03-09")); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
	if len(observer.finished) != 0 {
		t.Fatalf("expected no finished notifications, got %d", len(observer.finished))
	}
}

func TestEditDatesOverwritesRecord(t *testing.T) {
	record := closedRecord(t, "a", "2024-03-01", "2024-03-05")
	record.Symptoms = []models.Symptom{models.SymptomAcne}
	service, _, _ := newTestCycleService(t, record)

	edited := models.CycleRecord{
		ID:        "a",
		StartDate: mustDay(t, "2024-02-28"),
		Symptoms:  []models.Symptom{models.SymptomBloating, models.SymptomBloating},
	}
	saved, err := service.EditDates(context.Background(), edited)
	if err != nil {
		t.Fatalf("edit dates: %v", err)
	}
	if !saved.IsOpen() {
		t.Fatalf("expected record reopened")
	}
	if len(saved.Symptoms) != 1 || saved.Symptoms[0] != models.SymptomBloating {
		t.Fatalf("expected deduplicated overwrite symptoms, got %#v", saved.Symptoms)
	}

	current, ok := service.CurrentCycle()
	if !ok || current.ID != "a" || models.FormatDay(current.StartDate) != "2024-02-28" {
		t.Fatalf("expected reopened record to be current, got %#v (ok=%v)", current, ok)
	}
}

func TestEditDatesValidation(t *testing.T) {
	service, _, _ := newTestCycleService(t,
		closedRecord(t, "a", "2024-02-01", "2024-02-05"),
		openRecord(t, "b", "2024-03-01"),
	)
	ctx := context.Background()

	backwards := closedRecord(t, "a", "2024-02-05", "2024-02-01")
	if _, err := service.EditDates(ctx, backwards); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
	if _, err := service.EditDates(ctx, openRecord(t, "a", "2024-02-01")); !errors.Is(err, ErrOpenCycleExists) {
		t.Fatalf("expected ErrOpenCycleExists, got %v", err)
	}
	if _, err := service.EditDates(ctx, openRecord(t, "missing", "2024-02-01")); !errors.Is(err, ErrCycleNotFound) {
		t.Fatalf("expected ErrCycleNotFound, got %v", err)
	}
	unknown := closedRecord(t, "a", "2024-02-01", "2024-02-05")
	unknown.Symptoms = []models.Symptom{"headache"}
	if _, err := service.EditDates(ctx, unknown); !errors.Is(err, ErrUnknownSymptom) {
		t.Fatalf("expected ErrUnknownSymptom, got %v", err)
	}
}

func TestDeleteCycleRemovesFromDerivedViews(t *testing.T) {
	service, _, _ := newTestCycleService(t,
		closedRecord(t, "a", "2024-01-01", "2024-01-05"),
		openRecord(t, "b", "2024-02-01"),
	)
	ctx := context.Background()

	if err := service.DeleteCycle(ctx, "b"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := service.CurrentCycle(); ok {
		t.Fatalf("expected no current cycle after deleting the open one")
	}
	if phase := ClassifyPhase(mustDay(t, "2024-02-02"), service.Records()); phase != models.PhaseNone {
		t.Fatalf("expected deleted record to stop classifying, got %s", phase)
	}
	if err := service.DeleteCycle(ctx, "b"); !errors.Is(err, ErrCycleNotFound) {
		t.Fatalf("expected ErrCycleNotFound on second delete, got %v", err)
	}
}

func TestCurrentCycleRequiresMostRecentToBeOpen(t *testing.T) {
	service, _, _ := newTestCycleService(t,
		openRecord(t, "older-open", "2024-01-01"),
		closedRecord(t, "newer", "2024-02-01", "2024-02-05"),
	)
	if _, ok := service.CurrentCycle(); ok {
		t.Fatalf("expected no current cycle when the most recent record is closed")
	}

	history := service.History()
	if history[0].ID != "newer" || history[1].ID != "older-open" {
		t.Fatalf("expected history sorted desc, got %s,%s", history[0].ID, history[1].ID)
	}
}

func TestMutationRollsBackWhenSaveFails(t *testing.T) {
	service, kv, observer := newTestCycleService(t, openRecord(t, "a", "2024-03-01"))
	kv.failWrites(errors.New("disk full"))

	_, err := service.FinishPeriod(context.Background(), "a", mustDay(t, "2024-03-04"))
	if !errors.Is(err, ErrPersistFailed) {
		t.Fatalf("expected ErrPersistFailed, got %v", err)
	}
	record, _ := service.Find("a")
	if !record.IsOpen() {
		t.Fatalf("expected in-memory record restored to open")
	}
	if observer.changeCount() != 0 || len(observer.finished) != 0 {
		t.Fatalf("expected no notifications after failed save")
	}

	if _, err := service.StartPeriod(context.Background(), mustDay(t, "2024-05-01")); !errors.Is(err, ErrDuplicateStart) {
		t.Fatalf("expected restored open cycle to block a new start, got %v", err)
	}
}

func TestReplaceAllValidatesCollection(t *testing.T) {
	service, _, _ := newTestCycleService(t, openRecord(t, "a", "2024-03-01"))
	ctx := context.Background()

	err := service.ReplaceAll(ctx, []models.CycleRecord{
		openRecord(t, "x", "2024-01-01"),
		openRecord(t, "y", "2024-02-01"),
	})
	if !errors.Is(err, ErrOpenCycleExists) {
		t.Fatalf("expected ErrOpenCycleExists, got %v", err)
	}
	if len(service.Records()) != 1 {
		t.Fatalf("expected original collection kept")
	}

	err = service.ReplaceAll(ctx, []models.CycleRecord{
		closedRecord(t, "x", "2024-01-01", "2024-01-05"),
		closedRecord(t, "x", "2024-02-01", "2024-02-05"),
	})
	if !errors.Is(err, ErrDuplicateCycleID) {
		t.Fatalf("expected ErrDuplicateCycleID, got %v", err)
	}

	imported := []models.CycleRecord{
		closedRecord(t, "x", "2024-01-01", "2024-01-05"),
		{StartDate: mustDay(t, "2024-02-01")},
	}
	if err := service.ReplaceAll(ctx, imported); err != nil {
		t.Fatalf("replace all: %v", err)
	}
	records := service.Records()
	if len(records) != 2 || records[0].ID != "x" || records[1].ID == "" {
		t.Fatalf("unexpected imported records %#v", records)
	}
}
