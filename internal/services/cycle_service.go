package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/cyclecare/internal/logger"
	"github.com/terraincognita07/cyclecare/internal/models"
)

var (
	ErrDuplicateStart       = errors.New("period already logged for today")
	ErrOpenCycleExists      = errors.New("an open cycle already exists")
	ErrUnknownSymptom       = errors.New("unknown symptom")
	ErrCycleNotCurrent      = errors.New("cycle is not the current cycle")
	ErrCycleNotFound        = errors.New("cycle not found")
	ErrCycleAlreadyFinished = errors.New("cycle already finished")
	ErrInvalidDateRange     = errors.New("end date is before start date")
	ErrPersistFailed        = errors.New("persist cycles failed")
	ErrDuplicateCycleID     = errors.New("duplicate cycle id")
)

// CycleObserver is notified after mutations have been persisted.
type CycleObserver interface {
	HistoryChanged(history []models.CycleRecord)
	CycleFinished(cycle models.CycleRecord)
}

type CycleService struct {
	mu       sync.Mutex
	store    *CycleStore
	observer CycleObserver
	log      *logger.Logger
	newID    func() string
}

func NewCycleService(store *CycleStore, observer CycleObserver, log *logger.Logger) *CycleService {
	if log == nil {
		log = logger.Nop()
	}
	return &CycleService{
		store:    store,
		observer: observer,
		log:      log,
		newID:    newCycleID,
	}
}

func newCycleID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// History returns records sorted by start date, most recent first.
func (service *CycleService) History() []models.CycleRecord {
	return SortByStartDescending(service.store.Snapshot())
}

// Records returns records in stored order, which is the order phase
// classification iterates in.
func (service *CycleService) Records() []models.CycleRecord {
	return service.store.Snapshot()
}

func (service *CycleService) Find(id string) (models.CycleRecord, error) {
	record, ok := service.store.Find(id)
	if !ok {
		return models.CycleRecord{}, ErrCycleNotFound
	}
	return record, nil
}

// CurrentCycle is the most recent record when it has no end date.
func (service *CycleService) CurrentCycle() (models.CycleRecord, bool) {
	return CurrentCycleOf(service.store.Snapshot())
}

func CurrentCycleOf(history []models.CycleRecord) (models.CycleRecord, bool) {
	sorted := SortByStartDescending(history)
	if len(sorted) == 0 || !sorted[0].IsOpen() {
		return models.CycleRecord{}, false
	}
	return sorted[0], true
}

func (service *CycleService) StartPeriod(ctx context.Context, today time.Time) (models.CycleRecord, error) {
	today = models.DayOf(today)

	service.mu.Lock()
	before := service.store.Snapshot()
	for _, record := range before {
		if isDuplicateStart(record, today) {
			service.mu.Unlock()
			return models.CycleRecord{}, ErrDuplicateStart
		}
	}
	if _, open := findOpenRecord(before, ""); open {
		service.mu.Unlock()
		return models.CycleRecord{}, ErrOpenCycleExists
	}

	created := models.CycleRecord{
		ID:        service.newID(),
		StartDate: today,
		Symptoms:  []models.Symptom{},
	}
	service.store.Add(created)
	err := service.persist(ctx, before, "start period")
	service.mu.Unlock()
	if err != nil {
		return models.CycleRecord{}, err
	}

	service.log.Info("period started", "cycle_id", created.ID, "start", models.FormatDay(today))
	service.notifyHistoryChanged()
	return created, nil
}

func isDuplicateStart(record models.CycleRecord, today time.Time) bool {
	start := models.DayOf(record.StartDate)
	if models.SameDay(today, start) {
		return true
	}
	end := today
	if record.EndDate != nil {
		end = models.DayOf(*record.EndDate)
	}
	return models.BetweenInclusive(today, start, end)
}

func findOpenRecord(records []models.CycleRecord, excludeID string) (models.CycleRecord, bool) {
	for _, record := range records {
		if record.IsOpen() && record.ID != excludeID {
			return record, true
		}
	}
	return models.CycleRecord{}, false
}

// ToggleSymptom flips symptom membership on the current open cycle.
func (service *CycleService) ToggleSymptom(ctx context.Context, cycleID string, raw string) (models.CycleRecord, error) {
	symptom, ok := models.ParseSymptom(raw)
	if !ok {
		return models.CycleRecord{}, ErrUnknownSymptom
	}

	service.mu.Lock()
	before := service.store.Snapshot()
	record, found := findRecord(before, cycleID)
	if !found {
		service.mu.Unlock()
		return models.CycleRecord{}, ErrCycleNotFound
	}
	current, hasCurrent := CurrentCycleOf(before)
	if !hasCurrent || current.ID != cycleID {
		service.mu.Unlock()
		return models.CycleRecord{}, ErrCycleNotCurrent
	}

	record.Symptoms = toggleSymptom(record.Symptoms, symptom)
	service.store.Replace(record)
	err := service.persist(ctx, before, "toggle symptom")
	service.mu.Unlock()
	if err != nil {
		return models.CycleRecord{}, err
	}

	service.log.Debug("symptom toggled", "cycle_id", cycleID, "symptom", symptom, "active", record.HasSymptom(symptom))
	service.notifyHistoryChanged()
	return record, nil
}

func toggleSymptom(symptoms []models.Symptom, symptom models.Symptom) []models.Symptom {
	result := make([]models.Symptom, 0, len(symptoms)+1)
	removed := false
	for _, existing := range symptoms {
		if existing == symptom {
			removed = true
			continue
		}
		result = append(result, existing)
	}
	if !removed {
		result = append(result, symptom)
	}
	return result
}

func (service *CycleService) FinishPeriod(ctx context.Context, cycleID string, today time.Time) (models.CycleRecord, error) {
	today = models.DayOf(today)

	service.mu.Lock()
	before := service.store.Snapshot()
	record, found := findRecord(before, cycleID)
	if !found {
		service.mu.Unlock()
		return models.CycleRecord{}, ErrCycleNotFound
	}
	if !record.IsOpen() {
		service.mu.Unlock()
		return models.CycleRecord{}, ErrCycleAlreadyFinished
	}
	if today.Before(models.DayOf(record.StartDate)) {
		service.mu.Unlock()
		return models.CycleRecord{}, ErrInvalidDateRange
	}

	record.EndDate = &today
	service.store.Replace(record)
	err := service.persist(ctx, before, "finish period")
	service.mu.Unlock()
	if err != nil {
		return models.CycleRecord{}, err
	}

	service.log.Info("period finished", "cycle_id", cycleID, "end", models.FormatDay(today))
	service.notifyHistoryChanged()
	if service.observer != nil {
		service.observer.CycleFinished(record.Clone())
	}
	return record, nil
}

// EditDates overwrites the stored record with the same id.
func (service *CycleService) EditDates(ctx context.Context, edited models.CycleRecord) (models.CycleRecord, error) {
	normalized, err := normalizeRecord(edited)
	if err != nil {
		return models.CycleRecord{}, err
	}

	service.mu.Lock()
	before := service.store.Snapshot()
	if _, found := findRecord(before, normalized.ID); !found {
		service.mu.Unlock()
		return models.CycleRecord{}, ErrCycleNotFound
	}
	if normalized.IsOpen() {
		if _, open := findOpenRecord(before, normalized.ID); open {
			service.mu.Unlock()
			return models.CycleRecord{}, ErrOpenCycleExists
		}
	}

	service.store.Replace(normalized)
	err = service.persist(ctx, before, "edit cycle")
	service.mu.Unlock()
	if err != nil {
		return models.CycleRecord{}, err
	}

	service.log.Info("cycle edited", "cycle_id", normalized.ID, "start", models.FormatDay(normalized.StartDate), "open", normalized.IsOpen())
	service.notifyHistoryChanged()
	return normalized, nil
}

func (service *CycleService) DeleteCycle(ctx context.Context, id string) error {
	service.mu.Lock()
	before := service.store.Snapshot()
	if !service.store.Delete(id) {
		service.mu.Unlock()
		return ErrCycleNotFound
	}
	err := service.persist(ctx, before, "delete cycle")
	service.mu.Unlock()
	if err != nil {
		return err
	}

	service.log.Info("cycle deleted", "cycle_id", id)
	service.notifyHistoryChanged()
	return nil
}

// ReplaceAll swaps the whole collection, used by data import. The records
// must satisfy the same invariants as individual edits.
func (service *CycleService) ReplaceAll(ctx context.Context, records []models.CycleRecord) error {
	normalized, err := normalizeCollection(records, service.newID)
	if err != nil {
		return err
	}

	service.mu.Lock()
	before := service.store.Snapshot()
	service.store.Restore(normalized)
	err = service.persist(ctx, before, "replace cycles")
	service.mu.Unlock()
	if err != nil {
		return err
	}

	service.log.Info("cycles replaced", "count", len(normalized))
	service.notifyHistoryChanged()
	return nil
}

// normalizeCollection validates a whole collection: every record normalizes,
// ids are unique and at most one record is open. Missing ids are filled by
// newID when it is set and rejected otherwise.
func normalizeCollection(records []models.CycleRecord, newID func() string) ([]models.CycleRecord, error) {
	normalized := make([]models.CycleRecord, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	openCount := 0
	for _, record := range records {
		if strings.TrimSpace(record.ID) == "" && newID != nil {
			record.ID = newID()
		}
		cleaned, err := normalizeRecord(record)
		if err != nil {
			return nil, fmt.Errorf("cycle %q: %w", record.ID, err)
		}
		if _, duplicate := seen[cleaned.ID]; duplicate {
			return nil, fmt.Errorf("cycle %q: %w", cleaned.ID, ErrDuplicateCycleID)
		}
		seen[cleaned.ID] = struct{}{}
		if cleaned.IsOpen() {
			openCount++
		}
		normalized = append(normalized, cleaned)
	}
	if openCount > 1 {
		return nil, ErrOpenCycleExists
	}
	return normalized, nil
}

func normalizeRecord(record models.CycleRecord) (models.CycleRecord, error) {
	normalized := models.CycleRecord{
		ID:        strings.TrimSpace(record.ID),
		StartDate: models.DayOf(record.StartDate),
		Symptoms:  make([]models.Symptom, 0, len(record.Symptoms)),
	}
	if normalized.ID == "" {
		return models.CycleRecord{}, ErrCycleNotFound
	}
	if record.EndDate != nil {
		end := models.DayOf(*record.EndDate)
		if end.Before(normalized.StartDate) {
			return models.CycleRecord{}, ErrInvalidDateRange
		}
		normalized.EndDate = &end
	}

	for _, raw := range record.Symptoms {
		symptom, ok := models.ParseSymptom(string(raw))
		if !ok {
			return models.CycleRecord{}, ErrUnknownSymptom
		}
		if !normalized.HasSymptom(symptom) {
			normalized.Symptoms = append(normalized.Symptoms, symptom)
		}
	}
	return normalized, nil
}

func findRecord(records []models.CycleRecord, id string) (models.CycleRecord, bool) {
	for _, record := range records {
		if record.ID == id {
			return record, true
		}
	}
	return models.CycleRecord{}, false
}

// persist must be called with service.mu held.
func (service *CycleService) persist(ctx context.Context, before []models.CycleRecord, op string) error {
	if err := service.store.Save(ctx); err != nil {
		service.store.Restore(before)
		service.log.Error("persist cycles failed", "op", op, "error", err)
		return fmt.Errorf("%w: %s: %v", ErrPersistFailed, op, err)
	}
	return nil
}

func (service *CycleService) notifyHistoryChanged() {
	if service.observer == nil {
		return
	}
	service.observer.HistoryChanged(service.store.Snapshot())
}
