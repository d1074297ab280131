package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/terraincognita07/cyclecare/internal/logger"
	"github.com/terraincognita07/cyclecare/internal/models"
)

const DefaultCycleStoreKey = "cycles"

// KeyValueStore is the persistence substrate behind CycleStore.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

// CycleStore owns the ordered cycle collection. Order is insertion order;
// mutations only touch memory until Save is called.
type CycleStore struct {
	mu      sync.RWMutex
	kv      KeyValueStore
	key     string
	log     *logger.Logger
	records []models.CycleRecord
}

func NewCycleStore(kv KeyValueStore, key string, log *logger.Logger) *CycleStore {
	if strings.TrimSpace(key) == "" {
		key = DefaultCycleStoreKey
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CycleStore{
		kv:      kv,
		key:     key,
		log:     log,
		records: []models.CycleRecord{},
	}
}

// Load replaces the in-memory collection with the persisted one. Absent or
// malformed values, including records that break the collection rules, yield
// an empty collection; only substrate failures are
// returned, and they also leave the collection empty.
func (store *CycleStore) Load(ctx context.Context) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.records = []models.CycleRecord{}

	raw, found, err := store.kv.Get(ctx, store.key)
	if err != nil {
		return fmt.Errorf("read %s: %w", store.key, err)
	}
	if !found || strings.TrimSpace(raw) == "" {
		return nil
	}

	decoded := make([]models.CycleRecord, 0)
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		store.log.Warn("stored cycles are malformed, starting empty", "key", store.key, "error", err)
		return nil
	}
	normalized, err := normalizeCollection(decoded, nil)
	if err != nil {
		store.log.Warn("stored cycles are malformed, starting empty", "key", store.key, "error", err)
		return nil
	}
	store.records = normalized
	return nil
}

func (store *CycleStore) Save(ctx context.Context) error {
	store.mu.RLock()
	serialized, err := json.Marshal(store.records)
	store.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("serialize cycles: %w", err)
	}

	if err := store.kv.Set(ctx, store.key, string(serialized)); err != nil {
		return fmt.Errorf("write %s: %w", store.key, err)
	}
	return nil
}

// Snapshot returns a deep copy in insertion order.
func (store *CycleStore) Snapshot() []models.CycleRecord {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return cloneRecords(store.records)
}

func (store *CycleStore) Len() int {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return len(store.records)
}

func (store *CycleStore) Find(id string) (models.CycleRecord, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	for _, record := range store.records {
		if record.ID == id {
			return record.Clone(), true
		}
	}
	return models.CycleRecord{}, false
}

func (store *CycleStore) Add(record models.CycleRecord) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.records = append(store.records, record.Clone())
}

// Replace overwrites the record with the same id in place.
func (store *CycleStore) Replace(record models.CycleRecord) bool {
	store.mu.Lock()
	defer store.mu.Unlock()

	for index := range store.records {
		if store.records[index].ID == record.ID {
			store.records[index] = record.Clone()
			return true
		}
	}
	return false
}

func (store *CycleStore) Delete(id string) bool {
	store.mu.Lock()
	defer store.mu.Unlock()

	for index := range store.records {
		if store.records[index].ID == id {
			store.records = append(store.records[:index], store.records[index+1:]...)
			return true
		}
	}
	return false
}

func (store *CycleStore) Restore(records []models.CycleRecord) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.records = cloneRecords(records)
}

func cloneRecords(records []models.CycleRecord) []models.CycleRecord {
	cloned := make([]models.CycleRecord, 0, len(records))
	for _, record := range records {
		cloned = append(cloned, record.Clone())
	}
	return cloned
}
