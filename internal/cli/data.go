package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/terraincognita07/cyclecare/internal/logger"
	"github.com/terraincognita07/cyclecare/internal/models"
	"github.com/terraincognita07/cyclecare/internal/services"
)

// RunExportCommand writes the stored collection in its persisted JSON form.
func RunExportCommand(ctx context.Context, kv services.KeyValueStore, key string, out io.Writer, log *logger.Logger) error {
	store := services.NewCycleStore(kv, key, log)
	if err := store.Load(ctx); err != nil {
		return fmt.Errorf("load cycles: %w", err)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(store.Snapshot()); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// RunImportCommand replaces the stored collection with the records read from
// in. The import is rejected as a whole if any record is invalid.
func RunImportCommand(ctx context.Context, kv services.KeyValueStore, key string, in io.Reader, log *logger.Logger) (int, error) {
	records := make([]models.CycleRecord, 0)
	if err := json.NewDecoder(in).Decode(&records); err != nil {
		return 0, fmt.Errorf("decode import: %w", err)
	}

	store := services.NewCycleStore(kv, key, log)
	cycles := services.NewCycleService(store, nil, log)
	if err := cycles.ReplaceAll(ctx, records); err != nil {
		return 0, fmt.Errorf("import cycles: %w", err)
	}
	return len(records), nil
}

func RunClearCommand(ctx context.Context, kv services.KeyValueStore, key string) error {
	if key == "" {
		key = services.DefaultCycleStoreKey
	}
	if err := kv.Delete(ctx, key); err != nil {
		return fmt.Errorf("clear %s: %w", key, err)
	}
	return nil
}
