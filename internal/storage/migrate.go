// ABOUTME: Data migration between dashboard storage backends.
// ABOUTME: Copies every key from a source KV to a destination KV.

package storage

import (
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entries.
type MigrateSummary struct {
	Keys  int
	Bytes int
}

// MigrateData copies all keys from src to dst. Existing destination values for
// the same keys are overwritten; other destination keys are left alone.
func MigrateData(src, dst KV) (*MigrateSummary, error) {
	keys, err := src.Keys()
	if err != nil {
		return nil, fmt.Errorf("list source keys: %w", err)
	}

	summary := &MigrateSummary{}
	for _, k := range keys {
		value, err := src.Get(k)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", k, err)
		}
		if err := dst.Set(k, value); err != nil {
			return nil, fmt.Errorf("write %s: %w", k, err)
		}
		summary.Keys++
		summary.Bytes += len(value)
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
