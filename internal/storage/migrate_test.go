// ABOUTME: Tests for data migration between storage backends.
// ABOUTME: Covers sqlite-to-badger, badger-to-sqlite and empty-directory checks.
package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func seed(t *testing.T, kv KV) {
	t.Helper()
	data := map[string]string{
		"dashboard.selectedMetrics": `["weight"]`,
		"dashboard.timeRange":       `"year"`,
		"dashboard.completedTasks":  `["gen-medication-daily"]`,
	}
	for k, v := range data {
		if err := kv.Set(k, []byte(v)); err != nil {
			t.Fatalf("seed %s: %v", k, err)
		}
	}
}

func assertSameContents(t *testing.T, src, dst KV) {
	t.Helper()
	keys, _ := src.Keys()
	for _, k := range keys {
		want, _ := src.Get(k)
		got, err := dst.Get(k)
		if err != nil {
			t.Errorf("destination missing %s: %v", k, err)
			continue
		}
		if string(got) != string(want) {
			t.Errorf("%s = %q, want %q", k, got, want)
		}
	}
}

func TestMigrateDataSQLiteToBadger(t *testing.T) {
	src := setupTestDB(t)
	dst := setupTestBadger(t)
	seed(t, src)

	summary, err := MigrateData(src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Keys != 3 {
		t.Errorf("migrated %d keys, want 3", summary.Keys)
	}
	if summary.Bytes == 0 {
		t.Error("expected byte count")
	}
	assertSameContents(t, src, dst)
}

func TestMigrateDataBadgerToSQLite(t *testing.T) {
	src := setupTestBadger(t)
	dst := setupTestDB(t)
	seed(t, src)

	if _, err := MigrateData(src, dst); err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	assertSameContents(t, src, dst)
}

func TestMigrateDataEmptySource(t *testing.T) {
	summary, err := MigrateData(NewMemoryKV(), NewMemoryKV())
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Keys != 0 {
		t.Errorf("migrated %d keys from empty source", summary.Keys)
	}
}

func TestIsDirNonEmpty(t *testing.T) {
	dir := t.TempDir()

	if got, err := IsDirNonEmpty(filepath.Join(dir, "missing")); err != nil || got {
		t.Errorf("missing dir = %v, %v", got, err)
	}
	if got, err := IsDirNonEmpty(dir); err != nil || got {
		t.Errorf("empty dir = %v, %v", got, err)
	}
	if err := os.WriteFile(filepath.Join(dir, "f"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	if got, err := IsDirNonEmpty(dir); err != nil || !got {
		t.Errorf("non-empty dir = %v, %v", got, err)
	}
}
