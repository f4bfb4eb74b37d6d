package sqlite

import (
	"path/filepath"
	"testing"
)

func TestDriverInfo(t *testing.T) {
	info := GetInfo()

	if info.DriverName != DriverName() {
		t.Errorf("DriverName mismatch: info=%s, func=%s", info.DriverName, DriverName())
	}
	if info.DriverType != DriverType() {
		t.Errorf("DriverType mismatch: info=%s, func=%s", info.DriverType, DriverType())
	}
	if info.IsCGO != IsCGO() {
		t.Errorf("IsCGO mismatch: info=%v, func=%v", info.IsCGO, IsCGO())
	}
	if info.Package == "" {
		t.Error("Package should not be empty")
	}

	switch info.DriverType {
	case "purego":
		if info.DriverName != "sqlite" {
			t.Errorf("purego driver should use 'sqlite' name, got '%s'", info.DriverName)
		}
	case "cgo":
		if info.DriverName != "sqlite3" {
			t.Errorf("cgo driver should use 'sqlite3' name, got '%s'", info.DriverName)
		}
	default:
		t.Errorf("unknown driver type: %s", info.DriverType)
	}
}

func TestOpenFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "passages.db")

	db, err := OpenFile(dbPath)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE keys (start_key INTEGER, end_key INTEGER)`); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO keys VALUES (?, ?)`, 1001001, 1001031); err != nil {
		t.Fatalf("failed to insert: %v", err)
	}

	var end int
	if err := db.QueryRow(`SELECT end_key FROM keys WHERE start_key = ?`, 1001001).Scan(&end); err != nil {
		t.Fatalf("failed to query: %v", err)
	}
	if end != 1001031 {
		t.Errorf("end_key = %d, want 1001031", end)
	}

	var fk int
	if err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk); err != nil {
		t.Fatalf("PRAGMA foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}
}

func TestOpenMemory(t *testing.T) {
	db, err := OpenFile(Memory)
	if err != nil {
		t.Fatalf("OpenFile(Memory) error = %v", err)
	}
	defer db.Close()

	if got := db.Stats().MaxOpenConnections; got != 1 {
		t.Errorf("MaxOpenConnections = %d, want 1", got)
	}
	if _, err := db.Exec(`CREATE TABLE t (v TEXT)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	// The table must be visible on the next statement's connection.
	if _, err := db.Exec(`INSERT INTO t VALUES ('x')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
}

func TestWithParams(t *testing.T) {
	tests := []struct {
		dsn, params, want string
	}{
		{"a.db", "", "a.db"},
		{"a.db", "x=1", "a.db?x=1"},
		{"file:a.db?mode=ro", "x=1", "file:a.db?mode=ro&x=1"},
	}
	for _, tt := range tests {
		if got := withParams(tt.dsn, tt.params); got != tt.want {
			t.Errorf("withParams(%q, %q) = %q, want %q", tt.dsn, tt.params, got, tt.want)
		}
	}
}
