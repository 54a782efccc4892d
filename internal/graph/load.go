package graph

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nborders/grove/internal/apperr"
)

// Load reads a snapshot into memory, dispatching on the file extension.
// SQLite databases (.db, .sqlite, .sqlite3) and JSON dumps (.json) are
// supported. The source is validated before the output tree is touched,
// so a bad path aborts the run with no side effects.
func Load(path string) (*Graph, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("graph: stat snapshot: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return loadSQLite(path)
	case ".json":
		return loadJSON(path)
	default:
		return nil, fmt.Errorf("graph: load %s: %w", path, apperr.ErrUnsupportedFormat)
	}
}
