// =============================================================================
// Fechamento - Path Utilities
// =============================================================================
//
// Helpers for resolving the day-root directory layout. Users point the
// tool either at the root itself or directly at one of its well-known
// subdirectories ("planilha", "relatorios"); both forms are accepted, as
// the original operators were used to.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveRoot normalizes a user-supplied directory to the day root. If dir
// itself is named like the given subdirectory (case-insensitive), its
// parent is the root; otherwise dir is the root.
func ResolveRoot(dir, subdir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve directory: %w", err)
	}
	if strings.EqualFold(filepath.Base(abs), subdir) {
		return filepath.Dir(abs), nil
	}
	return abs, nil
}

// EnsureDir creates dir (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// DirExists reports whether path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
