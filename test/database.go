// Package test holds helpers shared by the tests of all packages.
package test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

// TmpFile returns a path for a fresh SQLite database inside the temporary
// directory of t. The directory is removed when t finishes.
func TmpFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), fmt.Sprintf("money-health-%s.db", uuid.NewString()))
}
