package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Write serializes the body wrapped in the outer delimiter pair,
// writing to a hidden temp file beside the target and renaming it into
// place. A reader never observes a partially written manifest, and a
// failed run leaves any pre-existing manifest untouched.
func Write(path string, body []string) error {
	lines := make([]string, 0, len(body)+2)
	lines = append(lines, "{")
	lines = append(lines, body...)
	lines = append(lines, "}")

	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, "."+filepath.Base(path)+".tmp")
	data := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(tmp, []byte(data), 0o644); err != nil {
		return fmt.Errorf("writing manifest temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing manifest: %w", err)
	}
	return nil
}
