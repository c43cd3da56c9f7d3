package migrate

import (
	"fmt"
	"os"
	"path/filepath"
)

// LogFileName is the per-run diagnostics mirror inside the output
// directory. It survives --overwrite so a run's log can outlive the
// content it replaces.
const LogFileName = "conversion-log.txt"

// PrepareOutput ensures the output directory is ready for a run. A
// non-empty directory is a fatal startup error unless overwrite is set,
// in which case everything except the log file is removed.
func PrepareOutput(dir string, overwrite bool) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0755)
	}
	if err != nil {
		return fmt.Errorf("read output directory: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}
	if !overwrite {
		return fmt.Errorf("output directory %s is not empty (pass --overwrite to reuse it)", dir)
	}

	for _, e := range entries {
		if e.Name() == LogFileName {
			continue
		}
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("clear output directory: %w", err)
		}
	}
	return nil
}
