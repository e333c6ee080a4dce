package v1

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// RemoveFile deletes path. A missing file is fine and any other error is only
// logged, so a stale file never fails the stage. It reports whether a file was removed.
func RemoveFile(path string) bool {
	RecordAction(fmt.Sprintf("Remove File: %s", path), func() { RemoveFile(path) })
	if IsDryRun() {
		return false
	}
	err := os.Remove(path)
	switch {
	case err == nil:
		Log(LogTypeFile, fmt.Sprintf("Removed %s", path), "")
		return true
	case errors.Is(err, fs.ErrNotExist):
		Log(LogTypeFile, fmt.Sprintf("Nothing to remove at %s", path), "")
	default:
		Log(LogTypeFile, fmt.Sprintf("Issue deleting %s", path), err.Error())
	}
	return false
}
