package v1

import (
	"context"
	"fmt"
	"time"
)

// Sleep pauses execution for the given duration, e.g. to let the UI settle.
// In dry-run mode it records the action but skips the actual delay.
func Sleep(d time.Duration) {
	RecordAction(fmt.Sprintf("Sleep %s", d), func() { Sleep(d) })
	if IsDryRun() {
		return
	}
	Log(LogTypeInfo, "Sleep", fmt.Sprintf("Duration: %s", d))
	time.Sleep(d)
}

// Poll calls check every interval until it reports done, returns an error, or ctx ends.
// The last check error is included when the context expires.
func Poll(ctx context.Context, interval time.Duration, check func() (bool, error)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last error
	for {
		done, err := check()
		if err == nil && done {
			return nil
		}
		last = err

		select {
		case <-ctx.Done():
			if last != nil {
				return fmt.Errorf("%w (last error: %v)", ctx.Err(), last)
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
