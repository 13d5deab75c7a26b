package imagebanner

import (
	"os"
	"sync"
)

// HeadlessEnv is the process-wide flag set while images are decoded and
// scaled.
const HeadlessEnv = "IMAGEBANNER_HEADLESS"

var headlessMu sync.Mutex

// Headless reports whether a decode and resize is currently in progress.
func Headless() bool {
	return os.Getenv(HeadlessEnv) == "true"
}

// withHeadless runs fn with HeadlessEnv set to "true", restoring the previous
// value afterwards, even if fn panics. Calls are serialized.
func withHeadless(fn func() error) error {
	headlessMu.Lock()
	defer headlessMu.Unlock()

	prev, ok := os.LookupEnv(HeadlessEnv)
	if err := os.Setenv(HeadlessEnv, "true"); err != nil {
		return err
	}
	defer func() {
		if ok {
			os.Setenv(HeadlessEnv, prev)
		} else {
			os.Unsetenv(HeadlessEnv)
		}
	}()

	return fn()
}
