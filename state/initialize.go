package state

import (
	"time"
)

// newLocalEnv creates a new LocalEnv instance, logger and configuration are
// set later when command line has been parsed.
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
	}
}
