package state

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

var (
	sessionID = uuid.NewString()
	sequence  uint64
)

// SessionID identifies this process in logs and default export names.
func SessionID() string {
	return sessionID
}

// nextSnapshotID returns "<session prefix>-<sequence>", unique per process.
func nextSnapshotID() string {
	return fmt.Sprintf("%s-%d", sessionID[:8], atomic.AddUint64(&sequence, 1))
}
