package usage

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

const lockStripes = 64

// stripedLocks serializes read-modify-write cycles per installation without
// keeping one mutex per id alive forever. Two ids may share a stripe.
type stripedLocks struct {
	mus [lockStripes]sync.Mutex
}

func (l *stripedLocks) lock(userID string) (unlock func()) {
	mu := &l.mus[xxhash.Sum64String(userID)%lockStripes]
	mu.Lock()
	return mu.Unlock
}
