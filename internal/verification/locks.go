package verification

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type lockEntry struct {
	m    sync.Mutex
	refs int
}

// userLocks serializes flow operations per user id. The host platform the
// original UI ran on serialized event handlers per session; behind a
// concurrent HTTP server that guarantee has to be made explicit, or two
// submissions for the same user could interleave their get-then-set pairs.
//
// Entries are pinned in the held map while any goroutine holds or waits on
// them, so LRU eviction can never hand two goroutines different mutexes for
// the same user. Only idle entries sit in the LRU, where they age out.
type userLocks struct {
	mu   sync.Mutex
	held map[string]*lockEntry
	lru  *expirable.LRU[string, *lockEntry]
}

func newUserLocks(size int, ttl time.Duration) *userLocks {
	return &userLocks{
		held: make(map[string]*lockEntry),
		lru:  expirable.NewLRU[string, *lockEntry](size, nil, ttl),
	}
}

// lock acquires the lock for userID and returns the unlock function.
func (l *userLocks) lock(userID string) func() {
	l.mu.Lock()
	e, ok := l.held[userID]
	if !ok {
		if e, ok = l.lru.Get(userID); ok {
			l.lru.Remove(userID)
		} else {
			e = &lockEntry{}
		}
		l.held[userID] = e
	}
	e.refs++
	l.mu.Unlock()

	e.m.Lock()
	return func() {
		e.m.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.held, userID)
			l.lru.Add(userID, e)
		}
		l.mu.Unlock()
	}
}
