package common

import (
	"sync"
	"time"
)

// InMemoryRateLimiter is the fallback limiter when Redis is not configured.
// It keeps a sliding window of request timestamps per key and prunes idle
// keys after expirationDuration.
type InMemoryRateLimiter struct {
	store              map[string][]time.Time
	mutex              sync.Mutex
	expirationDuration time.Duration

	// now is replaceable in tests.
	now func() time.Time
}

func (l *InMemoryRateLimiter) Init(expirationDuration time.Duration) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.store != nil {
		return
	}
	l.store = make(map[string][]time.Time)
	l.expirationDuration = expirationDuration
	if l.now == nil {
		l.now = time.Now
	}
	go l.clearExpiredItems()
}

func (l *InMemoryRateLimiter) clearExpiredItems() {
	for {
		time.Sleep(l.expirationDuration)
		l.mutex.Lock()
		now := l.now()
		for key, stamps := range l.store {
			if len(stamps) == 0 || now.Sub(stamps[len(stamps)-1]) > l.expirationDuration {
				delete(l.store, key)
			}
		}
		l.mutex.Unlock()
	}
}

// Request reports whether another request under key is allowed given at most
// maxRequestNum requests per duration seconds.
func (l *InMemoryRateLimiter) Request(key string, maxRequestNum int, duration int64) bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	now := l.now()
	cutoff := now.Add(-time.Duration(duration) * time.Second)

	stamps := l.store[key]
	kept := stamps[:0]
	for _, ts := range stamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) >= maxRequestNum {
		l.store[key] = kept
		return false
	}
	l.store[key] = append(kept, now)
	return true
}
