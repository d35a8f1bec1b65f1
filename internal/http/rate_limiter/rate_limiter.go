package rate_limiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter throttles login attempts per client address so a misbehaving
// device on the counter network cannot hammer the operator password.
type Limiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func New() *Limiter {
	return &Limiter{clients: make(map[string]*clientLimiter)}
}

// Allow reports whether the given client may attempt a login right now.
// Each client gets 1 attempt/sec with a burst of 3.
func (l *Limiter) Allow(addr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, exists := l.clients[addr]
	if !exists {
		c = &clientLimiter{limiter: rate.NewLimiter(1, 3)}
		l.clients[addr] = c
	}
	c.lastSeen = time.Now()
	return c.limiter.Allow()
}

// StartCleanupLoop drops clients not seen for five minutes. Run in its own
// goroutine.
func (l *Limiter) StartCleanupLoop() {
	for {
		time.Sleep(time.Minute)
		l.mu.Lock()
		for addr, c := range l.clients {
			if time.Since(c.lastSeen) > 5*time.Minute {
				delete(l.clients, addr)
			}
		}
		l.mu.Unlock()
	}
}
