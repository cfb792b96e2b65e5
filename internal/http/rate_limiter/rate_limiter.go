package rate_limiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	clients = make(map[string]*clientLimiter)
	mu      sync.Mutex

	loginRate  = rate.Limit(1)
	loginBurst = 3
)

// Configure sets the per-client rate and burst for the credential endpoints.
func Configure(perSecond float64, burst int) {
	mu.Lock()
	defer mu.Unlock()
	if perSecond > 0 {
		loginRate = rate.Limit(perSecond)
	}
	if burst > 0 {
		loginBurst = burst
	}
	clients = make(map[string]*clientLimiter)
}

// GetVisitor returns the token bucket for a client IP, creating it on first sight.
func GetVisitor(ip string) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	c, exists := clients[ip]
	if !exists {
		limiter := rate.NewLimiter(loginRate, loginBurst)
		clients[ip] = &clientLimiter{limiter, time.Now()}
		return limiter
	}

	c.lastSeen = time.Now()
	return c.limiter
}

func StartVisitorCleanupLoop() {
	for {
		time.Sleep(time.Minute)
		mu.Lock()
		for ip, c := range clients {
			if time.Since(c.lastSeen) > 5*time.Minute {
				delete(clients, ip)
			}
		}
		mu.Unlock()
	}
}

func CleanupAllVisitors() {
	mu.Lock()
	defer mu.Unlock()
	clients = make(map[string]*clientLimiter)
}
