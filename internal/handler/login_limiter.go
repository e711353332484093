package handler

import (
	"sync"
	"time"
)

// loginLimiter throttles repeated failed logins per email, in memory. It is
// intentionally simple: repeated failures open a cooldown window, and a
// successful login clears the record. A background sweep drops stale
// entries so the map does not grow without bound.
type loginLimiter struct {
	mu       sync.Mutex
	attempts map[string]*loginAttempt

	maxFailures int
	cooldown    time.Duration
}

type loginAttempt struct {
	failures int
	lastFail time.Time
}

func newLoginLimiter(maxFailures int, cooldown time.Duration) *loginLimiter {
	l := &loginLimiter{
		attempts:    make(map[string]*loginAttempt),
		maxFailures: maxFailures,
		cooldown:    cooldown,
	}
	go l.sweep()
	return l
}

// Blocked reports whether the email is currently in its cooldown window.
func (l *loginLimiter) Blocked(email string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.attempts[email]
	if !ok || a.failures < l.maxFailures {
		return false
	}
	if time.Since(a.lastFail) > l.cooldown {
		delete(l.attempts, email)
		return false
	}
	return true
}

// Fail records a failed attempt for the email.
func (l *loginLimiter) Fail(email string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.attempts[email]
	if !ok {
		a = &loginAttempt{}
		l.attempts[email] = a
	}
	a.failures++
	a.lastFail = time.Now()
}

// Clear removes the record after a successful login.
func (l *loginLimiter) Clear(email string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, email)
}

func (l *loginLimiter) sweep() {
	for range time.Tick(10 * time.Minute) {
		cutoff := time.Now().Add(-2 * l.cooldown)
		l.mu.Lock()
		for email, a := range l.attempts {
			if a.lastFail.Before(cutoff) {
				delete(l.attempts, email)
			}
		}
		l.mu.Unlock()
	}
}
