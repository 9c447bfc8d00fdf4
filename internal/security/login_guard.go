// Package security provides in-memory protections for the authentication
// endpoints.
package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	LoginMaxAttempts = 5
	LoginWindow      = 15 * time.Minute
	LoginLockout     = 5 * time.Minute
	loginCleanup     = 60 * time.Second
	loginMaxRecords  = 10000
)

type failureRecord struct {
	attempts  int
	firstFail time.Time
	lockedAt  time.Time
}

// LoginGuard tracks per-account login failures and locks out accounts that
// exceed the failure threshold within the tracking window. Accounts are
// keyed by a hash of the submitted email, so unknown emails are tracked the
// same as real ones and the map never stores raw addresses.
type LoginGuard struct {
	mu      sync.Mutex
	records map[string]*failureRecord
	log     *logrus.Logger
}

// NewLoginGuard creates a new guard and starts a background cleanup
// goroutine that stops when ctx is cancelled.
func NewLoginGuard(ctx context.Context, log *logrus.Logger) *LoginGuard {
	g := &LoginGuard{
		records: make(map[string]*failureRecord),
		log:     log,
	}
	go g.cleanupLoop(ctx)

	return g
}

func emailHash(email string) string {
	h := sha256.Sum256([]byte(email))

	return hex.EncodeToString(h[:])
}

// IsBlocked returns true if the given email is currently locked out.
func (g *LoginGuard) IsBlocked(email string) bool {
	eh := emailHash(email)
	g.mu.Lock()
	defer g.mu.Unlock()

	rec, ok := g.records[eh]
	if !ok {
		return false
	}

	return !rec.lockedAt.IsZero() && time.Since(rec.lockedAt) < LoginLockout
}

// RecordFailure records a failed login attempt for the given email.
func (g *LoginGuard) RecordFailure(email string) {
	eh := emailHash(email)
	now := time.Now()

	g.mu.Lock()
	defer g.mu.Unlock()

	rec, ok := g.records[eh]
	if !ok {
		g.records[eh] = &failureRecord{attempts: 1, firstFail: now}
		return
	}

	// Reset if outside the tracking window.
	if now.Sub(rec.firstFail) > LoginWindow {
		rec.attempts = 1
		rec.firstFail = now
		rec.lockedAt = time.Time{}

		return
	}

	rec.attempts++
	if rec.attempts >= LoginMaxAttempts {
		rec.lockedAt = now
		g.log.WithField("email_hash", eh[:16]+"...").Warn("account locked out due to repeated login failures")
	}
}

// Reset clears failure tracking for an email (call on successful login).
func (g *LoginGuard) Reset(email string) {
	eh := emailHash(email)
	g.mu.Lock()
	delete(g.records, eh)
	g.mu.Unlock()
}

func (g *LoginGuard) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(loginCleanup)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now()
			g.mu.Lock()
			for k, rec := range g.records {
				if !rec.lockedAt.IsZero() && now.Sub(rec.lockedAt) >= LoginLockout {
					delete(g.records, k)
				} else if now.Sub(rec.firstFail) >= LoginWindow {
					delete(g.records, k)
				}
			}
			if len(g.records) > loginMaxRecords {
				g.evictOldest(len(g.records) - loginMaxRecords)
			}
			g.mu.Unlock()
		}
	}
}

// evictOldest removes n entries with the oldest firstFail times.
// Caller must hold g.mu. Complexity: O(m log m) via sort.
func (g *LoginGuard) evictOldest(n int) {
	type entry struct {
		key  string
		time time.Time
	}
	entries := make([]entry, 0, len(g.records))
	for k, rec := range g.records {
		entries = append(entries, entry{k, rec.firstFail})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].time.Before(entries[j].time)
	})
	for i := 0; i < n; i++ {
		delete(g.records, entries[i].key)
	}
}
