// Package stats provides privacy-first page-view counting for posts.
// Visitor IPs are never stored raw; they are hashed with a per-installation
// salt, and sessions are random uuids minted client-side per browser session.
package stats

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// salt holds the per-installation random salt for IP hashing, protected by sync.Once.
var salt struct {
	once  sync.Once
	value string
}

// InitSalt loads or generates a persistent salt for IP hashing.
// Must be called once at startup before any requests are served.
func InitSalt(store *Store) error {
	var initErr error
	salt.once.Do(func() {
		s, err := store.GetSetting("hash_salt")
		if err != nil {
			initErr = fmt.Errorf("read hash salt: %w", err)
			return
		}
		if s == "" {
			b := make([]byte, 32)
			if _, err := rand.Read(b); err != nil {
				initErr = fmt.Errorf("generate salt: %w", err)
				return
			}
			s = hex.EncodeToString(b)
			if err := store.SetSetting("hash_salt", s); err != nil {
				initErr = fmt.Errorf("store hash salt: %w", err)
				return
			}
		}
		salt.value = s
	})
	return initErr
}

// HashIP returns the salted hash of an IP address.
func HashIP(ip string) string {
	sum := sha256.Sum256([]byte(salt.value + ip))
	return hex.EncodeToString(sum[:])
}

// NewSessionID mints a fresh session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// Visit represents a single page view.
type Visit struct {
	ID        int64     `json:"-"`
	SessionID string    `json:"session_id"`
	IPHash    string    `json:"-"`
	Path      string    `json:"path"`
	Referrer  string    `json:"referrer"`
	Timestamp time.Time `json:"timestamp"`
}

// VisitRequest is the payload sent by the client-side beacon.
type VisitRequest struct {
	SessionID string `json:"session_id"`
	Path      string `json:"path"`
	Referrer  string `json:"referrer"`
}

// PathCount is an aggregated view count for one page path.
type PathCount struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}
