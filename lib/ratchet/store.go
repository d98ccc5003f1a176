package ratchet

import (
	"sync"
	"time"

	"github.com/go-i2p/logger"

	"github.com/go-rns/go-rns/lib/crypto/x25519"
)

// Retention defaults, overridable per store
const (
	DEFAULT_EXPIRY       = 30 * 24 * time.Hour
	DEFAULT_MAX_RETAINED = 512
)

type entry struct {
	private []byte
	public  []byte
	created time.Time
}

// Store holds an identity's own rotating ratchet keys. Each store is
// owned by exactly one caller; there is no process-wide ratchet state.
// Published ratchets are retained until they expire or the retention
// cap evicts the oldest, so tokens sealed to a superseded ratchet can
// still be opened.
type Store struct {
	mu          sync.RWMutex
	ratchets    map[string]*entry
	current     *entry
	expiry      time.Duration
	maxRetained int
	now         func() time.Time
}

// NewStore creates an empty ratchet store. Non-positive expiry or
// retention values select the defaults.
func NewStore(expiry time.Duration, maxRetained int) *Store {
	if expiry <= 0 {
		expiry = DEFAULT_EXPIRY
	}
	if maxRetained <= 0 {
		maxRetained = DEFAULT_MAX_RETAINED
	}
	return &Store{
		ratchets:    make(map[string]*entry),
		expiry:      expiry,
		maxRetained: maxRetained,
		now:         time.Now,
	}
}

// Rotate generates a fresh ratchet key, makes it current, and returns
// its public key for inclusion in the next announce. The superseded
// key stays retained for decryption.
func (s *Store) Rotate() ([]byte, error) {
	pub, priv, err := x25519.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	id, err := ID(pub)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e := &entry{private: priv, public: pub, created: s.now()}
	s.ratchets[string(id)] = e
	s.current = e
	s.evictLocked()

	log.WithFields(logger.Fields{
		"retained": len(s.ratchets),
	}).Debug("Rotated ratchet")
	return append([]byte(nil), pub...), nil
}

// Current returns the current ratchet public key, rotating first if
// the store is empty.
func (s *Store) Current() ([]byte, error) {
	s.mu.RLock()
	cur := s.current
	s.mu.RUnlock()
	if cur == nil {
		return s.Rotate()
	}
	return append([]byte(nil), cur.public...), nil
}

// DecryptionKeys returns the retained private keys, newest first, for
// use as identity decryption candidates. Expired keys are dropped.
func (s *Store) DecryptionKeys() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.expiry)
	keys := make([][]byte, 0, len(s.ratchets))
	if s.current != nil {
		keys = append(keys, append([]byte(nil), s.current.private...))
	}
	for id, e := range s.ratchets {
		if e.created.Before(cutoff) {
			delete(s.ratchets, id)
			continue
		}
		if e == s.current {
			continue
		}
		keys = append(keys, append([]byte(nil), e.private...))
	}
	return keys
}

// Get returns the private key for a ratchet id, if retained.
func (s *Store) Get(ratchetID []byte) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.ratchets[string(ratchetID)]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), e.private...), true
}

// Len returns the number of retained ratchets.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ratchets)
}

func (s *Store) evictLocked() {
	for len(s.ratchets) > s.maxRetained {
		var oldestID string
		var oldest time.Time
		first := true
		for id, e := range s.ratchets {
			if first || e.created.Before(oldest) {
				oldestID, oldest = id, e.created
				first = false
			}
		}
		delete(s.ratchets, oldestID)
	}
}
