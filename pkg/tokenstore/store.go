package tokenstore

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const (
	tokenBytes      = 32
	janitorInterval = 2 * time.Minute
)

// ErrInvalidToken is the single outcome callers see for any failed
// validation. The store does not distinguish missing, expired and mismatched
// tokens to the caller; the reason is only logged.
var ErrInvalidToken = errors.New("invalid token")

type entry struct {
	payload   string
	expiresAt time.Time
}

// Store maps opaque random tokens to a payload with a TTL. With singleUse set
// a successful validation consumes the token (CSRF usage); without it tokens
// stay valid until expiry or revocation (auth sessions).
type Store struct {
	logger    *slog.Logger
	mu        sync.Mutex
	entries   map[string]entry
	singleUse bool

	now func() time.Time
}

func New(logger *slog.Logger, singleUse bool) *Store {
	return &Store{
		logger:    logger.With(slog.String("component", "tokenstore")),
		entries:   make(map[string]entry),
		singleUse: singleUse,
		now:       time.Now,
	}
}

// Issue generates a new random token holding payload, valid for ttl. Expired
// entries are swept opportunistically on every call.
func (s *Store) Issue(payload string, ttl time.Duration) (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	token := hex.EncodeToString(buf)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()

	// Collisions are vanishingly unlikely at 32 bytes of entropy; fail loudly
	// rather than overwrite if one ever happens.
	if _, exists := s.entries[token]; exists {
		return "", errors.New("token collision")
	}

	s.entries[token] = entry{payload: payload, expiresAt: s.now().Add(ttl)}
	return token, nil
}

// Validate returns the stored payload. binding, when non-empty, must equal
// the stored payload (CSRF tokens are bound to the issuing session). All
// failure modes collapse to ErrInvalidToken.
func (s *Store) Validate(token, binding string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[token]
	if !ok {
		s.logger.Debug("token not found")
		return "", ErrInvalidToken
	}
	if s.now().After(e.expiresAt) {
		delete(s.entries, token)
		s.logger.Debug("token expired")
		return "", ErrInvalidToken
	}
	if binding != "" && binding != e.payload {
		s.logger.Debug("token binding mismatch")
		return "", ErrInvalidToken
	}

	if s.singleUse {
		delete(s.entries, token)
	}
	return e.payload, nil
}

func (s *Store) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
}

func (s *Store) SweepExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
}

func (s *Store) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) sweepLocked() {
	now := s.now()
	for token, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, token)
		}
	}
}

// Start launches the periodic sweep goroutine, stopping when ctx is done.
func (s *Store) Start(ctx context.Context) error {
	go func() {
		ticker := time.NewTicker(janitorInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.SweepExpired()
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}
