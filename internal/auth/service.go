// Package auth implements the credential issuance core: password
// verification, access-token minting, refresh-token rotation with reuse
// detection, and bearer-credential extraction. It talks to persistence only
// through the UserStore and TokenStore contracts and never deals in HTTP.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/iliyamo/todo-auth/internal/lock"
	"github.com/iliyamo/todo-auth/internal/model"
)

const (
	// refreshTokenBytes of randomness per token, URL-safe base64 encoded.
	refreshTokenBytes = 64
	// maxGenerateAttempts bounds the collision-regeneration loop. A single
	// collision on 64 random bytes is already beyond unlikely.
	maxGenerateAttempts = 8
)

// Service wires the hasher, codec and stores into the operations exposed to
// the resource layer: Login, Register, Rotate and Authorize.
type Service struct {
	users      UserStore
	tokens     TokenStore
	codec      *Codec
	hasher     *Hasher
	refreshTTL time.Duration
	locks      lock.Locker
	audit      AuditSink
	now        func() time.Time
}

// Option customizes a Service at construction.
type Option func(*Service)

// WithLocker replaces the default in-process keyed mutex, e.g. with the
// Redis locker when rotation must be serialized across processes.
func WithLocker(l lock.Locker) Option {
	return func(s *Service) { s.locks = l }
}

// WithAuditSink attaches a sink for security events such as detected
// refresh-token reuse.
func WithAuditSink(sink AuditSink) Option {
	return func(s *Service) { s.audit = sink }
}

// WithClock overrides the time source. Tests use it to move tokens past
// their expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
		s.codec.now = now
	}
}

// NewService builds the authentication core. refreshTTL is the lifetime of
// newly issued refresh tokens.
func NewService(users UserStore, tokens TokenStore, codec *Codec, hasher *Hasher, refreshTTL time.Duration, opts ...Option) *Service {
	s := &Service{
		users:      users,
		tokens:     tokens,
		codec:      codec,
		hasher:     hasher,
		refreshTTL: refreshTTL,
		locks:      lock.NewKeyedMutex(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newRefreshValue returns a fresh random token value that does not yet
// exist in the store, regenerating on collision.
func (s *Service) newRefreshValue(ctx context.Context) (string, error) {
	for i := 0; i < maxGenerateAttempts; i++ {
		buf := make([]byte, refreshTokenBytes)
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		value := base64.RawURLEncoding.EncodeToString(buf)
		n, err := s.tokens.CountWithValue(ctx, value)
		if err != nil {
			return "", err
		}
		if n == 0 {
			return value, nil
		}
	}
	return "", errors.New("could not generate a unique refresh token")
}

// issueRefreshToken generates, collision-checks and persists a fresh active
// refresh token with no child.
func (s *Service) issueRefreshToken(ctx context.Context, userID int64) (*model.RefreshToken, error) {
	value, err := s.newRefreshValue(ctx)
	if err != nil {
		return nil, err
	}
	t := &model.RefreshToken{
		Token:    value,
		UserID:   userID,
		NotAfter: s.now().Add(s.refreshTTL),
		Active:   true,
	}
	if err := s.tokens.Insert(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}
