// Package store persists encoded BOS documents in pluggable byte stores
// (see the bigcache, ristretto and redis subpackages).
//
// The store is the validate-before-trust boundary: every envelope is
// checked with bos.Valid on the way in (PutRaw) and again on the way out
// (Get/GetRaw), so a provider that hands back foreign or corrupted bytes
// can never push them past the decoder. Corrupt entries found on read are
// deleted best-effort and surface as a miss.
//
// Keys are namespaced as "bos:<ns>:<key>". External code must not write
// under this prefix; foreign writes are treated as corruption and dropped.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/unkn0wn-root/bos"
	"github.com/unkn0wn-root/bos/value"
)

// ErrInvalidDocument is returned by PutRaw for bytes that fail validation.
var ErrInvalidDocument = errors.New("store: not a valid BOS document")

// Provider is a minimal byte store with TTLs. Implementations must be safe
// for concurrent use and byte-for-byte transparent: Get must return exactly
// the []byte previously passed to Set for the same key, with no metadata
// prepended or transforms left applied.
type Provider interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// IO/remote failures return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL. May ignore cost if unsupported.
	// Returns ok=false when the store rejected the write under pressure.
	Set(ctx context.Context, key string, value []byte, cost int64, ttl time.Duration) (ok bool, err error)

	// Del removes a key (best-effort).
	Del(ctx context.Context, key string) error

	// Close releases resources.
	Close(ctx context.Context) error
}

// Options tune a Store. Namespace and Provider are required.
type Options struct {
	Namespace string // logical namespace to avoid collisions, e.g. "events"
	Provider  Provider

	Logger     bos.Logger    // nil => bos.NopLogger
	DefaultTTL time.Duration // applied when a call passes ttl <= 0; 0 => no expiry
	Decoder    *bos.Decoder  // nil => zero-value decoder (default depth, permissive tags)
}

// Store keeps validated BOS envelopes in a Provider.
type Store struct {
	ns       string
	provider Provider
	log      bos.Logger
	ttl      time.Duration
	dec      *bos.Decoder
}

func New(opts Options) (*Store, error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("store: provider is required")
	}
	if opts.Namespace == "" {
		return nil, fmt.Errorf("store: namespace is required")
	}
	s := &Store{
		ns:       opts.Namespace,
		provider: opts.Provider,
		log:      opts.Logger,
		ttl:      opts.DefaultTTL,
		dec:      opts.Decoder,
	}
	if s.log == nil {
		s.log = bos.NopLogger{}
	}
	if s.dec == nil {
		s.dec = &bos.Decoder{}
	}
	return s, nil
}

func (s *Store) storageKey(key string) string {
	return "bos:" + s.ns + ":" + key
}

func (s *Store) effectiveTTL(ttl time.Duration) time.Duration {
	if ttl > 0 {
		return ttl
	}
	return s.ttl
}

// Put serializes v and stores the envelope under key. ttl <= 0 falls back
// to the store's DefaultTTL.
func (s *Store) Put(ctx context.Context, key string, v *value.Value, ttl time.Duration) error {
	raw, err := bos.Serialize(v)
	if err != nil {
		return err
	}
	return s.PutRaw(ctx, key, raw, ttl)
}

// PutRaw stores an already-encoded envelope. Bytes that fail validation are
// rejected with ErrInvalidDocument before touching the provider.
func (s *Store) PutRaw(ctx context.Context, key string, raw []byte, ttl time.Duration) error {
	if !s.dec.Valid(raw) {
		return fmt.Errorf("%w: key %q", ErrInvalidDocument, key)
	}
	sk := s.storageKey(key)
	ok, err := s.provider.Set(ctx, sk, raw, int64(len(raw)), s.effectiveTTL(ttl))
	if err != nil {
		return err
	}
	if !ok {
		// Backpressure/eviction, not an error: the store is a cache of
		// documents the caller can rebuild.
		s.log.Debug("provider rejected set", bos.Fields{"key": sk, "bytes": len(raw)})
	}
	return nil
}

// Get fetches and decodes the document under key. A corrupt entry is
// deleted best-effort and reported as a miss, never as a parse error.
func (s *Store) Get(ctx context.Context, key string) (*value.Value, bool, error) {
	raw, ok, err := s.GetRaw(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	v, err := s.dec.Deserialize(raw)
	if err != nil {
		// Valid accepted the bytes in GetRaw, so this is unreachable short
		// of a provider mutating under us; self-heal the same way.
		s.dropCorrupt(ctx, key, err)
		return nil, false, nil
	}
	return v, true, nil
}

// GetRaw fetches the stored envelope without decoding it. The bytes are
// validated; corrupt entries are dropped and reported as a miss.
func (s *Store) GetRaw(ctx context.Context, key string) ([]byte, bool, error) {
	raw, ok, err := s.provider.Get(ctx, s.storageKey(key))
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	if !s.dec.Valid(raw) {
		s.dropCorrupt(ctx, key, nil)
		return nil, false, nil
	}
	return raw, true, nil
}

func (s *Store) dropCorrupt(ctx context.Context, key string, cause error) {
	sk := s.storageKey(key)
	f := bos.Fields{"key": sk}
	if cause != nil {
		f["error"] = cause.Error()
	}
	s.log.Warn("corrupt document dropped", f)
	if err := s.provider.Del(ctx, sk); err != nil {
		s.log.Debug("corrupt document delete failed", bos.Fields{"key": sk, "error": err.Error()})
	}
}

// Del removes the document under key.
func (s *Store) Del(ctx context.Context, key string) error {
	return s.provider.Del(ctx, s.storageKey(key))
}

// Close releases the underlying provider.
func (s *Store) Close(ctx context.Context) error {
	return s.provider.Close(ctx)
}
