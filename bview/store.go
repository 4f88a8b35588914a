package bview

import (
	"crypto"
	cryptorand "crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/Countermatt/Brahms/bview/bident"
	"github.com/bits-and-blooms/bitset"
)

// Store holds the views a node keeps of its peers.
//
// All methods are safe for concurrent use;
// a single mutex owned by the Store serializes them.
type Store struct {
	log *slog.Logger

	selfID string

	hash crypto.Hash

	mu    sync.Mutex
	rng   *rand.Rand
	salt  io.Reader
	views [nViews][]string
}

// Config is the configuration for [New].
type Config struct {
	// The node's base identifier.
	// It is never sent as-is; see [*Store.HashIdentifier].
	SelfIdentifier string

	// Source of randomness for [*Store.RandomElement].
	// If nil, New seeds a ChaCha8 generator from crypto/rand.
	// The generator is never reseeded.
	RNG *rand.Rand

	// Source of bytes for pseudonym salts.
	// Defaults to crypto/rand.Reader.
	SaltSource io.Reader

	// Hash used for pseudonyms.
	// Defaults to crypto.SHA256.
	// Any other value must have a 256-bit output.
	Hash crypto.Hash
}

// New returns a Store with all views empty.
//
// New panics if cfg is invalid.
func New(log *slog.Logger, cfg Config) *Store {
	if log == nil {
		panic(errors.New("BUG: log must not be nil"))
	}

	if cfg.SelfIdentifier == "" {
		panic(errors.New("BUG: Config.SelfIdentifier must not be empty"))
	}

	h := cfg.Hash
	if h == 0 {
		h = crypto.SHA256
	} else if h > crypto.BLAKE2b_512 || h.Size() != bident.DigestSize {
		// Size panics on values past the last known hash,
		// so those are rejected before calling it.
		panic(fmt.Errorf(
			"BUG: Config.Hash must produce %d-byte digests (got %v)",
			bident.DigestSize, h,
		))
	}

	rng := cfg.RNG
	if rng == nil {
		var seed [32]byte
		if _, err := cryptorand.Read(seed[:]); err != nil {
			panic(fmt.Errorf("failed to seed RNG: %w", err))
		}
		rng = rand.New(rand.NewChaCha8(seed))
	}

	salt := cfg.SaltSource
	if salt == nil {
		salt = cryptorand.Reader
	}

	return &Store{
		log: log,

		selfID: cfg.SelfIdentifier,
		hash:   h,

		rng:  rng,
		salt: salt,
	}
}

// SelfIdentifier returns the base identifier the Store was created with.
func (s *Store) SelfIdentifier() string {
	return s.selfID
}

func (s *Store) PullAdd(id string)    { s.add(PullView, id) }
func (s *Store) PushAdd(id string)    { s.add(PushView, id) }
func (s *Store) GlobalAdd(id string)  { s.add(GlobalView, id) }
func (s *Store) SamplerAdd(id string) { s.add(SamplerView, id) }
func (s *Store) StreamAdd(id string)  { s.add(StreamView, id) }

func (s *Store) add(v View, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.views[v] = append(s.views[v], id)
}

// The sampler view has no reset;
// its entries leave only through eviction.

func (s *Store) PullReset()   { s.reset(PullView) }
func (s *Store) PushReset()   { s.reset(PushView) }
func (s *Store) GlobalReset() { s.reset(GlobalView) }
func (s *Store) StreamReset() { s.reset(StreamView) }

// reset empties the view and releases its backing array.
func (s *Store) reset(v View) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.views[v] == nil {
		return
	}

	s.log.Debug("Resetting view", "view", v, "n", len(s.views[v]))
	s.views[v] = nil
}

// SamplerResize shrinks the sampler view's backing array
// to exactly fit its current entries.
// The entries and their order are unchanged.
func (s *Store) SamplerResize() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.views[SamplerView]
	if cap(cur) == len(cur) {
		return
	}

	if len(cur) == 0 {
		s.views[SamplerView] = nil
		return
	}

	out := make([]string, len(cur))
	copy(out, cur)
	s.views[SamplerView] = out
}

// SamplerRemoveAt removes the entry at index i of the sampler view,
// preserving the order of the remaining entries.
// The view's backing array is sized to fit the result.
//
// If i is out of range, SamplerRemoveAt returns an [IndexOutOfRangeError]
// and the view is unchanged.
func (s *Store) SamplerRemoveAt(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.views[SamplerView]
	if i < 0 || i >= len(cur) {
		return IndexOutOfRangeError{Index: i, Len: len(cur)}
	}

	s.log.Debug("Evicting sampler peer", "index", i, "peer", cur[i])

	if len(cur) == 1 {
		s.views[SamplerView] = nil
		return nil
	}

	out := make([]string, len(cur)-1)
	copy(out, cur[:i])
	copy(out[i:], cur[i+1:])
	s.views[SamplerView] = out
	return nil
}

// SamplerRemoveSet removes every sampler entry whose index is set in idx,
// preserving the order of the remaining entries,
// and returns the number of entries removed.
//
// If any set index is out of range, SamplerRemoveSet returns
// an [IndexOutOfRangeError] for the first such index
// and the view is unchanged.
func (s *Store) SamplerRemoveSet(idx *bitset.BitSet) (int, error) {
	if idx == nil {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.views[SamplerView]
	if i, ok := idx.NextSet(uint(len(cur))); ok {
		return 0, IndexOutOfRangeError{Index: int(i), Len: len(cur)}
	}

	n := int(idx.Count())
	if n == 0 {
		return 0, nil
	}

	s.log.Debug("Evicting sampler peers", "n", n, "remaining", len(cur)-n)

	if n == len(cur) {
		s.views[SamplerView] = nil
		return n, nil
	}

	out := make([]string, 0, len(cur)-n)
	for i, id := range cur {
		if !idx.Test(uint(i)) {
			out = append(out, id)
		}
	}
	s.views[SamplerView] = out
	return n, nil
}

// RandomElement returns an entry of the view v chosen uniformly at random.
// If the view is empty, RandomElement returns [ErrEmptyView].
func (s *Store) RandomElement(v View) (string, error) {
	mustValid(v)

	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.views[v]
	if len(cur) == 0 {
		return "", fmt.Errorf("cannot pick from %s view: %w", v, ErrEmptyView)
	}

	return cur[s.rng.IntN(len(cur))], nil
}

// HashIdentifier returns a pseudonym for the node:
// the hex-encoded digest of the base identifier
// concatenated with a fresh salt of [bident.SaltLen] characters.
//
// Every call uses a new salt, so repeated calls return different values.
// If the digest cannot be computed,
// the returned error matches [ErrHashUnavailable].
func (s *Store) HashIdentifier() (string, error) {
	s.mu.Lock()
	salt, err := bident.NewSalt(s.salt)
	s.mu.Unlock()
	if err != nil {
		s.log.Warn("Failed to generate identifier salt", "err", err)
		return "", fmt.Errorf("%w: %w", ErrHashUnavailable, err)
	}

	out, err := bident.Digest(s.hash, s.selfID, salt)
	if err != nil {
		s.log.Warn("Failed to hash identifier", "err", err)
		return "", err
	}
	return out, nil
}

// Len returns the number of entries in the view v.
func (s *Store) Len(v View) int {
	mustValid(v)

	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.views[v])
}

// Snapshot returns a copy of the entries in the view v.
// The returned slice does not alias the Store.
func (s *Store) Snapshot(v View) []string {
	mustValid(v)

	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.views[v]
	if len(cur) == 0 {
		return nil
	}

	out := make([]string, len(cur))
	copy(out, cur)
	return out
}

// Sizes returns the length of every view, indexed by [View].
func (s *Store) Sizes() [NViews]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out [NViews]int
	for i, cur := range s.views {
		out[i] = len(cur)
	}
	return out
}

func mustValid(v View) {
	if v >= nViews {
		panic(fmt.Errorf("BUG: invalid view %v", v))
	}
}
