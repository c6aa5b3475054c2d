package game

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Selector draws words uniformly at random. It is the only source of
// randomness in the engine and is safe for concurrent use.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector returns a Selector over rng.
func NewSelector(rng *rand.Rand) *Selector {
	return &Selector{rng: rng}
}

// NewSeededSelector returns a Selector on a PCG source. A zero seed means
// "seed from the clock".
func NewSeededSelector(seed uint64) *Selector {
	if seed == 0 {
		now := time.Now()
		return NewSelector(rand.New(rand.NewPCG(uint64(now.UnixNano()), uint64(now.Nanosecond()))))
	}
	return NewSelector(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Pick returns a uniformly random element of words. ok is false if words is empty.
func (s *Selector) Pick(words []string) (string, bool) {
	if len(words) == 0 {
		return "", false
	}
	s.mu.Lock()
	i := s.rng.IntN(len(words))
	s.mu.Unlock()
	return words[i], true
}

// SelectNext picks from candidates, or from fallback when candidates is empty.
//
// The fallback is a robustness rule, not a strategy: it keeps the computer
// producing a legal guess after the candidate pool has run dry. ok is false
// only when both slices are empty.
func (s *Selector) SelectNext(candidates, fallback []string) (word string, ok bool) {
	if w, ok := s.Pick(candidates); ok {
		return w, true
	}
	return s.Pick(fallback)
}
