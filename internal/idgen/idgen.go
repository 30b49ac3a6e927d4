// Package idgen hands out numeric record IDs for stores that do not have a
// database sequence of their own.
package idgen

import (
	"errors"
	"math"
	"sync/atomic"
)

// ErrExhausted is returned once the sequence has reached math.MaxInt64.
var ErrExhausted = errors.New("id sequence exhausted")

// Generator produces unique, increasing IDs.
// Implementations should be safe for concurrent use.
type Generator interface {
	Next() (int64, error)
	// Observe records an ID assigned elsewhere so Next never returns it.
	Observe(id int64)
}

/***************
 * Sequence
 ***************/

type sequence struct {
	last atomic.Int64
}

type Option func(*sequence)

// StartAfter makes the first ID start+1. Defaults to 0, so IDs begin at 1.
func StartAfter(start int64) Option {
	return func(s *sequence) {
		if start >= 0 {
			s.last.Store(start)
		}
	}
}

// NewSequence returns a Generator backed by an atomic counter.
func NewSequence(opts ...Option) Generator {
	s := &sequence{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *sequence) Next() (int64, error) {
	for {
		last := s.last.Load()
		if last == math.MaxInt64 {
			return 0, ErrExhausted
		}
		if s.last.CompareAndSwap(last, last+1) {
			return last + 1, nil
		}
	}
}

func (s *sequence) Observe(id int64) {
	for {
		last := s.last.Load()
		if id <= last {
			return
		}
		if s.last.CompareAndSwap(last, id) {
			return
		}
	}
}
