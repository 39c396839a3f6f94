package history

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/bmcmahen/panresponder/gesture"
)

// DefaultSize is the default number of completed gestures retained
const DefaultSize = 128

// Outcome describes how a gesture ended
type Outcome string

const (
	OutcomeReleased   Outcome = "released"
	OutcomeTerminated Outcome = "terminated"
)

// Record summarizes one completed gesture segment
type Record struct {
	EngineID string        `json:"engineId"`
	Outcome  Outcome       `json:"outcome"`
	EndedAt  time.Time     `json:"endedAt"`
	Distance float64       `json:"distance"`
	Velocity float64       `json:"velocity"`
	Local    gesture.Point `json:"local"`
}

// Store keeps a bounded, most-recent-first history of completed gestures
type Store struct {
	mu    sync.Mutex
	seq   uint64
	cache *lru.Cache[uint64, Record]
}

// NewStore creates a store retaining at most size records. Size falls back
// to DefaultSize when non-positive.
func NewStore(size int) (*Store, error) {
	if size <= 0 {
		size = DefaultSize
	}
	cache, err := lru.New[uint64, Record](size)
	if err != nil {
		return nil, err
	}
	return &Store{cache: cache}, nil
}

// Add appends a completed gesture record, evicting the oldest when full
func (s *Store) Add(r Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.cache.Add(s.seq, r)
}

// Recent returns up to n records, newest first. n <= 0 returns everything.
func (s *Store) Recent(n int) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := s.cache.Keys() // oldest to newest
	if n <= 0 || n > len(keys) {
		n = len(keys)
	}

	records := make([]Record, 0, n)
	for i := len(keys) - 1; i >= len(keys)-n; i-- {
		if r, ok := s.cache.Peek(keys[i]); ok {
			records = append(records, r)
		}
	}
	return records
}

// Len returns the number of retained records
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len()
}
