package wheel

import (
	"fmt"
	"math"
	"sync/atomic"
)

// Speeds are wheel angular speeds in rad/s
type Speeds struct {
	// Left is left wheel angular speed
	Left float64
	// Right is right wheel angular speed
	Right float64
}

// String implements the Stringer interface.
func (s Speeds) String() string {
	return fmt.Sprintf("Speeds{Left=%v Right=%v}", s.Left, s.Right)
}

// Store holds the latest wheel speed samples.
//
// Each wheel has its own atomic slot so producers never block each other
// or the reader. The two slots are not updated as a single transaction:
// Snapshot may return a left sample which is newer than the right one.
type Store struct {
	left     atomic.Uint64
	right    atomic.Uint64
	received atomic.Bool
}

// NewStore creates new Store with both wheel speeds set to zero
func NewStore() *Store {
	return &Store{}
}

// SetLeft overwrites left wheel speed with v
func (s *Store) SetLeft(v float64) {
	s.left.Store(math.Float64bits(v))
	s.received.Store(true)
}

// SetRight overwrites right wheel speed with v
func (s *Store) SetRight(v float64) {
	s.right.Store(math.Float64bits(v))
	s.received.Store(true)
}

// Set overwrites both wheel speeds. The pair is not written atomically.
func (s *Store) Set(speeds Speeds) {
	s.SetLeft(speeds.Left)
	s.SetRight(speeds.Right)
}

// Snapshot returns the latest wheel speeds
func (s *Store) Snapshot() Speeds {
	return Speeds{
		Left:  math.Float64frombits(s.left.Load()),
		Right: math.Float64frombits(s.right.Load()),
	}
}

// Received reports whether any wheel speed has been set since the store was created
func (s *Store) Received() bool {
	return s.received.Load()
}
