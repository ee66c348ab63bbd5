// Package wheel implements the spin-the-wheel reward draw. The wheel has a
// fixed ordered set of discount segments; a spin picks one uniformly at
// random and never touches storage.
package wheel

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Segments is the canonical reward table, in wheel order. Clients that
// animate the wheel rely on both the values and their positions.
var Segments = []int{10, 20, 25, 30, 35, 40, 45, 60}

// Source supplies the randomness for a spin. It must return a uniform value
// in [0, n).
type Source interface {
	Intn(n int) int
}

type cryptoSource struct{}

func (cryptoSource) Intn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken;
		// there is no reasonable reward to hand out in that state.
		panic(fmt.Sprintf("wheel: randomness unavailable: %v", err))
	}
	return int(v.Int64())
}

type Wheel struct {
	segments []int
	source   Source
}

// New returns a wheel over the canonical segments backed by crypto/rand.
func New() *Wheel {
	return NewWithSource(cryptoSource{})
}

// NewWithSource returns a wheel with caller-supplied randomness. Tests use
// this to make spins deterministic.
func NewWithSource(source Source) *Wheel {
	segments := make([]int, len(Segments))
	copy(segments, Segments)
	return &Wheel{segments: segments, source: source}
}

// Spin selects one segment uniformly at random and returns its discount
// percent and its index on the wheel.
func (w *Wheel) Spin() (percent int, index int) {
	index = w.source.Intn(len(w.segments))
	return w.segments[index], index
}

// SegmentCount returns the number of wheel segments.
func (w *Wheel) SegmentCount() int {
	return len(w.segments)
}

// Contains reports whether percent is a valid wheel outcome.
func Contains(percent int) bool {
	for _, s := range Segments {
		if s == percent {
			return true
		}
	}
	return false
}
