package wheel

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seededSource struct {
	r *rand.Rand
}

func (s seededSource) Intn(n int) int { return s.r.Intn(n) }

func TestSpinReturnsSegmentValues(t *testing.T) {
	w := New()
	for i := 0; i < 100; i++ {
		percent, index := w.Spin()
		assert.True(t, Contains(percent), "spin returned %d, not a wheel segment", percent)
		require.GreaterOrEqual(t, index, 0)
		require.Less(t, index, w.SegmentCount())
		assert.Equal(t, Segments[index], percent)
	}
}

func TestSpinUniformDistribution(t *testing.T) {
	const draws = 8000
	w := NewWithSource(seededSource{r: rand.New(rand.NewSource(42))})

	counts := make(map[int]int)
	for i := 0; i < draws; i++ {
		percent, _ := w.Spin()
		counts[percent]++
	}

	require.Len(t, counts, len(Segments), "every segment should be hit over %d draws", draws)

	expected := float64(draws) / float64(len(Segments))
	for percent, count := range counts {
		deviation := math.Abs(float64(count)-expected) / expected
		assert.LessOrEqual(t, deviation, 0.15,
			"segment %d drawn %d times, expected ~%.0f", percent, count, expected)
	}
}
