package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateIsMeanRoundedToOneDecimal(t *testing.T) {
	assert.Equal(t, 5.0, Aggregate(5, 5, 5, 5, 5))
	assert.Equal(t, 7.4, Aggregate(8, 7, 7.5, 7, 7.5))
	assert.Equal(t, 0.0, Aggregate(0, 0, 0, 0, 0))
	assert.Equal(t, 10.0, Aggregate(10, 10, 10, 10, 10))

	// 6.66... rounds to 6.7
	assert.Equal(t, 6.7, Aggregate(6, 7, 7, 6.3, 7))
}

func TestAggregateOrderIndependent(t *testing.T) {
	assert.Equal(t, Aggregate(1, 2, 3, 4, 5), Aggregate(5, 4, 3, 2, 1))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 10))
	assert.Equal(t, 10.0, Clamp(11, 0, 10))
	assert.Equal(t, 5.5, Clamp(5.5, 0, 10))
}

func TestVerdictBands(t *testing.T) {
	cases := []struct {
		score   float64
		verdict string
	}{
		{100, VerdictStrongFit},
		{80, VerdictStrongFit},
		{79.9, VerdictGoodFit},
		{60, VerdictGoodFit},
		{59.9, VerdictPartialFit},
		{40, VerdictPartialFit},
		{39.9, VerdictWeakFit},
		{0, VerdictWeakFit},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.verdict, VerdictFor(tc.score), "score %.1f", tc.score)
	}
}
