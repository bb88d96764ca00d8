package stats

import "testing"
import "github.com/stretchr/testify/assert"

func TestMin(t *testing.T) {
	x := assert.New(t)
	sizes := []float64{7, 3, 9, 3}
	arg, min := Min(RandomPermutation(len(sizes)), func(i int) float64 {
		return sizes[i]
	})
	x.Equal(float64(3), min)
	x.True(arg == 1 || arg == 3)
}

func TestMinEmpty(t *testing.T) {
	x := assert.New(t)
	arg, min := Min(nil, func(i int) float64 { return 0 })
	x.Equal(-1, arg)
	x.Equal(float64(0), min)
}

func TestRandomPermutation(t *testing.T) {
	x := assert.New(t)
	perm := RandomPermutation(25)
	seen := make([]bool, len(perm))
	for _, p := range perm {
		x.True(p >= 0 && p < len(perm))
		x.False(seen[p])
		seen[p] = true
	}
}
