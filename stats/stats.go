package stats

import (
	"math/rand"
)

func RandomPermutation(size int) []int {
	return rand.Perm(size)
}

func Min(items []int, f func(item int) float64) (arg int, min float64) {
	arg = -1
	for _, i := range items {
		d := f(i)
		if d < min || arg < 0 {
			min = d
			arg = i
		}
	}
	if arg < 0 {
		return -1, 0
	}
	return arg, min
}
