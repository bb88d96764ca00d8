package canon

import "testing"
import "github.com/stretchr/testify/assert"

func TestIsomorphsShareLabel(t *testing.T) {
	x := assert.New(t)
	o := NewGoiso()
	// a path 5 - 7 - 5 presented in two vertex orders
	a, aperm, err := o.Canonical([]int32{5, 7, 5}, []Edge{{Src: 0, Targ: 1}, {Src: 1, Targ: 2}})
	x.Nil(err)
	b, bperm, err := o.Canonical([]int32{5, 5, 7}, []Edge{{Src: 0, Targ: 2}, {Src: 1, Targ: 2}})
	x.Nil(err)
	x.Equal(a, b)
	x.True(isPerm(aperm))
	x.True(isPerm(bperm))
}

func TestShapesDiffer(t *testing.T) {
	x := assert.New(t)
	o := NewGoiso()
	path, _, err := o.Canonical([]int32{0, 0, 0}, []Edge{{Src: 0, Targ: 1}, {Src: 1, Targ: 2}})
	x.Nil(err)
	triangle, _, err := o.Canonical([]int32{0, 0, 0}, []Edge{{Src: 0, Targ: 1}, {Src: 1, Targ: 2}, {Src: 0, Targ: 2}})
	x.Nil(err)
	x.NotEqual(path, triangle)
}

func TestLabelsDiffer(t *testing.T) {
	x := assert.New(t)
	o := NewGoiso()
	a, _, err := o.Canonical([]int32{1, 2}, []Edge{{Src: 0, Targ: 1}})
	x.Nil(err)
	b, _, err := o.Canonical([]int32{1, 1}, []Edge{{Src: 0, Targ: 1}})
	x.Nil(err)
	x.NotEqual(a, b)
}

func TestEdgeColorsDiffer(t *testing.T) {
	x := assert.New(t)
	o := NewGoiso()
	a, _, err := o.Canonical([]int32{0, 0}, []Edge{{Src: 0, Targ: 1, Color: 1}})
	x.Nil(err)
	b, _, err := o.Canonical([]int32{0, 0}, []Edge{{Src: 0, Targ: 1, Color: 2}})
	x.Nil(err)
	x.NotEqual(a, b)
}

func TestPermutationIsConsistent(t *testing.T) {
	x := assert.New(t)
	o := NewGoiso()
	// a star 9 - {3, 3, 3}: the center must land on the same canonical
	// vertex no matter where it starts
	edges := func(center int) []Edge {
		es := make([]Edge, 0, 3)
		for i := 0; i < 4; i++ {
			if i != center {
				es = append(es, Edge{Src: center, Targ: i})
			}
		}
		return es
	}
	labels := func(center int) []int32 {
		ls := []int32{3, 3, 3, 3}
		ls[center] = 9
		return ls
	}
	var canonCenter int
	for center := 0; center < 4; center++ {
		label, perm, err := o.Canonical(labels(center), edges(center))
		x.Nil(err)
		x.True(isPerm(perm))
		if center == 0 {
			canonCenter = perm[center]
			x.NotNil(label)
		} else {
			x.Equal(canonCenter, perm[center])
		}
	}
}

func isPerm(perm []int) bool {
	seen := make([]bool, len(perm))
	for _, p := range perm {
		if p < 0 || p >= len(perm) || seen[p] {
			return false
		}
		seen[p] = true
	}
	return true
}
