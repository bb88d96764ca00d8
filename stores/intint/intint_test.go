package intint

import "testing"
import "github.com/stretchr/testify/assert"

func anon(t *testing.T) *BpTree {
	b, err := AnonBpTree()
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestAddHasCount(t *testing.T) {
	x := assert.New(t)
	b := anon(t)
	defer b.Close()
	x.Nil(b.Add(1, 10))
	x.Nil(b.Add(1, 11))
	x.Nil(b.Add(2, 20))
	x.Equal(3, b.Size())
	has, err := b.Has(1)
	x.Nil(err)
	x.True(has)
	has, err = b.Has(3)
	x.Nil(err)
	x.False(has)
	count, err := b.Count(1)
	x.Nil(err)
	x.Equal(2, count)
	count, err = b.Count(3)
	x.Nil(err)
	x.Equal(0, count)
}

func TestGet(t *testing.T) {
	x := assert.New(t)
	b := anon(t)
	defer b.Close()
	x.Nil(b.Add(7, 70))
	v, has, err := b.Get(7)
	x.Nil(err)
	x.True(has)
	x.Equal(int32(70), v)
	_, has, err = b.Get(8)
	x.Nil(err)
	x.False(has)
}

func TestFind(t *testing.T) {
	x := assert.New(t)
	b := anon(t)
	defer b.Close()
	x.Nil(b.Add(5, 50))
	x.Nil(b.Add(5, 51))
	x.Nil(b.Add(6, 60))
	var vals []int32
	err := b.DoFind(5, func(k, v int32) error {
		x.Equal(int32(5), k)
		vals = append(vals, v)
		return nil
	})
	x.Nil(err)
	x.ElementsMatch([]int32{50, 51}, vals)
}

func TestKeys(t *testing.T) {
	x := assert.New(t)
	b := anon(t)
	defer b.Close()
	for _, k := range []int32{3, 1, 2, 1} {
		x.Nil(b.Add(k, k*10))
	}
	var keys []int32
	err := DoKey(b.Keys, func(k int32) error {
		keys = append(keys, k)
		return nil
	})
	x.Nil(err)
	// distinct keys in sorted order
	x.Equal([]int32{1, 2, 3}, keys)
}

func TestSerializeRoundTrip(t *testing.T) {
	x := assert.New(t)
	for _, i := range []int32{0, 1, -1, 1 << 30, -(1 << 30)} {
		x.Equal(i, DeserializeInt32(SerializeInt32(i)))
	}
}
