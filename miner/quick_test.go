package miner

import "testing"
import "github.com/stretchr/testify/assert"

func wedgeMiner(t *testing.T) *Miner {
	// wedge 0 - 1 - 2 with 1 in the center
	G := buildGraph(t,
		[]string{"a", "a", "a"},
		[][2]int32{{0, 1}, {1, 2}},
		nil,
	)
	return newMiner(t, G, &Config{
		Mode:         FSM,
		SupportMode:  MinImage,
		MaxVertices:  3,
		VertexLabels: true,
	}, 1, 1, nil)
}

func TestQuickIdsAreStable(t *testing.T) {
	x := assert.New(t)
	ids := newIdTable()
	a := ids.id([]byte("one"))
	b := ids.id([]byte("two"))
	x.NotEqual(a, b)
	x.Equal(a, ids.id([]byte("one")))
	x.Equal(b, ids.id([]byte("two")))
}

func TestEdgeQuickPatternIgnoresVertexIdentity(t *testing.T) {
	x := assert.New(t)
	m := wedgeMiner(t)
	defer m.Close()
	a := &EdgeEmbedding{Elements: []Element{
		{Vid: 1, His: 0},
		{Vid: 0, His: 0},
	}}
	b := &EdgeEmbedding{Elements: []Element{
		{Vid: 1, His: 0},
		{Vid: 2, His: 0},
	}}
	x.Equal(m.edgeQuickPattern(a).Label(), m.edgeQuickPattern(b).Label())
	x.Equal(m.edgeQuickPattern(a).Id, m.edgeQuickPattern(b).Id)
}

func TestEdgeQuickPatternSeesHistoryShape(t *testing.T) {
	x := assert.New(t)
	m := wedgeMiner(t)
	defer m.Close()
	// center discovered first vs center discovered second
	star := &EdgeEmbedding{Elements: []Element{
		{Vid: 1, His: 0},
		{Vid: 0, His: 0},
		{Vid: 2, His: 0},
	}}
	path := &EdgeEmbedding{Elements: []Element{
		{Vid: 0, His: 0},
		{Vid: 1, His: 0},
		{Vid: 2, His: 1},
	}}
	x.NotEqual(m.edgeQuickPattern(star).Label(), m.edgeQuickPattern(path).Label())
}

// The two discovery orders of a wedge are distinct quick patterns but one
// canonical pattern; the slot bijection must send the center of both to the
// same canonical slot.
func TestCanonicalSlotsAgreeAcrossIsomorphs(t *testing.T) {
	x := assert.New(t)
	m := wedgeMiner(t)
	defer m.Close()
	star := m.edgeQuickPattern(&EdgeEmbedding{Elements: []Element{
		{Vid: 1, His: 0},
		{Vid: 0, His: 0},
		{Vid: 2, His: 0},
	}})
	path := m.edgeQuickPattern(&EdgeEmbedding{Elements: []Element{
		{Vid: 0, His: 0},
		{Vid: 1, His: 0},
		{Vid: 2, His: 1},
	}})
	starLabel, starPerm, err := m.oracle.Canonical(star.V, star.canonEdges())
	x.Nil(err)
	pathLabel, pathPerm, err := m.oracle.Canonical(path.V, path.canonEdges())
	x.Nil(err)
	x.Equal(starLabel, pathLabel)

	starSlots := canonicalSlots(star, starPerm)
	pathSlots := canonicalSlots(path, pathPerm)
	x.ElementsMatch([]int{0, 1, 2}, starSlots)
	x.ElementsMatch([]int{0, 1, 2}, pathSlots)
	// vertex 1 is the center: slot 0 of star, slot 1 of path
	x.Equal(starSlots[0], pathSlots[1])
	x.ElementsMatch(
		[]int{starSlots[1], starSlots[2]},
		[]int{pathSlots[0], pathSlots[2]},
	)
}

// Whichever canonical vertex order the oracle picks, the wedge center must
// land on the same canonical slot in both discovery orders of the wedge.
// Every assignment of the center's canonical position and of the two ends is
// a vertex order some oracle could return, so all of them must agree.
func TestCanonicalSlotsUnderAllVertexOrders(t *testing.T) {
	x := assert.New(t)
	star := &QuickPattern{
		V:     []int32{0, 0, 0},
		E:     []QEdge{{Src: 0, Targ: 1}, {Src: 0, Targ: 2}},
		slotV: []uint8{0, 1, 2},
		kind:  edgeKind,
	}
	path := &QuickPattern{
		V:     []int32{0, 0, 0},
		E:     []QEdge{{Src: 0, Targ: 1}, {Src: 1, Targ: 2}},
		slotV: []uint8{0, 1, 2},
		kind:  edgeKind,
	}
	// the center is pattern vertex 0 of star and pattern vertex 1 of path
	for c := 0; c < 3; c++ {
		ends := make([]int, 0, 2)
		for p := 0; p < 3; p++ {
			if p != c {
				ends = append(ends, p)
			}
		}
		starPerms := [][]int{
			{c, ends[0], ends[1]},
			{c, ends[1], ends[0]},
		}
		pathPerms := [][]int{
			{ends[0], c, ends[1]},
			{ends[1], c, ends[0]},
		}
		for _, sp := range starPerms {
			starSlots := canonicalSlots(star, sp)
			x.ElementsMatch([]int{0, 1, 2}, starSlots)
			for _, pp := range pathPerms {
				pathSlots := canonicalSlots(path, pp)
				x.ElementsMatch([]int{0, 1, 2}, pathSlots)
				x.Equal(starSlots[0], pathSlots[1],
					"center c=%v starPerm=%v pathPerm=%v", c, sp, pp)
			}
		}
	}
}

func TestMergeQpFreqIsOrderIndependent(t *testing.T) {
	x := assert.New(t)
	m := wedgeMiner(t)
	defer m.Close()
	emb := func(vids ...int32) *EdgeEmbedding {
		els := make([]Element, 0, len(vids))
		for _, v := range vids {
			els = append(els, Element{Vid: v, His: 0})
		}
		return &EdgeEmbedding{Elements: els}
	}
	build := func(embs ...*EdgeEmbedding) QpMapFreq {
		qps := make(QpMapFreq)
		for _, e := range embs {
			m.quickAggregateFreq(e, qps)
		}
		return qps
	}
	ab := build(emb(0, 1), emb(1, 2))
	ba := build(emb(1, 2))
	mergeQpFreq(ba, build(emb(0, 1)))
	x.Equal(len(ab), len(ba))
	for key, e := range ab {
		if x.Contains(ba, key) {
			x.Equal(e.freq, ba[key].freq)
		}
	}
}
