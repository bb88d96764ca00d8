package miner

import (
	"github.com/timtadh/data-structures/errors"
)

// classifyMotif3 is the unlabeled 3-motif fast path: every size-3 vertex
// embedding is a triangle or a three-chain, decided by two connectivity
// probes, so the per-embedding quick pattern encode is unnecessary. The two
// shapes still go through the oracle once each so ids, the id map, and
// reporting stay consistent with the generic path.
func (m *Miner) classifyMotif3(queue []*VertexEmbedding) (map[int32]int32, error) {
	triangle := &QuickPattern{
		V:     []int32{0, 0, 0},
		E:     []QEdge{{Src: 0, Targ: 1}, {Src: 0, Targ: 2}, {Src: 1, Targ: 2}},
		slotV: []uint8{0, 1, 2},
		kind:  vertexKind,
	}
	triangle.Id = m.quickIds.id(triangle.Label())
	chain := &QuickPattern{
		V:     []int32{0, 0, 0},
		E:     []QEdge{{Src: 0, Targ: 1}, {Src: 1, Targ: 2}},
		slotV: []uint8{0, 1, 2},
		kind:  vertexKind,
	}
	chain.Id = m.quickIds.id(chain.Label())

	W := m.workers.Size()
	triangles := make([]int32, W)
	chains := make([]int32, W)
	m.workers.Each(len(queue), func(wid, i int) {
		emb := queue[i]
		if emb.Size() != 3 {
			panic(errors.Errorf("motif3 fast path over embedding %v of size %v", emb, emb.Size()))
		}
		if m.G.Connected(emb.Vertex(0), emb.Vertex(2)) && m.G.Connected(emb.Vertex(1), emb.Vertex(2)) {
			triangles[wid]++
			emb.Qpid = triangle.Id
		} else {
			chains[wid]++
			emb.Qpid = chain.Id
		}
	})
	var numTriangles, numChains int32
	for wid := 0; wid < W; wid++ {
		numTriangles += triangles[wid]
		numChains += chains[wid]
	}
	errors.Logf("INFO", "triangles %v three-chains %v", numTriangles, numChains)

	cgs := make(CgMapFreq)
	if numTriangles > 0 {
		err := m.canonicalAggregateFreq(&qpFreq{qp: triangle, freq: numTriangles}, cgs)
		if err != nil {
			return nil, err
		}
	}
	if numChains > 0 {
		err := m.canonicalAggregateFreq(&qpFreq{qp: chain, freq: numChains}, cgs)
		if err != nil {
			return nil, err
		}
	}
	supports, frequent := m.supportCountFreq(cgs)
	reports := make([]*Report, 0, frequent)
	for _, e := range cgs {
		if int(e.freq) >= m.conf.Support {
			reports = append(reports, &Report{Level: 3, Pattern: e.cg, Support: int(e.freq)})
		}
	}
	err := m.report(reports)
	if err != nil {
		return nil, err
	}
	return supports, nil
}
