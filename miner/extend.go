package miner

import (
	"github.com/timtadh/data-structures/errors"
)

// extendEdge proposes every one edge extension of emb: for each distinct
// vertex, for each incident edge, append the far endpoint with history
// pointing at the extending vertex. Candidates surviving the automorphism
// filter are copied into out; emb itself is always reverted.
func (m *Miner) extendEdge(emb *EdgeEmbedding, out *[]*EdgeEmbedding) {
	size := emb.Size()
	vertices := make(map[int32]bool, size)
	for i := 0; i < size; i++ {
		vertices[emb.Vertex(i)] = true
	}
	// each distinct vertex is expanded only once, at its first slot
	expanded := make(map[int32]bool, size)
	for i := 0; i < size; i++ {
		id := emb.Vertex(i)
		if id < 0 || int(id) >= m.G.Size() {
			panic(errors.Errorf("vertex %v of embedding %v is outside the graph (size %v)", id, emb, m.G.Size()))
		}
		if expanded[id] {
			continue
		}
		expanded[id] = true
		for _, dst := range m.G.Neighbors(id) {
			numVertices := len(vertices)
			vertexExisted := vertices[dst]
			if !vertexExisted {
				numVertices++
			}
			if numVertices > m.Cfg.MaxVertices {
				continue
			}
			if isAutomorphism(emb, i, id, dst, vertexExisted) {
				continue
			}
			emb.Push(Element{
				Vid:    dst,
				His:    uint8(i),
				Vlabel: m.vertexLabel(dst),
				Elabel: m.edgeLabel(id, dst),
			})
			*out = append(*out, emb.Clone())
			emb.Pop()
		}
	}
}

// extendVertexMotif proposes appending each neighbor of each embedding
// vertex, guarded by the vertex-induced automorphism rule.
func (m *Miner) extendVertexMotif(emb *VertexEmbedding, out *[]*VertexEmbedding) {
	n := emb.Size()
	for i := 0; i < n; i++ {
		src := emb.Vertex(i)
		if src < 0 || int(src) >= m.G.Size() {
			panic(errors.Errorf("vertex %v of embedding %v is outside the graph (size %v)", src, emb, m.G.Size()))
		}
		for _, dst := range m.G.Neighbors(src) {
			if m.isVertexInducedAutomorphism(emb, i, src, dst) {
				continue
			}
			emb.Push(dst)
			*out = append(*out, emb.Clone())
			emb.Pop()
		}
	}
}

// extendVertexClique extends emb by neighbors of its last vertex with a
// strictly larger id that connect to every embedding vertex. Returns the
// number of cliques found; when needUpdate is false they are only counted.
func (m *Miner) extendVertexClique(emb *BaseEmbedding, out *[]*BaseEmbedding, needUpdate bool) (num int) {
	n := emb.Size()
	src := emb.Vertex(n - 1)
	if src < 0 || int(src) >= m.G.Size() {
		panic(errors.Errorf("vertex %v of embedding %v is outside the graph (size %v)", src, emb, m.G.Size()))
	}
	for _, dst := range m.G.Neighbors(src) {
		if dst <= src {
			continue
		}
		if !m.isAllConnected(dst, emb) {
			continue
		}
		num++
		if needUpdate {
			emb.Push(dst)
			*out = append(*out, emb.Clone())
			emb.Pop()
		}
	}
	return num
}

func (m *Miner) vertexLabel(v int32) int32 {
	if !m.Cfg.VertexLabels {
		return 0
	}
	return int32(m.G.Color(v))
}

func (m *Miner) edgeLabel(u, v int32) int32 {
	if !m.Cfg.EdgeLabels {
		return 0
	}
	return int32(m.G.EdgeColor(u, v))
}
