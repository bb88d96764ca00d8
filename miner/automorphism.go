package miner

// The predicates below decide whether a candidate extension is a redundant
// member of an automorphism orbit that some other extension already
// represents. They are pure: same embedding and candidate always give the
// same verdict.

type vidPair struct {
	src, targ int32
}

// normalized to (min, max) then compared lexicographically
func compareEdges(a, b vidPair) int {
	if a.src > a.targ {
		a.src, a.targ = a.targ, a.src
	}
	if b.src > b.targ {
		b.src, b.targ = b.targ, b.src
	}
	if a.src == b.src {
		return int(a.targ - b.targ)
	}
	return int(a.src - b.src)
}

func embeddingEdge(emb *EdgeEmbedding, index int) vidPair {
	return vidPair{
		src:  emb.Vertex(emb.History(index)),
		targ: emb.Vertex(index),
	}
}

// isAutomorphism rejects the candidate edge (history -> dst) when some other
// extension canonically represents it: dst below the first vertex, a self
// loop through the history chain, the descending direction of an already
// present vertex pair, or a candidate that is not the lexicographically
// least representative among the embedding's later edges.
func isAutomorphism(emb *EdgeEmbedding, history int, src, dst int32, vertexExisted bool) bool {
	if dst < emb.Vertex(0) {
		return true
	}
	if dst == emb.Vertex(emb.History(history)) {
		return true
	}
	if vertexExisted && src > dst {
		return true
	}
	added := vidPair{src, dst}
	for index := history + 1; index < emb.Size(); index++ {
		if compareEdges(added, embeddingEdge(emb, index)) <= 0 {
			return true
		}
	}
	return false
}

// isVertexInducedAutomorphism is the motif counterpart: the candidate vertex
// must exceed the first vertex, must be new, and must land in ascending slot
// order relative to its first connection into the embedding.
func (m *Miner) isVertexInducedAutomorphism(emb *VertexEmbedding, idx int, src, dst int32) bool {
	n := emb.Size()
	if dst <= emb.Vertex(0) {
		return true
	}
	for i := 1; i < n; i++ {
		if dst == emb.Vertex(i) {
			return true
		}
	}
	if idx == 0 {
		if n > 1 && dst < emb.Vertex(1) {
			return true
		}
		return false
	}
	if idx == 1 {
		if m.G.Connected(emb.Vertex(0), dst) {
			return true
		}
		if n > 2 && dst < emb.Vertex(1) {
			return true
		}
		return false
	}
	first := n - 1
	for i := 0; i < n; i++ {
		if m.G.Connected(emb.Vertex(i), dst) {
			first = i
			break
		}
	}
	for i := first + 1; i < n; i++ {
		if dst < emb.Vertex(i) {
			return true
		}
	}
	return false
}

// isAllConnected reports whether dst closes a clique with every vertex
// already in the embedding.
func (m *Miner) isAllConnected(dst int32, emb *BaseEmbedding) bool {
	n := emb.Size()
	for i := 0; i < n-1; i++ {
		if !m.G.Connected(emb.Vertex(i), dst) {
			return false
		}
	}
	return true
}
