package canon

import (
	"strconv"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/goiso"
)

type Edge struct {
	Src, Targ int
	Color     int32
}

// Oracle computes a canonical relabeling of a small vertex/edge labeled
// simple graph. For any two isomorphic inputs the returned label bytes are
// equal; for non-isomorphic inputs they differ. perm[i] gives the canonical
// position of input vertex i. Implementations must be deterministic and side
// effect free. Calls are expensive.
type Oracle interface {
	Canonical(vlabels []int32, edges []Edge) (label []byte, perm []int, err error)
}

// Goiso canonicalizes through goiso's canonical subgraph ordering. The input
// is undirected; both arc directions are added so that the canonical form of
// the symmetric digraph coincides with undirected isomorphism.
type Goiso struct{}

func NewGoiso() *Goiso {
	return &Goiso{}
}

func (o *Goiso) Canonical(vlabels []int32, edges []Edge) ([]byte, []int, error) {
	if len(vlabels) == 0 {
		return nil, nil, errors.Errorf("empty graph given to the canonical oracle")
	}
	G := goiso.NewGraph(len(vlabels), 2*len(edges))
	g := &G
	V := make([]*goiso.Vertex, 0, len(vlabels))
	idxs := make([]int, 0, len(vlabels))
	for i, color := range vlabels {
		u := g.AddVertex(i, strconv.FormatInt(int64(color), 10))
		V = append(V, u)
		idxs = append(idxs, u.Idx)
	}
	for _, e := range edges {
		if e.Src < 0 || e.Src >= len(V) || e.Targ < 0 || e.Targ >= len(V) {
			return nil, nil, errors.Errorf("edge %v references an unknown vertex", e)
		}
		color := strconv.FormatInt(int64(e.Color), 10)
		g.AddEdge(V[e.Src], V[e.Targ], color)
		g.AddEdge(V[e.Targ], V[e.Src], color)
	}
	// SubGraph always canonicalizes; the bool only reports whether the
	// input was already in canonical order.
	sg, _ := g.SubGraph(idxs, nil)
	// sg.V is in canonical order; V[k].Id names the input vertex at slot k
	perm := make([]int, len(vlabels))
	for k := range sg.V {
		perm[sg.V[k].Id] = k
	}
	return sg.ShortLabel(), perm, nil
}
