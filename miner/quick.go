package miner

import (
	"encoding/binary"
	"fmt"
	"strings"
	"sync"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/data-structures/set"
	"github.com/timtadh/data-structures/types"
)

import (
	"github.com/timtadh/levmine/canon"
)

type patternKind uint8

const (
	edgeKind patternKind = iota
	vertexKind
)

// QEdge is an edge between pattern vertices.
type QEdge struct {
	Src, Targ uint8
	Color     int32
}

// QuickPattern is the cheap structural key of an embedding: vertex
// identities are replaced by discovery order, labels and the history shape
// are kept. Structural slots correspond one to one with embedding elements.
type QuickPattern struct {
	Id    int32
	V     []int32 // pattern vertex labels
	E     []QEdge // edgeKind: one edge per slot after the first; vertexKind: induced adjacency
	slotV []uint8 // slot -> pattern vertex
	kind  patternKind
	label []byte
}

func (qp *QuickPattern) Slots() int {
	return len(qp.slotV)
}

func (qp *QuickPattern) Label() []byte {
	if qp.label != nil {
		return qp.label
	}
	size := 3 + 4*len(qp.V) + len(qp.slotV) + 6*len(qp.E)
	label := make([]byte, 0, size)
	label = append(label, byte(qp.kind), byte(len(qp.V)), byte(len(qp.slotV)))
	var buf [4]byte
	for _, color := range qp.V {
		binary.BigEndian.PutUint32(buf[:], uint32(color))
		label = append(label, buf[:]...)
	}
	label = append(label, qp.slotV...)
	for _, e := range qp.E {
		label = append(label, e.Src, e.Targ)
		binary.BigEndian.PutUint32(buf[:], uint32(e.Color))
		label = append(label, buf[:]...)
	}
	qp.label = label
	return label
}

func (qp *QuickPattern) canonEdges() []canon.Edge {
	edges := make([]canon.Edge, 0, len(qp.E))
	for _, e := range qp.E {
		edges = append(edges, canon.Edge{Src: int(e.Src), Targ: int(e.Targ), Color: e.Color})
	}
	return edges
}

func (qp *QuickPattern) String() string {
	V := make([]string, 0, len(qp.V))
	E := make([]string, 0, len(qp.E))
	for i, color := range qp.V {
		V = append(V, fmt.Sprintf("(%v:%v)", i, color))
	}
	for _, e := range qp.E {
		E = append(E, fmt.Sprintf("[%v--%v:%v]", e.Src, e.Targ, e.Color))
	}
	return fmt.Sprintf("{%v:%v}%v%v", len(qp.E), len(qp.V), strings.Join(V, ""), strings.Join(E, ""))
}

// edgeQuickPattern remaps the embedding's vertices to discovery order and
// keeps one pattern edge per extension step.
func (m *Miner) edgeQuickPattern(emb *EdgeEmbedding) *QuickPattern {
	qp := &QuickPattern{
		V:     make([]int32, 0, emb.Size()),
		E:     make([]QEdge, 0, emb.Size()-1),
		slotV: make([]uint8, 0, emb.Size()),
		kind:  edgeKind,
	}
	remap := make(map[int32]uint8, emb.Size())
	for i, el := range emb.Elements {
		v, has := remap[el.Vid]
		if !has {
			v = uint8(len(qp.V))
			remap[el.Vid] = v
			qp.V = append(qp.V, el.Vlabel)
		}
		qp.slotV = append(qp.slotV, v)
		if i > 0 {
			qp.E = append(qp.E, QEdge{
				Src:   qp.slotV[el.His],
				Targ:  v,
				Color: el.Elabel,
			})
		}
	}
	qp.Id = m.quickIds.id(qp.Label())
	return qp
}

// vertexQuickPattern keys a vertex-only embedding on its induced adjacency;
// vertex embeddings carry no history graph so the shape lives in the edges
// among positions.
func (m *Miner) vertexQuickPattern(vids []int32) *QuickPattern {
	qp := &QuickPattern{
		V:     make([]int32, 0, len(vids)),
		E:     make([]QEdge, 0, len(vids)),
		slotV: make([]uint8, 0, len(vids)),
		kind:  vertexKind,
	}
	for i, v := range vids {
		qp.V = append(qp.V, m.vertexLabel(v))
		qp.slotV = append(qp.slotV, uint8(i))
	}
	for i := 0; i < len(vids); i++ {
		for j := i + 1; j < len(vids); j++ {
			if m.G.Connected(vids[i], vids[j]) {
				qp.E = append(qp.E, QEdge{Src: uint8(i), Targ: uint8(j)})
			}
		}
	}
	qp.Id = m.quickIds.id(qp.Label())
	return qp
}

// idTable hands out stable integer ids by label, shared across workers.
type idTable struct {
	mu  sync.Mutex
	ids map[string]int32
}

func newIdTable() *idTable {
	return &idTable{
		ids: make(map[string]int32),
	}
}

func (t *idTable) id(label []byte) int32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id, has := t.ids[string(label)]; has {
		return id
	}
	id := int32(len(t.ids))
	t.ids[string(label)] = id
	return id
}

type qpFreq struct {
	qp   *QuickPattern
	freq int32
}

// QpMapFreq maps quick pattern labels to occurrence counts. One per worker
// during a level, merged at the barrier.
type QpMapFreq map[string]*qpFreq

type qpDomain struct {
	qp      *QuickPattern
	domains []*set.SortedSet
}

// QpMapDomain maps quick pattern labels to per-slot sets of the distinct
// vertices observed at that slot.
type QpMapDomain map[string]*qpDomain

func (m *Miner) quickAggregateFreq(emb Classified, qps QpMapFreq) {
	qp := m.quickPatternOf(emb)
	key := string(qp.Label())
	if e, has := qps[key]; has {
		e.freq++
		emb.setQuickId(e.qp.Id)
	} else {
		qps[key] = &qpFreq{qp: qp, freq: 1}
		emb.setQuickId(qp.Id)
	}
}

func (m *Miner) quickAggregateDomain(emb Classified, qps QpMapDomain) {
	qp := m.quickPatternOf(emb)
	key := string(qp.Label())
	e, has := qps[key]
	if !has {
		e = &qpDomain{
			qp:      qp,
			domains: newDomains(qp.Slots()),
		}
		qps[key] = e
	}
	if len(e.domains) != emb.Size() {
		panic(errors.Errorf("quick pattern %v has %v domains but embedding %v has %v slots",
			qp, len(e.domains), emb, emb.Size()))
	}
	for i := 0; i < emb.Size(); i++ {
		e.domains[i].Add(types.Int32(emb.Vertex(i)))
	}
	emb.setQuickId(e.qp.Id)
}

// Classified is an embedding that records the quick pattern id it was
// aggregated under, for O(1) lookup during filtering.
type Classified interface {
	Embedding
	setQuickId(id int32)
}

func (emb *EdgeEmbedding) setQuickId(id int32)   { emb.Qpid = id }
func (emb *VertexEmbedding) setQuickId(id int32) { emb.Qpid = id }
func (emb *BaseEmbedding) setQuickId(id int32)   { emb.Qpid = id }

func (m *Miner) quickPatternOf(emb Classified) *QuickPattern {
	switch e := emb.(type) {
	case *EdgeEmbedding:
		return m.edgeQuickPattern(e)
	case *VertexEmbedding:
		return m.vertexQuickPattern(e.Vids)
	case *BaseEmbedding:
		return m.vertexQuickPattern(e.Vids)
	default:
		panic(errors.Errorf("unknown embedding type %T", emb))
	}
}

func newDomains(slots int) []*set.SortedSet {
	domains := make([]*set.SortedSet, 0, slots)
	for i := 0; i < slots; i++ {
		domains = append(domains, set.NewSortedSet(10))
	}
	return domains
}

func unionDomains(into, from []*set.SortedSet) {
	for i := range from {
		for v, next := from[i].Items()(); next != nil; v, next = next() {
			into[i].Add(v.(types.Int32))
		}
	}
}

// mergeQpFreq folds from into into. Merging is commutative and associative:
// the result is independent of how embeddings were partitioned over workers.
func mergeQpFreq(into, from QpMapFreq) {
	for key, e := range from {
		if x, has := into[key]; has {
			x.freq += e.freq
		} else {
			into[key] = e
		}
	}
}

func mergeQpDomain(into, from QpMapDomain) {
	for key, e := range from {
		if x, has := into[key]; has {
			unionDomains(x.domains, e.domains)
		} else {
			into[key] = e
		}
	}
}
