package miner

import (
	"fmt"
	"sort"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/data-structures/set"
	"github.com/timtadh/data-structures/types"
)

// CanonicalPattern represents one isomorphism class of quick patterns. Its
// identity is the label returned by the canonical-form oracle; V and E are
// the canonically relabeled presentation kept for reporting.
type CanonicalPattern struct {
	Id    int32
	V     []int32
	E     []QEdge
	label []byte
}

func (cg *CanonicalPattern) Label() []byte {
	return cg.label
}

func (cg *CanonicalPattern) String() string {
	V := make([]string, 0, len(cg.V))
	E := make([]string, 0, len(cg.E))
	for i, color := range cg.V {
		V = append(V, fmt.Sprintf("(%v:%v)", i, color))
	}
	for _, e := range cg.E {
		E = append(E, fmt.Sprintf("[%v--%v:%v]", e.Src, e.Targ, e.Color))
	}
	return fmt.Sprintf("{%v:%v}%v%v", len(cg.E), len(cg.V), strings.Join(V, ""), strings.Join(E, ""))
}

type cgFreq struct {
	cg   *CanonicalPattern
	freq int32
}

type CgMapFreq map[string]*cgFreq

type cgDomain struct {
	cg      *CanonicalPattern
	domains []*set.SortedSet
}

type CgMapDomain map[string]*cgDomain

// canonicalPattern permutes the quick pattern into the oracle's canonical
// vertex order.
func canonicalPattern(qp *QuickPattern, id int32, label []byte, perm []int) *CanonicalPattern {
	V := make([]int32, len(qp.V))
	for i, color := range qp.V {
		V[perm[i]] = color
	}
	E := make([]QEdge, 0, len(qp.E))
	for _, e := range qp.E {
		src := uint8(perm[e.Src])
		targ := uint8(perm[e.Targ])
		if src > targ {
			src, targ = targ, src
		}
		E = append(E, QEdge{Src: src, Targ: targ, Color: e.Color})
	}
	sort.Slice(E, func(i, j int) bool {
		if E[i].Src != E[j].Src {
			return E[i].Src < E[j].Src
		}
		if E[i].Targ != E[j].Targ {
			return E[i].Targ < E[j].Targ
		}
		return E[i].Color < E[j].Color
	})
	return &CanonicalPattern{
		Id:    id,
		V:     V,
		E:     E,
		label: label,
	}
}

type slotKey struct {
	v, a, b int
}

func lessSlotKey(x, y slotKey) bool {
	if x.v != y.v {
		return x.v < y.v
	}
	if x.a != y.a {
		return x.a < y.a
	}
	return x.b < y.b
}

// canonicalSlots maps each structural slot of qp to its canonical slot.
// Slots are ranked primarily by the canonical image of the slot's vertex, so
// a vertex lands on the same canonical slot no matter which discovery order
// produced the quick pattern; the slot's edge as a normalized canonical pair
// breaks ties between slots revisiting the same vertex. Keys are unique
// within a quick pattern (the first slot is the only edgeless one and the
// automorphism filter admits no duplicate edge), so the ranking is a
// bijection consistent across isomorphic quick patterns.
func canonicalSlots(qp *QuickPattern, perm []int) []int {
	n := qp.Slots()
	keys := make([]slotKey, n)
	for s := 0; s < n; s++ {
		v := perm[qp.slotV[s]]
		if qp.kind == edgeKind && s > 0 {
			e := qp.E[s-1]
			a := perm[e.Src]
			b := perm[e.Targ]
			if a > b {
				a, b = b, a
			}
			keys[s] = slotKey{v: v, a: a, b: b}
		} else {
			keys[s] = slotKey{v: v, a: -1, b: -1}
		}
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return lessSlotKey(keys[order[i]], keys[order[j]])
	})
	slots := make([]int, n)
	for rank, s := range order {
		slots[s] = rank
	}
	return slots
}

// canonicalAggregateFreq reduces one quick pattern entry into the canonical
// map, accumulating its count, and records the quick -> canonical id pair in
// the shared id map.
func (m *Miner) canonicalAggregateFreq(e *qpFreq, cgs CgMapFreq) error {
	label, perm, err := m.oracle.Canonical(e.qp.V, e.qp.canonEdges())
	if err != nil {
		return err
	}
	cgid := m.canonIds.id(label)
	err = m.recordIdMapping(e.qp.Id, cgid)
	if err != nil {
		return err
	}
	key := string(label)
	if x, has := cgs[key]; has {
		x.freq += e.freq
	} else {
		cgs[key] = &cgFreq{
			cg:   canonicalPattern(e.qp, cgid, label, perm),
			freq: e.freq,
		}
	}
	return nil
}

// canonicalAggregateDomain is the domain support variant: slot sets are
// unioned through the slot permutation, not positionally, since isomorphic
// quick patterns discover the same canonical slot at different positions.
func (m *Miner) canonicalAggregateDomain(e *qpDomain, cgs CgMapDomain) error {
	qp := e.qp
	if len(e.domains) != qp.Slots() {
		panic(errors.Errorf("quick pattern %v has %v domains for %v slots", qp, len(e.domains), qp.Slots()))
	}
	label, perm, err := m.oracle.Canonical(qp.V, qp.canonEdges())
	if err != nil {
		return err
	}
	cgid := m.canonIds.id(label)
	err = m.recordIdMapping(qp.Id, cgid)
	if err != nil {
		return err
	}
	slots := canonicalSlots(qp, perm)
	key := string(label)
	x, has := cgs[key]
	if !has {
		x = &cgDomain{
			cg:      canonicalPattern(qp, cgid, label, perm),
			domains: newDomains(qp.Slots()),
		}
		cgs[key] = x
	}
	for s := 0; s < qp.Slots(); s++ {
		cs := slots[s]
		for v, next := e.domains[s].Items()(); next != nil; v, next = next() {
			x.domains[cs].Add(v.(types.Int32))
		}
	}
	return nil
}

// recordIdMapping inserts (qpid -> cgid) into the shared id map. The mutex
// covers the has/add pair; readers only run after the level barrier.
func (m *Miner) recordIdMapping(qpid, cgid int32) error {
	m.idMapMu.Lock()
	defer m.idMapMu.Unlock()
	has, err := m.idMap.Has(qpid)
	if err != nil {
		return err
	}
	if !has {
		return m.idMap.Add(qpid, cgid)
	}
	return nil
}

func mergeCgFreq(into, from CgMapFreq) {
	for key, e := range from {
		if x, has := into[key]; has {
			x.freq += e.freq
		} else {
			into[key] = e
		}
	}
}

func mergeCgDomain(into, from CgMapDomain) {
	for key, e := range from {
		if x, has := into[key]; has {
			unionDomains(x.domains, e.domains)
		} else {
			into[key] = e
		}
	}
}
