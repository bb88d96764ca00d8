package miner

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/data-structures/set"
)

import (
	"github.com/timtadh/levmine/stats"
)

// domainSupport is the minimum image based support: the smallest per-slot
// set of distinct vertices bounds how many disjoint images the pattern has.
// It is anti-monotonic, raw frequency is not. The permutation randomizes
// which slot is picked on ties; the size is the same either way.
func domainSupport(domains []*set.SortedSet) int {
	_, size := stats.Min(stats.RandomPermutation(len(domains)), func(i int) float64 {
		return float64(domains[i].Size())
	})
	return int(size)
}

// supportCountFreq computes the support of every canonical pattern and
// returns the cgid -> support map plus how many met the threshold.
func (m *Miner) supportCountFreq(cgs CgMapFreq) (supports map[int32]int32, frequent int) {
	supports = make(map[int32]int32, len(cgs))
	for _, e := range cgs {
		supports[e.cg.Id] = e.freq
		if int(e.freq) >= m.conf.Support {
			frequent++
		}
	}
	return supports, frequent
}

func (m *Miner) supportCountDomain(cgs CgMapDomain) (supports map[int32]int32, frequent int) {
	supports = make(map[int32]int32, len(cgs))
	for _, e := range cgs {
		sup := domainSupport(e.domains)
		supports[e.cg.Id] = int32(sup)
		if sup >= m.conf.Support {
			frequent++
		}
	}
	return supports, frequent
}

// frequent resolves an embedding's quick pattern id through the id map to
// its canonical pattern and checks that pattern's support against the
// threshold. A missing mapping or support entry means the level barrier was
// violated; that is a defect, not a recoverable condition.
func (m *Miner) frequent(qpid int32, supports map[int32]int32) (bool, error) {
	cgid, has, err := m.idMap.Get(qpid)
	if err != nil {
		return false, err
	}
	if !has {
		panic(errors.Errorf("quick pattern %v has no canonical mapping", qpid))
	}
	sup, has := supports[cgid]
	if !has {
		panic(errors.Errorf("canonical pattern %v is missing from the support map", cgid))
	}
	return int(sup) >= m.conf.Support, nil
}
