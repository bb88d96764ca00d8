package miner

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"fmt"
	"sort"
)

import (
	"github.com/timtadh/levmine/canon"
	"github.com/timtadh/levmine/config"
	"github.com/timtadh/levmine/graph"
)

type sink struct {
	reports []*Report
}

func (s *sink) Report(r *Report) error {
	s.reports = append(s.reports, r)
	return nil
}

func (s *sink) Close() error {
	return nil
}

func (s *sink) level(l int) []*Report {
	var out []*Report
	for _, r := range s.reports {
		if r.Level == l {
			out = append(out, r)
		}
	}
	return out
}

func buildGraph(t *testing.T, labels []string, edges [][2]int32, elabels []string) *graph.Graph {
	b := graph.Build(len(labels), len(edges))
	for _, l := range labels {
		b.AddVertex(l)
	}
	for i, e := range edges {
		el := ""
		if elabels != nil {
			el = elabels[i]
		}
		if err := b.AddEdge(e[0], e[1], el); err != nil {
			t.Fatal(err)
		}
	}
	return b.Build()
}

func newMiner(t *testing.T, G *graph.Graph, cfg *Config, support, workers int, rptr Reporter) *Miner {
	conf := &config.Config{
		Support:     support,
		Parallelism: workers,
	}
	m, err := New(conf, cfg, G, canon.NewGoiso(), rptr)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestFsmStarSingleEdge(t *testing.T) {
	x := assert.New(t)
	// a star: 0 -- {1, 2, 3}, all one label
	G := buildGraph(t,
		[]string{"a", "a", "a", "a"},
		[][2]int32{{0, 1}, {0, 2}, {0, 3}},
		nil,
	)
	s := &sink{}
	m := newMiner(t, G, &Config{
		Mode:         FSM,
		SupportMode:  Frequency,
		MaxVertices:  2,
		VertexLabels: true,
	}, 3, 1, s)
	defer m.Close()

	res, err := m.Mine()
	x.Nil(err)
	x.Equal(1, res.Level)
	x.Equal(3, len(res.Embeddings), "all three edges embed the one frequent pattern")
	x.Equal(1, len(s.reports))
	x.Equal(1, s.reports[0].Level)
	x.Equal(3, s.reports[0].Support)
}

func TestFsmTriangle(t *testing.T) {
	x := assert.New(t)
	G := buildGraph(t,
		[]string{"a", "a", "a"},
		[][2]int32{{0, 1}, {0, 2}, {1, 2}},
		nil,
	)
	s := &sink{}
	m := newMiner(t, G, &Config{
		Mode:         FSM,
		SupportMode:  Frequency,
		MaxVertices:  3,
		VertexLabels: true,
	}, 1, 1, s)
	defer m.Close()

	res, err := m.Mine()
	x.Nil(err)
	x.Equal(3, res.Level)
	// levels count pattern edges: the single edge, the wedge, the triangle
	if x.Equal(1, len(s.level(1))) {
		x.Equal(3, s.level(1)[0].Support)
	}
	if x.Equal(1, len(s.level(2))) {
		x.Equal(3, s.level(2)[0].Support, "each wedge orbit is counted once")
	}
	if x.Equal(1, len(s.level(3))) {
		x.Equal(1, s.level(3)[0].Support, "the triangle is counted once, not six times")
	}
	x.Equal(1, len(res.Embeddings))
}

func TestFsmEdgeLabels(t *testing.T) {
	x := assert.New(t)
	G := buildGraph(t,
		[]string{"a", "a", "a"},
		[][2]int32{{0, 1}, {1, 2}},
		[]string{"x", "y"},
	)
	cfg := func(edgeLabels bool) *Config {
		return &Config{
			Mode:         FSM,
			SupportMode:  Frequency,
			MaxVertices:  2,
			VertexLabels: true,
			EdgeLabels:   edgeLabels,
		}
	}

	s := &sink{}
	m := newMiner(t, G, cfg(true), 1, 1, s)
	res, err := m.Mine()
	x.Nil(err)
	x.Nil(m.Close())
	x.Equal(2, len(s.reports), "x and y edges are distinct patterns")
	for _, r := range s.reports {
		x.Equal(1, r.Support)
	}
	x.Equal(2, len(res.Embeddings))

	s = &sink{}
	m = newMiner(t, G, cfg(false), 1, 1, s)
	res, err = m.Mine()
	x.Nil(err)
	x.Nil(m.Close())
	if x.Equal(1, len(s.reports), "without edge labels the edges collapse") {
		x.Equal(2, s.reports[0].Support)
	}
	x.Equal(2, len(res.Embeddings))
}

func TestFsmPathDomainSupport(t *testing.T) {
	x := assert.New(t)
	// path 0 - 1 - 2 - 3
	G := buildGraph(t,
		[]string{"a", "a", "a", "a"},
		[][2]int32{{0, 1}, {1, 2}, {2, 3}},
		nil,
	)
	s := &sink{}
	m := newMiner(t, G, &Config{
		Mode:         FSM,
		SupportMode:  MinImage,
		MaxVertices:  2,
		VertexLabels: true,
	}, 3, 1, s)
	defer m.Close()

	res, err := m.Mine()
	x.Nil(err)
	// slot images are {0,1,2} and {1,2,3}: min image support 3
	if x.Equal(1, len(s.reports)) {
		x.Equal(3, s.reports[0].Support)
	}
	x.Equal(3, len(res.Embeddings))
}

// Min image support is anti monotone: an extension never has more support
// than the pattern it extends, so per level the reported supports are bounded
// by the best support of the level before.
func TestFsmDomainSupportAntiMonotone(t *testing.T) {
	x := assert.New(t)
	// path 0 - 1 - 2 - 3 - 4
	G := buildGraph(t,
		[]string{"a", "a", "a", "a", "a"},
		[][2]int32{{0, 1}, {1, 2}, {2, 3}, {3, 4}},
		nil,
	)
	s := &sink{}
	m := newMiner(t, G, &Config{
		Mode:         FSM,
		SupportMode:  MinImage,
		MaxVertices:  3,
		VertexLabels: true,
	}, 1, 1, s)
	defer m.Close()

	_, err := m.Mine()
	x.Nil(err)

	best := make(map[int]int)
	last := 0
	for _, r := range s.reports {
		if r.Support > best[r.Level] {
			best[r.Level] = r.Support
		}
		if r.Level > last {
			last = r.Level
		}
	}
	x.Equal(4, best[1], "the single edge images every vertex pair of the path")
	x.True(last >= 2, "mining must get past the first level")
	for _, r := range s.reports {
		if r.Level == 1 {
			continue
		}
		x.True(r.Support <= best[r.Level-1],
			"level %v support %v exceeds best parent support %v",
			r.Level, r.Support, best[r.Level-1])
	}
}

func TestFsmDomainSupportInfrequent(t *testing.T) {
	x := assert.New(t)
	G := buildGraph(t,
		[]string{"a", "a", "a", "a"},
		[][2]int32{{0, 1}, {1, 2}, {2, 3}},
		nil,
	)
	m := newMiner(t, G, &Config{
		Mode:         FSM,
		SupportMode:  MinImage,
		MaxVertices:  2,
		VertexLabels: true,
	}, 4, 1, &sink{})
	defer m.Close()

	res, err := m.Mine()
	x.Nil(err)
	x.Equal(0, len(res.Embeddings))
}

func TestMotif3Path(t *testing.T) {
	x := assert.New(t)
	G := buildGraph(t,
		[]string{"a", "a", "a", "a"},
		[][2]int32{{0, 1}, {1, 2}, {2, 3}},
		nil,
	)
	s := &sink{}
	m := newMiner(t, G, &Config{
		Mode:        Motif,
		SupportMode: Frequency,
		Size:        3,
	}, 1, 1, s)
	defer m.Close()

	res, err := m.Mine()
	x.Nil(err)
	x.Equal(3, res.Level)
	x.Equal(2, len(res.Embeddings), "the path has two connected 3-vertex sets")
	if x.Equal(1, len(s.reports), "no triangles, one chain shape") {
		x.Equal(2, s.reports[0].Support)
	}
}

func TestMotif3Triangle(t *testing.T) {
	x := assert.New(t)
	G := buildGraph(t,
		[]string{"a", "a", "a"},
		[][2]int32{{0, 1}, {0, 2}, {1, 2}},
		nil,
	)
	s := &sink{}
	m := newMiner(t, G, &Config{
		Mode:        Motif,
		SupportMode: Frequency,
		Size:        3,
	}, 1, 1, s)
	defer m.Close()

	res, err := m.Mine()
	x.Nil(err)
	x.Equal(1, len(res.Embeddings))
	if x.Equal(1, len(s.reports)) {
		x.Equal(1, s.reports[0].Support)
	}
}

func TestMotifLabeled(t *testing.T) {
	x := assert.New(t)
	// a - b - a - b path: the two chains differ by their center label
	G := buildGraph(t,
		[]string{"a", "b", "a", "b"},
		[][2]int32{{0, 1}, {1, 2}, {2, 3}},
		nil,
	)
	s := &sink{}
	m := newMiner(t, G, &Config{
		Mode:         Motif,
		SupportMode:  Frequency,
		Size:         3,
		VertexLabels: true,
	}, 1, 1, s)
	defer m.Close()

	res, err := m.Mine()
	x.Nil(err)
	x.Equal(2, len(res.Embeddings))
	x.Equal(2, len(s.reports), "a-b-a and b-a-b are distinct")
	for _, r := range s.reports {
		x.Equal(1, r.Support)
	}
}

func TestCliqueTriangle(t *testing.T) {
	x := assert.New(t)
	G := buildGraph(t,
		[]string{"a", "a", "a"},
		[][2]int32{{0, 1}, {0, 2}, {1, 2}},
		nil,
	)
	s := &sink{}
	m := newMiner(t, G, &Config{
		Mode:        Clique,
		SupportMode: Frequency,
		Size:        3,
	}, 1, 1, s)
	defer m.Close()

	res, err := m.Mine()
	x.Nil(err)
	x.Equal(1, res.Cliques)
	x.Equal(1, len(res.Embeddings))
	if x.Equal(1, len(s.reports)) {
		x.Equal(1, s.reports[0].Support)
	}
}

func TestCliqueK4(t *testing.T) {
	x := assert.New(t)
	k4 := [][2]int32{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}
	G := buildGraph(t, []string{"a", "a", "a", "a"}, k4, nil)

	s := &sink{}
	m := newMiner(t, G, &Config{
		Mode:        Clique,
		SupportMode: Frequency,
		Size:        3,
	}, 1, 1, s)
	res, err := m.Mine()
	x.Nil(err)
	x.Nil(m.Close())
	x.Equal(4, res.Cliques, "K4 holds four triangles")
	if x.Equal(1, len(s.reports)) {
		x.Equal(4, s.reports[0].Support)
	}

	m = newMiner(t, G, &Config{
		Mode:        Clique,
		SupportMode: Frequency,
		Size:        4,
	}, 1, 1, &sink{})
	res, err = m.Mine()
	x.Nil(err)
	x.Nil(m.Close())
	x.Equal(1, res.Cliques)
}

func TestCliqueNone(t *testing.T) {
	x := assert.New(t)
	G := buildGraph(t,
		[]string{"a", "a", "a", "a"},
		[][2]int32{{0, 1}, {1, 2}, {2, 3}},
		nil,
	)
	m := newMiner(t, G, &Config{
		Mode:        Clique,
		SupportMode: Frequency,
		Size:        3,
	}, 1, 1, &sink{})
	defer m.Close()

	res, err := m.Mine()
	x.Nil(err)
	x.Equal(0, res.Cliques)
	x.Equal(0, len(res.Embeddings))
}

// reportKeys flattens a sink into sortable (level, support, pattern) strings
// so runs can be compared independent of id assignment order.
func reportKeys(s *sink) []string {
	keys := make([]string, 0, len(s.reports))
	for _, r := range s.reports {
		keys = append(keys, fmt.Sprintf("%d %d %v", r.Level, r.Support, r.Pattern))
	}
	sort.Strings(keys)
	return keys
}

func TestWorkerCountDoesNotChangeResults(t *testing.T) {
	x := assert.New(t)
	// two triangles joined by a bridge
	G := buildGraph(t,
		[]string{"a", "a", "a", "a", "a", "a"},
		[][2]int32{{0, 1}, {0, 2}, {1, 2}, {2, 3}, {3, 4}, {3, 5}, {4, 5}},
		nil,
	)
	mine := func(workers int) *sink {
		s := &sink{}
		m := newMiner(t, G, &Config{
			Mode:         FSM,
			SupportMode:  Frequency,
			MaxVertices:  3,
			VertexLabels: true,
		}, 1, workers, s)
		_, err := m.Mine()
		x.Nil(err)
		x.Nil(m.Close())
		return s
	}
	one := mine(1)
	four := mine(4)
	x.Equal(reportKeys(one), reportKeys(four))
}

func TestWorkerCountDoesNotChangeDomains(t *testing.T) {
	x := assert.New(t)
	G := buildGraph(t,
		[]string{"a", "b", "a", "b", "a", "b"},
		[][2]int32{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 0}},
		nil,
	)
	mine := func(workers int) *sink {
		s := &sink{}
		m := newMiner(t, G, &Config{
			Mode:         FSM,
			SupportMode:  MinImage,
			MaxVertices:  3,
			VertexLabels: true,
		}, 2, workers, s)
		_, err := m.Mine()
		x.Nil(err)
		x.Nil(m.Close())
		return s
	}
	one := mine(1)
	three := mine(3)
	x.Equal(reportKeys(one), reportKeys(three))
}
