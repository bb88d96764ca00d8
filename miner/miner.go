package miner

import (
	"sort"
	"sync"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/levmine/canon"
	"github.com/timtadh/levmine/config"
	"github.com/timtadh/levmine/graph"
	"github.com/timtadh/levmine/pool"
	"github.com/timtadh/levmine/stores/intint"
)

type Mode int

const (
	FSM Mode = iota
	Motif
	Clique
)

func (m Mode) String() string {
	switch m {
	case FSM:
		return "fsm"
	case Motif:
		return "motif"
	case Clique:
		return "clique"
	}
	return "unknown"
}

type SupportMode int

const (
	Frequency SupportMode = iota
	MinImage
)

func (s SupportMode) String() string {
	switch s {
	case Frequency:
		return "freq"
	case MinImage:
		return "domain"
	}
	return "unknown"
}

type Config struct {
	Mode         Mode
	SupportMode  SupportMode
	MaxVertices  int // fsm: most distinct vertices a pattern may have
	Size         int // motif/clique: exact number of vertices
	VertexLabels bool
	EdgeLabels   bool
}

type Report struct {
	Level   int
	Pattern *CanonicalPattern
	Support int
}

type Reporter interface {
	Report(*Report) error
	Close() error
}

type Result struct {
	Level      int
	Embeddings []Embedding
	Cliques    int
}

// Miner drives level synchronous enumeration: extend, aggregate into quick
// patterns per worker, merge at the barrier, reduce to canonical patterns,
// evaluate support, filter, repeat. The id map outlives levels; everything
// else is rebuilt per level.
type Miner struct {
	G       *graph.Graph
	Cfg     *Config
	conf    *config.Config
	oracle  canon.Oracle
	workers *pool.Pool

	quickIds *idTable
	canonIds *idTable
	idMap    intint.MultiMap
	idMapMu  sync.Mutex

	rptr Reporter
}

func New(conf *config.Config, cfg *Config, G *graph.Graph, oracle canon.Oracle, rptr Reporter) (*Miner, error) {
	switch cfg.Mode {
	case FSM:
		if cfg.MaxVertices < 2 {
			return nil, errors.Errorf("fsm needs max-vertices >= 2, got %v", cfg.MaxVertices)
		}
	case Motif, Clique:
		if cfg.Size < 2 {
			return nil, errors.Errorf("%v needs size >= 2, got %v", cfg.Mode, cfg.Size)
		}
	default:
		return nil, errors.Errorf("unknown mode %v", cfg.Mode)
	}
	if conf.Support < 1 {
		return nil, errors.Errorf("support must be >= 1, got %v", conf.Support)
	}
	idMap, err := conf.IntIntMultiMap("levmine-id-map")
	if err != nil {
		return nil, err
	}
	m := &Miner{
		G:        G,
		Cfg:      cfg,
		conf:     conf,
		oracle:   oracle,
		workers:  pool.New(conf.Workers()),
		quickIds: newIdTable(),
		canonIds: newIdTable(),
		idMap:    idMap,
		rptr:     rptr,
	}
	return m, nil
}

func (m *Miner) Close() error {
	m.workers.Stop()
	err := m.idMap.Close()
	if err != nil {
		return err
	}
	if m.rptr != nil {
		return m.rptr.Close()
	}
	return nil
}

func (m *Miner) Mine() (*Result, error) {
	switch m.Cfg.Mode {
	case FSM:
		return m.mineEdges()
	case Motif:
		return m.mineMotifs()
	case Clique:
		return m.mineCliques()
	}
	return nil, errors.Errorf("unknown mode %v", m.Cfg.Mode)
}

// mineEdges is the frequent subgraph loop. Levels count pattern edges; the
// barrier between levels is the sequential merge + support evaluation.
func (m *Miner) mineEdges() (*Result, error) {
	queue := m.initialEdges()
	maxEdges := m.Cfg.MaxVertices * (m.Cfg.MaxVertices - 1) / 2
	level := 1
	for {
		errors.Logf("INFO", "level %v: %v embeddings", level, len(queue))
		embs := classifiedEdges(queue)
		supports, err := m.classify(level, embs)
		if err != nil {
			return nil, err
		}
		kept, err := m.filter(embs, supports)
		if err != nil {
			return nil, err
		}
		errors.Logf("INFO", "level %v: %v frequent embeddings", level, len(kept))
		queue = edgeEmbeddings(kept)
		if len(queue) == 0 || level >= maxEdges {
			break
		}
		next := m.extendEdges(queue)
		if len(next) == 0 {
			break
		}
		queue = next
		level++
	}
	return &Result{Level: level, Embeddings: toEmbeddings(classifiedEdges(queue))}, nil
}

func (m *Miner) mineMotifs() (*Result, error) {
	queue := m.initialVertices()
	for size := 1; size < m.Cfg.Size && len(queue) > 0; size++ {
		queue = m.extendMotifs(queue)
	}
	errors.Logf("INFO", "%v-motif embeddings: %v", m.Cfg.Size, len(queue))
	if len(queue) == 0 {
		return &Result{Level: m.Cfg.Size}, nil
	}
	embs := classifiedVertices(queue)
	var supports map[int32]int32
	var err error
	if m.Cfg.Size == 3 && !m.Cfg.VertexLabels {
		supports, err = m.classifyMotif3(queue)
	} else {
		supports, err = m.classify(m.Cfg.Size, embs)
	}
	if err != nil {
		return nil, err
	}
	kept, err := m.filter(embs, supports)
	if err != nil {
		return nil, err
	}
	return &Result{Level: m.Cfg.Size, Embeddings: toEmbeddings(kept)}, nil
}

func (m *Miner) mineCliques() (*Result, error) {
	queue := m.initialBase()
	for size := 1; size < m.Cfg.Size && len(queue) > 0; size++ {
		queue = m.extendCliques(queue)
	}
	errors.Logf("INFO", "%v-cliques: %v", m.Cfg.Size, len(queue))
	if len(queue) == 0 {
		return &Result{Level: m.Cfg.Size}, nil
	}
	embs := classifiedBase(queue)
	supports, err := m.classify(m.Cfg.Size, embs)
	if err != nil {
		return nil, err
	}
	kept, err := m.filter(embs, supports)
	if err != nil {
		return nil, err
	}
	return &Result{Level: m.Cfg.Size, Embeddings: toEmbeddings(kept), Cliques: len(queue)}, nil
}

// initialEdges seeds one two-element embedding per undirected edge, oriented
// min -> max endpoint (the ascending direction is the canonical one).
func (m *Miner) initialEdges() []*EdgeEmbedding {
	queue := make([]*EdgeEmbedding, 0, m.G.Edges())
	for i := 0; i < m.G.Size(); i++ {
		u := int32(i)
		for _, v := range m.G.Neighbors(u) {
			if u >= v {
				continue
			}
			queue = append(queue, &EdgeEmbedding{
				Elements: []Element{
					{Vid: u, His: 0, Vlabel: m.vertexLabel(u)},
					{Vid: v, His: 0, Vlabel: m.vertexLabel(v), Elabel: m.edgeLabel(u, v)},
				},
			})
		}
	}
	return queue
}

func (m *Miner) initialVertices() []*VertexEmbedding {
	queue := make([]*VertexEmbedding, 0, m.G.Size())
	for i := 0; i < m.G.Size(); i++ {
		queue = append(queue, &VertexEmbedding{Vids: []int32{int32(i)}})
	}
	return queue
}

func (m *Miner) initialBase() []*BaseEmbedding {
	queue := make([]*BaseEmbedding, 0, m.G.Size())
	for i := 0; i < m.G.Size(); i++ {
		queue = append(queue, &BaseEmbedding{Vids: []int32{int32(i)}})
	}
	return queue
}

func (m *Miner) extendEdges(queue []*EdgeEmbedding) []*EdgeEmbedding {
	W := m.workers.Size()
	outs := make([][]*EdgeEmbedding, W)
	m.workers.Each(len(queue), func(wid, i int) {
		m.extendEdge(queue[i], &outs[wid])
	})
	return concat(outs)
}

func (m *Miner) extendMotifs(queue []*VertexEmbedding) []*VertexEmbedding {
	W := m.workers.Size()
	outs := make([][]*VertexEmbedding, W)
	m.workers.Each(len(queue), func(wid, i int) {
		m.extendVertexMotif(queue[i], &outs[wid])
	})
	return concat(outs)
}

func (m *Miner) extendCliques(queue []*BaseEmbedding) []*BaseEmbedding {
	W := m.workers.Size()
	outs := make([][]*BaseEmbedding, W)
	m.workers.Each(len(queue), func(wid, i int) {
		m.extendVertexClique(queue[i], &outs[wid], true)
	})
	return concat(outs)
}

// classify aggregates the level's embeddings into quick patterns in
// per-worker maps, merges them, reduces the merged entries to canonical
// patterns (again worker-local, merged after), evaluates support, and
// reports the frequent patterns. Returns the cgid -> support map.
func (m *Miner) classify(level int, embs []Classified) (map[int32]int32, error) {
	if m.Cfg.Mode == FSM && m.Cfg.SupportMode == MinImage {
		return m.classifyDomain(level, embs)
	}
	return m.classifyFreq(level, embs)
}

func (m *Miner) classifyFreq(level int, embs []Classified) (map[int32]int32, error) {
	W := m.workers.Size()
	locals := make([]QpMapFreq, W)
	for i := range locals {
		locals[i] = make(QpMapFreq)
	}
	m.workers.Each(len(embs), func(wid, i int) {
		m.quickAggregateFreq(embs[i], locals[wid])
	})
	qps := make(QpMapFreq)
	for _, local := range locals {
		mergeQpFreq(qps, local)
	}
	errors.Logf("DEBUG", "level %v: %v quick patterns", level, len(qps))

	entries := make([]*qpFreq, 0, len(qps))
	for _, e := range qps {
		entries = append(entries, e)
	}
	cgLocals := make([]CgMapFreq, W)
	for i := range cgLocals {
		cgLocals[i] = make(CgMapFreq)
	}
	errs := make([]error, W)
	m.workers.Each(len(entries), func(wid, i int) {
		if errs[wid] != nil {
			return
		}
		errs[wid] = m.canonicalAggregateFreq(entries[i], cgLocals[wid])
	})
	if err := firstError(errs); err != nil {
		return nil, err
	}
	cgs := make(CgMapFreq)
	for _, local := range cgLocals {
		mergeCgFreq(cgs, local)
	}
	supports, frequent := m.supportCountFreq(cgs)
	errors.Logf("INFO", "level %v: %v canonical patterns, %v frequent", level, len(cgs), frequent)
	reports := make([]*Report, 0, frequent)
	for _, e := range cgs {
		if int(e.freq) >= m.conf.Support {
			reports = append(reports, &Report{Level: level, Pattern: e.cg, Support: int(e.freq)})
		}
	}
	err := m.report(reports)
	if err != nil {
		return nil, err
	}
	return supports, nil
}

func (m *Miner) classifyDomain(level int, embs []Classified) (map[int32]int32, error) {
	W := m.workers.Size()
	locals := make([]QpMapDomain, W)
	for i := range locals {
		locals[i] = make(QpMapDomain)
	}
	m.workers.Each(len(embs), func(wid, i int) {
		m.quickAggregateDomain(embs[i], locals[wid])
	})
	qps := make(QpMapDomain)
	for _, local := range locals {
		mergeQpDomain(qps, local)
	}
	errors.Logf("DEBUG", "level %v: %v quick patterns", level, len(qps))

	entries := make([]*qpDomain, 0, len(qps))
	for _, e := range qps {
		entries = append(entries, e)
	}
	cgLocals := make([]CgMapDomain, W)
	for i := range cgLocals {
		cgLocals[i] = make(CgMapDomain)
	}
	errs := make([]error, W)
	m.workers.Each(len(entries), func(wid, i int) {
		if errs[wid] != nil {
			return
		}
		errs[wid] = m.canonicalAggregateDomain(entries[i], cgLocals[wid])
	})
	if err := firstError(errs); err != nil {
		return nil, err
	}
	cgs := make(CgMapDomain)
	for _, local := range cgLocals {
		mergeCgDomain(cgs, local)
	}
	supports, frequent := m.supportCountDomain(cgs)
	errors.Logf("INFO", "level %v: %v canonical patterns, %v frequent", level, len(cgs), frequent)
	reports := make([]*Report, 0, frequent)
	for _, e := range cgs {
		sup := int(supports[e.cg.Id])
		if sup >= m.conf.Support {
			reports = append(reports, &Report{Level: level, Pattern: e.cg, Support: sup})
		}
	}
	err := m.report(reports)
	if err != nil {
		return nil, err
	}
	return supports, nil
}

func (m *Miner) filter(embs []Classified, supports map[int32]int32) ([]Classified, error) {
	W := m.workers.Size()
	keeps := make([][]Classified, W)
	errs := make([]error, W)
	m.workers.Each(len(embs), func(wid, i int) {
		if errs[wid] != nil {
			return
		}
		ok, err := m.frequent(embs[i].QuickId(), supports)
		if err != nil {
			errs[wid] = err
			return
		}
		if ok {
			keeps[wid] = append(keeps[wid], embs[i])
		}
	})
	if err := firstError(errs); err != nil {
		return nil, err
	}
	return concat(keeps), nil
}

func (m *Miner) report(reports []*Report) error {
	if m.rptr == nil {
		return nil
	}
	sort.Slice(reports, func(i, j int) bool {
		if reports[i].Support != reports[j].Support {
			return reports[i].Support > reports[j].Support
		}
		return reports[i].Pattern.Id < reports[j].Pattern.Id
	})
	for _, r := range reports {
		err := m.rptr.Report(r)
		if err != nil {
			return err
		}
	}
	return nil
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func concat[T any](parts [][]T) []T {
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	out := make([]T, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func classifiedEdges(queue []*EdgeEmbedding) []Classified {
	embs := make([]Classified, 0, len(queue))
	for _, emb := range queue {
		embs = append(embs, emb)
	}
	return embs
}

func classifiedVertices(queue []*VertexEmbedding) []Classified {
	embs := make([]Classified, 0, len(queue))
	for _, emb := range queue {
		embs = append(embs, emb)
	}
	return embs
}

func classifiedBase(queue []*BaseEmbedding) []Classified {
	embs := make([]Classified, 0, len(queue))
	for _, emb := range queue {
		embs = append(embs, emb)
	}
	return embs
}

func edgeEmbeddings(embs []Classified) []*EdgeEmbedding {
	queue := make([]*EdgeEmbedding, 0, len(embs))
	for _, emb := range embs {
		queue = append(queue, emb.(*EdgeEmbedding))
	}
	return queue
}

func toEmbeddings(embs []Classified) []Embedding {
	out := make([]Embedding, 0, len(embs))
	for _, emb := range embs {
		out = append(out, emb)
	}
	return out
}
