package graph

import (
	"fmt"
	"sort"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
)

type Vertex struct {
	Id    int32
	Color int
}

type Arc struct {
	Src, Targ int32
}

// Graph is an in-memory undirected labeled graph. Vertex ids are dense
// (0..len(V)-1), adjacency lists are sorted, parallel edges and self loops
// are dropped on Build.
type Graph struct {
	V          []Vertex
	Adj        [][]int32
	Colors     *Labels
	EdgeColors *Labels
	edgeColor  map[Arc]int
	edges      int
}

type Builder struct {
	g *Graph
}

func Build(V, E int) *Builder {
	return &Builder{
		g: &Graph{
			V:          make([]Vertex, 0, V),
			Adj:        make([][]int32, 0, V),
			Colors:     NewLabels(),
			EdgeColors: NewLabels(),
			edgeColor:  make(map[Arc]int, E),
		},
	}
}

func (b *Builder) AddVertex(label string) *Vertex {
	g := b.g
	id := int32(len(g.V))
	g.V = append(g.V, Vertex{Id: id, Color: g.Colors.Color(label)})
	g.Adj = append(g.Adj, make([]int32, 0, 5))
	return &g.V[id]
}

func (b *Builder) AddEdge(u, v int32, label string) error {
	g := b.g
	if u < 0 || int(u) >= len(g.V) || v < 0 || int(v) >= len(g.V) {
		return errors.Errorf("edge (%v, %v) references an unknown vertex", u, v)
	}
	if u == v {
		// simple graph, self loops carry no pattern
		return nil
	}
	if u > v {
		u, v = v, u
	}
	if _, has := g.edgeColor[Arc{u, v}]; has {
		return nil
	}
	g.edgeColor[Arc{u, v}] = g.EdgeColors.Color(label)
	g.Adj[u] = append(g.Adj[u], v)
	g.Adj[v] = append(g.Adj[v], u)
	g.edges++
	return nil
}

func (b *Builder) Build() *Graph {
	g := b.g
	for i := range g.Adj {
		adj := g.Adj[i]
		sort.Slice(adj, func(x, y int) bool { return adj[x] < adj[y] })
	}
	return g
}

func (g *Graph) Size() int {
	return len(g.V)
}

func (g *Graph) Edges() int {
	return g.edges
}

func (g *Graph) Degree(v int32) int {
	return len(g.Adj[v])
}

func (g *Graph) Neighbors(v int32) []int32 {
	return g.Adj[v]
}

func (g *Graph) Color(v int32) int {
	return g.V[v].Color
}

func (g *Graph) EdgeColor(u, v int32) int {
	if u > v {
		u, v = v, u
	}
	return g.edgeColor[Arc{u, v}]
}

func (g *Graph) HasEdge(u, v int32) bool {
	if u > v {
		u, v = v, u
	}
	_, has := g.edgeColor[Arc{u, v}]
	return has
}

// Connected scans the adjacency of the lower degree endpoint.
func (g *Graph) Connected(from, to int32) bool {
	if g.Degree(from) > g.Degree(to) {
		from, to = to, from
	}
	for _, n := range g.Adj[from] {
		if n == to {
			return true
		}
	}
	return false
}

func (g *Graph) String() string {
	V := make([]string, 0, len(g.V))
	E := make([]string, 0, g.edges)
	for _, v := range g.V {
		V = append(V, fmt.Sprintf("(%v:%v)", v.Id, g.Colors.Label(v.Color)))
	}
	for i := range g.V {
		u := int32(i)
		for _, v := range g.Adj[u] {
			if u < v {
				E = append(E, fmt.Sprintf("[%v--%v]", u, v))
			}
		}
	}
	return fmt.Sprintf("{%v:%v}%v%v", g.edges, len(g.V), strings.Join(V, ""), strings.Join(E, ""))
}
