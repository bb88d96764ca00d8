package graph

import (
	"fmt"
	"io/ioutil"
)

import (
	"github.com/timtadh/combos"
	"github.com/timtadh/dot"
)

// LoadDot reads a (di)graph in the dot format. Edge direction is ignored,
// the mined graph is undirected. Subgraph blocks are skipped.
func LoadDot(input Input) (*Graph, error) {
	r, closer := input()
	text, err := ioutil.ReadAll(r)
	closer()
	if err != nil {
		return nil, err
	}
	b := Build(100, 1000)
	dp := &dotParse{
		b:    b,
		vids: make(map[string]int32),
	}
	err = dot.StreamParse(text, dp)
	if err != nil {
		return nil, err
	}
	if dp.errs != nil {
		return nil, dp.errs
	}
	return b.Build(), nil
}

type dotParse struct {
	b        *Builder
	graphId  int
	curGraph string
	subgraph int
	vids     map[string]int32
	errs     ErrorList
}

func (p *dotParse) Enter(name string, n *combos.Node) error {
	if name == "SubGraph" {
		p.subgraph += 1
		return nil
	}
	p.curGraph = fmt.Sprintf("%v-%d", n.Get(1).Value.(string), p.graphId)
	return nil
}

func (p *dotParse) Stmt(n *combos.Node) error {
	if p.subgraph > 0 {
		return nil
	}
	switch n.Label {
	case "Node":
		if err := p.loadVertex(n); err != nil {
			p.errs = append(p.errs, err)
		}
	case "Edge":
		if err := p.loadEdge(n); err != nil {
			p.errs = append(p.errs, err)
		}
	}
	return nil
}

func (p *dotParse) Exit(name string) error {
	if name == "SubGraph" {
		p.subgraph--
		return nil
	}
	p.graphId++
	return nil
}

func (p *dotParse) loadVertex(n *combos.Node) error {
	sid := n.Get(0).Value.(string)
	label := sid
	for _, attr := range n.Get(1).Children {
		name := attr.Get(0).Value.(string)
		if name == "label" {
			label = attr.Get(1).Value.(string)
			break
		}
	}
	p.vids[sid] = p.b.AddVertex(label).Id
	return nil
}

func (p *dotParse) loadEdge(n *combos.Node) error {
	getId := func(sid string) (int32, error) {
		if _, has := p.vids[sid]; !has {
			err := p.loadVertex(combos.NewNode("Node").
				AddKid(combos.NewValueNode("ID", sid)).
				AddKid(combos.NewNode("Attrs")))
			if err != nil {
				return 0, err
			}
		}
		return p.vids[sid], nil
	}
	srcSid := n.Get(0).Value.(string)
	sid, err := getId(srcSid)
	if err != nil {
		return err
	}
	targSid := n.Get(1).Value.(string)
	tid, err := getId(targSid)
	if err != nil {
		return err
	}
	label := ""
	for _, attr := range n.Get(2).Children {
		name := attr.Get(0).Value.(string)
		if name == "label" {
			label = attr.Get(1).Value.(string)
			break
		}
	}
	return p.b.AddEdge(sid, tid, label)
}
