package miner

import (
	"fmt"
	"strings"
)

// Element is one extension step of an embedding: the vertex added, the index
// of the element it extended from, and the labels participating in pattern
// identity (zero when labels are disabled).
type Element struct {
	Vid    int32
	His    uint8
	Vlabel int32
	Elabel int32
}

// Embedding is the contract shared by the embedding variants. Mutation
// (push/pop) is speculative during extension and always reverted before the
// next candidate; a copy is taken for anything that outlives the call.
type Embedding interface {
	Size() int
	Vertex(i int) int32
	QuickId() int32
	String() string
}

// EdgeEmbedding grows one edge at a time and keeps the full history chain.
// Used for frequent subgraph mining.
type EdgeEmbedding struct {
	Elements []Element
	Qpid     int32
}

func (emb *EdgeEmbedding) Size() int {
	return len(emb.Elements)
}

func (emb *EdgeEmbedding) Vertex(i int) int32 {
	return emb.Elements[i].Vid
}

func (emb *EdgeEmbedding) History(i int) int {
	return int(emb.Elements[i].His)
}

func (emb *EdgeEmbedding) QuickId() int32 {
	return emb.Qpid
}

func (emb *EdgeEmbedding) Push(e Element) {
	emb.Elements = append(emb.Elements, e)
}

func (emb *EdgeEmbedding) Pop() {
	emb.Elements = emb.Elements[:len(emb.Elements)-1]
}

func (emb *EdgeEmbedding) Clone() *EdgeEmbedding {
	elements := make([]Element, len(emb.Elements))
	copy(elements, emb.Elements)
	return &EdgeEmbedding{Elements: elements}
}

func (emb *EdgeEmbedding) String() string {
	parts := make([]string, 0, len(emb.Elements))
	for _, e := range emb.Elements {
		parts = append(parts, fmt.Sprintf("%v<-%v", e.Vid, e.His))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// VertexEmbedding is a vertex sequence without extension history. Used for
// vertex-induced motif counting.
type VertexEmbedding struct {
	Vids []int32
	Qpid int32
}

func (emb *VertexEmbedding) Size() int {
	return len(emb.Vids)
}

func (emb *VertexEmbedding) Vertex(i int) int32 {
	return emb.Vids[i]
}

func (emb *VertexEmbedding) QuickId() int32 {
	return emb.Qpid
}

func (emb *VertexEmbedding) Push(v int32) {
	emb.Vids = append(emb.Vids, v)
}

func (emb *VertexEmbedding) Pop() {
	emb.Vids = emb.Vids[:len(emb.Vids)-1]
}

func (emb *VertexEmbedding) Clone() *VertexEmbedding {
	vids := make([]int32, len(emb.Vids))
	copy(vids, emb.Vids)
	return &VertexEmbedding{Vids: vids}
}

func (emb *VertexEmbedding) String() string {
	parts := make([]string, 0, len(emb.Vids))
	for _, v := range emb.Vids {
		parts = append(parts, fmt.Sprintf("%v", v))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// BaseEmbedding is the minimal vertex sequence variant used for clique
// enumeration; construction keeps vertices in ascending order.
type BaseEmbedding struct {
	Vids []int32
	Qpid int32
}

func (emb *BaseEmbedding) Size() int {
	return len(emb.Vids)
}

func (emb *BaseEmbedding) Vertex(i int) int32 {
	return emb.Vids[i]
}

func (emb *BaseEmbedding) QuickId() int32 {
	return emb.Qpid
}

func (emb *BaseEmbedding) Push(v int32) {
	emb.Vids = append(emb.Vids, v)
}

func (emb *BaseEmbedding) Pop() {
	emb.Vids = emb.Vids[:len(emb.Vids)-1]
}

func (emb *BaseEmbedding) Clone() *BaseEmbedding {
	vids := make([]int32, len(emb.Vids))
	copy(vids, emb.Vids)
	return &BaseEmbedding{Vids: vids}
}

func (emb *BaseEmbedding) String() string {
	parts := make([]string, 0, len(emb.Vids))
	for _, v := range emb.Vids {
		parts = append(parts, fmt.Sprintf("%v", v))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
