package services

import "github.com/felixgeelhaar/firesalamander/internal/domain/visual"

// GraphBuilder accumulates a network graph. Nodes are keyed by id and
// repeated edges increase the weight of the existing edge.
type GraphBuilder struct {
	nodes     []visual.GraphNode
	nodeIndex map[string]int
	edges     []visual.GraphEdge
	edgeIndex map[[2]string]int
}

// NewGraphBuilder creates an empty graph builder.
func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{
		nodes:     []visual.GraphNode{},
		nodeIndex: make(map[string]int),
		edges:     []visual.GraphEdge{},
		edgeIndex: make(map[[2]string]int),
	}
}

// AddNode adds a node, or bumps the weight of an existing one.
func (b *GraphBuilder) AddNode(id, label, group string) {
	if id == "" {
		return
	}
	if i, ok := b.nodeIndex[id]; ok {
		b.nodes[i].Weight++
		return
	}
	if label == "" {
		label = id
	}
	b.nodeIndex[id] = len(b.nodes)
	b.nodes = append(b.nodes, visual.GraphNode{ID: id, Label: label, Group: group, Weight: 1})
}

// AddEdge connects two existing nodes. Edges to unknown nodes and self
// loops are ignored.
func (b *GraphBuilder) AddEdge(source, target string) {
	if source == target {
		return
	}
	if _, ok := b.nodeIndex[source]; !ok {
		return
	}
	if _, ok := b.nodeIndex[target]; !ok {
		return
	}

	key := [2]string{source, target}
	if i, ok := b.edgeIndex[key]; ok {
		b.edges[i].Weight++
		return
	}
	b.edgeIndex[key] = len(b.edges)
	b.edges = append(b.edges, visual.GraphEdge{Source: source, Target: target, Weight: 1})
}

// HasNode reports whether id was added.
func (b *GraphBuilder) HasNode(id string) bool {
	_, ok := b.nodeIndex[id]
	return ok
}

// Build returns a copy of the accumulated graph in insertion order.
func (b *GraphBuilder) Build() visual.NetworkGraph {
	g := visual.NetworkGraph{
		Nodes: make([]visual.GraphNode, len(b.nodes)),
		Edges: make([]visual.GraphEdge, len(b.edges)),
	}
	copy(g.Nodes, b.nodes)
	copy(g.Edges, b.edges)
	return g
}
