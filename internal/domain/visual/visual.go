// Package visual defines the chart, heatmap and graph payloads attached to
// analyses. Relations are expressed as string keys so payloads serialize
// without cycles.
package visual

// DistributionBucket is one bar of a fixed-range histogram.
type DistributionBucket struct {
	Range      string  `json:"range"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Chart is a labelled series.
type Chart struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Heatmap is a matrix of values indexed by row and column labels.
type Heatmap struct {
	XLabels []string    `json:"xLabels"`
	YLabels []string    `json:"yLabels"`
	Cells   [][]float64 `json:"cells"`
}

// GraphNode is a vertex of a network graph.
type GraphNode struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Group  string  `json:"group"`
	Weight float64 `json:"weight"`
}

// GraphEdge connects two nodes by id.
type GraphEdge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

// NetworkGraph is a node/edge payload.
type NetworkGraph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// EmptyChart returns a chart with non-nil empty series.
func EmptyChart() Chart {
	return Chart{Labels: []string{}, Values: []float64{}}
}

// EmptyHeatmap returns a heatmap with non-nil empty axes.
func EmptyHeatmap() Heatmap {
	return Heatmap{XLabels: []string{}, YLabels: []string{}, Cells: [][]float64{}}
}

// EmptyGraph returns a graph with non-nil empty node and edge lists.
func EmptyGraph() NetworkGraph {
	return NetworkGraph{Nodes: []GraphNode{}, Edges: []GraphEdge{}}
}
