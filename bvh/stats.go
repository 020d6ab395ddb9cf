package bvh

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/olekukonko/tablewriter"
)

// Stats summarizes the shape and the expected traversal cost of a tree.
type Stats struct {
	Primitives int
	Nodes      int
	Leaves     int
	MaxDepth   int

	MinLeafSize int
	MaxLeafSize int
	AvgLeafSize float32

	// SAH cost of the tree normalized by the root surface area.
	Cost float32

	BuildTime time.Duration
}

// Collect tree statistics. The traversal cost is used when estimating the
// SAH cost of internal nodes.
func (t *Tree) Stats(traversalCost float32) Stats {
	stats := Stats{
		Primitives:  len(t.PrimitiveIndices),
		MinLeafSize: math.MaxInt32,
	}

	var cost float32
	t.Walk(func(_, depth int, n *Node) bool {
		stats.Nodes++
		if depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}

		if !n.IsLeaf {
			cost += n.BBox.HalfArea() * traversalCost
			return true
		}

		stats.Leaves++
		cost += n.BBox.HalfArea() * float32(n.PrimitiveCount)
		if n.PrimitiveCount < stats.MinLeafSize {
			stats.MinLeafSize = n.PrimitiveCount
		}
		if n.PrimitiveCount > stats.MaxLeafSize {
			stats.MaxLeafSize = n.PrimitiveCount
		}
		return true
	})

	stats.AvgLeafSize = float32(stats.Primitives) / float32(stats.Leaves)
	if rootArea := t.Root().BBox.HalfArea(); rootArea > 0 {
		stats.Cost = cost / rootArea
	}
	return stats
}

// Table renders the stats as a text table.
func (s Stats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Primitives", fmt.Sprintf("%d", s.Primitives)})
	table.Append([]string{"Nodes", fmt.Sprintf("%d", s.Nodes)})
	table.Append([]string{"Leaves", fmt.Sprintf("%d", s.Leaves)})
	table.Append([]string{"Max depth", fmt.Sprintf("%d", s.MaxDepth)})
	table.Append([]string{"Leaf size (min/avg/max)", fmt.Sprintf("%d / %.1f / %d", s.MinLeafSize, s.AvgLeafSize, s.MaxLeafSize)})
	table.Append([]string{"SAH cost", fmt.Sprintf("%.2f", s.Cost)})
	if s.BuildTime > 0 {
		table.SetFooter([]string{"Build time", s.BuildTime.String()})
	}

	table.Render()
	return buf.String()
}
