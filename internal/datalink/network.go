// Package datalink builds a relay connectivity graph over catalog assets
// and bases and answers reachability queries for track distribution.
package datalink

import (
	"fmt"
	"sort"

	"aeroforge/internal/catalog"
)

// Node is a relay-capable platform.
type Node struct {
	ID         string           `json:"id" yaml:"id"`
	Name       string           `json:"name" yaml:"name"`
	Kind       string           `json:"kind" yaml:"kind"`
	Location   catalog.GeoPoint `json:"location" yaml:"location"`
	Bands      []string         `json:"bands" yaml:"bands"`
	MaxRangeKm float64          `json:"max_range_km" yaml:"max_range_km"`
}

// Horizon-limited relay ranges per platform kind.
var relayRangeKm = map[string]float64{
	catalog.KindSurface:   300,
	catalog.KindSubmarine: 300,
	catalog.KindAircraft:  700,
	"base":                500,
}

// baseBands is the band set a fixed site is assumed to carry.
var baseBands = []string{"ku-band", "s-band", "uhf"}

type Network struct {
	Nodes []*Node
	edges map[string][]string
}

// Build assembles the relay network for one side from the catalog.
func Build(cat *catalog.Catalog, side string) *Network {
	n := &Network{edges: make(map[string][]string)}

	for _, a := range cat.ListAssets(side, "") {
		n.Nodes = append(n.Nodes, &Node{
			ID:         a.ID,
			Name:       a.Name,
			Kind:       a.Kind,
			Location:   a.Location,
			Bands:      a.DataLinks,
			MaxRangeKm: relayRangeKm[a.Kind],
		})
	}
	for _, b := range cat.Bases {
		if b.Side != side {
			continue
		}
		n.Nodes = append(n.Nodes, &Node{
			ID:         b.ID,
			Name:       b.Name,
			Kind:       "base",
			Location:   b.Location,
			Bands:      baseBands,
			MaxRangeKm: relayRangeKm["base"],
		})
	}

	for i, a := range n.Nodes {
		for _, b := range n.Nodes[i+1:] {
			if canLink(a, b) {
				n.edges[a.ID] = append(n.edges[a.ID], b.ID)
				n.edges[b.ID] = append(n.edges[b.ID], a.ID)
			}
		}
	}

	return n
}

// canLink requires a shared band and both platforms within relay range.
func canLink(a, b *Node) bool {
	if !sharesBand(a.Bands, b.Bands) {
		return false
	}
	limit := a.MaxRangeKm
	if b.MaxRangeKm < limit {
		limit = b.MaxRangeKm
	}
	return catalog.DistanceKm(a.Location, b.Location) <= limit
}

func sharesBand(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// Node returns the node with the given id.
func (n *Network) Node(id string) (*Node, error) {
	for _, node := range n.Nodes {
		if node.ID == id {
			return node, nil
		}
	}
	return nil, fmt.Errorf("relay node %q: %w", id, catalog.ErrNotFound)
}

// Neighbors returns the directly linked node ids, sorted.
func (n *Network) Neighbors(id string) []string {
	out := append([]string{}, n.edges[id]...)
	sort.Strings(out)
	return out
}

// Reach floods a track message from the source and returns every node id
// it reaches (source included), sorted for stable output.
func (n *Network) Reach(sourceID string) ([]string, error) {
	if _, err := n.Node(sourceID); err != nil {
		return nil, err
	}

	seen := map[string]bool{sourceID: true}
	queue := []string{sourceID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range n.edges[current] {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}

	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

// Summary is the per-network connectivity roll-up used by posture reports.
type Summary struct {
	Side          string   `json:"side" yaml:"side"`
	NodeCount     int      `json:"node_count" yaml:"node_count"`
	LinkCount     int      `json:"link_count" yaml:"link_count"`
	IsolatedNodes []string `json:"isolated_nodes,omitempty" yaml:"isolated_nodes,omitempty"`
	MeshRatio     float64  `json:"mesh_ratio" yaml:"mesh_ratio"`
}

// Summarize rolls the network up into counts and isolation flags.
func (n *Network) Summarize(side string) Summary {
	s := Summary{Side: side, NodeCount: len(n.Nodes)}

	links := 0
	for _, neighbors := range n.edges {
		links += len(neighbors)
	}
	s.LinkCount = links / 2

	for _, node := range n.Nodes {
		if len(n.edges[node.ID]) == 0 {
			s.IsolatedNodes = append(s.IsolatedNodes, node.ID)
		}
	}
	sort.Strings(s.IsolatedNodes)

	if s.NodeCount > 1 {
		maxLinks := s.NodeCount * (s.NodeCount - 1) / 2
		s.MeshRatio = float64(s.LinkCount) / float64(maxLinks)
	}
	return s
}
