package datalink

import (
	"errors"
	"testing"

	"aeroforge/internal/catalog"
)

func blueNetwork(t *testing.T) *Network {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	return Build(cat, catalog.SideBlue)
}

func TestBuild(t *testing.T) {
	n := blueNetwork(t)

	// Six blue assets plus two blue bases.
	if len(n.Nodes) != 8 {
		t.Fatalf("expected 8 blue nodes, got %d", len(n.Nodes))
	}

	base, err := n.Node("port-halvard")
	if err != nil {
		t.Fatalf("expected base node, got %v", err)
	}
	if base.Kind != "base" || base.MaxRangeKm != relayRangeKm["base"] {
		t.Fatalf("unexpected base node: %+v", base)
	}
}

func TestCanLink(t *testing.T) {
	near := catalog.GeoPoint{Lat: 24.0, Lon: 143.0}
	far := catalog.GeoPoint{Lat: 40.0, Lon: 170.0}

	a := &Node{ID: "a", Location: near, Bands: []string{"uhf"}, MaxRangeKm: 300}

	t.Run("in range with shared band", func(t *testing.T) {
		b := &Node{ID: "b", Location: catalog.GeoPoint{Lat: 24.5, Lon: 143.2}, Bands: []string{"uhf"}, MaxRangeKm: 300}
		if !canLink(a, b) {
			t.Fatalf("expected link")
		}
	})

	t.Run("no shared band", func(t *testing.T) {
		b := &Node{ID: "b", Location: near, Bands: []string{"ku-band"}, MaxRangeKm: 300}
		if canLink(a, b) {
			t.Fatalf("expected no link without a shared band")
		}
	})

	t.Run("out of range", func(t *testing.T) {
		b := &Node{ID: "b", Location: far, Bands: []string{"uhf"}, MaxRangeKm: 300}
		if canLink(a, b) {
			t.Fatalf("expected no link out of range")
		}
	})

	t.Run("limited by the shorter ranged platform", func(t *testing.T) {
		b := &Node{ID: "b", Location: catalog.GeoPoint{Lat: 25.5, Lon: 143.0}, Bands: []string{"uhf"}, MaxRangeKm: 10}
		if canLink(a, b) {
			t.Fatalf("expected the 10 km platform to bound the link")
		}
	})
}

func TestReach(t *testing.T) {
	n := blueNetwork(t)

	reached, err := n.Reach("mp-9-albatross")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	// The seed lays the blue force out as one connected mesh.
	if len(reached) != len(n.Nodes) {
		t.Fatalf("expected the flood to reach all %d nodes, got %d: %v",
			len(n.Nodes), len(reached), reached)
	}

	if _, err := n.Reach("no-such-node"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReachDeterministic(t *testing.T) {
	n := blueNetwork(t)
	first, err := n.Reach("ddg-meridian")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := n.Reach("ddg-meridian")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("reach must be deterministic")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("reach order differs at %d: %s vs %s", i, first[i], second[i])
		}
	}
}

func TestSummarize(t *testing.T) {
	n := blueNetwork(t)
	s := n.Summarize(catalog.SideBlue)

	if s.NodeCount != 8 {
		t.Fatalf("expected 8 nodes, got %d", s.NodeCount)
	}
	if s.LinkCount == 0 {
		t.Fatalf("expected links in the blue mesh")
	}
	if len(s.IsolatedNodes) != 0 {
		t.Fatalf("expected no isolated blue nodes, got %v", s.IsolatedNodes)
	}
	if s.MeshRatio <= 0 || s.MeshRatio > 1 {
		t.Fatalf("mesh ratio out of range: %g", s.MeshRatio)
	}
}
