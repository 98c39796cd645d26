package stl

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// unitTetrahedron is a closed mesh with volume exactly 1/6, wound outward.
func unitTetrahedron() *Mesh {
	o := Vec{0, 0, 0}
	x := Vec{1, 0, 0}
	y := Vec{0, 1, 0}
	z := Vec{0, 0, 1}
	return &Mesh{
		Header: "unit tetrahedron",
		Triangles: []Triangle{
			{V0: o, V1: y, V2: x},
			{V0: o, V1: x, V2: z},
			{V0: o, V1: z, V2: y},
			{V0: x, V1: y, V2: z},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	mesh := unitTetrahedron()

	var buf bytes.Buffer
	if err := Write(&buf, mesh); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	decoded, err := Read(&buf)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if diff := cmp.Diff(mesh, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripFile(t *testing.T) {
	mesh := unitTetrahedron()
	path := filepath.Join(t.TempDir(), "tetra.stl")

	if err := WriteFile(path, mesh); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	decoded, err := ReadFile(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(decoded.Triangles) != 4 {
		t.Fatalf("expected 4 facets, got %d", len(decoded.Triangles))
	}
}

func TestVolume(t *testing.T) {
	v := unitTetrahedron().Volume()
	if math.Abs(v-1.0/6.0) > 1e-9 {
		t.Fatalf("expected volume 1/6, got %g", v)
	}
}

func TestBounds(t *testing.T) {
	b := unitTetrahedron().Bounds()
	want := Bounds{Min: Vec{0, 0, 0}, Max: Vec{1, 1, 1}}
	if diff := cmp.Diff(want, b); diff != "" {
		t.Fatalf("bounds mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyMesh(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, &Mesh{}); !errors.Is(err, ErrNoFacets) {
		t.Fatalf("expected ErrNoFacets, got %v", err)
	}
}

// A malformed header can claim billions of facets; decoding must fail on
// the missing data instead of preallocating for the claimed count.
func TestOverstatedFacetCount(t *testing.T) {
	raw := make([]byte, 84)
	copy(raw, "bogus header")
	binary.LittleEndian.PutUint32(raw[80:], math.MaxUint32)

	if _, err := Read(bytes.NewReader(raw)); err == nil {
		t.Fatalf("expected error for overstated facet count")
	}
}

func TestTruncatedInput(t *testing.T) {
	mesh := unitTetrahedron()
	var buf bytes.Buffer
	if err := Write(&buf, mesh); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	truncated := buf.Bytes()[:buf.Len()-10]
	if _, err := Read(bytes.NewReader(truncated)); err == nil {
		t.Fatalf("expected error for truncated stl")
	}
}
