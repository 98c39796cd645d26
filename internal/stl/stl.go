// Package stl reads and writes binary STL and derives mesh measurements.
// The CAD kernel writes STL but does not read it back, so the export
// round-trip check needs this small codec.
package stl

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

var ErrNoFacets = errors.New("stl mesh has no facets")

type Vec struct {
	X, Y, Z float64
}

type Triangle struct {
	Normal     Vec
	V0, V1, V2 Vec
}

type Mesh struct {
	Header    string
	Triangles []Triangle
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min Vec
	Max Vec
}

const facetSize = 12*4 + 2 // 12 float32 + attribute byte count

// ReadFile decodes a binary STL file.
func ReadFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening stl: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes binary STL from r.
func Read(r io.Reader) (*Mesh, error) {
	header := make([]byte, 80)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("reading stl header: %w", err)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("reading stl facet count: %w", err)
	}
	if count == 0 {
		return nil, ErrNoFacets
	}

	// The header's facet count is untrusted input; cap the preallocation
	// so a malformed count cannot demand gigabytes before the first read.
	capHint := count
	if capHint > 1<<16 {
		capHint = 1 << 16
	}
	mesh := &Mesh{
		Header:    trimHeader(header),
		Triangles: make([]Triangle, 0, capHint),
	}

	buf := make([]byte, facetSize)
	for i := uint32(0); i < count; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("reading facet %d of %d: %w", i, count, err)
		}
		var tri Triangle
		tri.Normal = decodeVec(buf[0:])
		tri.V0 = decodeVec(buf[12:])
		tri.V1 = decodeVec(buf[24:])
		tri.V2 = decodeVec(buf[36:])
		mesh.Triangles = append(mesh.Triangles, tri)
	}

	return mesh, nil
}

// WriteFile encodes the mesh as binary STL.
func WriteFile(path string, mesh *Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating stl: %w", err)
	}
	if err := Write(f, mesh); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write encodes the mesh as binary STL to w.
func Write(w io.Writer, mesh *Mesh) error {
	if len(mesh.Triangles) == 0 {
		return ErrNoFacets
	}

	header := make([]byte, 80)
	copy(header, mesh.Header)
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing stl header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(mesh.Triangles))); err != nil {
		return fmt.Errorf("writing stl facet count: %w", err)
	}

	buf := make([]byte, facetSize)
	for i, tri := range mesh.Triangles {
		encodeVec(buf[0:], tri.Normal)
		encodeVec(buf[12:], tri.V0)
		encodeVec(buf[24:], tri.V1)
		encodeVec(buf[36:], tri.V2)
		buf[48] = 0
		buf[49] = 0
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("writing facet %d: %w", i, err)
		}
	}

	return nil
}

// Bounds returns the axis-aligned bounding box of all vertices.
func (m *Mesh) Bounds() Bounds {
	b := Bounds{
		Min: Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
	for _, tri := range m.Triangles {
		for _, v := range [3]Vec{tri.V0, tri.V1, tri.V2} {
			b.Min.X = math.Min(b.Min.X, v.X)
			b.Min.Y = math.Min(b.Min.Y, v.Y)
			b.Min.Z = math.Min(b.Min.Z, v.Z)
			b.Max.X = math.Max(b.Max.X, v.X)
			b.Max.Y = math.Max(b.Max.Y, v.Y)
			b.Max.Z = math.Max(b.Max.Z, v.Z)
		}
	}
	return b
}

// Volume computes the enclosed volume of a closed mesh via the divergence
// theorem (sum of signed tetrahedron volumes against the origin).
func (m *Mesh) Volume() float64 {
	var total float64
	for _, tri := range m.Triangles {
		total += signedTetraVolume(tri.V0, tri.V1, tri.V2)
	}
	return math.Abs(total)
}

func signedTetraVolume(a, b, c Vec) float64 {
	return (a.X*(b.Y*c.Z-b.Z*c.Y) -
		a.Y*(b.X*c.Z-b.Z*c.X) +
		a.Z*(b.X*c.Y-b.Y*c.X)) / 6.0
}

func decodeVec(buf []byte) Vec {
	return Vec{
		X: float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[0:]))),
		Y: float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[4:]))),
		Z: float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[8:]))),
	}
}

func encodeVec(buf []byte, v Vec) {
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(float32(v.X)))
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(float32(v.Y)))
	binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(float32(v.Z)))
}

func trimHeader(header []byte) string {
	end := len(header)
	for end > 0 && (header[end-1] == 0 || header[end-1] == ' ') {
		end--
	}
	return string(header[:end])
}
