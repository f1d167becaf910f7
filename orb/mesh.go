package orb

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is an immutable unit sphere.
type Mesh struct {
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3
	Indices   []uint16

	WidthSegments  int
	HeightSegments int
}

// NewSphereMesh builds a uv sphere with the same vertex layout as three.js
// SphereGeometry: rows go from the north pole (y = 1) to the south pole,
// each row wraps around with a duplicated seam vertex.
func NewSphereMesh(widthSegments, heightSegments int) (*Mesh, error) {
	if widthSegments < 3 || heightSegments < 2 {
		return nil, fmt.Errorf(
			"sphere needs at least 3x2 segments, got %dx%d", widthSegments, heightSegments)
	}

	vertCount := (widthSegments + 1) * (heightSegments + 1)
	if vertCount > math.MaxUint16+1 {
		return nil, fmt.Errorf(
			"%dx%d segments makes %d vertices, more than 16 bit indices can address",
			widthSegments, heightSegments, vertCount)
	}

	m := &Mesh{
		Positions:      make([]mgl64.Vec3, 0, vertCount),
		Normals:        make([]mgl64.Vec3, 0, vertCount),
		Indices:        make([]uint16, 0, widthSegments*heightSegments*6),
		WidthSegments:  widthSegments,
		HeightSegments: heightSegments,
	}

	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)

		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)

			p := mgl64.Vec3{
				-math.Cos(u*math.Pi*2) * math.Sin(v*math.Pi),
				math.Cos(v * math.Pi),
				math.Sin(u*math.Pi*2) * math.Sin(v*math.Pi),
			}

			m.Positions = append(m.Positions, p)
			m.Normals = append(m.Normals, p)
		}
	}

	row := widthSegments + 1
	at := func(ix, iy int) uint16 {
		return uint16(iy*row + ix)
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := at(ix+1, iy)
			b := at(ix, iy)
			c := at(ix, iy+1)
			d := at(ix+1, iy+1)

			// pole rows only need one triangle per quad
			if iy != 0 {
				m.Indices = append(m.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				m.Indices = append(m.Indices, b, c, d)
			}
		}
	}

	return m, nil
}

func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}
