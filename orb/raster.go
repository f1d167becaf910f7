package orb

import (
	"cmp"
	"slices"
)

type depthTriangle struct {
	I0, I1, I2 uint16
	Depth      float64
}

// AppendVisibleTriangles appends the camera facing triangles of the mesh to dst,
// farthest first, so they can be drawn without a depth buffer.
//
// verts must come from the last call to Shade.
func (s *Shader) AppendVisibleTriangles(dst []uint16, verts []ShadedVertex) []uint16 {
	indices := s.Mesh.Indices
	cam := s.Camera.Position

	s.tris = s.tris[:0]

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]

		a := verts[i0].Position
		b := verts[i1].Position
		c := verts[i2].Position

		normal := b.Sub(a).Cross(c.Sub(a))
		if normal.Len() < 1e-12 {
			continue
		}

		centroid := a.Add(b).Add(c).Mul(1.0 / 3.0)

		// the surface stays star shaped around the origin,
		// so the outward side is the one pointing away from it
		if normal.Dot(centroid) < 0 {
			normal = normal.Mul(-1)
		}

		if normal.Dot(centroid.Sub(cam)) >= 0 {
			continue
		}

		s.tris = append(s.tris, depthTriangle{
			I0: i0, I1: i1, I2: i2,
			Depth: centroid.Sub(cam).Len(),
		})
	}

	slices.SortFunc(s.tris, func(x, y depthTriangle) int {
		return cmp.Compare(y.Depth, x.Depth)
	})

	for _, t := range s.tris {
		dst = append(dst, t.I0, t.I1, t.I2)
	}

	return dst
}
