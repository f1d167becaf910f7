package orb

import (
	"math"
	"runtime"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"
)

type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3

	FovY      float64 // degrees
	Near, Far float64
}

func DefaultCamera() Camera {
	return Camera{
		Position: mgl64.Vec3{0, 0, 3},
		Target:   mgl64.Vec3{0, 0, 0},
		Up:       mgl64.Vec3{0, 1, 0},
		FovY:     50,
		Near:     0.1,
		Far:      100,
	}
}

// ViewProjection returns the combined matrix for a viewport of the given size.
func (c Camera) ViewProjection(width, height float64) mgl64.Mat4 {
	aspect := 1.0
	if width > 0 && height > 0 {
		aspect = width / height
	}

	proj := mgl64.Perspective(mgl64.DegToRad(c.FovY), aspect, c.Near, c.Far)
	view := mgl64.LookAtV(c.Position, c.Target, c.Up)

	return proj.Mul4(view)
}

// SphereScreenRadius is the on screen radius, in pixels, of a sphere of the
// given radius centered on the camera target, for a viewport height pixels tall.
func (c Camera) SphereScreenRadius(radius, height float64) float64 {
	dist := c.Position.Sub(c.Target).Len()
	if dist <= radius || height <= 0 {
		return height * 0.5
	}

	angular := math.Asin(radius / dist)
	halfFov := mgl64.DegToRad(c.FovY) * 0.5

	return math.Tan(angular) / math.Tan(halfFov) * height * 0.5
}

// ShadedVertex is the output of the surface shader for one mesh vertex.
type ShadedVertex struct {
	Position mgl64.Vec3 // displaced, world space
	Normal   mgl64.Vec3
	Color    RGB // clamped to [0, 1]

	ScreenX, ScreenY float64
	Depth            float64 // distance to the camera
}

const (
	pushAlignmentLow  = -0.3
	pushAlignmentHigh = 0.8
	pushGain          = 0.15

	rippleWidth     = 0.4
	rippleBump      = 0.08
	rippleOvershoot = 2.5
	rippleFalloff   = 0.7

	normalBend = 0.5

	fresnelAmount = 0.25
)

func safeNormalize(v mgl64.Vec3, fallback mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < 1e-12 || !isFinite(l) {
		return fallback
	}
	return v.Mul(1 / l)
}

func vecFinite(v mgl64.Vec3) bool {
	return isFinite(v[0]) && isFinite(v[1]) && isFinite(v[2])
}

func noiseAt(p mgl64.Vec3, scale, t float64) float64 {
	return Perlin4D(p[0]*scale, p[1]*scale, p[2]*scale, t)
}

// DisplacedPosition moves a point of the unit sphere according to u.
func DisplacedPosition(p mgl64.Vec3, u *UniformSet) mgl64.Vec3 {
	dir := safeNormalize(p, mgl64.Vec3{0, 1, 0})

	// distortion warps the space the displacement noise is sampled in
	distortion := noiseAt(p, u.DistortionFrequency, u.Time) * u.DistortionStrength
	distorted := p.Add(mgl64.Vec3{distortion, distortion, distortion})

	strength := noiseAt(distorted, u.DisplacementFrequency, u.Time)
	displaced := p.Add(dir.Mul(strength * u.DisplacementStrength))

	// vertices facing the pointer's direction of travel recede
	velocityLen := u.MouseVelocity.Len()
	if velocityLen > 0.01 {
		pushDir := safeNormalize(
			mgl64.Vec3{u.MouseVelocity[0], -u.MouseVelocity[1], 0}, mgl64.Vec3{})
		alignment := dir.Dot(pushDir)
		weight := Smoothstep(pushAlignmentLow, pushAlignmentHigh, alignment)
		displaced = displaced.Sub(dir.Mul(weight * velocityLen * pushGain))
	}

	// click ripple sweeps from the bottom to past the top
	if u.Ripple > 0 {
		front := -1 + u.Ripple*rippleOvershoot
		dist := math.Abs(p[1] - front)
		intensity := Smoothstep(rippleWidth, 0, dist) * (1 - u.Ripple*rippleFalloff)
		displaced = displaced.Add(dir.Mul(intensity * rippleBump))
	}

	if !vecFinite(displaced) {
		return p
	}
	return displaced
}

// SurfaceColor computes the vertex color. p is the undisplaced position,
// normal the approximated normal of the displaced surface.
func SurfaceColor(p, displaced, normal mgl64.Vec3, u *UniformSet, cameraPos mgl64.Vec3) RGB {
	lightA := math.Max(0, normal.Dot(safeNormalize(u.LightAPosition, mgl64.Vec3{}))) * u.LightAIntensity
	lightB := math.Max(0, normal.Dot(safeNormalize(u.LightBPosition, mgl64.Vec3{}))) * u.LightBIntensity

	// two independent noises so the gradient axes don't move together
	noiseV := noiseAt(p, 1.8, u.Time*1.2)
	noiseH := noiseAt(p, 2.3, u.Time*0.8)

	gradient := Clamp((p[1]+1)*0.5+noiseV*0.4, 0, 1)
	horizontal := Clamp((p[0]+1)*0.5+noiseH*0.35, 0, 1)

	c := u.LightAColor.Lerp(u.LightBColor, gradient)
	c = c.Lerp(u.LightBColor.Lerp(u.LightAColor, 0.5), horizontal*0.3)

	shading := 0.7 + lightA*0.15 + lightB*0.15
	c = c.Scale(shading)

	viewDir := safeNormalize(displaced.Sub(cameraPos), mgl64.Vec3{0, 0, -1})
	fresnel := math.Pow(1-math.Abs(viewDir.Dot(normal)), 2)
	c = c.Lerp(RGB{1, 1, 1}, fresnel*fresnelAmount)

	return c.Clamp01()
}

// Shader runs the surface program over every vertex of a mesh.
type Shader struct {
	Mesh   *Mesh
	Camera Camera

	// number of goroutines used by Shade, 0 means GOMAXPROCS
	Workers int

	out  []ShadedVertex
	tris []depthTriangle
}

func NewShader(mesh *Mesh, camera Camera) *Shader {
	return &Shader{
		Mesh:   mesh,
		Camera: camera,
		out:    make([]ShadedVertex, mesh.VertexCount()),
	}
}

func (s *Shader) shadeVertex(i int, u *UniformSet, viewProj mgl64.Mat4, width, height float64) ShadedVertex {
	p := s.Mesh.Positions[i]
	n := s.Mesh.Normals[i]

	displaced := DisplacedPosition(p, u)
	normal := safeNormalize(n.Add(displaced.Sub(p).Mul(normalBend)), n)

	clip := viewProj.Mul4x1(displaced.Vec4(1))
	w := clip[3]
	if math.Abs(w) < 1e-9 {
		w = 1e-9
	}
	ndcX, ndcY := clip[0]/w, clip[1]/w

	return ShadedVertex{
		Position: displaced,
		Normal:   normal,
		Color:    SurfaceColor(p, displaced, normal, u, s.Camera.Position),
		ScreenX:  finiteOr((ndcX*0.5+0.5)*width, 0),
		ScreenY:  finiteOr((0.5-ndcY*0.5)*height, 0),
		Depth:    displaced.Sub(s.Camera.Position).Len(),
	}
}

// Shade computes every vertex for a viewport of width x height pixels.
// u is only read. The returned slice is reused by the next call.
func (s *Shader) Shade(u *UniformSet, width, height float64) []ShadedVertex {
	n := s.Mesh.VertexCount()
	if len(s.out) != n {
		s.out = make([]ShadedVertex, n)
	}

	viewProj := s.Camera.ViewProjection(width, height)

	workers := s.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = Clamp(workers, 1, n)
	chunk := (n + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)

	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				s.out[i] = s.shadeVertex(i, u, viewProj, width, height)
			}
			return nil
		})
	}

	// chunks never return an error
	_ = g.Wait()

	return s.out
}
