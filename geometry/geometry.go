package geometry

import (
	"fmt"
	"math"

	"lumen/aabox"
	"lumen/material"
	"lumen/ray"
	"lumen/vmath/vec3"
)

// ParallelEpsilon is the smallest |normal . direction| for which a ray is
// considered to cross a plane.
const ParallelEpsilon = 1e-6

type Kind int

const (
	KindSphere Kind = iota
	KindPlane
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindPlane:
		return "plane"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

type Sphere struct {
	Center vec3.T
	Radius float64
}

// Plane is one-sided: it can only be hit from the side Normal points to.
type Plane struct {
	Vertex vec3.T
	Normal vec3.T
}

// Geometry is one of the shape variants, selected by Kind, together with the
// material that shades it.
type Geometry struct {
	Kind     Kind
	Sphere   Sphere
	Plane    Plane
	Material material.Material
}

func NewSphere(center vec3.T, radius float64, m material.Material) Geometry {
	return Geometry{
		Kind:     KindSphere,
		Sphere:   Sphere{Center: center, Radius: radius},
		Material: m,
	}
}

// NewPlane normalizes normal.
func NewPlane(vertex, normal vec3.T, m material.Material) Geometry {
	return Geometry{
		Kind:     KindPlane,
		Plane:    Plane{Vertex: vertex, Normal: vec3.Normalize(normal)},
		Material: m,
	}
}

// Intersect returns the distance along r to the closest hit in front of the
// ray's origin.
func (g *Geometry) Intersect(r ray.Ray) (float64, bool) {
	switch g.Kind {
	case KindSphere:
		return g.Sphere.Intersect(r)
	case KindPlane:
		return g.Plane.Intersect(r)
	}
	panic(fmt.Sprintf("unknown geometry kind %v", g.Kind))
}

// SurfaceNormal returns the unit normal at p, which must lie on the surface.
func (g *Geometry) SurfaceNormal(p vec3.T) vec3.T {
	switch g.Kind {
	case KindSphere:
		return g.Sphere.SurfaceNormal(p)
	case KindPlane:
		return g.Plane.Normal
	}
	panic(fmt.Sprintf("unknown geometry kind %v", g.Kind))
}

// Bounds returns a box containing the shape.  Unbounded shapes report false.
func (g *Geometry) Bounds() (aabox.AABox, bool) {
	switch g.Kind {
	case KindSphere:
		return g.Sphere.Bounds(), true
	case KindPlane:
		return aabox.AABox{}, false
	}
	panic(fmt.Sprintf("unknown geometry kind %v", g.Kind))
}

func (s *Sphere) Intersect(r ray.Ray) (float64, bool) {
	// The leg of the right triangle running along the ray.
	toCenter := vec3.SubVV(s.Center, r.Point)
	adjacent := vec3.IProd(toCenter, r.Slope)

	// Squared distance from the center to the ray's line.
	missSquared := toCenter.NormSquared() - adjacent*adjacent
	radiusSquared := s.Radius * s.Radius
	if missSquared > radiusSquared {
		return 0, false
	}

	halfChord := math.Sqrt(radiusSquared - missSquared)
	tNear := adjacent - halfChord
	tFar := adjacent + halfChord

	switch {
	case tFar < 0:
		// Entirely behind the origin.
		return 0, false
	case tNear < 0:
		// The origin is inside the sphere.
		return tFar, true
	}
	return tNear, true
}

func (s *Sphere) SurfaceNormal(p vec3.T) vec3.T {
	n, ok := vec3.NormalizeChecked(vec3.SubVV(p, s.Center))
	if !ok {
		return vec3.T{0, 0, 1}
	}
	return n
}

func (s *Sphere) Bounds() aabox.AABox {
	return aabox.AABox{
		X: ray.Span{Lo: s.Center[0] - s.Radius, Hi: s.Center[0] + s.Radius},
		Y: ray.Span{Lo: s.Center[1] - s.Radius, Hi: s.Center[1] + s.Radius},
		Z: ray.Span{Lo: s.Center[2] - s.Radius, Hi: s.Center[2] + s.Radius},
	}
}

func (p *Plane) Intersect(r ray.Ray) (float64, bool) {
	denom := vec3.IProd(p.Normal, r.Slope)

	// Parallel, or approaching from behind.
	if denom > -ParallelEpsilon {
		return 0, false
	}

	t := vec3.IProd(vec3.SubVV(p.Vertex, r.Point), p.Normal) / denom
	if t <= 0 {
		return 0, false
	}
	return t, true
}
