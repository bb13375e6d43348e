package scene

import (
	"math/rand"

	"lumen/aabox"
	"lumen/contact"
	"lumen/geometry"
	"lumen/kdtree"
	"lumen/light"
	"lumen/ray"
	"lumen/rgb"
)

// DefaultMaxDepth bounds recursion when a scene doesn't say otherwise.
const DefaultMaxDepth = 3

// Scene is the root of everything a render reads.  Build it with
// AddGeometry and AddLight, optionally Crush it, and then treat it as
// read-only: many goroutines trace against it at once.
type Scene struct {
	// Image settings.
	Width, Height int

	// Horizontal field of view, in degrees.
	FOV float64

	// Camera rays per pixel.
	Samples int

	// Trace gives up at this depth.  It is the only thing that bounds the
	// length of bounce chains.
	MaxDepth int

	BackgroundColor rgb.T

	geometries []geometry.Geometry
	lights     []light.Light

	// Built by Crush.
	accel     *kdtree.KDTree
	unbounded []int

	// onTrace observes every call to Trace.
	onTrace func(depth int)
}

func New(width, height int, fov float64, samples int, background rgb.T) *Scene {
	return &Scene{
		Width:           width,
		Height:          height,
		FOV:             fov,
		Samples:         samples,
		MaxDepth:        DefaultMaxDepth,
		BackgroundColor: background,
	}
}

// AddGeometry is a convenience function to register a geometry and get its
// index.
func (s *Scene) AddGeometry(g geometry.Geometry) int {
	s.geometries = append(s.geometries, g)
	s.accel = nil
	s.unbounded = nil
	return len(s.geometries) - 1
}

// AddLight is a convenience function to register a light and get its index.
func (s *Scene) AddLight(l light.Light) int {
	s.lights = append(s.lights, l)
	return len(s.lights) - 1
}

func (s *Scene) Geometries() []geometry.Geometry {
	return s.geometries
}

func (s *Scene) Lights() []light.Light {
	return s.lights
}

func (s *Scene) Background() rgb.T {
	return s.BackgroundColor
}

// Crush builds the query accelerator.  Trace gives the same answers with or
// without it.  Crush must not run concurrently with a render.
func (s *Scene) Crush() {
	if s.accel != nil {
		return
	}

	kdElements := []kdtree.KDElement{}
	unbounded := []int{}
	for i := range s.geometries {
		bounds, ok := s.geometries[i].Bounds()
		if !ok {
			unbounded = append(unbounded, i)
			continue
		}
		kdElements = append(kdElements, kdtree.KDElement{Ref: i, Bounds: bounds})
	}

	accel := kdtree.NewKDTree(kdElements)
	accel.RefineViaSurfaceAreaHeuristic(0.0, 0.9)

	s.accel = accel
	s.unbounded = unbounded
}

// Trace finds the nearest geometry along r.  It reports no hit once depth
// reaches MaxDepth.  Shading the result is up to the caller.
func (s *Scene) Trace(r ray.Ray, depth int) (contact.Contact, bool) {
	if s.onTrace != nil {
		s.onTrace(depth)
	}

	if depth >= s.MaxDepth {
		return contact.Contact{}, false
	}

	minT := 0.0
	minIndex := -1
	consider := func(i int) {
		t, ok := s.geometries[i].Intersect(r)
		if ok && (minIndex == -1 || t < minT) {
			minT = t
			minIndex = i
		}
	}

	if s.accel == nil {
		for i := range s.geometries {
			consider(i)
		}
	} else {
		for _, i := range s.unbounded {
			consider(i)
		}

		selector := func(b aabox.AABox) bool {
			span := aabox.RayTestAABox(r, b)
			if span.IsNaN() || span.Hi < 0 {
				return false
			}
			return minIndex == -1 || span.Lo <= minT
		}
		s.accel.Query(selector, consider)
	}

	if minIndex == -1 {
		return contact.Contact{}, false
	}

	c := contact.New(minT, r, minIndex)
	c.N = s.geometries[minIndex].SurfaceNormal(c.P)
	return c, true
}

// Shade evaluates the material of the geometry c hit.
func (s *Scene) Shade(c contact.Contact, depth int, rng *rand.Rand) rgb.T {
	return s.geometries[c.Element].Material.Shade(s, c, depth, rng)
}

// Radiance is the color seen along r: the shaded nearest hit, or the
// background if r escapes.
func (s *Scene) Radiance(r ray.Ray, depth int, rng *rand.Rand) rgb.T {
	c, ok := s.Trace(r, depth)
	if !ok {
		return s.BackgroundColor
	}
	return s.Shade(c, depth, rng)
}
