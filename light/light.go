// Package light implements the direct-lighting term: how much light from a
// single source reaches a shaded point, after the shadow test.
package light

import (
	"fmt"
	"math"

	"lumen/contact"
	"lumen/ray"
	"lumen/rgb"
	"lumen/vmath/vec3"
)

// Bias is how far shadow rays start above the surface they leave.
const Bias = 1e-5

// Occluder answers shadow queries.  The scene implements it.
type Occluder interface {
	Trace(r ray.Ray, depth int) (contact.Contact, bool)
}

type Kind int

const (
	KindGlobal Kind = iota
	KindSpherical
)

func (k Kind) String() string {
	switch k {
	case KindGlobal:
		return "global"
	case KindSpherical:
		return "spherical"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Global is a light at infinity, like the sun.  Direction is the direction
// the light travels.
type Global struct {
	Direction vec3.T
	Color     rgb.T
	Intensity float64
}

// Spherical is a point light.
type Spherical struct {
	Position  vec3.T
	Color     rgb.T
	Intensity float64
}

// Light is one of the light variants, selected by Kind.
type Light struct {
	Kind      Kind
	Global    Global
	Spherical Spherical
}

func NewGlobal(direction vec3.T, color rgb.T, intensity float64) Light {
	return Light{
		Kind: KindGlobal,
		Global: Global{
			Direction: vec3.Normalize(direction),
			Color:     color,
			Intensity: intensity,
		},
	}
}

func NewSpherical(position vec3.T, color rgb.T, intensity float64) Light {
	return Light{
		Kind: KindSpherical,
		Spherical: Spherical{
			Position:  position,
			Color:     color,
			Intensity: intensity,
		},
	}
}

// Contribution is the light arriving at c from l, or black if something in o
// blocks it.  Shadow rays are traced one level deeper than depth.
func (l Light) Contribution(o Occluder, c contact.Contact, depth int) rgb.T {
	switch l.Kind {
	case KindGlobal:
		return l.Global.contribution(o, c, depth)
	case KindSpherical:
		return l.Spherical.contribution(o, c, depth)
	}
	panic(fmt.Sprintf("unknown light kind %v", l.Kind))
}

func (g *Global) contribution(o Occluder, c contact.Contact, depth int) rgb.T {
	toLight := vec3.Neg(g.Direction)

	// The light is infinitely far away, so anything at all along the shadow
	// ray blocks it.
	shadow := ray.Ray{Point: vec3.AddScaled(c.P, Bias, c.N), Slope: toLight}
	if _, hit := o.Trace(shadow, depth+1); hit {
		return rgb.Black
	}

	power := math.Max(0, vec3.IProd(c.N, toLight)) * g.Intensity
	return rgb.MulCS(g.Color, power)
}

func (s *Spherical) contribution(o Occluder, c contact.Contact, depth int) rgb.T {
	toLight := vec3.SubVV(s.Position, c.P)
	norm := toLight.Norm()
	dir, ok := vec3.NormalizeChecked(toLight)
	if !ok {
		return rgb.Black
	}

	shadow := ray.Ray{Point: vec3.AddScaled(c.P, Bias, c.N), Slope: dir}
	if blocker, hit := o.Trace(shadow, depth+1); hit && blocker.T <= norm {
		return rgb.Black
	}

	// Inverse-linear, not inverse-square, falloff.
	falloff := s.Intensity / (4 * math.Pi * norm)
	power := math.Max(0, vec3.IProd(c.N, dir)) * falloff
	return rgb.MulCS(s.Color, power)
}
