package material

import (
	"fmt"
	"math"
	"math/rand"

	"lumen/contact"
	"lumen/light"
	"lumen/ray"
	"lumen/rgb"
	"lumen/vmath/vec3"
)

// Bias is how far secondary rays start from the surface that spawned them.
const Bias = 1e-5

// Scene is what a material needs from the scene it is shading.
type Scene interface {
	light.Occluder

	// Shade evaluates the material of the geometry c hit.
	Shade(c contact.Contact, depth int, rng *rand.Rand) rgb.T

	Lights() []light.Light
	Background() rgb.T
}

type Kind int

const (
	KindDiffuse Kind = iota
	KindReflective
)

func (k Kind) String() string {
	switch k {
	case KindDiffuse:
		return "diffuse"
	case KindReflective:
		return "reflective"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Diffuse is a rough surface.  Albedo blends between the surface's own color
// (1) and whatever the indirect bounce sees (0).
type Diffuse struct {
	Color  rgb.T
	Albedo float64
}

// Reflective is a mirror.  What a mirror shows is what it reflects, so Color
// describes the surface but does not tint the result.
type Reflective struct {
	Color  rgb.T
	Albedo float64
}

// Material is one of the material variants, selected by Kind.
type Material struct {
	Kind       Kind
	Diffuse    Diffuse
	Reflective Reflective
}

func NewDiffuse(color rgb.T, albedo float64) Material {
	return Material{
		Kind:    KindDiffuse,
		Diffuse: Diffuse{Color: color, Albedo: albedo},
	}
}

func NewReflective(color rgb.T, albedo float64) Material {
	return Material{
		Kind:       KindReflective,
		Reflective: Reflective{Color: color, Albedo: albedo},
	}
}

// Shade returns the light leaving c back along the incoming ray.  It may trace
// one secondary ray at depth+1.
func (m Material) Shade(s Scene, c contact.Contact, depth int, rng *rand.Rand) rgb.T {
	switch m.Kind {
	case KindDiffuse:
		return m.Diffuse.shade(s, c, depth, rng)
	case KindReflective:
		return m.Reflective.shade(s, c, depth, rng)
	}
	panic(fmt.Sprintf("unknown material kind %v", m.Kind))
}

func (d *Diffuse) shade(s Scene, c contact.Contact, depth int, rng *rand.Rand) rgb.T {
	// Aim at a random point in the unit ball sitting on the surface.
	dir, ok := vec3.NormalizeChecked(vec3.AddVV(c.N, vec3.UnitBall(rng)))
	if !ok {
		dir = c.N
	}
	bounce := ray.Ray{Point: vec3.AddScaled(c.P, Bias, dir), Slope: dir}
	bounceColor := radiance(s, bounce, depth+1, rng)

	surface := rgb.Lerp(d.Color, bounceColor, d.Albedo)
	return directLight(s, c, depth, surface, d.Albedo)
}

func (r *Reflective) shade(s Scene, c contact.Contact, depth int, rng *rand.Rand) rgb.T {
	dir, ok := vec3.NormalizeChecked(vec3.Reflect(c.R.Slope, c.N))
	if !ok {
		return rgb.Black
	}
	mirrored := ray.Ray{Point: vec3.AddScaled(c.P, Bias, c.N), Slope: dir}
	reflected := radiance(s, mirrored, depth+1, rng)

	return directLight(s, c, depth, reflected, r.Albedo)
}

// radiance is the color seen along r: the shaded hit, or the background.
func radiance(s Scene, r ray.Ray, depth int, rng *rand.Rand) rgb.T {
	hit, ok := s.Trace(r, depth)
	if !ok {
		return s.Background()
	}
	return s.Shade(hit, depth, rng)
}

func directLight(s Scene, c contact.Contact, depth int, surface rgb.T, albedo float64) rgb.T {
	reflectance := albedo / math.Pi

	accum := rgb.Black
	for _, l := range s.Lights() {
		contribution := l.Contribution(s, c, depth)
		accum = rgb.AddCC(accum, rgb.MulCS(rgb.MulCC(surface, contribution), reflectance))
	}
	return accum
}
