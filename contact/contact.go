package contact

import (
	"lumen/ray"
	"lumen/vmath/vec3"
)

// Contact describes where a ray met the scene.  It is only meaningful while
// shading the trace that produced it: Element indexes the scene's geometry
// list and is not retained past that call.
type Contact struct {
	// Distance along R to the hit.
	T float64

	// The incoming ray.
	R ray.Ray

	// The hit point, R.Eval(T).
	P vec3.T

	// Unit surface normal at P.
	N vec3.T

	// Index of the hit geometry in the scene.
	Element int
}

// New fills in the hit point of a contact at distance t along r.  The caller
// supplies N from the hit geometry.
func New(t float64, r ray.Ray, element int) Contact {
	return Contact{
		T:       t,
		R:       r,
		P:       r.Eval(t),
		Element: element,
	}
}
