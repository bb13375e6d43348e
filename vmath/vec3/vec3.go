package vec3

import (
	"math"
	"math/rand"
)

// Epsilon is the length below which a vector is treated as having no
// direction.
const Epsilon = 1e-9

type T [3]float64

func (v T) Norm() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

func (v T) NormSquared() float64 {
	return v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
}

// Normalize scales v to unit length.  v must not be (near-)zero; callers that
// can't guarantee that should use NormalizeChecked.
func Normalize(v T) T {
	l := v.Norm()
	return T{
		v[0] / l,
		v[1] / l,
		v[2] / l,
	}
}

// NormalizeChecked is Normalize, but reports false instead of producing NaNs
// when v is shorter than Epsilon.
func NormalizeChecked(v T) (T, bool) {
	l := v.Norm()
	if l < Epsilon || math.IsNaN(l) || math.IsInf(l, 0) {
		return T{}, false
	}
	return T{
		v[0] / l,
		v[1] / l,
		v[2] / l,
	}, true
}

func AddVV(a, b T) T {
	return T{
		a[0] + b[0],
		a[1] + b[1],
		a[2] + b[2],
	}
}

func SubVV(a, b T) T {
	return T{
		a[0] - b[0],
		a[1] - b[1],
		a[2] - b[2],
	}
}

func MulVS(a T, b float64) T {
	return T{
		a[0] * b,
		a[1] * b,
		a[2] * b,
	}
}

func DivVS(a T, b float64) T {
	return T{
		a[0] / b,
		a[1] / b,
		a[2] / b,
	}
}

// AddScaled returns a + s*b.
func AddScaled(a T, s float64, b T) T {
	return T{
		a[0] + s*b[0],
		a[1] + s*b[1],
		a[2] + s*b[2],
	}
}

func Neg(a T) T {
	return T{-a[0], -a[1], -a[2]}
}

func IProd(a, b T) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func CProd(a, b T) T {
	return T{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Reject returns the component of b that is orthogonal to A.
func Reject(a, b T) T {
	return SubVV(b, MulVS(Normalize(a), IProd(a, b)/a.Norm()))
}

// Reflect mirrors the incident direction a about the unit normal n.
func Reflect(a, n T) T {
	return SubVV(a, MulVS(n, 2*IProd(a, n)))
}

// UnitBall draws a point uniformly from the interior of the unit ball by
// rejection sampling the enclosing cube.
func UnitBall(rng *rand.Rand) T {
	result := T{}
	for {
		result[0] = 2*rng.Float64() - 1
		result[1] = 2*rng.Float64() - 1
		result[2] = 2*rng.Float64() - 1
		if result.NormSquared() < 1.0 {
			return result
		}
	}
}
