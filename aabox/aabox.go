package aabox

import (
	"math"

	"lumen/ray"
	"lumen/vmath/vec3"
)

type AABox struct {
	X, Y, Z ray.Span
}

// AccumZeroAABox is the empty box: growing it by any box gives that box.
func AccumZeroAABox() AABox {
	return AABox{
		X: ray.Span{Lo: math.Inf(1), Hi: math.Inf(-1)},
		Y: ray.Span{Lo: math.Inf(1), Hi: math.Inf(-1)},
		Z: ray.Span{Lo: math.Inf(1), Hi: math.Inf(-1)},
	}
}

func MinContainingAABox(a, b AABox) AABox {
	return AABox{
		X: ray.MinContainingSpan(a.X, b.X),
		Y: ray.MinContainingSpan(a.Y, b.Y),
		Z: ray.MinContainingSpan(a.Z, b.Z),
	}
}

func (a AABox) IsFinite() bool {
	return a.X.IsFinite() && a.Y.IsFinite() && a.Z.IsFinite()
}

func (a AABox) SurfaceArea() float64 {
	xLen := a.X.Hi - a.X.Lo
	yLen := a.Y.Hi - a.Y.Lo
	zLen := a.Z.Hi - a.Z.Lo
	return 2 * (xLen*yLen + xLen*zLen + yLen*zLen)
}

// Center returns the midpoint of the box.
func (a AABox) Center() vec3.T {
	return vec3.T{
		(a.X.Lo + a.X.Hi) / 2,
		(a.Y.Lo + a.Y.Hi) / 2,
		(a.Z.Lo + a.Z.Hi) / 2,
	}
}

func (a AABox) axis(i int) ray.Span {
	switch i {
	case 0:
		return a.X
	case 1:
		return a.Y
	}
	return a.Z
}

// RayTestAABox returns the span of distances along r that lie inside b.  A
// miss is reported as a NaN span.  The span may start behind the ray's origin.
func RayTestAABox(r ray.Ray, b AABox) ray.Span {
	cover := ray.Span{Lo: math.Inf(-1), Hi: math.Inf(1)}

	for i := 0; i < 3; i++ {
		slab := b.axis(i)

		if r.Slope[i] == 0 {
			// Parallel to this slab: either always inside it or never.
			if r.Point[i] < slab.Lo || slab.Hi < r.Point[i] {
				return ray.NaNSpan()
			}
			continue
		}

		cur := ray.Span{
			Lo: (slab.Lo - r.Point[i]) / r.Slope[i],
			Hi: (slab.Hi - r.Point[i]) / r.Slope[i],
		}
		if cur.Hi < cur.Lo {
			cur.Lo, cur.Hi = cur.Hi, cur.Lo
		}

		if cur.Lo > cover.Lo {
			cover.Lo = cur.Lo
		}
		if cur.Hi < cover.Hi {
			cover.Hi = cur.Hi
		}
		if cover.Hi < cover.Lo {
			return ray.NaNSpan()
		}
	}

	return cover
}
