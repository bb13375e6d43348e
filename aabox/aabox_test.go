package aabox

import (
	"testing"

	"lumen/ray"
	"lumen/vmath/vec3"
)

var unitBox = AABox{
	X: ray.Span{Lo: -1, Hi: 1},
	Y: ray.Span{Lo: -1, Hi: 1},
	Z: ray.Span{Lo: -1, Hi: 1},
}

func TestRayTestAABox(t *testing.T) {
	testCases := []struct {
		desc     string
		r        ray.Ray
		wantMiss bool
		wantSpan ray.Span
	}{
		{
			desc:     "straight through",
			r:        ray.New(vec3.T{0, 0, -5}, vec3.T{0, 0, 1}),
			wantSpan: ray.Span{Lo: 4, Hi: 6},
		},
		{
			desc:     "origin inside",
			r:        ray.New(vec3.T{0, 0, 0}, vec3.T{1, 0, 0}),
			wantSpan: ray.Span{Lo: -1, Hi: 1},
		},
		{
			desc:     "parallel outside slab",
			r:        ray.New(vec3.T{0, 2, -5}, vec3.T{0, 0, 1}),
			wantMiss: true,
		},
		{
			desc:     "diagonal miss",
			r:        ray.New(vec3.T{3, 0, -5}, vec3.T{0, 1, 1}),
			wantMiss: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			got := RayTestAABox(tc.r, unitBox)
			if got.IsNaN() != tc.wantMiss {
				t.Fatalf("RayTestAABox miss; got %v, want %v (span %+v)", got.IsNaN(), tc.wantMiss, got)
			}
			if !tc.wantMiss && got != tc.wantSpan {
				t.Errorf("RayTestAABox span; got %+v, want %+v", got, tc.wantSpan)
			}
		})
	}
}

func TestAccumZeroAABox(t *testing.T) {
	got := MinContainingAABox(AccumZeroAABox(), unitBox)
	if got != unitBox {
		t.Errorf("Growing the empty box; got %+v, want %+v", got, unitBox)
	}
}

func TestSurfaceArea(t *testing.T) {
	if got := unitBox.SurfaceArea(); got != 24 {
		t.Errorf("SurfaceArea; got %v, want 24", got)
	}
}
