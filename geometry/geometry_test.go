package geometry

import (
	"math"
	"testing"

	"lumen/material"
	"lumen/ray"
	"lumen/rgb"
	"lumen/vmath/vec3"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var grey = material.NewDiffuse(rgb.T{0.5, 0.5, 0.5}, 0.5)

func TestIntersect(t *testing.T) {
	testCases := []struct {
		desc   string
		g      Geometry
		r      ray.Ray
		wantT  float64
		wantOK bool
	}{
		{
			desc:   "sphere ahead",
			g:      NewSphere(vec3.T{0, 0, 5}, 1, grey),
			r:      ray.New(vec3.T{0, 0, 0}, vec3.T{0, 0, 1}),
			wantT:  4,
			wantOK: true,
		},
		{
			desc:   "sphere behind",
			g:      NewSphere(vec3.T{0, 0, 5}, 1, grey),
			r:      ray.New(vec3.T{0, 0, 0}, vec3.T{0, 0, -1}),
			wantOK: false,
		},
		{
			desc:   "sphere off to the side",
			g:      NewSphere(vec3.T{0, 0, 5}, 1, grey),
			r:      ray.New(vec3.T{2, 0, 0}, vec3.T{0, 0, 1}),
			wantOK: false,
		},
		{
			desc:   "origin inside sphere",
			g:      NewSphere(vec3.T{0, 0, 0}, 2, grey),
			r:      ray.New(vec3.T{0, 0, 0}, vec3.T{1, 0, 0}),
			wantT:  2,
			wantOK: true,
		},
		{
			desc:   "plane facing the ray",
			g:      NewPlane(vec3.T{0, 0, 5}, vec3.T{0, 0, -1}, grey),
			r:      ray.New(vec3.T{0, 0, 0}, vec3.T{0, 0, 1}),
			wantT:  5,
			wantOK: true,
		},
		{
			desc:   "plane seen from behind",
			g:      NewPlane(vec3.T{0, 0, 5}, vec3.T{0, 0, 1}, grey),
			r:      ray.New(vec3.T{0, 0, 0}, vec3.T{0, 0, 1}),
			wantOK: false,
		},
		{
			desc:   "ray parallel to plane",
			g:      NewPlane(vec3.T{0, -1, 0}, vec3.T{0, 1, 0}, grey),
			r:      ray.New(vec3.T{0, 0, 0}, vec3.T{0, 0, 1}),
			wantOK: false,
		},
		{
			desc:   "plane behind the origin",
			g:      NewPlane(vec3.T{0, 0, -5}, vec3.T{0, 0, -1}, grey),
			r:      ray.New(vec3.T{0, 0, 0}, vec3.T{0, 0, 1}),
			wantOK: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			gotT, ok := tc.g.Intersect(tc.r)
			if ok != tc.wantOK {
				t.Fatalf("Intersect hit; got %v, want %v", ok, tc.wantOK)
			}
			if ok && math.Abs(gotT-tc.wantT) > 1e-5 {
				t.Errorf("Intersect distance; got %v, want %v", gotT, tc.wantT)
			}
		})
	}
}

func TestSurfaceNormal(t *testing.T) {
	s := NewSphere(vec3.T{1, 1, 1}, 2, grey)
	got := s.SurfaceNormal(vec3.T{1, 3, 1})
	want := vec3.T{0, 1, 0}
	if diff := cmp.Diff(got, want, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("Bad sphere normal; diff (-got +want)\n%s", diff)
	}

	p := NewPlane(vec3.T{0, 0, 0}, vec3.T{0, 3, 0}, grey)
	got = p.SurfaceNormal(vec3.T{7, 0, -2})
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Bad plane normal; diff (-got +want)\n%s", diff)
	}
}

func TestBounds(t *testing.T) {
	s := NewSphere(vec3.T{1, 2, 3}, 0.5, grey)
	b, ok := s.Bounds()
	if !ok {
		t.Fatalf("Sphere reported no bounds")
	}
	if b.X.Lo != 0.5 || b.X.Hi != 1.5 || b.Y.Lo != 1.5 || b.Y.Hi != 2.5 || b.Z.Lo != 2.5 || b.Z.Hi != 3.5 {
		t.Errorf("Bad sphere bounds %+v", b)
	}

	p := NewPlane(vec3.T{0, 0, 0}, vec3.T{0, 1, 0}, grey)
	if _, ok := p.Bounds(); ok {
		t.Errorf("Plane reported bounds, want none")
	}
}

func TestUnknownKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Intersect on an unknown kind didn't panic")
		}
	}()
	g := Geometry{Kind: Kind(99)}
	g.Intersect(ray.New(vec3.T{}, vec3.T{0, 0, 1}))
}
