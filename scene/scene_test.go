package scene

import (
	"math/rand"
	"testing"

	"lumen/geometry"
	"lumen/light"
	"lumen/material"
	"lumen/ray"
	"lumen/rgb"
	"lumen/vmath/vec3"

	"github.com/google/go-cmp/cmp"
)

func facingMirrors(maxDepth int) *Scene {
	mirror := material.NewReflective(rgb.White, 0.9)
	s := New(2, 2, 90, 1, rgb.T{0.25, 0.5, 0.75})
	s.MaxDepth = maxDepth
	s.AddGeometry(geometry.NewPlane(vec3.T{0, 0, 1}, vec3.T{0, 0, -1}, mirror))
	s.AddGeometry(geometry.NewPlane(vec3.T{0, 0, -1}, vec3.T{0, 0, 1}, mirror))
	s.AddLight(light.NewSpherical(vec3.T{0, 0.5, 0}, rgb.White, 10))
	return s
}

func TestFacingMirrorsTerminate(t *testing.T) {
	for _, maxDepth := range []int{1, 2, 5, 16} {
		s := facingMirrors(maxDepth)

		calls := 0
		deepest := -1
		s.onTrace = func(depth int) {
			calls++
			if depth > deepest {
				deepest = depth
			}
		}

		rng := rand.New(rand.NewSource(1))
		s.Radiance(ray.New(vec3.T{0, 0, 0}, vec3.T{0, 0, 1}), 0, rng)

		if deepest != maxDepth {
			t.Errorf("MaxDepth %d: deepest trace; got %d, want %d", maxDepth, deepest, maxDepth)
		}
		// One bounce and one shadow ray per level.
		if calls > 2*maxDepth+1 {
			t.Errorf("MaxDepth %d: trace calls; got %d, want at most %d", maxDepth, calls, 2*maxDepth+1)
		}
	}
}

func TestCutoffShowsBackground(t *testing.T) {
	s := facingMirrors(3)
	r := ray.New(vec3.T{0, 0, 0}, vec3.T{0, 0, 1})

	if _, ok := s.Trace(r, 3); ok {
		t.Errorf("Trace at the depth cutoff reported a hit")
	}
	got := s.Radiance(r, 3, rand.New(rand.NewSource(1)))
	if got != s.BackgroundColor {
		t.Errorf("Radiance at the depth cutoff; got %v, want background %v", got, s.BackgroundColor)
	}
}

func TestTraceFindsNearest(t *testing.T) {
	grey := material.NewDiffuse(rgb.T{0.5, 0.5, 0.5}, 0.5)
	s := New(2, 2, 90, 1, rgb.Black)
	far := s.AddGeometry(geometry.NewSphere(vec3.T{0, 0, 10}, 1, grey))
	near := s.AddGeometry(geometry.NewSphere(vec3.T{0, 0, 5}, 1, grey))

	c, ok := s.Trace(ray.New(vec3.T{0, 0, 0}, vec3.T{0, 0, 1}), 0)
	if !ok {
		t.Fatalf("Trace missed both spheres")
	}
	if c.Element != near {
		t.Errorf("Trace hit element %d, want %d (not %d)", c.Element, near, far)
	}
	if diff := cmp.Diff(c.N, vec3.T{0, 0, -1}); diff != "" {
		t.Errorf("Bad contact normal; diff (-got +want)\n%s", diff)
	}
}

func randomScene(seed int64) *Scene {
	rng := rand.New(rand.NewSource(seed))
	grey := material.NewDiffuse(rgb.T{0.5, 0.5, 0.5}, 0.5)

	s := New(2, 2, 90, 1, rgb.Black)
	s.AddGeometry(geometry.NewPlane(vec3.T{0, -20, 0}, vec3.T{0, 1, 0}, grey))
	for i := 0; i < 150; i++ {
		center := vec3.T{rng.Float64()*30 - 15, rng.Float64()*30 - 15, rng.Float64()*30 + 5}
		s.AddGeometry(geometry.NewSphere(center, rng.Float64()+0.2, grey))
	}
	return s
}

func TestCrushGivesSameAnswers(t *testing.T) {
	linear := randomScene(5)
	indexed := randomScene(5)
	indexed.Crush()

	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 500; i++ {
		dir, ok := vec3.NormalizeChecked(vec3.T{rng.Float64() - 0.5, rng.Float64() - 0.5, rng.Float64()})
		if !ok {
			continue
		}
		r := ray.New(vec3.T{0, 0, 0}, dir)

		wantC, wantOK := linear.Trace(r, 0)
		gotC, gotOK := indexed.Trace(r, 0)
		if gotOK != wantOK {
			t.Fatalf("Ray %d: indexed hit %v, linear hit %v", i, gotOK, wantOK)
		}
		if !gotOK {
			continue
		}
		if gotC.Element != wantC.Element || gotC.T != wantC.T {
			t.Errorf("Ray %d: indexed hit %d at %v, linear hit %d at %v", i, gotC.Element, gotC.T, wantC.Element, wantC.T)
		}
	}
}

func TestAddGeometryDropsIndex(t *testing.T) {
	s := randomScene(1)
	s.Crush()
	if s.accel == nil {
		t.Fatalf("Crush didn't build an index")
	}

	grey := material.NewDiffuse(rgb.T{0.5, 0.5, 0.5}, 0.5)
	i := s.AddGeometry(geometry.NewSphere(vec3.T{0, 0, 1}, 0.5, grey))
	if s.accel != nil {
		t.Errorf("AddGeometry kept a stale index")
	}

	s.Crush()
	c, ok := s.Trace(ray.New(vec3.T{0, 0, 0}, vec3.T{0, 0, 1}), 0)
	if !ok || c.Element != i {
		t.Errorf("Trace after re-Crush; got element %d (hit %v), want %d", c.Element, ok, i)
	}
}
