package vec3

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestNormalizeChecked(t *testing.T) {
	testCases := []struct {
		desc   string
		in     T
		want   T
		wantOK bool
	}{
		{desc: "axis", in: T{0, 0, 5}, want: T{0, 0, 1}, wantOK: true},
		{desc: "diagonal", in: T{3, 4, 0}, want: T{0.6, 0.8, 0}, wantOK: true},
		{desc: "zero", in: T{0, 0, 0}, want: T{}, wantOK: false},
		{desc: "tiny", in: T{1e-12, 0, 0}, want: T{}, wantOK: false},
		{desc: "nan", in: T{math.NaN(), 0, 0}, want: T{}, wantOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			got, ok := NormalizeChecked(tc.in)
			if ok != tc.wantOK {
				t.Fatalf("NormalizeChecked(%v) ok; got %v, want %v", tc.in, ok, tc.wantOK)
			}
			if diff := cmp.Diff(got, tc.want, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
				t.Errorf("NormalizeChecked(%v) bad result; diff (-got +want)\n%s", tc.in, diff)
			}
		})
	}
}

func TestUnitBallStaysInside(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		p := UnitBall(rng)
		if p.NormSquared() >= 1 {
			t.Fatalf("UnitBall returned %v, outside the unit ball", p)
		}
	}
}

func TestReflect(t *testing.T) {
	got := Reflect(T{1, -1, 0}, T{0, 1, 0})
	want := T{1, 1, 0}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Bad reflection; diff (-got +want)\n%s", diff)
	}
}

func TestRejectIsOrthogonal(t *testing.T) {
	a := T{1, 2, 3}
	b := T{-2, 0.5, 7}
	r := Reject(a, b)
	if d := IProd(r, a); math.Abs(d) > 1e-12 {
		t.Errorf("Reject(a, b) . a = %v, want 0", d)
	}
}

func TestCProdRightHanded(t *testing.T) {
	got := CProd(T{1, 0, 0}, T{0, 1, 0})
	want := T{0, 0, 1}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Bad cross product; diff (-got +want)\n%s", diff)
	}
}
