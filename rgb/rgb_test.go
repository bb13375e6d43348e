package rgb

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestQuantize(t *testing.T) {
	testCases := []struct {
		desc string
		in   T
		want [3]uint8
	}{
		{desc: "black", in: Black, want: [3]uint8{0, 0, 0}},
		{desc: "white", in: White, want: [3]uint8{255, 255, 255}},
		{desc: "over-bright saturates", in: T{4, 100, 1.0001}, want: [3]uint8{255, 255, 255}},
		{desc: "negative clamps", in: T{-1, -0.5, 0}, want: [3]uint8{0, 0, 0}},
		{desc: "nan clamps", in: T{math.NaN(), 1, 0}, want: [3]uint8{0, 255, 0}},
		// 0.5^(1/2.2) * 255 = 186.08...
		{desc: "mid grey truncates", in: T{0.5, 0.5, 0.5}, want: [3]uint8{186, 186, 186}},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			got := Quantize(tc.in)
			if diff := cmp.Diff(got, tc.want); diff != "" {
				t.Errorf("Quantize(%v) bad result; diff (-got +want)\n%s", tc.in, diff)
			}
		})
	}
}

func TestGammaRoundTrip(t *testing.T) {
	in := T{0.1, 0.5, 0.9}
	got := EncodeGamma(DecodeGamma(in))
	if diff := cmp.Diff(got, in, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("Gamma round trip changed color; diff (-got +want)\n%s", diff)
	}
}

func TestLerp(t *testing.T) {
	got := Lerp(T{1, 0, 0}, T{0, 0, 1}, 0.25)
	want := T{0.25, 0, 0.75}
	if diff := cmp.Diff(got, want, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("Bad lerp; diff (-got +want)\n%s", diff)
	}
}
