// Package rgb holds linear-light colors.  Values are not clamped while
// shading; Quantize is the only place a color is squeezed into [0, 255].
package rgb

import "math"

// Gamma is the exponent of the display transfer function.
const Gamma = 2.2

// T is a linear-light color, in red, green, blue order.
type T [3]float64

var (
	Black = T{0, 0, 0}
	White = T{1, 1, 1}
)

func AddCC(a, b T) T {
	return T{
		a[0] + b[0],
		a[1] + b[1],
		a[2] + b[2],
	}
}

func MulCS(a T, s float64) T {
	return T{
		a[0] * s,
		a[1] * s,
		a[2] * s,
	}
}

func DivCS(a T, s float64) T {
	return T{
		a[0] / s,
		a[1] / s,
		a[2] / s,
	}
}

// MulCC filters a through b.
func MulCC(a, b T) T {
	return T{
		a[0] * b[0],
		a[1] * b[1],
		a[2] * b[2],
	}
}

// Lerp returns a*t + b*(1-t).
func Lerp(a, b T, t float64) T {
	return AddCC(MulCS(a, t), MulCS(b, 1-t))
}

// EncodeGamma applies the display transfer function.  Negative channels
// encode to zero.
func EncodeGamma(c T) T {
	return T{
		encodeChannel(c[0]),
		encodeChannel(c[1]),
		encodeChannel(c[2]),
	}
}

// DecodeGamma converts a display-space color (as picked in a color chooser)
// to linear light.
func DecodeGamma(c T) T {
	return T{
		decodeChannel(c[0]),
		decodeChannel(c[1]),
		decodeChannel(c[2]),
	}
}

func encodeChannel(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	return math.Pow(v, 1/Gamma)
}

func decodeChannel(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	return math.Pow(v, Gamma)
}

// Quantize gamma-encodes c and converts each channel to 8 bits by scaling by
// 255 and truncating toward zero.  Over-bright channels saturate at 255.
func Quantize(c T) [3]uint8 {
	e := EncodeGamma(c)
	return [3]uint8{
		quantizeChannel(e[0]),
		quantizeChannel(e[1]),
		quantizeChannel(e[2]),
	}
}

func quantizeChannel(v float64) uint8 {
	scaled := math.Trunc(v * 255)
	switch {
	case math.IsNaN(scaled) || scaled < 0:
		return 0
	case scaled > 255:
		return 255
	}
	return uint8(scaled)
}
