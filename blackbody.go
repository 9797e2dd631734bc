package relight

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// BlackbodyRGB approximates the normalized RGB tint of a blackbody emitter
// at the given temperature in kelvin, using the common Planckian-locus curve
// fit. Input is clamped to the catalogue's color temperature range; the
// result has channels in [0, 1] and is approximately white near 6500K.
func BlackbodyRGB(kelvin float32) mgl32.Vec3 {
	t := float64(clampf(kelvin, 1500, 10000)) / 100

	var r, g, b float64

	if t <= 66 {
		r = 255
	} else {
		r = 329.698727446 * math.Pow(t-60, -0.1332047592)
	}

	if t <= 66 {
		g = 99.4708025861*math.Log(t) - 161.1195681661
	} else {
		g = 288.1221695283 * math.Pow(t-60, -0.0755148492)
	}

	if t >= 66 {
		b = 255
	} else if t <= 19 {
		b = 0
	} else {
		b = 138.5177312231*math.Log(t-10) - 305.0447927307
	}

	clamp01 := func(v float64) float32 {
		return float32(math.Min(math.Max(v/255, 0), 1))
	}
	return mgl32.Vec3{clamp01(r), clamp01(g), clamp01(b)}
}
