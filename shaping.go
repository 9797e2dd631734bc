package relight

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Shaping is the cone-based directional falloff applied to non-isotropic
// lights: a primary axis, the cosine of the cone angle, a softness for the
// transition region and a focus exponent.
type Shaping struct {
	Enabled       bool
	PrimaryAxis   mgl32.Vec3
	CosConeAngle  float32
	ConeSoftness  float32
	FocusExponent float32
}

func cos32(x float32) float32 {
	return float32(math.Cos(float64(x)))
}

// shapingEnabled reports whether any shaping parameter differs from its
// disabled default.
func (r *LightRecord) shapingEnabled() bool {
	return r.ConeAngle != defaultConeAngle || r.ConeSoftness != 0 || r.Focus != 0
}

// shaping derives the record's shaping around the given primary axis.
func (r *LightRecord) shaping(axis mgl32.Vec3) Shaping {
	return Shaping{
		Enabled:       r.shapingEnabled(),
		PrimaryAxis:   axis,
		CosConeAngle:  cos32(r.ConeAngle),
		ConeSoftness:  r.ConeSoftness,
		FocusExponent: r.Focus,
	}
}
