package relight

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// LegacyType is the light type vocabulary of the host's imperative lighting
// API. Values mirror the host enum and are validated on every conversion.
type LegacyType uint32

const (
	LegacyPoint       LegacyType = 1
	LegacySpot        LegacyType = 2
	LegacyDirectional LegacyType = 3
)

func (t LegacyType) valid() bool {
	return t >= LegacyPoint && t <= LegacyDirectional
}

// LegacyLight is a one-shot, fully specified lighting call from the host.
// Immutable; supplied once per conversion attempt. Angles are in radians,
// Theta the inner and Phi the outer cone of a spot light.
type LegacyLight struct {
	Type      LegacyType
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Diffuse   mgl32.Vec3
	Theta     float32
	Phi       float32
	Falloff   float32
}

// ConvertOptions hold the fixed constants of the legacy conversion path.
// The defaults feed the frozen stable hashes; changing them does not alter
// hashing (see hash.go) but does alter the converted light.
type ConvertOptions struct {
	// SphereRadius is the fixed radius given to point/spot conversions,
	// scaled by SceneScale.
	SphereRadius float32
	SceneScale   float32
	// SphereIntensityScale multiplies the brightest diffuse channel to
	// derive the sphere light's intensity.
	SphereIntensityScale float32
	// DistantAngle is the fixed angular size given to directional
	// conversions, in radians.
	DistantAngle     float32
	DistantIntensity float32
}

func DefaultConvertOptions() ConvertOptions {
	return ConvertOptions{
		SphereRadius:         4.0,
		SceneScale:           1.0,
		SphereIntensityScale: 1.0,
		DistantAngle:         0.0349,
		DistantIntensity:     1.0,
	}
}

var invalidLegacyTypeWarn sync.Once

// checkLegacyType validates the call's type, logging the first rejection.
// The host is known to pass garbage types through this API.
func checkLegacyType(t LegacyType) bool {
	if t.valid() {
		return true
	}
	invalidLegacyTypeWarn.Do(func() {
		getLogger().Errorf("attempted to convert a legacy light with invalid type: %d", t)
	})
	return false
}

// NewLegacyRecord converts a legacy lighting call into a transient canonical
// record. An out-of-range type is logged once and yields no light; the
// caller must treat the absence as non-fatal.
func NewLegacyRecord(call LegacyLight, opts ConvertOptions) (*LightRecord, bool) {
	if !checkLegacyType(call.Type) {
		return nil, false
	}

	if call.Type == LegacyDirectional {
		return fromDirectional(call, opts), true
	}
	return fromPointSpot(call, opts), true
}

// safeNormalize normalizes v, falling back when v is the zero vector. The
// host does not guarantee normalized (or even non-zero) directions.
func safeNormalize(v, fallback mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 {
		return fallback
	}
	return v.Mul(1 / l)
}

func maxChannel(v mgl32.Vec3) float32 {
	m := v.X()
	if v.Y() > m {
		m = v.Y()
	}
	if v.Z() > m {
		m = v.Z()
	}
	return m
}

func fromPointSpot(call LegacyLight, opts ConvertOptions) *LightRecord {
	r := newDefaultRecord(KindSphere)

	originalPosition := call.Position
	brightness := maxChannel(call.Diffuse)

	r.Position = originalPosition
	r.Radius = opts.SphereRadius * opts.SceneScale
	r.Intensity = brightness * opts.SphereIntensityScale
	if brightness > 0 {
		r.Color = call.Diffuse.Mul(1 / brightness)
	} else {
		r.Color = call.Diffuse
	}

	var stableShaping Shaping
	if call.Type == LegacySpot {
		originalDirection := call.Direction

		r.ZAxis = safeNormalize(originalDirection, mgl32.Vec3{0, 0, 1})
		// Phi is the full outer angle of the spot cone.
		r.ConeAngle = call.Phi / 2
		r.ConeSoftness = cos32(call.Theta/2) - cos32(r.ConeAngle)
		r.Focus = call.Falloff

		// The frozen hash expects shaping built from the raw, unnormalized
		// host direction (a preserved artifact of the first implementation).
		stableShaping = r.shaping(originalDirection)
	}

	r.Hash = hashLegacySphere(originalPosition, stableShaping)
	r.hashFrozen = true
	return r
}

func fromDirectional(call LegacyLight, opts ConvertOptions) *LightRecord {
	r := newDefaultRecord(KindDistant)

	originalDirection := call.Direction

	r.ZAxis = safeNormalize(originalDirection, mgl32.Vec3{0, 0, 1})
	r.Angle = opts.DistantAngle
	r.Color = call.Diffuse
	r.Intensity = opts.DistantIntensity

	r.Hash = hashLegacyDistant(originalDirection)
	r.hashFrozen = true
	return r
}
