package relight

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// AttrKind discriminates the payload of an AttrValue.
type AttrKind uint8

const (
	AttrFloat AttrKind = iota
	AttrBool
	AttrVec3
)

// AttrValue is a single authored attribute value. Exactly one payload field
// is meaningful, selected by Kind.
type AttrValue struct {
	Kind AttrKind
	F    float32
	B    bool
	V    mgl32.Vec3
}

func FloatValue(f float32) AttrValue   { return AttrValue{Kind: AttrFloat, F: f} }
func BoolValue(b bool) AttrValue       { return AttrValue{Kind: AttrBool, B: b} }
func Vec3Value(v mgl32.Vec3) AttrValue { return AttrValue{Kind: AttrVec3, V: v} }

// DirtyBit indexes one bit of a DirtyMask. Each attribute owns one bit, plus
// one bit for the transform group as a whole.
type DirtyBit uint32

const (
	BitColor DirtyBit = iota
	BitIntensity
	BitExposure
	BitEnableColorTemp
	BitColorTemp
	BitRadius
	BitWidth
	BitHeight
	BitLength
	BitConeAngle
	BitConeSoftness
	BitFocus
	BitAngle
	BitTransform

	numDirtyBits
)

// DirtyMask tracks which fields were explicitly supplied by an authoritative
// source. A set bit blocks any later merge from overwriting that field; bits
// are never cleared by merging.
type DirtyMask uint32

const allDirtyMask = DirtyMask(1<<numDirtyBits) - 1

func (m DirtyMask) Has(b DirtyBit) bool { return m&(1<<b) != 0 }
func (m *DirtyMask) Set(b DirtyBit)     { *m |= 1 << b }

// AttrDescriptor describes one catalogue entry: the authored attribute name,
// its legacy alias from before attributes moved under the inputs: namespace,
// the default value, a clamp range for numeric payloads, the dirty bit, and
// accessors into a LightRecord.
type AttrDescriptor struct {
	Name       string
	LegacyName string
	Bit        DirtyBit
	Default    AttrValue
	Min, Max   float32

	load  func(r *LightRecord) AttrValue
	store func(r *LightRecord, v AttrValue)
}

const (
	degToRad = float32(math.Pi / 180)
	maxFloat = float32(math.MaxFloat32)

	defaultConeAngle = float32(math.Pi) // 180 degrees, shaping disabled
	defaultAngle     = 0.53 * degToRad  // distant light angular size
	defaultColorTemp = float32(6500)
)

// lightAttributes is the closed, process-lifetime attribute catalogue.
// Construction, merging and clamping all iterate this table instead of
// hand-writing per-field logic. Angles are stored in radians; the two
// degree-valued attributes are converted right after deserialization.
var lightAttributes = []AttrDescriptor{
	{
		Name: "inputs:color", LegacyName: "color", Bit: BitColor,
		Default: Vec3Value(mgl32.Vec3{1, 1, 1}), Min: 0, Max: maxFloat,
		load:  func(r *LightRecord) AttrValue { return Vec3Value(r.Color) },
		store: func(r *LightRecord, v AttrValue) { r.Color = v.V },
	},
	{
		Name: "inputs:intensity", LegacyName: "intensity", Bit: BitIntensity,
		Default: FloatValue(1), Min: 0, Max: maxFloat,
		load:  func(r *LightRecord) AttrValue { return FloatValue(r.Intensity) },
		store: func(r *LightRecord, v AttrValue) { r.Intensity = v.F },
	},
	{
		Name: "inputs:exposure", LegacyName: "exposure", Bit: BitExposure,
		Default: FloatValue(0), Min: -maxFloat, Max: maxFloat,
		load:  func(r *LightRecord) AttrValue { return FloatValue(r.Exposure) },
		store: func(r *LightRecord, v AttrValue) { r.Exposure = v.F },
	},
	{
		Name: "inputs:enableColorTemperature", LegacyName: "enableColorTemperature", Bit: BitEnableColorTemp,
		Default: BoolValue(false),
		load:    func(r *LightRecord) AttrValue { return BoolValue(r.EnableColorTemp) },
		store:   func(r *LightRecord, v AttrValue) { r.EnableColorTemp = v.B },
	},
	{
		Name: "inputs:colorTemperature", LegacyName: "colorTemperature", Bit: BitColorTemp,
		Default: FloatValue(defaultColorTemp), Min: 1500, Max: 10000,
		load:  func(r *LightRecord) AttrValue { return FloatValue(r.ColorTemp) },
		store: func(r *LightRecord, v AttrValue) { r.ColorTemp = v.F },
	},
	{
		Name: "inputs:radius", LegacyName: "radius", Bit: BitRadius,
		Default: FloatValue(0.5), Min: 0, Max: maxFloat,
		load:  func(r *LightRecord) AttrValue { return FloatValue(r.Radius) },
		store: func(r *LightRecord, v AttrValue) { r.Radius = v.F },
	},
	{
		Name: "inputs:width", LegacyName: "width", Bit: BitWidth,
		Default: FloatValue(1), Min: 0, Max: maxFloat,
		load:  func(r *LightRecord) AttrValue { return FloatValue(r.Width) },
		store: func(r *LightRecord, v AttrValue) { r.Width = v.F },
	},
	{
		Name: "inputs:height", LegacyName: "height", Bit: BitHeight,
		Default: FloatValue(1), Min: 0, Max: maxFloat,
		load:  func(r *LightRecord) AttrValue { return FloatValue(r.Height) },
		store: func(r *LightRecord, v AttrValue) { r.Height = v.F },
	},
	{
		Name: "inputs:length", LegacyName: "length", Bit: BitLength,
		Default: FloatValue(1), Min: 0, Max: maxFloat,
		load:  func(r *LightRecord) AttrValue { return FloatValue(r.Length) },
		store: func(r *LightRecord, v AttrValue) { r.Length = v.F },
	},
	{
		Name: "inputs:shaping:cone:angle", LegacyName: "shaping:cone:angle", Bit: BitConeAngle,
		Default: FloatValue(defaultConeAngle), Min: 0, Max: float32(math.Pi),
		load:  func(r *LightRecord) AttrValue { return FloatValue(r.ConeAngle) },
		store: func(r *LightRecord, v AttrValue) { r.ConeAngle = v.F },
	},
	{
		Name: "inputs:shaping:cone:softness", LegacyName: "shaping:cone:softness", Bit: BitConeSoftness,
		Default: FloatValue(0), Min: 0, Max: maxFloat,
		load:  func(r *LightRecord) AttrValue { return FloatValue(r.ConeSoftness) },
		store: func(r *LightRecord, v AttrValue) { r.ConeSoftness = v.F },
	},
	{
		Name: "inputs:shaping:focus", LegacyName: "shaping:focus", Bit: BitFocus,
		Default: FloatValue(0), Min: 0, Max: maxFloat,
		load:  func(r *LightRecord) AttrValue { return FloatValue(r.Focus) },
		store: func(r *LightRecord, v AttrValue) { r.Focus = v.F },
	},
	{
		Name: "inputs:angle", LegacyName: "angle", Bit: BitAngle,
		Default: FloatValue(defaultAngle), Min: 0, Max: float32(math.Pi),
		load:  func(r *LightRecord) AttrValue { return FloatValue(r.Angle) },
		store: func(r *LightRecord, v AttrValue) { r.Angle = v.F },
	},
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (d *AttrDescriptor) clamp(v AttrValue) AttrValue {
	switch v.Kind {
	case AttrFloat:
		v.F = clampf(v.F, d.Min, d.Max)
	case AttrVec3:
		v.V = mgl32.Vec3{
			clampf(v.V.X(), d.Min, d.Max),
			clampf(v.V.Y(), d.Min, d.Max),
			clampf(v.V.Z(), d.Min, d.Max),
		}
	}
	return v
}
