package relight

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// LightKind is the closed set of light shape variants. Unknown is a
// deferred-resolution placeholder for captured lights whose shape is only
// learned when the host issues its legacy lighting call.
type LightKind uint32

const (
	KindSphere LightKind = iota
	KindRect
	KindDisk
	KindCylinder
	KindDistant
	KindUnknown
)

func (k LightKind) String() string {
	switch k {
	case KindSphere:
		return "Sphere"
	case KindRect:
		return "Rect"
	case KindDisk:
		return "Disk"
	case KindCylinder:
		return "Cylinder"
	case KindDistant:
		return "Distant"
	case KindUnknown:
		return "Unknown"
	}
	return "Invalid"
}

// AttrSource supplies authored attribute values by name. Absence means "not
// authored", never a defaulted value. Implemented by the external scene
// storage layer.
type AttrSource interface {
	// Path is the light's identity path, used for capture-path resolution.
	Path() string
	// ShapeKind reports an explicit shape tag if the source carries one.
	ShapeKind() (LightKind, bool)
	// Complete reports whether the source fully defines the light, in which
	// case every attribute it supplies is authoritative.
	Complete() bool
	// Attr looks up a single attribute value by name.
	Attr(name string) (AttrValue, bool)
}

// LightRecord is the canonical, render-ready representation of one light.
// Records persist across update cycles keyed by identity and are mutated
// only through Merge/MergeLegacy.
type LightRecord struct {
	Kind  LightKind
	Dirty DirtyMask

	Color           mgl32.Vec3
	Intensity       float32
	Exposure        float32
	EnableColorTemp bool
	ColorTemp       float32
	Radius          float32
	Width           float32
	Height          float32
	Length          float32
	ConeAngle       float32 // radians
	ConeSoftness    float32
	Focus           float32
	Angle           float32 // radians, distant lights only

	Position mgl32.Vec3
	XAxis    mgl32.Vec3
	YAxis    mgl32.Vec3
	ZAxis    mgl32.Vec3
	XScale   float32
	YScale   float32
	ZScale   float32

	// Hash is the 64-bit stable identity used for replacement matching.
	// Legacy-converted records carry a frozen hash that is never recomputed.
	Hash       uint64
	hashFrozen bool
}

func newDefaultRecord(kind LightKind) *LightRecord {
	r := &LightRecord{
		Kind:   kind,
		XAxis:  mgl32.Vec3{1, 0, 0},
		YAxis:  mgl32.Vec3{0, 1, 0},
		ZAxis:  mgl32.Vec3{0, 0, 1},
		XScale: 1,
		YScale: 1,
		ZScale: 1,
	}
	for i := range lightAttributes {
		d := &lightAttributes[i]
		d.store(r, d.Default)
	}
	return r
}

var legacyAttrWarn sync.Once

// lookupAttr reads one catalogue attribute from the source, falling back to
// the pre-inputs legacy alias when the primary name is absent.
func lookupAttr(src AttrSource, d *AttrDescriptor) (AttrValue, bool) {
	if v, ok := src.Attr(d.Name); ok {
		return v, true
	}
	if v, ok := src.Attr(d.LegacyName); ok {
		legacyAttrWarn.Do(func() {
			getLogger().Warnf("legacy light attribute detected: %s on %s", d.LegacyName, src.Path())
		})
		return v, true
	}
	return AttrValue{}, false
}

// NewRecord builds a canonical record from an authored source and an optional
// local-to-root transform (nil skips extraction and leaves the transform
// dirty bit clear). Returns nil, false when the source's shape is
// unsupported or the transform has a zero-magnitude axis; no partially built
// record escapes.
func NewRecord(src AttrSource, localToRoot *mgl32.Mat4) (*LightRecord, bool) {
	// Kind resolution and deserialization must run before transform
	// extraction: the extraction quirks depend on the resolved kind.
	kind, ok := resolveKind(src)
	if !ok {
		return nil, false
	}

	if localToRoot != nil && hasZeroAxis(localToRoot) {
		return nil, false
	}

	r := newDefaultRecord(kind)
	r.deserialize(src)
	r.extractTransform(localToRoot)
	r.sanitize()

	if r.Kind != KindUnknown {
		r.Hash = r.stableHash()
	}
	return r, true
}

func (r *LightRecord) deserialize(src AttrSource) {
	for i := range lightAttributes {
		d := &lightAttributes[i]
		if v, ok := lookupAttr(src, d); ok {
			d.store(r, v)
			r.Dirty.Set(d.Bit)
		}
	}

	// Authored angles arrive in degrees, the record stores radians.
	if r.Dirty.Has(BitConeAngle) {
		r.ConeAngle *= degToRad
	}
	if r.Dirty.Has(BitAngle) {
		r.Angle *= degToRad
	}

	// A fully defined light owns every attribute, authored or not.
	if src.Complete() {
		r.Dirty = allDirtyMask
	}
}

func (r *LightRecord) sanitize() {
	for i := range lightAttributes {
		d := &lightAttributes[i]
		d.store(r, d.clamp(d.load(r)))
	}
}
