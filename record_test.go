package relight

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// mapSource is an AttrSource backed by a plain map, standing in for the
// external scene storage layer.
type mapSource struct {
	path     string
	kind     LightKind
	hasKind  bool
	complete bool
	attrs    map[string]AttrValue
}

func (s *mapSource) Path() string { return s.path }

func (s *mapSource) ShapeKind() (LightKind, bool) { return s.kind, s.hasKind }

func (s *mapSource) Complete() bool { return s.complete }

func (s *mapSource) Attr(name string) (AttrValue, bool) {
	v, ok := s.attrs[name]
	return v, ok
}

func taggedSource(kind LightKind, attrs map[string]AttrValue) *mapSource {
	return &mapSource{path: "/World/Lights/test", kind: kind, hasKind: true, attrs: attrs}
}

func TestNewRecordDefaults(t *testing.T) {
	r, ok := NewRecord(taggedSource(KindSphere, nil), nil)
	if !ok {
		t.Fatalf("Expected record, got none")
	}
	if r.Kind != KindSphere {
		t.Errorf("Expected Sphere kind, got %v", r.Kind)
	}
	if r.Dirty != 0 {
		t.Errorf("Nothing is authored, dirty mask should be empty, got %b", r.Dirty)
	}
	if r.Intensity != 1 || r.Radius != 0.5 || r.Exposure != 0 {
		t.Errorf("Unexpected defaults: intensity=%f radius=%f exposure=%f", r.Intensity, r.Radius, r.Exposure)
	}
	if r.ConeAngle != defaultConeAngle {
		t.Errorf("Cone angle default should disable shaping, got %f", r.ConeAngle)
	}
	if r.Color != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("Expected white default color, got %v", r.Color)
	}
	if r.XScale != 1 || r.YScale != 1 || r.ZScale != 1 {
		t.Errorf("Expected unit scales without a transform")
	}
	if r.Hash == 0 {
		t.Errorf("A resolved record should carry an identity hash")
	}
}

func TestNewRecordAuthoredSetsDirty(t *testing.T) {
	r, ok := NewRecord(taggedSource(KindSphere, map[string]AttrValue{
		"inputs:intensity": FloatValue(5),
	}), nil)
	if !ok {
		t.Fatalf("Expected record, got none")
	}
	if r.Intensity != 5 {
		t.Errorf("Expected authored intensity 5, got %f", r.Intensity)
	}
	if !r.Dirty.Has(BitIntensity) {
		t.Errorf("Authored intensity should set its dirty bit")
	}
	if r.Dirty != DirtyMask(1)<<BitIntensity {
		t.Errorf("Only the intensity bit should be set, got %b", r.Dirty)
	}
}

func TestNewRecordLegacyAliasFallback(t *testing.T) {
	r, ok := NewRecord(taggedSource(KindSphere, map[string]AttrValue{
		"radius": FloatValue(2.5),
	}), nil)
	if !ok {
		t.Fatalf("Expected record, got none")
	}
	if r.Radius != 2.5 || !r.Dirty.Has(BitRadius) {
		t.Errorf("Legacy alias should deserialize like the primary name, radius=%f dirty=%b", r.Radius, r.Dirty)
	}
}

func TestNewRecordAnglesConvertToRadians(t *testing.T) {
	r, ok := NewRecord(taggedSource(KindDistant, map[string]AttrValue{
		"inputs:shaping:cone:angle": FloatValue(90),
		"inputs:angle":              FloatValue(1),
	}), nil)
	if !ok {
		t.Fatalf("Expected record, got none")
	}
	if math.Abs(float64(r.ConeAngle)-math.Pi/2) > 1e-5 {
		t.Errorf("Expected cone angle pi/2, got %f", r.ConeAngle)
	}
	if math.Abs(float64(r.Angle)-math.Pi/180) > 1e-6 {
		t.Errorf("Expected angle of 1 degree in radians, got %f", r.Angle)
	}
}

func TestNewRecordClampsAuthoredValues(t *testing.T) {
	r, ok := NewRecord(taggedSource(KindSphere, map[string]AttrValue{
		"inputs:intensity":        FloatValue(-3),
		"inputs:colorTemperature": FloatValue(100000),
		"inputs:color":            Vec3Value(mgl32.Vec3{-1, 0.5, 2}),
	}), nil)
	if !ok {
		t.Fatalf("Expected record, got none")
	}
	if r.Intensity != 0 {
		t.Errorf("Negative intensity should clamp to 0, got %f", r.Intensity)
	}
	if r.ColorTemp != 10000 {
		t.Errorf("Color temperature should clamp to 10000, got %f", r.ColorTemp)
	}
	if r.Color.X() != 0 || r.Color.Y() != 0.5 {
		t.Errorf("Color should clamp componentwise, got %v", r.Color)
	}
}

func TestNewRecordUnsupportedKind(t *testing.T) {
	src := &mapSource{path: "/World/Geometry/mesh"}
	if r, ok := NewRecord(src, nil); ok || r != nil {
		t.Errorf("An untagged, non-capture light should not be constructed")
	}
}

// A fully defined source owns every field; merging anything afterwards must
// be a no-op.
func TestCompleteSourceRoundTrip(t *testing.T) {
	src := taggedSource(KindRect, map[string]AttrValue{
		"inputs:intensity": FloatValue(3),
		"inputs:width":     FloatValue(2),
	})
	src.complete = true

	r, ok := NewRecord(src, nil)
	if !ok {
		t.Fatalf("Expected record, got none")
	}
	if r.Dirty != allDirtyMask {
		t.Fatalf("A complete source should set every dirty bit, got %b", r.Dirty)
	}

	other, ok := NewRecord(taggedSource(KindRect, map[string]AttrValue{
		"inputs:intensity": FloatValue(9),
		"inputs:width":     FloatValue(8),
		"inputs:height":    FloatValue(7),
	}), nil)
	if !ok {
		t.Fatalf("Expected record, got none")
	}

	before := *r
	r.Merge(other)
	if *r != before {
		t.Errorf("Merging into a fully defined record changed it:\n before %+v\n after  %+v", before, *r)
	}
}

func TestCatalogueIntegrity(t *testing.T) {
	seenBits := map[DirtyBit]string{}
	seenNames := map[string]bool{}
	for i := range lightAttributes {
		d := &lightAttributes[i]
		if prev, dup := seenBits[d.Bit]; dup {
			t.Errorf("Attributes %s and %s share dirty bit %d", prev, d.Name, d.Bit)
		}
		seenBits[d.Bit] = d.Name
		if seenNames[d.Name] || seenNames[d.LegacyName] {
			t.Errorf("Duplicate attribute name %s", d.Name)
		}
		seenNames[d.Name] = true
		seenNames[d.LegacyName] = true
		if d.Bit >= BitTransform {
			t.Errorf("Attribute %s uses a reserved bit %d", d.Name, d.Bit)
		}

		r := newDefaultRecord(KindSphere)
		if got := d.load(r); got.Kind != d.Default.Kind {
			t.Errorf("Attribute %s: accessor kind %v does not match default kind %v", d.Name, got.Kind, d.Default.Kind)
		}
	}
}
