package relight

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// NoHistory marks a render light with no previous-frame slot.
const NoHistory = ^uint32(0)

type SphereLight struct {
	Position mgl32.Vec3
	Radiance mgl32.Vec3
	Radius   float32
	Shaping  Shaping
	Hash     uint64
}

type RectLight struct {
	Position   mgl32.Vec3
	Dimensions mgl32.Vec2
	XAxis      mgl32.Vec3
	YAxis      mgl32.Vec3
	Direction  mgl32.Vec3
	Radiance   mgl32.Vec3
	Shaping    Shaping
	Hash       uint64
}

type DiskLight struct {
	Position       mgl32.Vec3
	HalfDimensions mgl32.Vec2
	XAxis          mgl32.Vec3
	YAxis          mgl32.Vec3
	Direction      mgl32.Vec3
	Radiance       mgl32.Vec3
	Shaping        Shaping
	Hash           uint64
}

type CylinderLight struct {
	Position mgl32.Vec3
	Radius   float32
	Axis     mgl32.Vec3
	Length   float32
	Radiance mgl32.Vec3
	Hash     uint64
}

type DistantLight struct {
	Direction mgl32.Vec3
	HalfAngle float32
	Radiance  mgl32.Vec3
	Hash      uint64
}

// RenderLight is the finalized render primitive for one light. Exactly the
// payload matching Kind is populated. History carries the previous frame's
// slot handle for temporal accumulation; a kind change resets it.
type RenderLight struct {
	Kind    LightKind
	History uint32

	Sphere   SphereLight
	Rect     RectLight
	Disk     DiskLight
	Cylinder CylinderLight
	Distant  DistantLight
}

func exp2f(x float32) float32 {
	return float32(math.Exp2(float64(x)))
}

func mulVec3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a.X() * b.X(), a.Y() * b.Y(), a.Z() * b.Z()}
}

// Radiance combines color, intensity, exposure and the optional blackbody
// tint into the light's emitted radiance.
func (r *LightRecord) Radiance() mgl32.Vec3 {
	tint := mgl32.Vec3{1, 1, 1}
	if r.EnableColorTemp {
		tint = BlackbodyRGB(r.ColorTemp)
	}
	return mulVec3(r.Color.Mul(r.Intensity*exp2f(r.Exposure)), tint)
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// ToRenderLight converts a finalized record into its render primitive. prev,
// when non-nil, is the previous frame's primitive for the same identity; its
// history handle is carried forward if the kind matches. An Unknown record
// must be merged with a legacy call first and yields no light here.
func (r *LightRecord) ToRenderLight(prev *RenderLight) (RenderLight, bool) {
	if r.Kind == KindUnknown {
		getLogger().Debugf("refusing to convert an unresolved light record")
		return RenderLight{}, false
	}

	out := RenderLight{Kind: r.Kind, History: NoHistory}
	if prev != nil && prev.Kind == r.Kind {
		out.History = prev.History
	}

	radiance := r.Radiance()

	switch r.Kind {
	case KindSphere:
		// The three scales should agree for a sphere; when they do not, the
		// largest wins, matching the authoring tool's behavior.
		radiusScale := max32(max32(r.XScale, r.YScale), r.ZScale)
		out.Sphere = SphereLight{
			Position: r.Position,
			Radiance: radiance,
			Radius:   r.Radius * radiusScale,
			Shaping:  r.shaping(r.ZAxis),
			Hash:     r.Hash,
		}
	case KindRect:
		out.Rect = RectLight{
			Position:   r.Position,
			Dimensions: mgl32.Vec2{r.Width * r.XScale, r.Height * r.YScale},
			XAxis:      r.XAxis,
			YAxis:      r.YAxis,
			Direction:  r.ZAxis,
			Radiance:   radiance,
			Shaping:    r.shaping(r.ZAxis),
			Hash:       r.Hash,
		}
	case KindDisk:
		out.Disk = DiskLight{
			Position:       r.Position,
			HalfDimensions: mgl32.Vec2{r.Radius * r.XScale, r.Radius * r.YScale},
			XAxis:          r.XAxis,
			YAxis:          r.YAxis,
			Direction:      r.ZAxis,
			Radiance:       radiance,
			Shaping:        r.shaping(r.ZAxis),
			Hash:           r.Hash,
		}
	case KindCylinder:
		// Cylinders are directional around the X axis, not Z: length runs
		// along X and the circular profile scales by the larger of Y and Z.
		out.Cylinder = CylinderLight{
			Position: r.Position,
			Radius:   r.Radius * max32(r.YScale, r.ZScale),
			Axis:     r.XAxis,
			Length:   r.Length * r.XScale,
			Radiance: radiance,
			Hash:     r.Hash,
		}
	case KindDistant:
		out.Distant = DistantLight{
			Direction: r.ZAxis,
			HalfAngle: r.Angle / 2,
			Radiance:  radiance,
			Hash:      r.Hash,
		}
	default:
		return RenderLight{}, false
	}

	return out, true
}
