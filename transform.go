package relight

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Light transforms use the row-vector convention: rows 0..2 of the matrix are
// the X/Y/Z axes scaled by the light's scale, row 3 is the translation.

// TransformFromRows assembles a light transform from its three axis rows and
// translation. mgl32 matrices are column-major in memory, so entries are
// placed explicitly.
func TransformFromRows(x, y, z, pos mgl32.Vec3) mgl32.Mat4 {
	var m mgl32.Mat4
	m[0], m[4], m[8], m[12] = x.X(), x.Y(), x.Z(), 0
	m[1], m[5], m[9], m[13] = y.X(), y.Y(), y.Z(), 0
	m[2], m[6], m[10], m[14] = z.X(), z.Y(), z.Z(), 0
	m[3], m[7], m[11], m[15] = pos.X(), pos.Y(), pos.Z(), 1
	return m
}

func transformRows(m *mgl32.Mat4) (x, y, z, pos mgl32.Vec3) {
	return m.Row(0).Vec3(), m.Row(1).Vec3(), m.Row(2).Vec3(), m.Row(3).Vec3()
}

// hasZeroAxis reports whether any axis row of the transform is the zero
// vector. Such transforms cannot yield valid light directions and reject
// record creation outright.
func hasZeroAxis(m *mgl32.Mat4) bool {
	x, y, z, _ := transformRows(m)
	zero := mgl32.Vec3{}
	return x == zero || y == zero || z == zero
}

// splitAxis normalizes an axis row and returns its pre-normalization
// magnitude as the scale. A zero vector is passed through for the caller to
// sanitize.
func splitAxis(v mgl32.Vec3) (mgl32.Vec3, float32) {
	l := v.Len()
	if l == 0 {
		return v, 0
	}
	return v.Mul(1 / l), l
}

// sanitizeAxis substitutes the canonical fallback for an axis that collapsed
// to the zero vector. The common zero-scale case is rejected before record
// creation; this guards the remaining degenerate sub-cases without
// propagating NaNs. Silent fallback, not an error.
func sanitizeAxis(v, fallback mgl32.Vec3) mgl32.Vec3 {
	if (v == mgl32.Vec3{}) {
		return fallback
	}
	return v
}

func (r *LightRecord) extractTransform(localToRoot *mgl32.Mat4) {
	if localToRoot == nil {
		return
	}

	x, y, z, pos := transformRows(localToRoot)

	r.XAxis, r.XScale = splitAxis(x)
	r.YAxis, r.YScale = splitAxis(y)
	r.ZAxis, r.ZScale = splitAxis(z)
	r.Position = pos

	r.XAxis = sanitizeAxis(r.XAxis, mgl32.Vec3{1, 0, 0})
	r.YAxis = sanitizeAxis(r.YAxis, mgl32.Vec3{0, 1, 0})
	r.ZAxis = sanitizeAxis(r.ZAxis, mgl32.Vec3{0, 0, 1})

	// Preserved compatibility quirk: sphere and unresolved lights flip the Z
	// axis here. Replacement matching depends on the flipped axis, so this
	// stays exactly as-is.
	if r.Kind == KindSphere || r.Kind == KindUnknown {
		r.ZAxis = r.ZAxis.Mul(-1)
	}

	// Negative scale folds into an axis flip, independently per axis, so
	// scales stay strictly positive and direction-like lights still point
	// the mirrored way.
	if r.XScale < 0 {
		r.XScale = -r.XScale
		r.XAxis = r.XAxis.Mul(-1)
	}
	if r.YScale < 0 {
		r.YScale = -r.YScale
		r.YAxis = r.YAxis.Mul(-1)
	}
	if r.ZScale < 0 {
		r.ZScale = -r.ZScale
		r.ZAxis = r.ZAxis.Mul(-1)
	}

	r.Dirty.Set(BitTransform)
}

// unitLengthTolerance is the accepted deviation from unit length for
// extracted axes.
const unitLengthTolerance = 0.01

func approxNormalized(v mgl32.Vec3, tolerance float32) bool {
	l := v.Len()
	return l > 1-tolerance && l < 1+tolerance
}
