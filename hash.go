package relight

import (
	"encoding/binary"
	"math"

	"github.com/OneOfOne/xxhash"
	"github.com/go-gl/mathgl/mgl32"
)

// Stable identity hashing. The accumulation order, the byte encodings and
// the frozen constants below are a hard compatibility contract: replacement
// assets match lights by these 64-bit values across code revisions, so none
// of this may drift when the record's live fields evolve. Extending the
// hashed field set requires a new version seed, never a silent change.
//
// Values fold as little-endian IEEE-754 float32; chains thread the previous
// hash through as the seed of the next block, XXH64 throughout.

// Primitive ids seed the per-variant chains.
const (
	primSphere uint64 = iota
	primRect
	primDisk
	primCylinder
	primDistant
)

// hashSeedV1 is the version seed of the authored-record hash. Bump by adding
// a new constant, never by editing this one.
const hashSeedV1 uint64 = 0x8C5D64F1A3B72E19

// Frozen legacy constants. Both are artifacts of the first implementation
// accidentally folding option-derived values into the hash; they are kept
// verbatim so lights converted by any revision hash identically.
const (
	legacyStableRadius    = float32(4.0)
	legacyStableHalfAngle = float32(0.0349) / 2
)

func foldBytes(h uint64, b []byte) uint64 {
	return xxhash.Checksum64S(b, h)
}

func foldFloat(h uint64, f float32) uint64 {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], math.Float32bits(f))
	return foldBytes(h, b[:])
}

func foldVec3(h uint64, v mgl32.Vec3) uint64 {
	var b [12]byte
	binary.LittleEndian.PutUint32(b[0:], math.Float32bits(v.X()))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(v.Y()))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(v.Z()))
	return foldBytes(h, b[:])
}

// canonFloat collapses negative zero to positive zero. IEEE-754 gives the
// two zeros distinct bit patterns, and transform extraction can produce
// -0.0 axis components where an authored default holds +0.0; folding them
// identically keeps the identity hash a function of the value, not of the
// sign bit. Part of the frozen contract for authored records. The legacy
// chains fold raw host bits and stay untouched.
func canonFloat(f float32) float32 {
	if f == 0 {
		return 0
	}
	return f
}

func canonVec3(v mgl32.Vec3) mgl32.Vec3 {
	for i, f := range v {
		if f == 0 {
			v[i] = 0
		}
	}
	return v
}

func foldUint64(h uint64, v uint64) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return foldBytes(h, b[:])
}

// stableHash encodes the shaping as a frozen 25-byte block: enabled flag,
// primary axis, cone cosine, softness, focus.
func (s Shaping) stableHash() uint64 {
	var b [25]byte
	if s.Enabled {
		b[0] = 1
	}
	binary.LittleEndian.PutUint32(b[1:], math.Float32bits(s.PrimaryAxis.X()))
	binary.LittleEndian.PutUint32(b[5:], math.Float32bits(s.PrimaryAxis.Y()))
	binary.LittleEndian.PutUint32(b[9:], math.Float32bits(s.PrimaryAxis.Z()))
	binary.LittleEndian.PutUint32(b[13:], math.Float32bits(s.CosConeAngle))
	binary.LittleEndian.PutUint32(b[17:], math.Float32bits(s.ConeSoftness))
	binary.LittleEndian.PutUint32(b[21:], math.Float32bits(s.FocusExponent))
	return xxhash.Checksum64S(b[:], 0)
}

// hashLegacySphere computes the frozen identity of a point/spot conversion.
// Expects the raw host position and a shaping built from the raw host
// direction. The radius folded is the frozen constant, not the converted
// radius, and radiance is excluded so identity stays independent of
// brightness tuning.
func hashLegacySphere(originalPosition mgl32.Vec3, stableShaping Shaping) uint64 {
	h := primSphere
	h = foldVec3(h, originalPosition)
	h = foldFloat(h, legacyStableRadius)
	return foldUint64(stableShaping.stableHash(), h)
}

// hashLegacyDistant computes the frozen identity of a directional
// conversion. The chain is seeded with the rect primitive id, a historical
// accident that must not be corrected, and folds the raw unnormalized host
// direction plus a frozen half-angle.
func hashLegacyDistant(originalDirection mgl32.Vec3) uint64 {
	h := primRect
	h = foldVec3(h, originalDirection)
	return foldFloat(h, legacyStableHalfAngle)
}

func kindPrim(k LightKind) uint64 {
	switch k {
	case KindSphere:
		return primSphere
	case KindRect:
		return primRect
	case KindDisk:
		return primDisk
	case KindCylinder:
		return primCylinder
	case KindDistant:
		return primDistant
	}
	return primSphere
}

// stableHash computes the versioned identity of an authored record: version
// seed and primitive id, position, the three axes, then the variant's
// dimension subset. Zeros fold sign-canonicalized; radiance is excluded.
func (r *LightRecord) stableHash() uint64 {
	h := hashSeedV1 ^ kindPrim(r.Kind)
	h = foldVec3(h, canonVec3(r.Position))
	h = foldVec3(h, canonVec3(r.XAxis))
	h = foldVec3(h, canonVec3(r.YAxis))
	h = foldVec3(h, canonVec3(r.ZAxis))

	switch r.Kind {
	case KindSphere, KindDisk:
		h = foldFloat(h, canonFloat(r.Radius))
	case KindRect:
		h = foldFloat(h, canonFloat(r.Width))
		h = foldFloat(h, canonFloat(r.Height))
	case KindCylinder:
		h = foldFloat(h, canonFloat(r.Radius))
		h = foldFloat(h, canonFloat(r.Length))
	case KindDistant:
		h = foldFloat(h, canonFloat(r.Angle))
	}
	return h
}
