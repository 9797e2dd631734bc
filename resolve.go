package relight

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// Captured lights use a standardized identity path: a fixed prefix followed
// by exactly sixteen hex digits, e.g. /RootNode/lights/light_0123456789ABCDEF.
// Lights matching this grammar without an explicit shape tag resolve to
// Unknown and are upgraded later from the host's legacy call.
const (
	captureRootPath    = "/RootNode"
	captureLightsToken = "lights"
	captureLightPrefix = "light_"

	capturePathPrefix = captureRootPath + "/" + captureLightsToken + "/" + captureLightPrefix
	captureHexDigits  = 16
)

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// isCapturePath checks the identity path against the capture grammar. The
// grammar is a single fixed shape, so a hand-rolled check replaces a regexp.
func isCapturePath(path string) bool {
	if len(path) != len(capturePathPrefix)+captureHexDigits {
		return false
	}
	if path[:len(capturePathPrefix)] != capturePathPrefix {
		return false
	}
	for i := len(capturePathPrefix); i < len(path); i++ {
		if !isHexDigit(path[i]) {
			return false
		}
	}
	return true
}

// NewCapturePath mints a fresh capture identity path.
func NewCapturePath() string {
	id := uuid.New()
	return fmt.Sprintf("%s%016X", capturePathPrefix, binary.BigEndian.Uint64(id[:8]))
}

// resolveKind determines a light's shape variant. Priority: an explicit
// shape tag on the source, then the capture-path convention (deferred as
// Unknown), otherwise the light is unsupported.
func resolveKind(src AttrSource) (LightKind, bool) {
	if k, ok := src.ShapeKind(); ok {
		switch k {
		case KindSphere, KindRect, KindDisk, KindCylinder, KindDistant:
			return k, true
		}
		return KindUnknown, false
	}
	if isCapturePath(src.Path()) {
		return KindUnknown, true
	}
	return KindUnknown, false
}

// resolveLegacyKind maps a validated legacy light type onto the shape it
// upgrades an Unknown record to.
func resolveLegacyKind(t LegacyType) LightKind {
	if t == LegacyDirectional {
		return KindDistant
	}
	return KindSphere
}
