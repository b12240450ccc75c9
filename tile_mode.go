// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package contents

// TileMode controls how a gradient is sampled outside [0, 1].
type TileMode uint8

const (
	// TileModeClamp extends the edge colours. It is the default.
	TileModeClamp TileMode = iota
	// TileModeRepeat repeats the ramp.
	TileModeRepeat
	// TileModeMirror repeats the ramp, reversing every other period.
	TileModeMirror
	// TileModeDecal is transparent outside the ramp.
	TileModeDecal
)

var tileModeNames = [...]string{
	TileModeClamp:  "clamp",
	TileModeRepeat: "repeat",
	TileModeMirror: "mirror",
	TileModeDecal:  "decal",
}

// ShaderSelector returns the numeric code the gradient shaders switch on.
// The code equals the enum value; unknown modes select clamp.
func (m TileMode) ShaderSelector() float32 {
	if int(m) >= len(tileModeNames) {
		return float32(TileModeClamp)
	}
	return float32(m)
}

// String returns the lower-case name of the mode.
func (m TileMode) String() string {
	if int(m) < len(tileModeNames) {
		return tileModeNames[m]
	}
	return "unknown"
}

// ParseTileMode returns the mode with the given name.
func ParseTileMode(name string) (TileMode, bool) {
	for i, n := range tileModeNames {
		if n == name {
			return TileMode(i), true
		}
	}
	return TileModeClamp, false
}
