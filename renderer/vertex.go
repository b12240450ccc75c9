// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package renderer

import (
	"encoding/binary"
	"math"

	"golang.org/x/image/math/f32"
)

// VertexData is a vertex record that encodes itself in its GPU layout.
// Every value of a given type must encode to the same number of bytes.
type VertexData interface {
	Append(dst []byte) []byte
}

// SolidFillVertex is the vertex layout of the solid fill and clip pipelines.
type SolidFillVertex struct {
	Position f32.Vec2
}

// Append encodes the vertex as two little-endian float32 values.
func (v SolidFillVertex) Append(dst []byte) []byte {
	return appendFloats(dst, v.Position[0], v.Position[1])
}

// GradientFillVertex is the vertex layout of the gradient pipelines. The
// fragment stage derives gradient coordinates from the local position.
type GradientFillVertex struct {
	Position f32.Vec2
}

// Append encodes the vertex as two little-endian float32 values.
func (v GradientFillVertex) Append(dst []byte) []byte {
	return appendFloats(dst, v.Position[0], v.Position[1])
}

// TextureFillVertex is the vertex layout of the texture pipeline.
type TextureFillVertex struct {
	Position f32.Vec2
	TexCoord f32.Vec2
}

// Append encodes position then texture coordinate.
func (v TextureFillVertex) Append(dst []byte) []byte {
	return appendFloats(dst, v.Position[0], v.Position[1], v.TexCoord[0], v.TexCoord[1])
}

func appendFloats(dst []byte, vals ...float32) []byte {
	for _, f := range vals {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
	}
	return dst
}
