// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shaders

import (
	"encoding/binary"
	"errors"
	"math"

	"golang.org/x/image/math/f32"

	"github.com/gogpu/contents/geometry"
)

// ErrShortBuffer is returned when decoding from fewer bytes than the layout needs.
var ErrShortBuffer = errors.New("shaders: buffer too short for uniform layout")

// Uniform block sizes in bytes. Each is a multiple of 16 as required for
// uniform buffer bindings.
const (
	FrameInfoSize          = 128
	SolidFillInfoSize      = 16
	LinearGradientInfoSize = 64
	RadialGradientInfoSize = 48
	SweepGradientInfoSize  = 64
	TextureFillInfoSize    = 16
)

// Mat4 is a 4x4 float32 matrix in column-major order, matching WGSL
// mat4x4<f32>.
type Mat4 [16]float32

// MatrixToMat4 narrows a geometry matrix for upload.
func MatrixToMat4(m geometry.Matrix) Mat4 {
	var out Mat4
	for i, v := range m {
		out[i] = float32(v)
	}
	return out
}

// Vec2 narrows a point for upload.
func Vec2(p geometry.Point) f32.Vec2 {
	return f32.Vec2{float32(p.X), float32(p.Y)}
}

// FrameInfo is the vertex-stage uniform shared by all content shaders.
//
//	offset 0   mvp    mat4x4<f32>  clip-space transform
//	offset 64  matrix mat4x4<f32>  local-space to paint-space transform
type FrameInfo struct {
	MVP    Mat4
	Matrix Mat4
}

// Append encodes the block in its WGSL layout.
func (u FrameInfo) Append(dst []byte) []byte {
	dst = appendMat4(dst, u.MVP)
	return appendMat4(dst, u.Matrix)
}

// DecodeFrameInfo decodes a FrameInfo block.
func DecodeFrameInfo(b []byte) (FrameInfo, error) {
	if len(b) < FrameInfoSize {
		return FrameInfo{}, ErrShortBuffer
	}
	return FrameInfo{MVP: readMat4(b[0:]), Matrix: readMat4(b[64:])}, nil
}

// SolidFillInfo is the fragment uniform of the solid fill shader.
//
//	offset 0 color vec4<f32>  premultiplied
type SolidFillInfo struct {
	Color f32.Vec4
}

// Append encodes the block in its WGSL layout.
func (u SolidFillInfo) Append(dst []byte) []byte {
	return appendFloats(dst, u.Color[:]...)
}

// DecodeSolidFillInfo decodes a SolidFillInfo block.
func DecodeSolidFillInfo(b []byte) (SolidFillInfo, error) {
	if len(b) < SolidFillInfoSize {
		return SolidFillInfo{}, ErrShortBuffer
	}
	return SolidFillInfo{Color: readVec4(b)}, nil
}

// LinearGradientInfo is the fragment uniform of the linear gradient shader.
//
//	offset 0  start_point vec2<f32>
//	offset 8  end_point   vec2<f32>
//	offset 16 start_color vec4<f32>  premultiplied
//	offset 32 end_color   vec4<f32>  premultiplied
//	offset 48 tile_mode   f32
type LinearGradientInfo struct {
	StartPoint f32.Vec2
	EndPoint   f32.Vec2
	StartColor f32.Vec4
	EndColor   f32.Vec4
	TileMode   float32
}

// Append encodes the block in its WGSL layout.
func (u LinearGradientInfo) Append(dst []byte) []byte {
	dst = appendFloats(dst, u.StartPoint[0], u.StartPoint[1], u.EndPoint[0], u.EndPoint[1])
	dst = appendFloats(dst, u.StartColor[:]...)
	dst = appendFloats(dst, u.EndColor[:]...)
	return appendFloats(dst, u.TileMode, 0, 0, 0)
}

// DecodeLinearGradientInfo decodes a LinearGradientInfo block.
func DecodeLinearGradientInfo(b []byte) (LinearGradientInfo, error) {
	if len(b) < LinearGradientInfoSize {
		return LinearGradientInfo{}, ErrShortBuffer
	}
	return LinearGradientInfo{
		StartPoint: readVec2(b[0:]),
		EndPoint:   readVec2(b[8:]),
		StartColor: readVec4(b[16:]),
		EndColor:   readVec4(b[32:]),
		TileMode:   readFloat(b[48:]),
	}, nil
}

// RadialGradientInfo is the fragment uniform of the radial gradient shader.
//
//	offset 0  center       vec2<f32>
//	offset 8  radius       f32
//	offset 12 tile_mode    f32
//	offset 16 center_color vec4<f32>  premultiplied
//	offset 32 edge_color   vec4<f32>  premultiplied
type RadialGradientInfo struct {
	Center      f32.Vec2
	Radius      float32
	TileMode    float32
	CenterColor f32.Vec4
	EdgeColor   f32.Vec4
}

// Append encodes the block in its WGSL layout.
func (u RadialGradientInfo) Append(dst []byte) []byte {
	dst = appendFloats(dst, u.Center[0], u.Center[1], u.Radius, u.TileMode)
	dst = appendFloats(dst, u.CenterColor[:]...)
	return appendFloats(dst, u.EdgeColor[:]...)
}

// DecodeRadialGradientInfo decodes a RadialGradientInfo block.
func DecodeRadialGradientInfo(b []byte) (RadialGradientInfo, error) {
	if len(b) < RadialGradientInfoSize {
		return RadialGradientInfo{}, ErrShortBuffer
	}
	return RadialGradientInfo{
		Center:      readVec2(b[0:]),
		Radius:      readFloat(b[8:]),
		TileMode:    readFloat(b[12:]),
		CenterColor: readVec4(b[16:]),
		EdgeColor:   readVec4(b[32:]),
	}, nil
}

// SweepGradientInfo is the fragment uniform of the sweep gradient shader.
// The gradient parameter is (angle/2π + Bias) * Scale.
//
//	offset 0  center      vec2<f32>
//	offset 8  bias        f32
//	offset 12 scale       f32
//	offset 16 start_color vec4<f32>  premultiplied
//	offset 32 end_color   vec4<f32>  premultiplied
//	offset 48 tile_mode   f32
type SweepGradientInfo struct {
	Center     f32.Vec2
	Bias       float32
	Scale      float32
	StartColor f32.Vec4
	EndColor   f32.Vec4
	TileMode   float32
}

// Append encodes the block in its WGSL layout.
func (u SweepGradientInfo) Append(dst []byte) []byte {
	dst = appendFloats(dst, u.Center[0], u.Center[1], u.Bias, u.Scale)
	dst = appendFloats(dst, u.StartColor[:]...)
	dst = appendFloats(dst, u.EndColor[:]...)
	return appendFloats(dst, u.TileMode, 0, 0, 0)
}

// DecodeSweepGradientInfo decodes a SweepGradientInfo block.
func DecodeSweepGradientInfo(b []byte) (SweepGradientInfo, error) {
	if len(b) < SweepGradientInfoSize {
		return SweepGradientInfo{}, ErrShortBuffer
	}
	return SweepGradientInfo{
		Center:     readVec2(b[0:]),
		Bias:       readFloat(b[8:]),
		Scale:      readFloat(b[12:]),
		StartColor: readVec4(b[16:]),
		EndColor:   readVec4(b[32:]),
		TileMode:   readFloat(b[48:]),
	}, nil
}

// TextureFillInfo is the fragment uniform of the texture shader.
//
//	offset 0 alpha f32
type TextureFillInfo struct {
	Alpha float32
}

// Append encodes the block in its WGSL layout.
func (u TextureFillInfo) Append(dst []byte) []byte {
	return appendFloats(dst, u.Alpha, 0, 0, 0)
}

// DecodeTextureFillInfo decodes a TextureFillInfo block.
func DecodeTextureFillInfo(b []byte) (TextureFillInfo, error) {
	if len(b) < TextureFillInfoSize {
		return TextureFillInfo{}, ErrShortBuffer
	}
	return TextureFillInfo{Alpha: readFloat(b)}, nil
}

func appendFloats(dst []byte, vals ...float32) []byte {
	for _, f := range vals {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
	}
	return dst
}

func appendMat4(dst []byte, m Mat4) []byte {
	return appendFloats(dst, m[:]...)
}

func readFloat(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

func readVec2(b []byte) f32.Vec2 {
	return f32.Vec2{readFloat(b), readFloat(b[4:])}
}

func readVec4(b []byte) f32.Vec4 {
	return f32.Vec4{readFloat(b), readFloat(b[4:]), readFloat(b[8:]), readFloat(b[12:])}
}

func readMat4(b []byte) Mat4 {
	var m Mat4
	for i := range m {
		m[i] = readFloat(b[i*4:])
	}
	return m
}
