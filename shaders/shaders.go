// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package shaders holds the WGSL programs of the content pipelines and the
// binary layout of their uniform blocks.
//
// Every program uses bind group 0:
//
//	binding 0  FrameInfo           vertex stage
//	binding 1  per-shader info     fragment stage
//	binding 2  texture_2d<f32>     fragment stage (TextureFill only)
//	binding 3  sampler             fragment stage (TextureFill only)
//
// Entry points are vs_main and fs_main.
package shaders

import (
	"embed"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
)

// Shader names.
const (
	SolidFill          = "SolidFill"
	LinearGradientFill = "LinearGradientFill"
	RadialGradientFill = "RadialGradientFill"
	SweepGradientFill  = "SweepGradientFill"
	TextureFill        = "TextureFill"
	Clip               = "Clip"
)

// Binding slots in group 0.
const (
	FrameInfoBinding    = 0
	FragmentInfoBinding = 1
	TextureBinding      = 2
	SamplerBinding      = 3
)

// Entry points of every program.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

//go:embed wgsl/*.wgsl
var wgslFS embed.FS

var files = map[string]string{
	SolidFill:          "wgsl/solid_fill.wgsl",
	LinearGradientFill: "wgsl/linear_gradient_fill.wgsl",
	RadialGradientFill: "wgsl/radial_gradient_fill.wgsl",
	SweepGradientFill:  "wgsl/sweep_gradient_fill.wgsl",
	TextureFill:        "wgsl/texture_fill.wgsl",
	Clip:               "wgsl/clip.wgsl",
}

// Names returns all shader names in a fixed order.
func Names() []string {
	return []string{SolidFill, LinearGradientFill, RadialGradientFill, SweepGradientFill, TextureFill, Clip}
}

// Source returns the WGSL source of the named shader.
func Source(name string) (string, error) {
	file, ok := files[name]
	if !ok {
		return "", fmt.Errorf("shaders: unknown shader %q", name)
	}
	data, err := wgslFS.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("shaders: read %s: %w", file, err)
	}
	return string(data), nil
}

// CompileSPIRV compiles the named shader to SPIR-V words.
func CompileSPIRV(name string) ([]uint32, error) {
	src, err := Source(name)
	if err != nil {
		return nil, err
	}
	spirvBytes, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("shaders: compile %s: %w", name, err)
	}

	// SPIR-V is little-endian 32-bit words
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// VertexLayout returns the vertex buffer layout the named shader consumes.
func VertexLayout(name string) gputypes.VertexBufferLayout {
	if name == TextureFill {
		return gputypes.VertexBufferLayout{
			ArrayStride: 16,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
			},
		}
	}
	return gputypes.VertexBufferLayout{
		ArrayStride: 8,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
		},
	}
}

// FragmentInfoSize returns the size of the named shader's fragment uniform,
// or 0 when it has none.
func FragmentInfoSize(name string) uint64 {
	switch name {
	case SolidFill:
		return SolidFillInfoSize
	case LinearGradientFill:
		return LinearGradientInfoSize
	case RadialGradientFill:
		return RadialGradientInfoSize
	case SweepGradientFill:
		return SweepGradientInfoSize
	case TextureFill:
		return TextureFillInfoSize
	default:
		return 0
	}
}

// BindGroupLayoutEntries returns the group 0 layout of the named shader.
func BindGroupLayoutEntries(name string) []gputypes.BindGroupLayoutEntry {
	entries := []gputypes.BindGroupLayoutEntry{{
		Binding:    FrameInfoBinding,
		Visibility: gputypes.ShaderStageVertex,
		Buffer: &gputypes.BufferBindingLayout{
			Type:           gputypes.BufferBindingTypeUniform,
			MinBindingSize: FrameInfoSize,
		},
	}}
	if size := FragmentInfoSize(name); size > 0 {
		entries = append(entries, gputypes.BindGroupLayoutEntry{
			Binding:    FragmentInfoBinding,
			Visibility: gputypes.ShaderStageFragment,
			Buffer: &gputypes.BufferBindingLayout{
				Type:           gputypes.BufferBindingTypeUniform,
				MinBindingSize: size,
			},
		})
	}
	if name == TextureFill {
		entries = append(entries,
			gputypes.BindGroupLayoutEntry{
				Binding:    TextureBinding,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			gputypes.BindGroupLayoutEntry{
				Binding:    SamplerBinding,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		)
	}
	return entries
}
