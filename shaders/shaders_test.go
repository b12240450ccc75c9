// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shaders

import (
	"strings"
	"testing"

	"github.com/gogpu/naga"
)

func TestSourcesContainEntryPoints(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			src, err := Source(name)
			if err != nil {
				t.Fatal(err)
			}
			for _, want := range []string{"@vertex", "@fragment", VertexEntryPoint, FragmentEntryPoint, "frame_info"} {
				if !strings.Contains(src, want) {
					t.Errorf("source missing %q", want)
				}
			}
		})
	}
}

func TestSourceUnknown(t *testing.T) {
	if _, err := Source("Blur"); err == nil {
		t.Error("Source(Blur) succeeded")
	}
}

func TestShadersParse(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			src, err := Source(name)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := naga.Parse(src); err != nil {
				t.Errorf("naga.Parse: %v", err)
			}
		})
	}
}

func TestCompileSPIRV(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			words, err := CompileSPIRV(name)
			if err != nil {
				t.Fatal(err)
			}
			// SPIR-V magic number
			if len(words) == 0 || words[0] != 0x07230203 {
				t.Errorf("bad SPIR-V header: %d words", len(words))
			}
		})
	}
}

func TestBindGroupLayoutEntries(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{Clip, 1},
		{SolidFill, 2},
		{LinearGradientFill, 2},
		{TextureFill, 4},
	}
	for _, tt := range tests {
		if got := len(BindGroupLayoutEntries(tt.name)); got != tt.want {
			t.Errorf("%s: %d entries, want %d", tt.name, got, tt.want)
		}
	}
	if VertexLayout(TextureFill).ArrayStride != 16 || VertexLayout(SolidFill).ArrayStride != 8 {
		t.Error("vertex strides do not match the renderer vertex types")
	}
}
