// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package renderer

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"golang.org/x/image/math/f32"
)

func TestVertexBufferBuilder(t *testing.T) {
	hb := NewHostBuffer()
	b := NewVertexBufferBuilder[SolidFillVertex](4)
	b.AppendVertex(SolidFillVertex{Position: f32.Vec2{1, 2}})
	b.AppendVertex(SolidFillVertex{Position: f32.Vec2{3, 4}})
	b.AppendVertex(SolidFillVertex{Position: f32.Vec2{5, 6}})

	vb, err := b.CreateVertexBuffer(hb)
	if err != nil {
		t.Fatal(err)
	}
	if vb.VertexCount != 3 || vb.Stride != 8 {
		t.Fatalf("VertexCount=%d Stride=%d, want 3 and 8", vb.VertexCount, vb.Stride)
	}

	data := vb.View.Bytes()
	if len(data) != 24 {
		t.Fatalf("len(data) = %d, want 24", len(data))
	}
	for i, want := range []float32{1, 2, 3, 4, 5, 6} {
		got := math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
		if got != want {
			t.Errorf("float %d = %v, want %v", i, got, want)
		}
	}
}

func TestVertexBufferBuilderWriteOnce(t *testing.T) {
	hb := NewHostBuffer()
	b := NewVertexBufferBuilder[TextureFillVertex](0)
	b.AppendVertex(TextureFillVertex{})

	vb, err := b.CreateVertexBuffer(hb)
	if err != nil {
		t.Fatal(err)
	}
	if vb.Stride != 16 {
		t.Errorf("Stride = %d, want 16", vb.Stride)
	}

	b.AppendVertex(TextureFillVertex{})
	if b.VertexCount() != 1 {
		t.Errorf("VertexCount() = %d after finalize, want 1", b.VertexCount())
	}
	if _, err := b.CreateVertexBuffer(hb); !errors.Is(err, ErrBuilderFinalized) {
		t.Errorf("second CreateVertexBuffer err = %v, want ErrBuilderFinalized", err)
	}
}

func TestVertexBufferBuilderOutOfMemory(t *testing.T) {
	hb := NewHostBuffer(WithFrameCapacity(16))
	b := NewVertexBufferBuilder[GradientFillVertex](3)
	for i := 0; i < 3; i++ {
		b.AppendVertex(GradientFillVertex{})
	}
	if _, err := b.CreateVertexBuffer(hb); !errors.Is(err, ErrOutOfMemory) {
		t.Errorf("err = %v, want ErrOutOfMemory", err)
	}
}
