// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package renderer

import (
	"errors"
	"fmt"
)

// ErrBuilderFinalized is returned when a VertexBufferBuilder is used after
// CreateVertexBuffer.
var ErrBuilderFinalized = errors.New("renderer: vertex buffer builder already finalized")

// vertexAlignment is the offset alignment of vertex data in the arena.
const vertexAlignment = 16

// VertexBuffer is a finalized mesh living in a HostBuffer frame arena.
type VertexBuffer struct {
	View        BufferView
	VertexCount uint32
	Stride      uint32
}

// VertexBufferBuilder accumulates vertex records in emission order and copies
// them into transient memory once. A builder serves exactly one mesh; create
// a new one per draw.
type VertexBufferBuilder[T VertexData] struct {
	vertices  []T
	finalized bool
}

// NewVertexBufferBuilder creates a builder with room for n vertices.
func NewVertexBufferBuilder[T VertexData](n int) *VertexBufferBuilder[T] {
	return &VertexBufferBuilder[T]{vertices: make([]T, 0, n)}
}

// AppendVertex adds a vertex. Vertices appended after CreateVertexBuffer are
// dropped.
func (b *VertexBufferBuilder[T]) AppendVertex(v T) {
	if b.finalized {
		return
	}
	b.vertices = append(b.vertices, v)
}

// VertexCount returns the number of vertices appended so far.
func (b *VertexBufferBuilder[T]) VertexCount() int {
	return len(b.vertices)
}

// Vertices returns the accumulated vertices. The slice must not be modified.
func (b *VertexBufferBuilder[T]) Vertices() []T {
	return b.vertices
}

// Stride returns the encoded size of one vertex in bytes.
func (b *VertexBufferBuilder[T]) Stride() int {
	var zero T
	return len(zero.Append(nil))
}

// CreateVertexBuffer encodes the vertices into hb and finalizes the builder.
func (b *VertexBufferBuilder[T]) CreateVertexBuffer(hb *HostBuffer) (VertexBuffer, error) {
	if b.finalized {
		return VertexBuffer{}, ErrBuilderFinalized
	}
	b.finalized = true

	stride := b.Stride()
	view, err := hb.EmplaceFunc(stride*len(b.vertices), vertexAlignment, func(dst []byte) {
		buf := dst[:0]
		for _, v := range b.vertices {
			buf = v.Append(buf)
		}
	})
	if err != nil {
		return VertexBuffer{}, fmt.Errorf("create vertex buffer: %w", err)
	}
	return VertexBuffer{
		View:        view,
		VertexCount: uint32(len(b.vertices)),
		Stride:      uint32(stride),
	}, nil
}
