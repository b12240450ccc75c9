// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package contents

import (
	"math"
	"sync"
	"testing"

	"github.com/gogpu/contents/geometry"
	"github.com/gogpu/contents/renderer"
)

type fakeFactory struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeFactory) CreatePipeline(desc renderer.PipelineDescriptor) (renderer.Pipeline, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &renderer.DescriptorPipeline{Desc: desc}, nil
}

func (f *fakeFactory) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// countingPass records how often AddCommand is invoked.
type countingPass struct {
	*renderer.CommandPass
	adds int
}

func (p *countingPass) AddCommand(cmd renderer.Command) bool {
	p.adds++
	return p.CommandPass.AddCommand(cmd)
}

func newTestPass(opts ...renderer.HostBufferOption) *countingPass {
	hb := renderer.NewHostBuffer(opts...)
	return &countingPass{CommandPass: renderer.NewCommandPass(geometry.ISize{Width: 100, Height: 100}, hb)}
}

func unitSquare() *geometry.Path {
	return geometry.NewPathBuilder().AddRect(geometry.MakeXYWH(0, 0, 1, 1)).TakePath()
}

func nanPath() *geometry.Path {
	return geometry.NewPathBuilder().
		MoveTo(0, 0).
		LineTo(math.NaN(), 1).
		LineTo(1, 1).
		Close().
		TakePath()
}

func pentagram(center geometry.Point, r float64) *geometry.Path {
	pts := make([]geometry.Point, 5)
	for i := range pts {
		a := float64(i)*4*math.Pi/5 - math.Pi/2
		pts[i] = geometry.Pt(center.X+r*math.Cos(a), center.Y+r*math.Sin(a))
	}
	return geometry.NewPathBuilder().AddPolyline(pts...).TakePath()
}

func onlyCommand(t *testing.T, pass *countingPass) renderer.Command {
	t.Helper()
	cmds := pass.Commands()
	if len(cmds) != 1 {
		t.Fatalf("got %d commands, want 1", len(cmds))
	}
	return cmds[0]
}
