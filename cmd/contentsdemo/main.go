// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command contentsdemo renders a TOML scene to a PNG file.
//
// Usage:
//
//	contentsdemo [-scene file.toml] [-output out.png] [-backend software|wgpu]
package main

import (
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/contents"
	"github.com/gogpu/contents/backend"
	_ "github.com/gogpu/contents/backend/software"
	"github.com/gogpu/contents/backend/wgpu"
	"github.com/gogpu/contents/config"
)

//go:embed scene.toml
var defaultScene []byte

func main() {
	var (
		scenePath = flag.String("scene", "", "scene file (default: built-in demo scene)")
		output    = flag.String("output", "contents.png", "output file")
		name      = flag.String("backend", "", "backend name (default: scene backend, then best available)")
	)
	flag.Parse()

	if err := run(*scenePath, *output, *name); err != nil {
		log.Fatal(err)
	}
}

func run(scenePath, output, name string) error {
	scene, err := loadScene(scenePath)
	if err != nil {
		return err
	}
	level, err := scene.Level()
	if err != nil {
		return err
	}
	contents.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	defer contents.SetLogger(nil)

	if name == "" {
		name = scene.Backend
	}
	b, err := openBackend(name, scene.SampleCount)
	if err != nil {
		return err
	}
	defer b.Close()

	entities, err := scene.Entities()
	if err != nil {
		return err
	}
	img, err := render(b, scene, entities)
	if err != nil {
		return err
	}
	if err := savePNG(output, img); err != nil {
		return err
	}
	contents.Logger().Info("contentsdemo: saved", "file", output, "backend", b.Name(),
		"width", scene.Width, "height", scene.Height)
	return nil
}

func loadScene(path string) (*config.Scene, error) {
	if path == "" {
		return config.Parse(defaultScene)
	}
	return config.Load(path)
}

// openBackend opens the named backend, or the best available one for an
// empty name. A sample count only applies to wgpu.
func openBackend(name string, samples uint32) (backend.Backend, error) {
	switch {
	case name == backend.NameWGPU && samples > 0:
		return wgpu.NewHeadless(wgpu.WithSampleCount(samples))
	case name != "":
		return backend.Open(name)
	default:
		return backend.Default()
	}
}

func render(b backend.Backend, scene *config.Scene, entities []*contents.Entity) (*image.RGBA, error) {
	ctx := contents.NewContentContext(b.PipelineFactory())
	defer ctx.Close()

	frame, err := b.BeginFrame(scene.Size())
	if err != nil {
		return nil, err
	}
	renderErr := contents.NewEntityPass(entities...).Render(ctx, frame)
	if renderErr != nil && !errors.Is(renderErr, contents.ErrContentFailed) {
		return nil, renderErr
	}
	img, err := frame.Finish()
	if err != nil {
		return nil, err
	}
	if renderErr != nil {
		contents.Logger().Warn("contentsdemo: some entities were skipped", "err", renderErr)
	}
	return img, nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
