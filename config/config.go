// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/contents"
	"github.com/gogpu/contents/geometry"
	"github.com/gogpu/contents/renderer"
)

// Default canvas size used when a scene leaves it unset.
const (
	DefaultWidth  = 512
	DefaultHeight = 512
)

// ErrInvalidScene is wrapped by every validation error.
var ErrInvalidScene = errors.New("config: invalid scene")

// Scene is a declarative description of one frame.
type Scene struct {
	Width       int      `toml:"width"`
	Height      int      `toml:"height"`
	Backend     string   `toml:"backend"`
	SampleCount uint32   `toml:"sample_count"`
	LogLevel    string   `toml:"log_level"`
	EntityList  []Entity `toml:"entity"`
}

// Entity describes one entity of the scene. A clip entity raises the
// stencil depth of every entity that follows it until the matching restore.
type Entity struct {
	Blend     string    `toml:"blend"`
	Transform Transform `toml:"transform"`
	Path      Path      `toml:"path"`
	Paint     Paint     `toml:"paint"`
}

// Transform is applied as translate * rotate * scale.
type Transform struct {
	Translate []float64 `toml:"translate"`
	Scale     []float64 `toml:"scale"`
	Rotate    float64   `toml:"rotate"` // degrees
}

// Path kinds.
const (
	PathRect        = "rect"
	PathRoundedRect = "rounded_rect"
	PathCircle      = "circle"
	PathOval        = "oval"
	PathPolygon     = "polygon"
	PathPolyline    = "polyline"
)

// Path describes a fill path. Which fields are read depends on Kind.
type Path struct {
	Kind   string      `toml:"kind"`
	Rect   []float64   `toml:"rect"` // x, y, width, height
	Radius float64     `toml:"radius"`
	Center []float64   `toml:"center"`
	Sides  int         `toml:"sides"`
	Points [][]float64 `toml:"points"`
	Fill   string      `toml:"fill"` // nonzero or evenodd
}

// Paint types.
const (
	PaintSolid   = "solid"
	PaintLinear  = "linear"
	PaintRadial  = "radial"
	PaintSweep   = "sweep"
	PaintTexture = "texture"
	PaintClip    = "clip"
	PaintRestore = "restore"
)

// Paint selects the contents of an entity.
type Paint struct {
	Type       string    `toml:"type"`
	Color      string    `toml:"color"`
	Colors     []string  `toml:"colors"`
	Tile       string    `toml:"tile"`
	Start      []float64 `toml:"start"`
	End        []float64 `toml:"end"`
	Center     []float64 `toml:"center"`
	Radius     float64   `toml:"radius"`
	StartAngle float64   `toml:"start_angle"` // degrees
	EndAngle   float64   `toml:"end_angle"`   // degrees
	Opacity    *float64  `toml:"opacity"`
	Filter     string    `toml:"filter"`
	Texture    Texture   `toml:"texture"`
}

// Texture is a procedural checkerboard image.
type Texture struct {
	Width  int      `toml:"width"`
	Height int      `toml:"height"`
	Cell   int      `toml:"cell"`
	Colors []string `toml:"colors"`
}

// Load reads and validates a scene file.
func Load(path string) (*Scene, error) {
	var s Scene
	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return finish(&s, md)
}

// Parse decodes and validates a scene from TOML text.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return finish(&s, md)
}

func finish(s *Scene, md toml.MetaData) (*Scene, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalidScene, strings.Join(keys, ", "))
	}
	if s.Width == 0 {
		s.Width = DefaultWidth
	}
	if s.Height == 0 {
		s.Height = DefaultHeight
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the scene without building it.
func (s *Scene) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: canvas %dx%d", ErrInvalidScene, s.Width, s.Height)
	}
	if _, err := s.Level(); err != nil {
		return err
	}
	depth := 0
	for i, e := range s.EntityList {
		if err := e.validate(); err != nil {
			return fmt.Errorf("%w: entity %d: %w", ErrInvalidScene, i, err)
		}
		switch e.Paint.Type {
		case PaintClip:
			depth++
		case PaintRestore:
			if depth == 0 {
				return fmt.Errorf("%w: entity %d: restore without clip", ErrInvalidScene, i)
			}
			depth--
		}
	}
	return nil
}

// Size returns the canvas size.
func (s *Scene) Size() geometry.ISize {
	return geometry.ISize{Width: s.Width, Height: s.Height}
}

// Level returns the log level of the scene. An empty level is Info.
func (s *Scene) Level() (slog.Level, error) {
	var l slog.Level
	if s.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return l, fmt.Errorf("%w: log level: %w", ErrInvalidScene, err)
	}
	return l, nil
}

func (e *Entity) validate() error {
	if e.Blend != "" {
		if _, ok := renderer.ParseBlendMode(e.Blend); !ok {
			return fmt.Errorf("unknown blend mode %q", e.Blend)
		}
	}
	if err := e.Transform.validate(); err != nil {
		return err
	}
	if err := e.Paint.validate(); err != nil {
		return err
	}
	if e.Paint.Type == PaintRestore && e.Path.Kind == "" {
		return nil
	}
	return e.Path.validate()
}

func (t *Transform) validate() error {
	if t.Translate != nil && len(t.Translate) != 2 {
		return fmt.Errorf("translate needs 2 values, got %d", len(t.Translate))
	}
	if t.Scale != nil && len(t.Scale) != 2 {
		return fmt.Errorf("scale needs 2 values, got %d", len(t.Scale))
	}
	return nil
}

func (p *Path) validate() error {
	switch p.Kind {
	case PathRect, PathRoundedRect, PathOval:
		if len(p.Rect) != 4 {
			return fmt.Errorf("%s path needs rect = [x, y, w, h]", p.Kind)
		}
	case PathCircle:
		if len(p.Center) != 2 || p.Radius <= 0 {
			return errors.New("circle path needs center and a positive radius")
		}
	case PathPolygon:
		if len(p.Center) != 2 || p.Radius <= 0 || p.Sides < 3 {
			return errors.New("polygon path needs center, a positive radius and at least 3 sides")
		}
	case PathPolyline:
		if len(p.Points) < 3 {
			return errors.New("polyline path needs at least 3 points")
		}
		for i, pt := range p.Points {
			if len(pt) != 2 {
				return fmt.Errorf("polyline point %d needs 2 values", i)
			}
		}
	case "":
		return errors.New("missing path")
	default:
		return fmt.Errorf("unknown path kind %q", p.Kind)
	}
	if p.Fill != "" && p.Fill != "nonzero" && p.Fill != "evenodd" {
		return fmt.Errorf("unknown fill rule %q", p.Fill)
	}
	return nil
}

var paintTypes = []string{PaintSolid, PaintLinear, PaintRadial, PaintSweep, PaintTexture, PaintClip, PaintRestore}

func (p *Paint) validate() error {
	if !slices.Contains(paintTypes, p.Type) {
		return fmt.Errorf("unknown paint %q", p.Type)
	}
	if p.Color != "" {
		if _, err := contents.ParseHex(p.Color); err != nil {
			return err
		}
	}
	for _, c := range p.Colors {
		if _, err := contents.ParseHex(c); err != nil {
			return err
		}
	}
	if p.Tile != "" {
		if _, ok := contents.ParseTileMode(p.Tile); !ok {
			return fmt.Errorf("unknown tile mode %q", p.Tile)
		}
	}
	switch p.Type {
	case PaintLinear:
		if len(p.Start) != 2 || len(p.End) != 2 {
			return errors.New("linear paint needs start and end points")
		}
	case PaintRadial:
		if len(p.Center) != 2 {
			return errors.New("radial paint needs a center")
		}
	case PaintSweep:
		if len(p.Center) != 2 {
			return errors.New("sweep paint needs a center")
		}
	case PaintTexture:
		t := p.Texture
		if t.Width <= 0 || t.Height <= 0 {
			return fmt.Errorf("texture size %dx%d", t.Width, t.Height)
		}
		for _, c := range t.Colors {
			if _, err := contents.ParseHex(c); err != nil {
				return err
			}
		}
		if p.Filter != "" && p.Filter != "nearest" && p.Filter != "linear" {
			return fmt.Errorf("unknown filter %q", p.Filter)
		}
	}
	return nil
}
