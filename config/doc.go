// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads scene descriptions from TOML.
//
// A scene names the canvas, the backend and a list of entities:
//
//	width = 256
//	height = 256
//	backend = "software"
//
//	[[entity]]
//	path = { kind = "rect", rect = [0, 0, 256, 256] }
//	paint = { type = "linear", start = [0, 0], end = [256, 0], colors = ["#f00", "#00f"] }
//
// Clip entities raise the stencil depth of the entities after them until a
// restore entity; Scene.Entities assigns the depths.
package config
