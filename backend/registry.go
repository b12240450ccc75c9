// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/contents/renderer"
)

// Backend names.
const (
	NameWGPU     = "wgpu"
	NameSoftware = "software"
)

// Factory opens a backend instance.
type Factory func() (Backend, error)

// Priority order for Default (first one that opens wins).
var priority = []string{NameWGPU, NameSoftware}

var registry = gpucontext.NewRegistry[Factory](gpucontext.WithPriority(priority...))

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it is replaced.
func Register(name string, factory Factory) {
	registry.Register(name, func() Factory { return factory })
}

// Unregister removes a backend from the registry.
func Unregister(name string) {
	registry.Unregister(name)
}

// IsRegistered reports whether a backend with the given name is registered.
func IsRegistered(name string) bool {
	return registry.Has(name)
}

// Available returns the registered backend names in selection order.
func Available() []string {
	names := registry.Available()
	slices.SortFunc(names, func(a, b string) int {
		if d := rank(a) - rank(b); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
	return names
}

func rank(name string) int {
	if i := slices.Index(priority, name); i >= 0 {
		return i
	}
	return len(priority)
}

// Open opens the backend registered under name.
func Open(name string) (Backend, error) {
	factory := registry.Get(name)
	if factory == nil {
		return nil, fmt.Errorf("%w: %q is not registered", ErrBackendNotAvailable, name)
	}
	b, err := factory()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrBackendNotAvailable, name, err)
	}
	if b == nil {
		return nil, fmt.Errorf("%w: %s returned no backend", ErrBackendNotAvailable, name)
	}
	renderer.Logger().Info("backend: opened", "name", name)
	return b, nil
}

// Default opens the best available backend. Backends that fail to open are
// logged and skipped.
func Default() (Backend, error) {
	names := Available()
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no backends registered", ErrBackendNotAvailable)
	}
	var firstErr error
	for _, name := range names {
		b, err := Open(name)
		if err == nil {
			return b, nil
		}
		renderer.Logger().Warn("backend: skipped", "name", name, "err", err)
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}
