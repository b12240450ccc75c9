// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/allbackends"

	"github.com/gogpu/contents/renderer"
)

// ErrNoAdapter is returned when no HAL backend exposes a usable adapter.
var ErrNoAdapter = errors.New("wgpu: no GPU adapter found")

// GPUInfo contains information about the selected GPU.
type GPUInfo struct {
	// Name is the GPU name (e.g., "NVIDIA GeForce RTX 3080").
	Name string
	// Vendor is the GPU vendor.
	Vendor string
	// DeviceType is the type of GPU (discrete, integrated, etc.).
	DeviceType gputypes.DeviceType
	// Backend is the graphics API in use (Vulkan, Metal, DX12).
	Backend gputypes.Backend
	// Driver is the driver version string.
	Driver string
}

// String returns a human-readable description of the GPU.
func (g GPUInfo) String() string {
	return fmt.Sprintf("%s (%s, %s)", g.Name, g.DeviceType, g.Backend)
}

func gpuInfo(info gputypes.AdapterInfo) GPUInfo {
	return GPUInfo{
		Name:       info.Name,
		Vendor:     info.Vendor,
		DeviceType: info.DeviceType,
		Backend:    info.Backend,
		Driver:     info.Driver,
	}
}

// headlessOrder is the order in which HAL backends are tried. The empty
// variant is the CPU implementation of the HAL.
var headlessOrder = []gputypes.Backend{
	gputypes.BackendVulkan,
	gputypes.BackendMetal,
	gputypes.BackendDX12,
	gputypes.BackendGL,
	gputypes.BackendEmpty,
}

// openDevice holds everything a headless backend created and must release.
type openDevice struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	info     GPUInfo
}

func (d *openDevice) release() {
	if d.device != nil {
		d.device.Destroy()
		d.device = nil
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
}

// openHeadless opens the first adapter of the first HAL backend that has
// one, preferring discrete and integrated GPUs.
func openHeadless() (*openDevice, error) {
	var errs []error
	for _, variant := range headlessOrder {
		backend, ok := hal.GetBackend(variant)
		if !ok {
			continue
		}
		d, err := openBackend(backend)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", variant, err))
			continue
		}
		renderer.Logger().Info("wgpu: device opened", "gpu", d.info.String(), "driver", d.info.Driver)
		return d, nil
	}
	if len(errs) == 0 {
		return nil, ErrNoAdapter
	}
	return nil, fmt.Errorf("%w: %w", ErrNoAdapter, errors.Join(errs...))
}

func openBackend(backend hal.Backend) (*openDevice, error) {
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}
	selected := &adapters[0]
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	opened, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}
	return &openDevice{
		instance: instance,
		device:   opened.Device,
		queue:    opened.Queue,
		info:     gpuInfo(selected.Info),
	}, nil
}

// halDevices extracts the HAL device and queue from a provider that exposes
// them, such as a gogpu application.
func halDevices(provider any) (hal.Device, hal.Queue, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, nil, fmt.Errorf("wgpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("wgpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("wgpu: provider HalQueue is not hal.Queue")
	}
	return device, queue, nil
}
