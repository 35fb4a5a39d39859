// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build windows

package vk

import (
	"fmt"

	"github.com/StrawberryDan/Vulkan-sub000/hal/vulkan/memory"
)

// DeviceDriver implements memory.Driver against a loaded device and its
// resolved Commands table. It is the only place in this module where the
// allocator's driver-opaque memory.DriverMemory meets the real driver ABI.
type DeviceDriver struct {
	instance       Instance
	physicalDevice PhysicalDevice
	device         Device
	cmds           *Commands
}

// NewDeviceDriver resolves the six memory entry points this module needs
// and returns a ready-to-use driver. Callers must call Init() (see
// loader.go) first.
func NewDeviceDriver(instance Instance, physicalDevice PhysicalDevice, device Device) (*DeviceDriver, error) {
	cmds := NewCommands()
	if err := cmds.Load(instance, device); err != nil {
		return nil, err
	}
	return &DeviceDriver{instance: instance, physicalDevice: physicalDevice, device: device, cmds: cmds}, nil
}

// outOfMemory reports whether r is one of the two Vulkan out-of-memory
// statuses the allocator translates into memory.ErrDriverOutOfMemory.
func outOfMemory(r Result) bool {
	return r == ErrorOutOfHostMemory || r == ErrorOutOfDeviceMemory
}

// AllocateMemory implements memory.Driver.
func (d *DeviceDriver) AllocateMemory(typeIndex uint32, size uint64) (memory.DriverMemory, error) {
	info := MemoryAllocateInfo{
		SType:           StructureTypeMemoryAllocateInfo,
		AllocationSize:  DeviceSize(size),
		MemoryTypeIndex: typeIndex,
	}
	var mem DeviceMemory
	ret := d.cmds.AllocateMemory(d.device, &info, &mem)
	if outOfMemory(ret) {
		return 0, memory.ErrDriverOutOfMemory
	}
	if ret != Success {
		panic(fmt.Sprintf("vk: vkAllocateMemory failed unexpectedly: %s", ret))
	}
	return memory.DriverMemory(mem), nil
}

// FreeMemory implements memory.Driver.
func (d *DeviceDriver) FreeMemory(mem memory.DriverMemory) {
	d.cmds.FreeMemory(d.device, DeviceMemory(mem))
}

// MapMemory implements memory.Driver.
func (d *DeviceDriver) MapMemory(mem memory.DriverMemory, size uint64) (uintptr, error) {
	ptr, ret := d.cmds.MapMemory(d.device, DeviceMemory(mem), size)
	if outOfMemory(ret) {
		return 0, memory.ErrDriverOutOfMemory
	}
	if ret != Success {
		panic(fmt.Sprintf("vk: vkMapMemory failed unexpectedly: %s", ret))
	}
	return ptr, nil
}

// FlushMappedMemory implements memory.Driver.
func (d *DeviceDriver) FlushMappedMemory(mem memory.DriverMemory) {
	r := MappedMemoryRange{SType: StructureTypeMappedMemoryRange, Memory: DeviceMemory(mem), Size: DeviceSize(^uint64(0))} // VK_WHOLE_SIZE
	d.cmds.FlushMappedMemoryRanges(d.device, &r)
}

// MemoryProperties implements memory.Driver.
func (d *DeviceDriver) MemoryProperties() memory.DriverMemoryProperties {
	var raw PhysicalDeviceMemoryProperties
	d.cmds.GetPhysicalDeviceMemoryProperties(d.physicalDevice, &raw)
	props := raw.Properties()

	out := memory.DriverMemoryProperties{
		Types:     make([]memory.DriverMemoryType, len(props.Types)),
		HeapSizes: make([]uint64, len(props.Heaps)),
	}
	for i, t := range props.Types {
		out.Types[i] = memory.DriverMemoryType{
			HostVisible:  t.PropertyFlags&MemoryPropertyHostVisible != 0,
			HostCoherent: t.PropertyFlags&MemoryPropertyHostCoherent != 0,
			DeviceLocal:  t.PropertyFlags&MemoryPropertyDeviceLocal != 0,
			HeapIndex:    t.HeapIndex,
		}
	}
	for i, h := range props.Heaps {
		out.HeapSizes[i] = uint64(h.Size)
	}
	return out
}
