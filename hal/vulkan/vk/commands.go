// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build windows

package vk

import (
	"fmt"
	"syscall"
	"unsafe"
)

// Commands holds the resolved function pointers for the six Vulkan entry
// points the memory allocator needs. Everything else in the
// real Vulkan command table (pipelines, descriptors, swapchains, command
// buffers) has no caller in this module and is not loaded.
type Commands struct {
	allocateMemory                     uintptr
	freeMemory                         uintptr
	mapMemory                          uintptr
	unmapMemory                        uintptr
	flushMappedMemoryRanges            uintptr
	getPhysicalDeviceMemoryProperties  uintptr
}

// NewCommands returns an empty Commands table; Load must be called before
// any of the wrapper functions below will do anything but fail closed.
func NewCommands() *Commands {
	return &Commands{}
}

// Load resolves all six function pointers: the device-level ones via
// vkGetDeviceProcAddr, and vkGetPhysicalDeviceMemoryProperties (an
// instance-level function, queried once up front and cached per physical
// device) via vkGetInstanceProcAddr.
func (c *Commands) Load(instance Instance, device Device) error {
	if device == 0 {
		return fmt.Errorf("vk: invalid device handle")
	}

	c.allocateMemory = uintptr(GetDeviceProcAddr(device, "vkAllocateMemory"))
	c.freeMemory = uintptr(GetDeviceProcAddr(device, "vkFreeMemory"))
	c.mapMemory = uintptr(GetDeviceProcAddr(device, "vkMapMemory"))
	c.unmapMemory = uintptr(GetDeviceProcAddr(device, "vkUnmapMemory"))
	c.flushMappedMemoryRanges = uintptr(GetDeviceProcAddr(device, "vkFlushMappedMemoryRanges"))
	c.getPhysicalDeviceMemoryProperties = uintptr(GetInstanceProcAddr(instance, "vkGetPhysicalDeviceMemoryProperties"))

	if c.allocateMemory == 0 || c.freeMemory == 0 || c.mapMemory == 0 {
		return fmt.Errorf("vk: failed to resolve one or more memory entry points")
	}
	return nil
}

// AllocateMemory wraps vkAllocateMemory.
func (c *Commands) AllocateMemory(device Device, allocInfo *MemoryAllocateInfo, memory *DeviceMemory) Result {
	if c.allocateMemory == 0 {
		return ErrorInitializationFailed
	}
	ret, _, _ := syscall.SyscallN(
		c.allocateMemory,
		uintptr(device),
		uintptr(unsafe.Pointer(allocInfo)),
		0,
		uintptr(unsafe.Pointer(memory)),
	)
	return Result(ret)
}

// FreeMemory wraps vkFreeMemory.
func (c *Commands) FreeMemory(device Device, memory DeviceMemory) {
	if c.freeMemory == 0 {
		return
	}
	//nolint:errcheck // Vulkan void function, no return value to check
	syscall.SyscallN(c.freeMemory, uintptr(device), uintptr(memory), 0)
}

// MapMemory wraps vkMapMemory, mapping the full range [0, size).
func (c *Commands) MapMemory(device Device, memory DeviceMemory, size uint64) (uintptr, Result) {
	if c.mapMemory == 0 {
		return 0, ErrorInitializationFailed
	}
	var data uintptr
	ret, _, _ := syscall.SyscallN(
		c.mapMemory,
		uintptr(device),
		uintptr(memory),
		0,
		uintptr(size),
		0,
		uintptr(unsafe.Pointer(&data)),
	)
	return data, Result(ret)
}

// UnmapMemory wraps vkUnmapMemory.
func (c *Commands) UnmapMemory(device Device, memory DeviceMemory) {
	if c.unmapMemory == 0 {
		return
	}
	//nolint:errcheck // Vulkan void function, no return value to check
	syscall.SyscallN(c.unmapMemory, uintptr(device), uintptr(memory))
}

// FlushMappedMemoryRanges wraps vkFlushMappedMemoryRanges for a single range.
func (c *Commands) FlushMappedMemoryRanges(device Device, r *MappedMemoryRange) Result {
	if c.flushMappedMemoryRanges == 0 {
		return ErrorInitializationFailed
	}
	ret, _, _ := syscall.SyscallN(
		c.flushMappedMemoryRanges,
		uintptr(device),
		1,
		uintptr(unsafe.Pointer(r)),
	)
	return Result(ret)
}

// GetPhysicalDeviceMemoryProperties wraps vkGetPhysicalDeviceMemoryProperties.
func (c *Commands) GetPhysicalDeviceMemoryProperties(physicalDevice PhysicalDevice, properties *PhysicalDeviceMemoryProperties) {
	if c.getPhysicalDeviceMemoryProperties == 0 {
		return
	}
	//nolint:errcheck // Vulkan void function, no return value to check
	syscall.SyscallN(
		c.getPhysicalDeviceMemoryProperties,
		uintptr(physicalDevice),
		uintptr(unsafe.Pointer(properties)),
	)
}
