// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package vk provides the minimal Vulkan bindings hal/vulkan/memory needs
// to run against a real device: library loading and proc-address
// resolution (loader.go, via goffi, cross-platform), the handle and wire
// types those calls exchange (types.go), and the six entry points the
// allocator actually calls (commands.go, vkAllocateMemory
// through vkGetPhysicalDeviceMemoryProperties).
//
// It is not a general Vulkan binding: pipelines, descriptors, command
// buffers, and swapchains have no caller here and are not loaded.
package vk
