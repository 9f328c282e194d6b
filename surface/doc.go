// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface defines the presentation layer a window renderer draws
// into.
//
// A presentation pipeline has four parts:
//
//   - Window: an opaque, shared handle to a native window
//   - Context: a per-window connection to the platform compositor
//   - Surface: a resizable presentable pixel target created over a Context
//   - Buffer: the pixels of one frame, handed back with Present
//
// Backends bind these to a concrete platform. The built-in ones live in
// subpackages and register themselves on import:
//
//   - memory: keeps frames in Go memory (headless rendering, tests)
//   - file: writes every presented frame to a BMP file
//   - shm: presents into an mmap'ed file another process can watch
//   - glfwsurface: on-screen windows through GLFW and OpenGL
//
// # Registry
//
// Backends are selected by name or by priority:
//
//	import _ "github.com/gogpu/softwin/surface/memory"
//
//	b, err := surface.NewBackendByName("memory")
//	// or the best available one:
//	b, err := surface.NewBackend()
//
// # Pixel format
//
// Buffer pixels are packed 0x00RRGGBB words. The top byte is ignored.
package surface
