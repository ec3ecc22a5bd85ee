// Package window provides the kiosk display surface: a GLFW-backed window,
// usually fullscreen on the installation hardware, that feeds resize and key
// events into the engine and hands the renderer its WebGPU surface.
package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and minimal input handling. The kiosk
// has no pointer input; keys exist for maintenance (mood cycling, exit).
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the drawable size
	// changes, with the new framebuffer dimensions in pixels.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetKeyDownCallback sets the callback for key press events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for
	// creating a WebGPU surface, built by the wgpuglfw bridge for the
	// current platform. Nil if the window is not initialized.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true while the window is active.
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop. Blocks until the window
	// is closed, invoking the update callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	Width() int

	// Height returns the current framebuffer height in pixels.
	Height() int
}

// kioskWindow is the implementation of the Window interface.
type kioskWindow struct {
	title      string
	width      int
	height     int
	fullscreen bool

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onUpdate  func()
	onResize  func(width, height int)
	onKeyDown func(keyCode uint32)
}

var _ Window = &kioskWindow{}

// NewWindow creates a new Window with the specified options. Defaults to a
// 1280x720 windowed display; the installation runs fullscreen via
// WithFullscreen.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
func NewWindow(options ...BuilderOption) Window {
	w := &kioskWindow{
		title:  "Moodscape",
		width:  1280,
		height: 720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *kioskWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *kioskWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *kioskWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *kioskWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *kioskWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *kioskWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *kioskWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *kioskWindow) Width() int {
	return w.width
}

func (w *kioskWindow) Height() int {
	return w.height
}
