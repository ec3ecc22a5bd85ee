package window

// BuilderOption is a functional option for configuring a kioskWindow.
// Use the With* functions to create options.
type BuilderOption func(w *kioskWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - BuilderOption: option function to apply
func WithTitle(title string) BuilderOption {
	return func(w *kioskWindow) {
		w.title = title
	}
}

// WithSize sets the initial window dimensions. Ignored in fullscreen mode,
// which uses the monitor's video mode.
//
// Parameters:
//   - width: initial width in pixels
//   - height: initial height in pixels
//
// Returns:
//   - BuilderOption: option function to apply
func WithSize(width, height int) BuilderOption {
	return func(w *kioskWindow) {
		w.width = width
		w.height = height
	}
}

// WithFullscreen makes the window cover the primary monitor, the normal mode
// for an unattended installation.
//
// Returns:
//   - BuilderOption: option function to apply
func WithFullscreen() BuilderOption {
	return func(w *kioskWindow) {
		w.fullscreen = true
	}
}
