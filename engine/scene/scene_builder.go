package scene

import "github.com/groveworks/moodscape/common"

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options that are applied directly to the
// scene instance.
type SceneBuilderOption func(*sceneImpl)

// WithBackground is an option builder that sets the initial background
// clear color.
//
// Parameters:
//   - c: the background color
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBackground(c common.Color) SceneBuilderOption {
	return func(s *sceneImpl) {
		s.background = c
	}
}

// WithFog is an option builder that sets the initial exponential fog.
//
// Parameters:
//   - c: the fog color
//   - density: the fog density
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithFog(c common.Color, density float32) SceneBuilderOption {
	return func(s *sceneImpl) {
		s.fog = Fog{Color: c, Density: density}
	}
}

// WithAmbient is an option builder that sets the initial ambient light
// color and intensity.
//
// Parameters:
//   - c: the ambient color
//   - intensity: the ambient intensity
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithAmbient(c common.Color, intensity float32) SceneBuilderOption {
	return func(s *sceneImpl) {
		s.ambientColor = c
		s.ambientIntensity = intensity
	}
}
