package engine_test

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groveworks/moodscape/engine"
	"github.com/groveworks/moodscape/engine/camera"
	"github.com/groveworks/moodscape/engine/effects"
	"github.com/groveworks/moodscape/engine/lighting"
	"github.com/groveworks/moodscape/engine/mood"
	"github.com/groveworks/moodscape/engine/renderer"
	"github.com/groveworks/moodscape/engine/scene"
	"github.com/groveworks/moodscape/engine/vegetation"
)

const kioskYAML = `
moods:
  Harmonisch:
    sky: "#87ceeb"
    fog: {color: "#c8e6f5", density: 0.0008}
    keyLight: {color: "#fff4d6", intensity: 1.1, position: [300, 400, 200]}
    sun: {visible: true, color: "#fff9e0"}
    particles:
      count: 50
      behavior: {spawnArea: [800, 200, 800], velocity: [0, 1, 0], direction: up}
  Energiegeladen:
    sky: "#1a0a2e"
    fog: {color: "#2d1b4e", density: 0.0012}
    background: {animation: cycling-hue, speed: 24, saturation: 0.6, lightness: 0.12}
    lights:
      - {name: strobe-a, type: point, intensity: 2, position: [0, 100, 0]}
  Melancholisch:
    sky: "#3a4a5a"
    fog: {color: "#5a6a7a", density: 0.002}
`

func newHeadlessEngine(t *testing.T, opts ...mood.ManagerOption) engine.Engine {
	t.Helper()
	catalog, err := mood.ParseCatalog([]byte(kioskYAML))
	require.NoError(t, err)

	sc := scene.NewScene("test")
	rig := lighting.NewRig(sc, lighting.WithRandSource(rand.NewSource(1)))
	fx := effects.New(sc, effects.WithRandSource(rand.NewSource(1)))
	styler := vegetation.NewStyler(&vegetation.Material{}, &vegetation.Material{}, &vegetation.Material{})
	manager := mood.NewManager(catalog, sc, rig, fx, styler, opts...)
	cam := camera.NewCamera()

	return engine.New(sc, cam, manager, rig, fx, styler)
}

func TestStepBeforeAnyMoodIsSafe(t *testing.T) {
	eng := newHeadlessEngine(t)
	eng.Step(0.016)
	assert.Nil(t, eng.Manager().Current())
}

func TestRequestMoodAppliesAtFrameBoundary(t *testing.T) {
	eng := newHeadlessEngine(t)

	eng.RequestMood("Harmonisch")
	assert.Nil(t, eng.Manager().Current(), "queued, not yet applied")

	eng.Step(0.016)
	require.NotNil(t, eng.Manager().Current())
	assert.Equal(t, "Harmonisch", eng.Manager().Current().Name)
}

func TestLastQueuedRequestWins(t *testing.T) {
	var applied []string
	eng := newHeadlessEngine(t, mood.WithAppliedCallback(func(cfg *mood.Config) {
		applied = append(applied, cfg.Name)
	}))

	eng.RequestMood("Harmonisch")
	eng.RequestMood("Energiegeladen")
	eng.RequestMood("Melancholisch")
	eng.Step(0.016)

	assert.Equal(t, []string{"Melancholisch"}, applied, "intermediate requests are coalesced away")
}

func TestRequestFloodDropsOldest(t *testing.T) {
	eng := newHeadlessEngine(t)

	// Far more requests than the queue holds; RequestMood must not block
	// and the newest scan must still win.
	for i := 0; i < 100; i++ {
		eng.RequestMood("Harmonisch")
	}
	eng.RequestMood("Melancholisch")
	eng.Step(0.016)

	assert.Equal(t, "Melancholisch", eng.Manager().Current().Name)
}

func TestConcurrentRequestFloodNeverBlocks(t *testing.T) {
	eng := newHeadlessEngine(t)
	names := []string{"Harmonisch", "Energiegeladen", "Melancholisch"}

	// Many publishers racing against a full queue; every call must return.
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				eng.RequestMood(names[(g+i)%len(names)])
			}
		}(g)
	}
	wg.Wait()

	eng.Step(0.016)
	require.NotNil(t, eng.Manager().Current())
	assert.Contains(t, names, eng.Manager().Current().Name)
}

func TestUnknownRequestKeepsCurrentMood(t *testing.T) {
	eng := newHeadlessEngine(t)
	eng.RequestMood("Harmonisch")
	eng.Step(0.016)

	eng.RequestMood("Quatsch")
	eng.Step(0.016)

	assert.Equal(t, "Harmonisch", eng.Manager().Current().Name)
}

func TestCyclingHueBackgroundAnimates(t *testing.T) {
	eng := newHeadlessEngine(t)
	eng.RequestMood("Energiegeladen")
	eng.Step(0.016)

	first := eng.Scene().Background()
	eng.Step(0.5)
	second := eng.Scene().Background()
	eng.Step(0.5)
	third := eng.Scene().Background()

	assert.NotEqual(t, first, second)
	assert.NotEqual(t, second, third)
}

func TestStaticBackgroundStaysOnSky(t *testing.T) {
	eng := newHeadlessEngine(t)
	eng.RequestMood("Harmonisch")
	eng.Step(0.016)

	sky := eng.Scene().Background()
	for i := 0; i < 10; i++ {
		eng.Step(0.1)
	}
	assert.Equal(t, sky, eng.Scene().Background())
}

func TestStepAdvancesParticles(t *testing.T) {
	eng := newHeadlessEngine(t)
	eng.RequestMood("Harmonisch")
	eng.Step(0.016)

	objs := eng.Scene().Objects()
	var sys *effects.ParticleSystem
	for _, obj := range objs {
		if ps, ok := obj.(*effects.ParticleSystem); ok {
			sys = ps
			break
		}
	}
	require.NotNil(t, sys, "the applied mood registers its particle system")

	before := sys.Position(0)
	eng.Step(0.1)
	assert.NotEqual(t, before, sys.Position(0))
}

func TestDisposeTearsDownEverything(t *testing.T) {
	eng := newHeadlessEngine(t)
	eng.RequestMood("Energiegeladen")
	eng.Step(0.016)
	require.NotEmpty(t, eng.Scene().Lights())

	eng.Dispose()

	assert.Equal(t, 0, eng.Scene().Count())
	assert.Empty(t, eng.Scene().Lights())
}

func TestRunHeadlessStopsOnQuit(t *testing.T) {
	eng := newHeadlessEngine(t)
	eng.RequestMood("Harmonisch")

	done := make(chan struct{})
	go func() {
		eng.Run()
		close(done)
	}()

	eng.Quit()
	<-done

	// The loop applied the pending request before (or while) stopping is
	// not guaranteed; only clean shutdown is.
	assert.NotPanics(t, func() { eng.Dispose() })
}

// recordingCloud and recordingRenderer capture what the engine hands the
// renderer without touching a GPU.
type recordingCloud struct {
	name     string
	uploads  [][]float32
	released bool
}

func (c *recordingCloud) Upload(vertices []float32) {
	cp := make([]float32, len(vertices))
	copy(cp, vertices)
	c.uploads = append(c.uploads, cp)
}

func (c *recordingCloud) Release() {
	c.released = true
}

type recordingRenderer struct {
	clouds []*recordingCloud
	frames int
}

var _ renderer.Renderer = &recordingRenderer{}

func (r *recordingRenderer) CreateParticleCloud(desc renderer.ParticleCloudDesc) (renderer.ParticleCloud, error) {
	c := &recordingCloud{name: desc.Name}
	r.clouds = append(r.clouds, c)
	return c, nil
}

func (r *recordingRenderer) SetBloom(threshold, strength, radius float32) {}

func (r *recordingRenderer) RenderFrame(sc scene.Scene, view, projection [16]float32) error {
	r.frames++
	return nil
}

func (r *recordingRenderer) Resize(width, height uint32) {}

func (r *recordingRenderer) Dispose() {}

func TestSunMarkerIsDrawnThroughTheRenderer(t *testing.T) {
	catalog, err := mood.ParseCatalog([]byte(kioskYAML))
	require.NoError(t, err)

	sc := scene.NewScene("test")
	rig := lighting.NewRig(sc, lighting.WithRandSource(rand.NewSource(1)))
	fx := effects.New(sc, effects.WithRandSource(rand.NewSource(1)))
	styler := vegetation.NewStyler(&vegetation.Material{}, &vegetation.Material{}, &vegetation.Material{})
	manager := mood.NewManager(catalog, sc, rig, fx, styler)

	rec := &recordingRenderer{}
	eng := engine.New(sc, camera.NewCamera(), manager, rig, fx, styler, engine.WithRenderer(rec))

	require.Len(t, rec.clouds, 1, "the engine allocates its marker cloud up front")
	markers := rec.clouds[0]
	assert.Equal(t, "markers", markers.name)

	eng.RequestMood("Harmonisch")
	eng.Step(0.016)

	require.NotEmpty(t, markers.uploads)
	last := markers.uploads[len(markers.uploads)-1]
	sun := rig.Sun()
	assert.Equal(t, sun.Position()[0], last[0])
	assert.Equal(t, sun.Position()[1], last[1])
	assert.Equal(t, sun.Position()[2], last[2])
	assert.Equal(t, sun.Size(), last[6])
	assert.Equal(t, float32(1), last[7], "visible marker draws at full opacity")

	// Melancholisch hides the sun; its slot collapses out of the stream.
	eng.RequestMood("Melancholisch")
	eng.Step(0.016)
	last = markers.uploads[len(markers.uploads)-1]
	assert.Zero(t, last[7])
	assert.Zero(t, last[6])

	assert.Positive(t, rec.frames)

	eng.Dispose()
	assert.True(t, markers.released)
}

func TestMoodSwitchSequence(t *testing.T) {
	eng := newHeadlessEngine(t)

	for i := 0; i < 21; i++ {
		name := []string{"Harmonisch", "Energiegeladen", "Melancholisch"}[i%3]
		eng.RequestMood(name)
		eng.Step(0.016)
		require.Equal(t, name, eng.Manager().Current().Name, fmt.Sprintf("switch %d", i))
	}

	// The final mood, Melancholisch, declares no lights and no particles.
	assert.Len(t, eng.Scene().Lights(), 1, "only the key light remains")
	assert.Equal(t, 1, eng.Scene().Count(), "only the sun marker remains")
}
