// Package engine runs the continuous render loop that keeps the kiosk scene
// alive: it drains pending mood requests at frame boundaries, advances the
// clock, updates every subsystem in a fixed order, and issues the composited
// draw.
package engine

import (
	"log"
	"sync"
	"time"

	"github.com/chewxy/math32"

	"github.com/groveworks/moodscape/common"
	"github.com/groveworks/moodscape/engine/camera"
	"github.com/groveworks/moodscape/engine/effects"
	"github.com/groveworks/moodscape/engine/lighting"
	"github.com/groveworks/moodscape/engine/mood"
	"github.com/groveworks/moodscape/engine/profiler"
	"github.com/groveworks/moodscape/engine/renderer"
	"github.com/groveworks/moodscape/engine/scene"
	"github.com/groveworks/moodscape/engine/vegetation"
	"github.com/groveworks/moodscape/engine/window"
)

// moodRequestBuffer bounds the pending mood request queue. Requests arrive
// from RFID scans, far slower than frames; when visitors scan several cards
// between two frames only the last one wins.
const moodRequestBuffer = 16

// markerSlots is the fixed instance capacity of the shared marker billboard
// cloud. The scene carries one marker today (the sun disc); spare slots
// upload as zero-size, zero-opacity instances.
const markerSlots = 4

// engineImpl is the implementation of the Engine interface.
type engineImpl struct {
	window   window.Window
	renderer renderer.Renderer

	scene      scene.Scene
	camera     camera.Camera
	manager    *mood.Manager
	lighting   *lighting.Rig
	effects    *effects.Effects
	vegetation *vegetation.Styler

	markerCloud renderer.ParticleCloud

	prof             *profiler.Profiler
	profilingEnabled bool

	frameLimit time.Duration // minimum frame duration; 0 = uncapped

	moodRequests chan string

	// Clock state, owned by the render goroutine.
	lastFrame time.Time
	elapsed   float32

	running     bool
	wg          sync.WaitGroup
	quitChannel chan struct{}
	quitOnce    sync.Once
}

// Engine drives the kiosk's continuous frame loop.
type Engine interface {
	// RequestMood queues a mood switch to be applied at the next frame
	// boundary. Never blocks; if the queue is full the oldest pending
	// request is dropped. Mood switches never happen mid-frame.
	//
	// Parameters:
	//   - name: the mood's catalog key
	RequestMood(name string)

	// Scene returns the live scene.
	Scene() scene.Scene

	// Manager returns the mood orchestrator.
	Manager() *mood.Manager

	// Run starts the render loop. With a window it blocks in the window
	// message loop until the window closes; headless it blocks until Quit.
	Run()

	// Step advances exactly one frame without starting the loop: drain mood
	// requests, update subsystems in the fixed order, draw.
	//
	// Parameters:
	//   - dt: frame delta time in seconds
	Step(dt float32)

	// Quit signals the render loop to stop. Safe to call multiple times.
	Quit()

	// Dispose stops the loop if needed and tears down every resource the
	// engine and its subsystems own. The scene object count returns to zero.
	Dispose()
}

var _ Engine = &engineImpl{}

// New creates the engine over an assembled scene and its subsystems. Window
// and renderer are optional; without them the loop runs headless, which is
// how tests drive it.
//
// Parameters:
//   - sc: the live scene
//   - cam: the camera
//   - manager: the mood orchestrator
//   - rig: the lighting subsystem
//   - fx: the effects subsystem
//   - styler: the vegetation styling subsystem
//   - opts: functional options to further configure the engine
//
// Returns:
//   - Engine: the new engine
func New(sc scene.Scene, cam camera.Camera, manager *mood.Manager, rig *lighting.Rig, fx *effects.Effects, styler *vegetation.Styler, opts ...BuilderOption) Engine {
	e := &engineImpl{
		scene:        sc,
		camera:       cam,
		manager:      manager,
		lighting:     rig,
		effects:      fx,
		vegetation:   styler,
		prof:         profiler.New(),
		moodRequests: make(chan string, moodRequestBuffer),
		quitChannel:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.renderer != nil {
		pixels, size := effects.SpriteTexture(mood.TextureSparkle)
		cloud, err := e.renderer.CreateParticleCloud(renderer.ParticleCloudDesc{
			Name:          "markers",
			Count:         markerSlots,
			TexturePixels: pixels,
			TextureSize:   size,
			Additive:      true,
			DepthWrite:    false,
		})
		if err != nil {
			log.Printf("[Engine] marker billboards unavailable: %v", err)
		} else {
			e.markerCloud = cloud
		}
	}

	if e.window != nil {
		e.window.SetResizeCallback(func(width, height int) {
			if e.renderer != nil {
				e.renderer.Resize(uint32(width), uint32(height))
			}
			if height > 0 {
				e.camera.SetAspect(float32(width) / float32(height))
			}
		})
	}

	return e
}

func (e *engineImpl) RequestMood(name string) {
	select {
	case e.moodRequests <- name:
		return
	default:
	}

	// Queue full: drop the oldest request, the newest scan wins.
	select {
	case <-e.moodRequests:
	default:
	}
	select {
	case e.moodRequests <- name:
	default:
		// A concurrent scan refilled the queue; everything pending is newer
		// than this request, so dropping it keeps the newest-wins rule.
	}
}

func (e *engineImpl) Scene() scene.Scene {
	return e.scene
}

func (e *engineImpl) Manager() *mood.Manager {
	return e.manager
}

func (e *engineImpl) Run() {
	e.running = true
	e.lastFrame = time.Now()

	e.wg.Add(1)
	go e.handleRender()

	if e.window != nil {
		e.window.ProcessMessages()
		e.signalQuit()
	}
	e.wg.Wait()
}

func (e *engineImpl) Quit() {
	e.signalQuit()
}

func (e *engineImpl) Dispose() {
	e.signalQuit()
	e.wg.Wait()

	e.effects.Dispose()
	e.lighting.Dispose()
	e.scene.Clear()

	if e.markerCloud != nil {
		e.markerCloud.Release()
		e.markerCloud = nil
	}
	if e.renderer != nil {
		e.renderer.Dispose()
	}
	if e.window != nil {
		if err := e.window.Close(); err != nil {
			log.Printf("[Engine] window close: %v", err)
		}
	}
}

// signalQuit closes the quit channel exactly once.
func (e *engineImpl) signalQuit() {
	e.quitOnce.Do(func() {
		e.running = false
		close(e.quitChannel)
	})
}

// handleRender runs the frame loop in its own goroutine. Recovers from
// panics so a subsystem bug shuts the kiosk down cleanly instead of crashing
// the process mid-draw.
func (e *engineImpl) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] render goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			frameStart := time.Now()
			dt := float32(frameStart.Sub(e.lastFrame).Seconds())
			e.lastFrame = frameStart

			e.Step(dt)

			if e.frameLimit > 0 {
				if remaining := e.frameLimit - time.Since(frameStart); remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

func (e *engineImpl) Step(dt float32) {
	e.elapsed += dt
	e.drainMoodRequests()

	cfg := e.manager.Current()

	e.camera.Update(dt)
	e.lighting.Update(e.elapsed, cfg)
	e.effects.Update(dt)
	e.vegetation.Update(e.elapsed, cfg)
	e.updateBackground(cfg)

	e.effects.Render()
	e.uploadMarkers()
	if e.renderer != nil {
		if err := e.renderer.RenderFrame(e.scene, e.camera.ViewMatrix(), e.camera.ProjectionMatrix()); err != nil {
			log.Printf("[Engine] frame skipped: %v", err)
		}
	}

	if e.profilingEnabled {
		e.prof.Tick(e.scene.Count())
	}
}

// drainMoodRequests empties the request queue and applies the last entry.
// Mood switches only ever happen here, at the frame boundary, so no frame
// observes a half-applied mood.
func (e *engineImpl) drainMoodRequests() {
	var last string
	var pending bool
	for {
		select {
		case name := <-e.moodRequests:
			last = name
			pending = true
		default:
			if pending {
				if err := e.manager.ApplyMood(last); err != nil {
					log.Printf("[Engine] %v", err)
				}
			}
			return
		}
	}
}

// uploadMarkers packs the scene's visible markers into the shared billboard
// cloud. Hidden markers never reach the stream; unused slots collapse to
// zero size and opacity.
func (e *engineImpl) uploadMarkers() {
	if e.markerCloud == nil {
		return
	}

	vertices := make([]float32, 0, markerSlots*8)
	slots := 0
	for _, obj := range e.scene.Objects() {
		m, ok := obj.(*scene.Marker)
		if !ok || !m.Visible() {
			continue
		}
		if slots == markerSlots {
			break
		}
		pos := m.Position()
		col := m.Color()
		vertices = append(vertices, pos[0], pos[1], pos[2], col.R, col.G, col.B, m.Size(), 1)
		slots++
	}
	for ; slots < markerSlots; slots++ {
		vertices = append(vertices, 0, 0, 0, 0, 0, 0, 0, 0)
	}
	e.markerCloud.Upload(vertices)
}

// updateBackground applies the mood's optional background animation. Moods
// opt in through their config; the loop never special-cases mood names.
func (e *engineImpl) updateBackground(cfg *mood.Config) {
	if cfg == nil || cfg.Background.Animation != mood.BackgroundCyclingHue {
		return
	}
	hue := math32.Mod(e.elapsed*cfg.Background.Speed, 360)
	e.scene.SetBackground(common.HSL(hue, cfg.Background.Saturation, cfg.Background.Lightness))
}
