// Package effects owns the per-mood particle point-clouds and the persistent
// bloom post-process stage. Particle simulation is CPU-side and parallelized
// over a reusable worker pool; the renderer half (GPU buffers, sprite
// textures) is optional so the subsystem runs headless in tests.
package effects

import (
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/groveworks/moodscape/engine/mood"
	"github.com/groveworks/moodscape/engine/renderer"
	"github.com/groveworks/moodscape/engine/scene"
)

// binding pairs a CPU particle system with its GPU cloud and its scene
// registry ID. The cloud is nil when running headless or when allocation
// failed and the system was skipped.
type binding struct {
	system *ParticleSystem
	cloud  renderer.ParticleCloud
	id     uint64
}

// Effects is the effects subsystem. It rebuilds the particle set on every
// mood switch, advances particle motion each frame, and pushes bloom
// parameters into the renderer's persistent post-process stage.
type Effects struct {
	scene    scene.Scene
	renderer renderer.Renderer
	rng      *rand.Rand

	systems []binding
	bloom   mood.BloomSpec

	// computePool manages a bounded set of reusable goroutines for the
	// parallel particle integration phase of Update. Workers persist across
	// frames, avoiding per-frame goroutine spawn/teardown overhead.
	computePool    worker.DynamicWorkerPool
	computeWorkers int
	taskID         int

	// scratch is reused each frame for vertex packing to avoid per-frame
	// allocations.
	scratch []float32
}

// Option is a functional option for configuring the Effects subsystem.
type Option func(*Effects)

// WithRenderer is an option builder that attaches a renderer. Without one
// the subsystem simulates but never uploads or draws.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - Option: option function to apply
func WithRenderer(r renderer.Renderer) Option {
	return func(e *Effects) {
		e.renderer = r
	}
}

// WithRandSource is an option builder that sets the random source used for
// particle seeding and per-particle color picks. Tests pass a fixed seed.
//
// Parameters:
//   - src: the random source
//
// Returns:
//   - Option: option function to apply
func WithRandSource(src rand.Source) Option {
	return func(e *Effects) {
		e.rng = rand.New(src)
	}
}

// WithComputeWorkers is an option builder that sets the worker count for
// parallel particle integration.
//
// Parameters:
//   - n: the worker count, minimum 1
//
// Returns:
//   - Option: option function to apply
func WithComputeWorkers(n int) Option {
	return func(e *Effects) {
		if n < 1 {
			n = 1
		}
		e.computeWorkers = n
	}
}

// New creates the effects subsystem. The scene must not be nil.
//
// Parameters:
//   - sc: the scene to register particle systems in
//   - opts: functional options to further configure the subsystem
//
// Returns:
//   - *Effects: the new subsystem
func New(sc scene.Scene, opts ...Option) *Effects {
	if sc == nil {
		panic("effects: New requires a non-nil Scene")
	}

	e := &Effects{
		scene:          sc,
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
		computeWorkers: 4,
	}
	for _, opt := range opts {
		opt(e)
	}

	// Queue size of 256 accommodates typical per-frame task counts with
	// headroom.
	e.computePool = worker.NewDynamicWorkerPool(e.computeWorkers, 256, 1*time.Second)

	return e
}

// ApplyStatic rebuilds the particle set for a mood: disposes every live
// system, then builds one per spec in the new config. A spec with a zero
// count or a failed GPU allocation skips that one system and the rest of the
// mood switch proceeds.
//
// Bloom parameters are pushed into the renderer's persistent post-process
// stage; the stage itself is never torn down between moods.
//
// Parameters:
//   - cfg: the mood configuration to apply
func (e *Effects) ApplyStatic(cfg *mood.Config) {
	e.disposeSystems()

	e.bloom = cfg.Bloom
	if e.renderer != nil {
		e.renderer.SetBloom(cfg.Bloom.Threshold, cfg.Bloom.Strength, cfg.Bloom.Radius)
	}

	for i, spec := range cfg.Particles {
		if spec.Count <= 0 {
			log.Printf("[Effects] skipping particle system %d of mood %q: zero count", i, cfg.Name)
			continue
		}
		if spec.Count > mood.MaxParticleCount {
			log.Printf("[Effects] skipping particle system %d of mood %q: count %d exceeds cap %d",
				i, cfg.Name, spec.Count, mood.MaxParticleCount)
			continue
		}

		name := fmt.Sprintf("particles-%s-%d", cfg.Name, i)
		sys := newParticleSystem(name, spec, e.rng)

		var cloud renderer.ParticleCloud
		if e.renderer != nil {
			pixels, size := generateTexture(spec.Material.Texture)
			var err error
			cloud, err = e.renderer.CreateParticleCloud(renderer.ParticleCloudDesc{
				Name:          name,
				Count:         spec.Count,
				TexturePixels: pixels,
				TextureSize:   size,
				Additive:      spec.Material.Blending == mood.BlendAdditive,
				DepthWrite:    spec.Material.DepthWrite,
			})
			if err != nil {
				log.Printf("[Effects] skipping particle system %q: %v", name, err)
				continue
			}
		}

		id := e.scene.Add(sys)
		e.systems = append(e.systems, binding{system: sys, cloud: cloud, id: id})
	}
}

// Update advances every live particle system by one frame. Systems integrate
// in parallel on the compute pool; a WaitGroup provides per-frame barrier
// sync since pool.Wait() blocks until workers idle-exit, which is unsuitable
// for frame-rate workloads.
//
// Parameters:
//   - deltaTime: frame delta time in seconds
func (e *Effects) Update(deltaTime float32) {
	if len(e.systems) == 0 {
		return
	}

	var wg sync.WaitGroup
	for i := range e.systems {
		sys := e.systems[i].system
		wg.Add(1)
		id := e.taskID
		e.taskID++
		e.computePool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				sys.advance(deltaTime)
				return nil, nil
			},
		})
	}
	wg.Wait()
}

// Render uploads every system's packed vertex stream to its GPU cloud.
// Headless instances are a no-op.
func (e *Effects) Render() {
	if e.renderer == nil {
		return
	}
	for i := range e.systems {
		b := &e.systems[i]
		if b.cloud == nil {
			continue
		}
		e.scratch = b.system.packVertices(e.scratch[:0])
		b.cloud.Upload(e.scratch)
	}
}

// Bloom returns the active bloom parameters.
func (e *Effects) Bloom() mood.BloomSpec {
	return e.bloom
}

// SystemCount returns the number of live particle systems.
func (e *Effects) SystemCount() int {
	return len(e.systems)
}

// System returns the i-th live particle system.
func (e *Effects) System(i int) *ParticleSystem {
	return e.systems[i].system
}

// disposeSystems releases every live system's GPU resources and removes it
// from the scene.
func (e *Effects) disposeSystems() {
	for _, b := range e.systems {
		if b.cloud != nil {
			b.cloud.Release()
		}
		e.scene.Remove(b.id)
	}
	e.systems = e.systems[:0]
}

// Dispose tears down every live particle system, returning the scene to its
// pre-subsystem baseline.
func (e *Effects) Dispose() {
	e.disposeSystems()
}
