// Package profiler logs frame-rate and memory statistics for the unattended
// kiosk. The installation runs for weeks; the allocation rate and GC pause
// lines are what catch slow leaks before visitors notice stutter.
package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler tracks frame timing and memory statistics, logging a summary line
// at a fixed interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	interval       time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// Option is a functional option for configuring a Profiler.
type Option func(*Profiler)

// WithInterval is an option builder that sets the logging interval.
//
// Parameters:
//   - interval: time between summary lines
//
// Returns:
//   - Option: option function to apply
func WithInterval(interval time.Duration) Option {
	return func(p *Profiler) {
		p.interval = interval
	}
}

// New creates a Profiler. The logging interval defaults to one second.
//
// Parameters:
//   - opts: functional options to further configure the profiler
//
// Returns:
//   - *Profiler: the new profiler
func New(opts ...Option) *Profiler {
	p := &Profiler{
		lastTime: time.Now(),
		interval: time.Second,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Tick records one frame and logs a summary when the interval has elapsed.
// The scene object count is included so resource leaks across mood switches
// show up directly in the log.
//
// Parameters:
//   - objectCount: the current scene object count
//
// Returns:
//   - bool: true if a summary was logged this tick
func (p *Profiler) Tick(objectCount int) bool {
	p.frameCount++
	now := time.Now()
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.interval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	heapMB := float64(p.memStats.Alloc) / 1024 / 1024
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	var lastPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses.
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
	}

	log.Printf("[Profiler] FPS: %.2f | Objects: %d | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs)",
		fps, objectCount, heapMB, allocRateMB, gcCount, lastPauseUs)

	p.frameCount = 0
	p.lastTime = now
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
