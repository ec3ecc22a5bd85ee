// Command kiosk runs the mood-driven landscape display. It loads the mood
// catalog, assembles the scene and its subsystems, bridges the collaborator
// event bus, and runs the render loop until the window closes.
package main

import (
	"flag"
	"log"

	"github.com/groveworks/moodscape/common"
	"github.com/groveworks/moodscape/engine"
	"github.com/groveworks/moodscape/engine/camera"
	"github.com/groveworks/moodscape/engine/effects"
	"github.com/groveworks/moodscape/engine/lighting"
	"github.com/groveworks/moodscape/engine/mood"
	"github.com/groveworks/moodscape/engine/renderer"
	"github.com/groveworks/moodscape/engine/scene"
	"github.com/groveworks/moodscape/engine/vegetation"
	"github.com/groveworks/moodscape/engine/window"
	"github.com/groveworks/moodscape/kiosk/bus"
	"github.com/groveworks/moodscape/kiosk/state"
)

func main() {
	catalogPath := flag.String("catalog", "assets/moods.yaml", "path to the mood catalog")
	fullscreen := flag.Bool("fullscreen", false, "run fullscreen on the primary monitor")
	profiling := flag.Bool("profile", false, "log frame rate and memory statistics")
	frameLimit := flag.Float64("fps", 60, "frame rate cap (0 = uncapped)")
	flag.Parse()

	catalog, err := mood.LoadCatalog(*catalogPath)
	if err != nil {
		log.Fatalf("[Kiosk] %v", err)
	}
	log.Printf("[Kiosk] catalog loaded: %d mood(s)", catalog.Len())

	store := state.Open("moodscape")
	events := bus.New()

	windowOpts := []window.BuilderOption{window.WithTitle("Moodscape")}
	if *fullscreen {
		windowOpts = append(windowOpts, window.WithFullscreen())
	}
	win := window.NewWindow(windowOpts...)

	gpu, err := renderer.NewWebGPURenderer(win.SurfaceDescriptor(), uint32(win.Width()), uint32(win.Height()))
	if err != nil {
		log.Fatalf("[Kiosk] renderer: %v", err)
	}

	sc := scene.NewScene("landscape")
	rig := lighting.NewRig(sc)
	fx := effects.New(sc, effects.WithRenderer(gpu))

	// Material handles arrive from the landscape collaborator over the bus;
	// until then the styler runs against nothing.
	styler := vegetation.NewStyler(nil, nil, nil)
	events.LandscapeReady.Subscribe(func(ev bus.LandscapeReady) {
		styler.SetMaterials(ev.Tree, ev.Crop, ev.Ground)
	})

	manager := mood.NewManager(catalog, sc, rig, fx, styler,
		mood.WithAppliedCallback(func(cfg *mood.Config) {
			events.MoodApplied.Publish(bus.MoodApplied{
				Mood:   cfg.Name,
				Accent: cfg.UI.Accent,
				Text:   cfg.UI.Text,
			})
			if err := store.SaveLastMood(cfg.Name); err != nil {
				log.Printf("[Kiosk] %v", err)
			}
		}),
	)

	stopWatch, err := manager.Watch(*catalogPath)
	if err != nil {
		log.Printf("[Kiosk] catalog watch disabled: %v", err)
	} else {
		defer stopWatch()
	}

	cam := camera.NewCamera(
		camera.WithAspect(float32(win.Width())/float32(win.Height())),
		camera.WithController(camera.NewOrbitController(common.Vec3{0, 0, 0}, 600, 250)),
	)

	eng := engine.New(sc, cam, manager, rig, fx, styler,
		engine.WithWindow(win),
		engine.WithRenderer(gpu),
		engine.WithProfiling(*profiling),
		engine.WithFrameLimit(*frameLimit),
	)

	events.MoodRequested.Subscribe(func(ev bus.MoodRequested) {
		eng.RequestMood(ev.Mood)
	})

	// Number keys cycle moods for on-floor maintenance without an RFID card.
	names := catalog.Names()
	win.SetKeyDownCallback(func(keyCode uint32) {
		const key1, key9 = 49, 57
		if keyCode < key1 || keyCode > key9 {
			return
		}
		idx := int(keyCode - key1)
		if idx < len(names) {
			eng.RequestMood(names[idx])
		}
	})

	initial := store.LastMood()
	if _, ok := catalog.Lookup(initial); !ok {
		initial = names[0]
	}
	eng.RequestMood(initial)

	eng.Run()
	eng.Dispose()
}
