package mood

import (
	"log"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the catalog whenever its YAML file changes on disk and swaps
// the result into the manager, re-applying the current mood. A file that
// fails to parse is logged and ignored; the running catalog stays active.
//
// Editors that replace files via rename emit Create rather than Write, so
// both are treated as a change.
//
// Parameters:
//   - path: the catalog file to watch
//
// Returns:
//   - func(): stops the watcher
//   - error: if the watcher cannot be created or the path cannot be watched
func (m *Manager) Watch(path string) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				catalog, err := LoadCatalog(path)
				if err != nil {
					log.Printf("[Mood] catalog reload failed, keeping previous: %v", err)
					continue
				}
				log.Printf("[Mood] catalog reloaded: %d mood(s)", catalog.Len())
				m.ReplaceCatalog(catalog)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("[Mood] catalog watcher error: %v", err)
			}
		}
	}()

	return func() { watcher.Close() }, nil
}
