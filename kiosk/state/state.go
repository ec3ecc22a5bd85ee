// Package state persists the kiosk's last applied mood across restarts, so
// a power cycle on the museum floor resumes the scene visitors last chose
// instead of falling back to the default.
package state

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
)

const (
	stateObject  = "kiosk"
	lastMoodProp = "lastMood"
)

// Store wraps the cross-platform data manager. A nil manager degrades to
// memory-only operation; the kiosk still runs, it just forgets its mood on
// restart.
type Store struct {
	manager *gdata.Manager
}

// Open creates the store under the given application name.
//
// Parameters:
//   - appName: the storage namespace
//
// Returns:
//   - *Store: the store, degraded to memory-only if storage is unavailable
func Open(appName string) *Store {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[State] storage unavailable, running without persistence: %v", err)
		return &Store{}
	}
	return &Store{manager: manager}
}

// LastMood returns the persisted mood name, or "" when none was saved or
// persistence is unavailable.
func (s *Store) LastMood() string {
	if s.manager == nil {
		return ""
	}
	data, err := s.manager.LoadObjectProp(stateObject, lastMoodProp)
	if err != nil {
		log.Printf("[State] load last mood: %v", err)
		return ""
	}
	return string(data)
}

// SaveLastMood persists the mood name.
//
// Parameters:
//   - name: the mood's catalog key
//
// Returns:
//   - error: storage failure, nil in degraded mode
func (s *Store) SaveLastMood(name string) error {
	if s.manager == nil {
		return nil
	}
	if err := s.manager.SaveObjectProp(stateObject, lastMoodProp, []byte(name)); err != nil {
		return fmt.Errorf("save last mood: %w", err)
	}
	return nil
}
