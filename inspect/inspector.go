// Package inspect describes rendered panels as a tree of nodes so tools and
// tests can examine output without parsing box-drawing characters.
package inspect

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// EnvVar enables writing snapshots when set to "1".
const EnvVar = "TEXTPANEL_INSPECT"

// Introspectable is implemented by components that can report their state.
type Introspectable interface {
	InspectNode() *Node
}

var (
	enabled     bool
	enabledOnce sync.Once
	inspectFile string
)

// IsEnabled reports whether inspection mode is active.
func IsEnabled() bool {
	enabledOnce.Do(func() {
		enabled = os.Getenv(EnvVar) == "1"
		if enabled {
			inspectFile = filepath.Join(os.TempDir(), "textpanel-inspect.json")
		}
	})
	return enabled
}

// GetInspectFile returns the path snapshots are written to, or "" when
// inspection is off.
func GetInspectFile() string {
	if !IsEnabled() {
		return ""
	}
	return inspectFile
}

// WriteSnapshot writes snapshot to the inspection file when inspection is on.
func WriteSnapshot(snapshot *Snapshot) error {
	if !IsEnabled() {
		return nil
	}
	return WriteSnapshotToPath(snapshot, inspectFile)
}

// WriteSnapshotToPath writes snapshot as indented JSON to path.
func WriteSnapshotToPath(snapshot *Snapshot, path string) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot loads a snapshot previously written with WriteSnapshotToPath.
func ReadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return &s, nil
}
