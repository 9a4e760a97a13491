package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"textpanel/log"
)

// IndexFileName is the JSON listing of saved views.
const IndexFileName = "views.json"

// Entry describes one saved view.
type Entry struct {
	Name      string    `json:"name"`
	Width     int       `json:"width"`
	Lines     int       `json:"lines"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Index is the content of views.json. The view files are the source of
// truth; the index only adds metadata for listing.
type Index struct {
	Views []Entry `json:"views"`
}

func (idx *Index) find(name string) int {
	for i, e := range idx.Views {
		if e.Name == name {
			return i
		}
	}
	return -1
}

func (idx *Index) put(e Entry) {
	if i := idx.find(e.Name); i >= 0 {
		e.CreatedAt = idx.Views[i].CreatedAt
		idx.Views[i] = e
		return
	}
	idx.Views = append(idx.Views, e)
}

func (idx *Index) remove(name string) bool {
	i := idx.find(name)
	if i < 0 {
		return false
	}
	idx.Views = append(idx.Views[:i], idx.Views[i+1:]...)
	return true
}

// sorted returns the entries newest first.
func (idx *Index) sorted() []Entry {
	out := append([]Entry(nil), idx.Views...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].Name < out[j].Name
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

// readIndex loads views.json. A missing or unreadable index is rebuilt from
// the view files on disk. Callers hold the lock.
func readIndex(dir string) (*Index, error) {
	path := filepath.Join(dir, IndexFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return rebuildIndex(dir)
		}
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		log.ErrorLog.Printf("failed to parse view index at %s: %v", path, err)

		backupPath := path + ".corrupt." + time.Now().Format("20060102-150405")
		if backupErr := os.WriteFile(backupPath, data, 0644); backupErr == nil {
			log.InfoLog.Printf("Backed up corrupted view index to: %s", backupPath)
		}
		return rebuildIndex(dir)
	}
	return &idx, nil
}

// rebuildIndex scans dir for view files. Width is unknown for rebuilt
// entries and is recorded as the widest line.
func rebuildIndex(dir string) (*Index, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+viewExt))
	if err != nil {
		return nil, fmt.Errorf("failed to scan views: %w", err)
	}

	idx := &Index{}
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			log.WarningLog.Printf("skipping unreadable view %s: %v", path, err)
			continue
		}

		lines := splitLines(string(data))
		idx.put(Entry{
			Name:      strings.TrimSuffix(filepath.Base(path), viewExt),
			Width:     widest(lines),
			Lines:     len(lines),
			CreatedAt: info.ModTime(),
			UpdatedAt: info.ModTime(),
		})
	}
	log.StoreTrace("rebuilt index of %s with %d views", dir, len(idx.Views))
	return idx, nil
}

// writeIndex replaces views.json. Callers hold the exclusive lock.
func writeIndex(dir string, idx *Index) error {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}
	return writeFileAtomic(filepath.Join(dir, IndexFileName), data)
}
