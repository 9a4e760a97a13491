// Package store keeps views on disk, one plain text file per view plus a
// JSON index for listing.
//
// A view named "menu" lives in <dir>/menu.txt and holds exactly the view
// text. Every write takes an exclusive lock on <dir>/views.lock and every
// read a shared one, so several processes can use the same directory.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"textpanel/document"
	"textpanel/log"
	"textpanel/panel"
	"textpanel/store/wordgen"
)

const viewExt = ".txt"

var (
	// ErrNotFound is returned for names with no saved view.
	ErrNotFound = errors.New("view not found")
	// ErrInvalidName is returned for names that cannot be used as file names.
	ErrInvalidName = errors.New("invalid view name")
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// now is swapped out in tests.
var now = time.Now

// FileStore saves and loads views under one directory.
type FileStore struct {
	dir string
}

// New returns a store rooted at dir, creating the directory if needed.
func New(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create views directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the views directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// ValidateName checks that name is usable as a view file name.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) || len(name) > 100 {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+viewExt)
}

func (s *FileStore) lock() *FileLock {
	return NewFileLock(s.dir)
}

// SaveView writes v to disk and records it in the index. A view without a
// name is given a generated one first. width is recorded for listing.
func (s *FileStore) SaveView(v *document.View, width int) error {
	return s.lock().withLock(func() error {
		if v.Name() == "" {
			v.SetName(wordgen.Unique(s.exists))
			log.InfoLog.Printf("saving unnamed view as %q", v.Name())
		}
		if err := ValidateName(v.Name()); err != nil {
			return err
		}

		if err := writeFileAtomic(s.path(v.Name()), []byte(v.Get())); err != nil {
			return fmt.Errorf("failed to write view %s: %w", v.Name(), err)
		}

		idx, err := readIndex(s.dir)
		if err != nil {
			return err
		}
		t := now()
		idx.put(Entry{
			Name:      v.Name(),
			Width:     width,
			Lines:     len(v.Lines()),
			CreatedAt: t,
			UpdatedAt: t,
		})
		log.StoreTrace("saved view %s (%d lines)", v.Name(), len(v.Lines()))
		return writeIndex(s.dir, idx)
	})
}

// LoadView reads the view called name.
func (s *FileStore) LoadView(name string) (*document.View, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	var data []byte
	err := s.lock().withRLock(func() error {
		var err error
		data, err = os.ReadFile(s.path(name))
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	v := document.NewView(name)
	v.Set(string(data))
	log.StoreTrace("loaded view %s (%d bytes)", name, len(data))
	return v, nil
}

// ReadLines returns the physical lines of the view called name.
func (s *FileStore) ReadLines(name string) ([]string, error) {
	v, err := s.LoadView(name)
	if err != nil {
		return nil, err
	}
	return splitLines(v.Get()), nil
}

// WriteLines stores lines as the view called name, each followed by a
// line break.
func (s *FileStore) WriteLines(name string, lines []string) error {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}

	v := document.NewView(name)
	v.Set(b.String())
	return s.SaveView(v, widest(lines))
}

// List returns the saved views, most recently updated first.
func (s *FileStore) List() ([]Entry, error) {
	var entries []Entry
	err := s.lock().withRLock(func() error {
		idx, err := readIndex(s.dir)
		if err != nil {
			return err
		}
		entries = idx.sorted()
		return nil
	})
	return entries, err
}

// Exists reports whether a view called name is saved.
func (s *FileStore) Exists(name string) bool {
	if ValidateName(name) != nil {
		return false
	}
	return s.exists(name)
}

func (s *FileStore) exists(name string) bool {
	_, err := os.Stat(s.path(name))
	return err == nil
}

// Delete removes the view called name and its index entry.
func (s *FileStore) Delete(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	return s.lock().withLock(func() error {
		if err := os.Remove(s.path(name)); err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("%w: %s", ErrNotFound, name)
			}
			return fmt.Errorf("failed to delete view %s: %w", name, err)
		}

		idx, err := readIndex(s.dir)
		if err != nil {
			return err
		}
		if !idx.remove(name) {
			log.WarningLog.Printf("view %s was not in the index", name)
		}
		log.StoreTrace("deleted view %s", name)
		return writeIndex(s.dir, idx)
	})
}

// splitLines splits text into physical lines without the empty element a
// trailing line break would add.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

func widest(lines []string) int {
	w := 0
	for _, line := range lines {
		if n := panel.TextWidth(line); n > w {
			w = n
		}
	}
	return w
}

// writeFileAtomic writes through a temporary file in the same directory so
// readers never see a half-written file.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
