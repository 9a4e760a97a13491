package store

import (
	"os"
	"path/filepath"
)

// LockFileName sits next to the view files and guards both them and the index.
const LockFileName = "views.lock"

// FileLock is an advisory lock on a separate lock file in the views
// directory, shared between every process using the same directory.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock returns an unlocked lock for the views directory dir.
func NewFileLock(dir string) *FileLock {
	return &FileLock{path: filepath.Join(dir, LockFileName)}
}

// Path returns the lock file location.
func (l *FileLock) Path() string {
	return l.path
}

// Held reports whether this FileLock currently holds a lock.
func (l *FileLock) Held() bool {
	return l.file != nil
}

// withLock runs fn while holding the exclusive lock.
func (l *FileLock) withLock(fn func() error) error {
	if err := l.Lock(); err != nil {
		return err
	}
	defer l.Unlock()
	return fn()
}

// withRLock runs fn while holding a shared lock.
func (l *FileLock) withRLock(fn func() error) error {
	if err := l.RLock(); err != nil {
		return err
	}
	defer l.Unlock()
	return fn()
}
