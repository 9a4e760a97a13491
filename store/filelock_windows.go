//go:build windows

package store

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

// Lock blocks until the exclusive lock is acquired.
func (l *FileLock) Lock() error {
	return l.acquire(os.O_CREATE|os.O_RDWR, windows.LOCKFILE_EXCLUSIVE_LOCK, "exclusive")
}

// RLock blocks until a shared lock is acquired. Any number of readers may
// hold it at once.
func (l *FileLock) RLock() error {
	return l.acquire(os.O_CREATE|os.O_RDONLY, 0, "shared")
}

func (l *FileLock) acquire(flag int, lockFlags uint32, kind string) error {
	if l.file != nil {
		return fmt.Errorf("lock %s already held", l.path)
	}

	f, err := os.OpenFile(l.path, flag, 0644)
	if err != nil {
		return fmt.Errorf("failed to open lock file: %w", err)
	}

	// one byte at offset zero is enough for an advisory lock
	ol := new(windows.Overlapped)
	if err := windows.LockFileEx(windows.Handle(f.Fd()), lockFlags, 0, 1, 0, ol); err != nil {
		f.Close()
		return fmt.Errorf("failed to acquire %s lock: %w", kind, err)
	}

	l.file = f
	return nil
}

// Unlock releases the lock. Unlocking an unheld lock is a no-op.
func (l *FileLock) Unlock() error {
	if l.file == nil {
		return nil
	}

	ol := new(windows.Overlapped)
	if err := windows.UnlockFileEx(windows.Handle(l.file.Fd()), 0, 1, 0, ol); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("failed to close lock file: %w", err)
	}

	l.file = nil
	return nil
}
