//go:build !windows

package store

import (
	"fmt"
	"os"
	"syscall"
)

// Lock blocks until the exclusive lock is acquired.
func (l *FileLock) Lock() error {
	return l.acquire(os.O_CREATE|os.O_RDWR, syscall.LOCK_EX, "exclusive")
}

// RLock blocks until a shared lock is acquired. Any number of readers may
// hold it at once.
func (l *FileLock) RLock() error {
	return l.acquire(os.O_CREATE|os.O_RDONLY, syscall.LOCK_SH, "shared")
}

func (l *FileLock) acquire(flag, how int, kind string) error {
	if l.file != nil {
		return fmt.Errorf("lock %s already held", l.path)
	}

	f, err := os.OpenFile(l.path, flag, 0644)
	if err != nil {
		return fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := syscall.Flock(int(f.Fd()), how); err != nil {
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

	if err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("failed to close lock file: %w", err)
	}

	l.file = nil
	return nil
}
