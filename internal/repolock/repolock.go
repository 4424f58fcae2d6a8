// Package repolock serializes mutating commands on one repository.
// Read-only commands never take the lock; fix and build do, so two
// concurrent invocations cannot interleave their writes.
package repolock

import (
	"path/filepath"

	"github.com/gofrs/flock"

	"texrepo/internal/faults"
)

// LockFileName is the advisory lock file kept at the repository root.
const LockFileName = ".texrepo.lock"

// Lock is a held repository lock. Release it when the command finishes.
type Lock struct {
	fl *flock.Flock
}

// Acquire takes the repository lock without blocking. A repository already
// locked by another invocation surfaces as faults.ErrLocked.
func Acquire(root string) (*Lock, error) {
	fl := flock.New(filepath.Join(root, LockFileName))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, faults.Wrap(faults.ErrStructure, "repolock", "acquire", "cannot take repository lock", err)
	}
	if !locked {
		return nil, faults.Wrap(faults.ErrLocked, "repolock", "acquire", "another invocation holds the repository lock", nil)
	}
	return &Lock{fl: fl}, nil
}

// Release drops the lock. Safe to call on a nil lock.
func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	return l.fl.Unlock()
}
