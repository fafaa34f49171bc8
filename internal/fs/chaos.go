package fs

import (
	"errors"
	"math/rand"
	"os"
	"sync"
	"syscall"
)

// ChaosConfig controls random fault injection.
// Each rate is a float64 from 0.0 (never) to 1.0 (always).
type ChaosConfig struct {
	ReadFailRate  float64 // Fail ReadFile entirely
	WriteFailRate float64 // Fail WriteFileAtomic before anything is written
	OpenFailRate  float64 // Fail OpenFile
	StatFailRate  float64 // Fail Exists
}

// PathState tracks the fault state of a path for consistent error injection.
type PathState int

const (
	// PathNormal means no persistent fault. This is the zero value, so
	// untracked paths are normal.
	PathNormal PathState = iota
	// PathIOError is sticky: every operation on the path returns EIO.
	PathIOError
	// PathReadOnly is sticky for writes: WriteFileAtomic and writable
	// OpenFile return EROFS.
	PathReadOnly
	// PathNoPermission makes every operation on the path return EACCES.
	PathNoPermission
)

var errChaosPartialWrite = errors.New("chaos: write interrupted")

// Chaos wraps an [FS] and injects failures for testing.
//
// Faults come from two sources: sticky per-path state set with
// [Chaos.SetPathState], and random faults drawn from [ChaosConfig] with a
// seeded generator. Injected errno faults are real *fs.PathError values so
// os.IsPermission and friends behave as with the real filesystem; use
// [IsInjected] to tell them apart from genuine errors.
type Chaos struct {
	fs     FS
	config ChaosConfig

	mu         sync.Mutex
	rng        *rand.Rand
	pathStates map[string]PathState
	faults     int
}

// NewChaos creates a new Chaos filesystem wrapping the given [FS].
// The seed controls random fault injection for reproducibility.
func NewChaos(fs FS, seed int64, config ChaosConfig) *Chaos {
	return &Chaos{
		fs:         fs,
		config:     config,
		rng:        rand.New(rand.NewSource(seed)), //nolint:gosec // fault injection, not security
		pathStates: make(map[string]PathState),
	}
}

// SetPathState pins the fault state of path. [PathNormal] clears it.
func (c *Chaos) SetPathState(path string, state PathState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if state == PathNormal {
		delete(c.pathStates, path)

		return
	}

	c.pathStates[path] = state
}

// Faults returns how many faults have been injected so far.
func (c *Chaos) Faults() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.faults
}

func (c *Chaos) ReadFile(path string) ([]byte, error) {
	if err := c.fault("open", path, false, c.config.ReadFailRate); err != nil {
		return nil, err
	}

	return c.fs.ReadFile(path)
}

func (c *Chaos) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if err := c.fault("write", path, true, 0); err != nil {
		return err
	}

	if c.roll(c.config.WriteFailRate) {
		return inject(errChaosPartialWrite)
	}

	return c.fs.WriteFileAtomic(path, data, perm)
}

func (c *Chaos) OpenFile(path string, flag int, perm os.FileMode) (File, error) {
	writable := flag&(os.O_WRONLY|os.O_RDWR|os.O_APPEND|os.O_CREATE|os.O_TRUNC) != 0

	if err := c.fault("open", path, writable, c.config.OpenFailRate); err != nil {
		return nil, err
	}

	return c.fs.OpenFile(path, flag, perm)
}

func (c *Chaos) MkdirAll(path string, perm os.FileMode) error {
	if err := c.fault("mkdir", path, true, 0); err != nil {
		return err
	}

	return c.fs.MkdirAll(path, perm)
}

func (c *Chaos) Exists(path string) (bool, error) {
	if err := c.fault("stat", path, false, c.config.StatFailRate); err != nil {
		return false, err
	}

	return c.fs.Exists(path)
}

// fault returns the error to inject for an operation, or nil.
// Sticky path state wins over random faults.
func (c *Chaos) fault(op, path string, write bool, rate float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errno syscall.Errno

	switch c.pathStates[path] {
	case PathIOError:
		errno = syscall.EIO
	case PathNoPermission:
		errno = syscall.EACCES
	case PathReadOnly:
		if write {
			errno = syscall.EROFS
		}
	case PathNormal:
		if rate > 0 && c.rng.Float64() < rate {
			errno = syscall.EIO
		}
	}

	if errno == 0 {
		return nil
	}

	c.faults++

	return injectPathError(op, path, errno)
}

func (c *Chaos) roll(rate float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if rate <= 0 || c.rng.Float64() >= rate {
		return false
	}

	c.faults++

	return true
}

// Compile-time interface check.
var _ FS = (*Chaos)(nil)
