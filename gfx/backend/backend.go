// Package backend provides pluggable implementations of the gfx.Context
// boundary. Backends register themselves from init() functions; hosts pick
// one explicitly with Get or take the best available with Default.
package backend

import (
	"errors"

	"github.com/plus3/vermeer/gfx"
)

// Backend names.
const (
	// BackendGL is the OpenGL 4.1 core backend (requires a current native
	// context and cgo).
	BackendGL = "gl"
	// BackendHeadless is the pure-Go recording backend used for tests and
	// GPU-less runs.
	BackendHeadless = "headless"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// Backend creates gfx.Contexts against one native graphics implementation.
type Backend interface {
	// Name returns the backend identifier (e.g., "gl", "headless").
	Name() string

	// Init initializes the backend. For native backends the host must have
	// made its graphics context current before calling Init.
	Init() error

	// Close releases backend resources. The backend should not be used
	// after Close is called.
	Close()

	// NewContext returns a Context bound to this backend. Init must have
	// succeeded first.
	NewContext() gfx.Context
}
