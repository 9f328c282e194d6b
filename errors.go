package softwin

import (
	"errors"
	"fmt"
)

// Phase names the step of the surface lifecycle or frame pipeline that
// failed.
type Phase uint8

const (
	// PhaseCreateContext is presentation context creation (Resume).
	PhaseCreateContext Phase = iota + 1

	// PhaseCreateSurface is surface creation (Resume).
	PhaseCreateSurface

	// PhaseResize is a surface resize (Resume, SetSize).
	PhaseResize

	// PhaseRasterize is scene rasterization (Render).
	PhaseRasterize

	// PhaseConvert is the pixel format conversion (Render).
	PhaseConvert

	// PhasePresent is handing the frame to the compositor (Render).
	PhasePresent
)

var phaseNames = [...]string{
	PhaseCreateContext: "create context",
	PhaseCreateSurface: "create surface",
	PhaseResize:        "resize",
	PhaseRasterize:     "rasterize",
	PhaseConvert:       "convert",
	PhasePresent:       "present",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) && phaseNames[p] != "" {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

// ErrFatal matches every *FatalError with errors.Is.
var ErrFatal = errors.New("softwin: fatal")

// FatalError reports a failure the renderer cannot recover from: the window
// or the caller is in a state where rendering cannot safely continue.
// Embedders should stop rendering into the window.
type FatalError struct {
	Phase Phase
	Err   error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("softwin: %s failed: %v", e.Phase, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

// Is reports whether target is ErrFatal.
func (e *FatalError) Is(target error) bool { return target == ErrFatal }

func fatal(phase Phase, err error) error {
	return &FatalError{Phase: phase, Err: err}
}

// PhaseOf returns the phase of a fatal error, or 0 if err is not one.
func PhaseOf(err error) Phase {
	var fe *FatalError
	if errors.As(err, &fe) {
		return fe.Phase
	}
	return 0
}
