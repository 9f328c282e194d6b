package softwin

import (
	"errors"
	"fmt"
	"testing"
)

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseCreateContext, "create context"},
		{PhaseCreateSurface, "create surface"},
		{PhaseResize, "resize"},
		{PhaseRasterize, "rasterize"},
		{PhaseConvert, "convert"},
		{PhasePresent, "present"},
		{0, "Phase(0)"},
		{42, "Phase(42)"},
	}

	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", uint8(tt.phase), got, tt.want)
		}
	}
}

func TestFatalError(t *testing.T) {
	cause := errors.New("device lost")
	err := fatal(PhasePresent, cause)

	if got, want := err.Error(), "softwin: present failed: device lost"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrFatal) {
		t.Error("errors.Is(err, ErrFatal) = false")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false")
	}

	var fe *FatalError
	if !errors.As(err, &fe) || fe.Phase != PhasePresent {
		t.Errorf("errors.As() = %v, phase %v", fe, fe.Phase)
	}
}

func TestPhaseOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Phase
	}{
		{"nil", nil, 0},
		{"plain", errors.New("plain"), 0},
		{"fatal", fatal(PhaseResize, errors.New("x")), PhaseResize},
		{"wrapped", fmt.Errorf("frame 12: %w", fatal(PhaseConvert, errors.New("x"))), PhaseConvert},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PhaseOf(tt.err); got != tt.want {
				t.Errorf("PhaseOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlainErrorIsNotFatal(t *testing.T) {
	if errors.Is(errors.New("softwin: fatal"), ErrFatal) {
		t.Error("an unrelated error with the same text must not match ErrFatal")
	}
}
