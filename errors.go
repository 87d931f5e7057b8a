package borders

import "errors"

var (
	// ErrTornFrame is returned when a frame's vertex data and draw
	// descriptors disagree in size.
	ErrTornFrame = errors.New("borders: vertex data does not match draw descriptors")

	// ErrInvalidColor is returned when a color string cannot be parsed.
	ErrInvalidColor = errors.New("borders: invalid color")

	// ErrInvalidConfig is returned when a configuration value is out of range.
	ErrInvalidConfig = errors.New("borders: invalid config")

	// ErrNilProgram is returned when rendering is requested without a program.
	ErrNilProgram = errors.New("borders: nil program")
)
