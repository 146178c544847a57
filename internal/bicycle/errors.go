package bicycle

import (
	"errors"
	"fmt"

	"github.com/san-kum/brim/internal/mechanics"
)

var (
	// ErrUnsupportedCombination is returned by a tyre that cannot compute a
	// contact point for its wheel and ground types.
	ErrUnsupportedCombination = errors.New("bicycle: unsupported wheel and ground combination")

	// ErrInvalidPosition is returned for a wheel position other than
	// "front" or "rear".
	ErrInvalidPosition = errors.New("bicycle: wheel position must be front or rear")

	ErrInvalidUpwardAxis = fmt.Errorf("bicycle: invalid upward radial axis: %w", mechanics.ErrGeometricConstraint)
)
