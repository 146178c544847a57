package mechanics

import "errors"

// Errors reported by the mechanics engine.
var (
	// ErrGeometricConstraint indicates a physically inconsistent configuration,
	// such as a zero rotation axis or a direction that is not radial.
	ErrGeometricConstraint = errors.New("mechanics: geometric constraint violated")

	// ErrUnrelatedFrames indicates two frames without a common orientation
	// ancestor.
	ErrUnrelatedFrames = errors.New("mechanics: frames are not related by orientation")

	// ErrUnrelatedPoints indicates two points without a position path.
	ErrUnrelatedPoints = errors.New("mechanics: points are not related by position")

	// ErrVelocityUndefined indicates no velocity could be derived for a point.
	ErrVelocityUndefined = errors.New("mechanics: velocity undefined")

	// ErrInvalidSystem indicates an inconsistent system definition.
	ErrInvalidSystem = errors.New("mechanics: invalid system")
)
