package core

import (
	"errors"
	"fmt"
)

// Composition and build errors. All are comparable with errors.Is.
var (
	// ErrInvalidAttributeName indicates a requirement whose attribute name is
	// not an identifier.
	ErrInvalidAttributeName = errors.New("core: invalid attribute name")

	// ErrNoAcceptedTypes indicates a requirement without accepted types.
	ErrNoAcceptedTypes = errors.New("core: requirement accepts no types")

	// ErrSlotTypeMismatch indicates a slot assignment with a value whose type
	// does not satisfy the slot requirement.
	ErrSlotTypeMismatch = errors.New("core: slot type mismatch")

	// ErrUnknownSlot indicates a slot name that no requirement declares.
	ErrUnknownSlot = errors.New("core: unknown slot")

	// ErrUnsupportedRequirementKind indicates a requirement that is neither a
	// model nor a connection requirement.
	ErrUnsupportedRequirementKind = errors.New("core: unsupported requirement kind")

	// ErrMissingHardRequirement indicates a hard slot left empty when the
	// connections phase starts.
	ErrMissingHardRequirement = errors.New("core: missing hard requirement")

	// ErrPhaseOrder indicates a phase run out of order or twice.
	ErrPhaseOrder = errors.New("core: phase out of order")

	ErrUnknownType           = errors.New("core: unknown type")
	ErrAbstractType          = errors.New("core: abstract type cannot be instantiated")
	ErrIncompatibleLoadGroup = errors.New("core: incompatible load group")
	ErrDuplicateName         = errors.New("core: duplicate component name")
	ErrDuplicateType         = errors.New("core: type name already registered")
	ErrInvalidName           = errors.New("core: invalid component name")
	ErrUnknownOption         = errors.New("core: unknown option")
	ErrNoSystem              = errors.New("core: component has no system")
)

// SlotError wraps an error with the slot it concerns.
type SlotError struct {
	Component string
	Slot      string
	Want      string
	Got       string
	Err       error
}

func (e *SlotError) Error() string {
	msg := fmt.Sprintf("%s: %s.%s", e.Err, e.Component, e.Slot)
	if e.Want != "" {
		msg += fmt.Sprintf(": want %s, got %s", e.Want, e.Got)
	}
	return msg
}

func (e *SlotError) Unwrap() error { return e.Err }

// PhaseError wraps a failure of a build phase on one component.
type PhaseError struct {
	Component string
	Phase     Phase
	State     Phase
	Err       error
}

func (e *PhaseError) Error() string {
	if errors.Is(e.Err, ErrPhaseOrder) {
		return fmt.Sprintf("%s: %s cannot reach %s from %s", e.Err, e.Component, e.Phase, e.State)
	}
	return fmt.Sprintf("%s: %s: %s", e.Phase, e.Component, e.Err)
}

func (e *PhaseError) Unwrap() error { return e.Err }

// RequirementError wraps a requirement construction failure.
type RequirementError struct {
	Attribute string
	Err       error
}

func (e *RequirementError) Error() string {
	return fmt.Sprintf("%s: %q", e.Err, e.Attribute)
}

func (e *RequirementError) Unwrap() error { return e.Err }
