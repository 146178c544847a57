package core

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Requirement declares a slot that must hold an instance of one of the
// accepted types or one of their subtypes.
type Requirement struct {
	attr        string
	types       []*Type
	kind        Kind
	hard        bool
	description string
	fullName    string
	typeName    string
}

// RequirementOption customises a Requirement.
type RequirementOption func(*Requirement)

// Hard marks the slot as mandatory before the build starts.
func Hard() RequirementOption {
	return func(r *Requirement) { r.hard = true }
}

func WithDescription(d string) RequirementOption {
	return func(r *Requirement) { r.description = d }
}

func WithFullName(n string) RequirementOption {
	return func(r *Requirement) { r.fullName = n }
}

func WithTypeName(n string) RequirementOption {
	return func(r *Requirement) { r.typeName = n }
}

// NewModelRequirement declares a slot filled by a model.
func NewModelRequirement(attr string, types []*Type, opts ...RequirementOption) (Requirement, error) {
	return newRequirement(KindModel, attr, types, opts)
}

// NewConnectionRequirement declares a slot filled by a connection.
func NewConnectionRequirement(attr string, types []*Type, opts ...RequirementOption) (Requirement, error) {
	return newRequirement(KindConnection, attr, types, opts)
}

// MustModelRequirement is like NewModelRequirement but panics on error. It
// is meant for package-level type declarations.
func MustModelRequirement(attr string, types []*Type, opts ...RequirementOption) Requirement {
	r, err := NewModelRequirement(attr, types, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// MustConnectionRequirement is like NewConnectionRequirement but panics on
// error.
func MustConnectionRequirement(attr string, types []*Type, opts ...RequirementOption) Requirement {
	r, err := NewConnectionRequirement(attr, types, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

func newRequirement(kind Kind, attr string, types []*Type, opts []RequirementOption) (Requirement, error) {
	if !IsIdentifier(attr) {
		return Requirement{}, &RequirementError{Attribute: attr, Err: ErrInvalidAttributeName}
	}
	if len(types) == 0 {
		return Requirement{}, &RequirementError{Attribute: attr, Err: ErrNoAcceptedTypes}
	}
	for _, t := range types {
		if t == nil || t.Kind != kind {
			return Requirement{}, &RequirementError{Attribute: attr, Err: ErrUnsupportedRequirementKind}
		}
	}
	r := Requirement{
		attr:  attr,
		types: append([]*Type(nil), types...),
		kind:  kind,
	}
	for _, opt := range opts {
		opt(&r)
	}
	if r.description == "" {
		r.description = types[0].Summary()
	}
	if r.fullName == "" {
		r.fullName = fullName(attr)
	}
	if r.typeName == "" {
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = t.Name
		}
		r.typeName = strings.Join(names, " or ")
	}
	return r, nil
}

func fullName(attr string) string {
	s := strings.ToLower(strings.ReplaceAll(attr, "_", " "))
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func (r Requirement) AttributeName() string { return r.attr }
func (r Requirement) Types() []*Type        { return append([]*Type(nil), r.types...) }
func (r Requirement) Kind() Kind            { return r.kind }
func (r Requirement) Hard() bool            { return r.hard }
func (r Requirement) Description() string   { return r.description }
func (r Requirement) FullName() string      { return r.fullName }
func (r Requirement) TypeName() string      { return r.typeName }

// IsSatisfiedBy reports whether t is one of the accepted types or a subtype
// of one of them.
func (r Requirement) IsSatisfiedBy(t *Type) bool {
	if t == nil {
		return false
	}
	for _, a := range r.types {
		if t.IsSubtypeOf(a) {
			return true
		}
	}
	return false
}

// IsIdentifier reports whether s is a letter or underscore followed by
// letters, digits and underscores.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
