package core

import "github.com/san-kum/brim/internal/mechanics"

// LoadGroupBaseType is the abstract root of all load group types. It is
// compatible with any component.
var LoadGroupBaseType = Define(&Type{
	Name:     "LoadGroupBase",
	Kind:     KindLoadGroup,
	Doc:      "Base type for groups of loads that can be added to a model or connection.",
	Abstract: true,
})

// LoadGroup is embedded by load group components.
type LoadGroup struct {
	Base
}

// SetParentSystem gives the load group a system sharing its parent's origin
// and frame. Load groups call it from DefineObjects.
func (lg *LoadGroup) SetParentSystem() error {
	p := lg.Parent()
	if p == nil || p.Core().System() == nil {
		return ErrNoSystem
	}
	ps := p.Core().System()
	lg.SetSystem(mechanics.NewSystem(ps.Origin(), ps.Frame()))
	return nil
}
