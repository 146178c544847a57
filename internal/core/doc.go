// Package core is the model composition framework.
//
// The package defines:
//
//   - [Type]: a component type with its supertype, abstract marker, slots
//     and constructor
//   - [Requirement]: a named slot accepting a set of types and their subtypes
//   - [Registry]: the catalog of model, connection and load group types
//   - [Base]: the state every component embeds (slots, symbols, descriptions,
//     system, build phase)
//   - [Run] and [Pipeline]: the five ordered build phases
//
// Concrete types register themselves at package initialisation:
//
//	var KnifeEdgeWheelType = core.Define(&core.Type{
//		Name: "KnifeEdgeWheel",
//		Kind: core.KindModel,
//		Base: WheelBaseType,
//		New:  func(t *core.Type, name string) core.Component { return newKnifeEdgeWheel(t, name) },
//	})
//
// # Example
//
//	disc := models.NewRollingDisc("rolling_disc")
//	_ = disc.SetDisc(bicycle.NewKnifeEdgeWheel("disc"))
//	_ = disc.SetGround(bicycle.NewFlatGround("ground"))
//	_ = disc.SetTyre(bicycle.NewNonHolonomicTyre("tyre"))
//	err := core.NewPipeline().Build(ctx, disc)
//	system, _ := core.ToSystem(disc)
//
// # Thread Safety
//
// The registry is written only during package initialisation and is safe
// for concurrent reads afterwards. Component trees are NOT thread-safe;
// build each tree from a single goroutine.
package core
