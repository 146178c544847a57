// Package bicycle provides the submodels a bicycle is assembled from.
//
//   - Grounds: [FlatGround]
//   - Wheels: [KnifeEdgeWheel], [ToroidalWheel]
//   - Tyres: [NonHolonomicTyre], connecting a wheel to the ground
//
// All types register themselves in the default registry when the package
// is imported.
//
// A tyre places its contact point relative to the wheel center in the
// kinematics phase. The parent model is responsible for placing the contact
// point on the ground, for example with [FlatGround.SetPointPos].
package bicycle
