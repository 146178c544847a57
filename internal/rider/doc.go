// Package rider provides the submodels a bicycle rider is assembled from.
//
//   - Pelvis: [PlanarPelvis]
//   - Legs: [TwoPinStickLeftLeg], [TwoPinStickRightLeg]
//   - Arms: [PinElbowStickLeftArm], [PinElbowStickRightArm]
//   - Hips: [PinLeftHip], [PinRightHip], connecting a leg to the pelvis
//   - Load groups: [PinElbowTorque], [PinElbowSpringDamper]
//
// [Rider] ties them together. Only the pelvis is required; a leg without a
// hip connection stays free of the pelvis.
//
// # Example
//
//	r := rider.NewRider("rider")
//	_ = r.SetPelvis(rider.NewPlanarPelvis("pelvis"))
//	_ = r.SetLeftLeg(rider.NewTwoPinStickLeftLeg("left_leg"))
//	_ = r.SetLeftHip(rider.NewPinLeftHip("left_hip"))
//	err := core.NewPipeline().Build(ctx, r)
package rider
