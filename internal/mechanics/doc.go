// Package mechanics is a minimal symbolic multibody engine built on
// package sym.
//
// It provides reference frames related by orientation, vectors expressed in
// any number of frames, points related by position, rigid bodies, pin
// joints, loads and a [System] container that accumulates bodies, joints,
// generalized coordinates and speeds, kinematic differential equations,
// loads and constraints. Equations of motion are not formed here.
//
// Frames form a tree: orienting a frame sets its parent. Direction cosines
// and angular velocities between any two frames of the same tree are
// computed through their lowest common ancestor.
//
// # Conventions
//
//   - Direction cosine matrix: dcm[i][j] is child axis i dotted with parent
//     axis j.
//   - Kinematic differential equations are stored as q' - u.
//   - Every operation that may fail returns an error instead of panicking.
package mechanics
