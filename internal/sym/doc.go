// Package sym provides the small symbolic-expression layer used by the
// mechanics engine and the model components.
//
// The package defines:
//
//   - [Symbol]: a named constant parameter such as a radius or a mass
//   - [Dynamic]: a named function of time such as a generalized coordinate
//   - [Sum], [Product], [Power], [Func]: composite expressions built by
//     [Add], [Mul], [Pow], [Sin] and [Cos]
//   - [Dt]: time differentiation
//   - [Eval]: numeric evaluation against a [Values] table
//
// Constructors apply light canonicalisation (constant folding, flattening,
// collecting like terms) so that structurally-zero results collapse to
// [Num](0). No general simplifier is provided; use [CheckZero] to decide
// whether an expression vanishes numerically.
//
// # Example
//
//	r := sym.NewSymbol("wheel_r")
//	q := sym.NewDynamic("q1")
//	e := sym.Mul(r, sym.Cos(q), sym.Dt(q))
//	v, _ := sym.Eval(e, sym.Values{"wheel_r": 0.3, "q1": 0.1, "q1'": 2})
package sym
