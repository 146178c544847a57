// Package viz renders built models for the terminal.
//
//   - [Tree]: the component tree with slots, connections and load groups
//   - [Types]: the registered component types
//   - [Requirements]: the slots one type declares
//   - [Summary]: counts, coordinates and parameter values of a build
//   - [SweepPlot]: an ASCII plot of an expression swept over a coordinate
//
// All renderers take a [Theme]. Colors degrade to plain text when the
// output is not a terminal.
package viz
