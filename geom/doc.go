// Package geom holds the value types the frame pipeline passes around:
// vectors, 4×4 matrices, rays and geographic positions.
//
// All types are plain values so frames can embed them without heap
// allocation. Geodetic transforms themselves belong to globe and navigator
// collaborators; this package only carries their results.
package geom
