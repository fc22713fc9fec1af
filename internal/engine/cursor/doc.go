// Package cursor provides the cursor and selection value types for the
// two sides of a buffer pairing.
//
// The primary side has a cursor (position plus editing mode); the
// secondary side has only a selection. Crossing sides therefore requires
// a projection: a cursor becomes a selection per its mode, and a
// selection's start stands in for a cursor position.
package cursor
