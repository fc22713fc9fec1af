// Package buffer provides the line-oriented value types shared by both
// sides of a buffer pairing: positions, line snapshots, and the change
// descriptors the primary engine uses to describe its own edits.
//
// Content is modeled as an ordered sequence of lines without trailing
// newline characters. All positions are zero-based, line then column.
//
// Everything in this package is a plain value type; nothing here performs
// I/O or holds references to live buffers.
package buffer
