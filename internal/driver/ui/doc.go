// Package ui hosts the secondary buffer: a tcell-backed editable text
// view standing in for the observed host editor.
//
// The view reports its own content, selection, and focus changes through
// callbacks and applies engine-issued corrections, suppressing
// notifications for edits it is itself applying so corrections never
// loop back as events.
package ui
