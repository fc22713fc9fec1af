// Package nvim drives the primary editing engine through a bridge
// process speaking newline-delimited JSON over stdio.
//
// Inbound notifications mirror the engine's buffer attachment events: a
// "lines" message carries the engine's own delta (firstline, lastline,
// linedata), a "cursor" message carries position and short mode name,
// an "error" message reports an engine-side fault, and a "refresh"
// message requests a full resync with the engine as ground truth. The
// driver keeps
// its own mirror of the buffer so every delta can be reported upstream
// together with the resulting full content.
//
// Outbound messages apply engine-issued corrections: "setlines" replaces
// a line range, "setcursor" moves the cursor. The bridge echoes a
// "lines" notification for every "setlines" we send; the driver counts
// outstanding writes and swallows exactly that many echoes so
// self-originated edits never loop back as events.
package nvim
