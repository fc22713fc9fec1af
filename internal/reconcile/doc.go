// Package reconcile implements the buffer reconciliation engine: a
// deterministic state machine that keeps the primary editing engine's
// buffer and the UI-observed secondary buffer in agreement while either
// side may originate edits at any time.
//
// The engine is a reducer. It holds the last-known content, cursor, and
// selection of both sides plus a tri-state edition token arbitrating
// write authority. Each call to On consumes one Event, mutates the owned
// BufferState, and returns the ordered Actions the caller must execute
// against the live buffers and the token timer. The engine itself never
// performs I/O, never blocks, and never fails; all effects are data.
//
// Corrections the engine emits are folded into its recorded state in the
// same transition: drivers suppress echoes of engine-issued edits, so no
// event will ever report them back, and later transitions are computed
// as if the issued actions have landed.
//
// On is not reentrant. The mediator owning the engine must serialize
// calls through a single goroutine and execute each call's actions
// before processing the next event.
package reconcile
