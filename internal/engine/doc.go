// Package engine ties the editing pieces into one session facade.
//
// The engine owns the open scene, its undo/redo history, and the request
// queue feeding it. Producers enqueue push/undo/redo requests from anywhere;
// the host calls Tick once per processing cycle to drain them in order with
// exclusive access to the scene. Opening a document clears the history and
// drops pending requests, so nothing ever applies against stale state.
//
// Sub-packages:
//
//   - action: reversible edits and composite grouping
//   - history: the linear undo/redo log
//   - dispatch: the producer/consumer request queue
package engine
