// Package dispatch decouples edit producers from the history.
//
// Selection handlers, keyboard shortcuts, and scripts all want to push,
// undo, or redo without holding a reference to the History. They enqueue a
// Request instead; once per processing cycle the owning component drains
// the queue in FIFO order and applies each request with exclusive access to
// the scene. Requests that arrive mid-drain wait for the next cycle.
package dispatch
