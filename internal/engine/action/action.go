package action

import "github.com/vantling/shipforge/internal/scene"

// Result is the outcome of applying an action in either direction. Apply
// calls never panic and never return errors; they report a Result and leave
// any detail to the diagnostics log.
type Result int

const (
	// Failed means the action could not be applied.
	Failed Result = iota
	// Success means the action was applied.
	Success
)

// String returns the string representation of the result.
func (r Result) String() string {
	switch r {
	case Failed:
		return "failed"
	case Success:
		return "success"
	default:
		return "unknown"
	}
}

// Action is a reversible edit against the scene.
//
// Redo applies the edit forward; Undo reverses it. Both receive exclusive
// access to the scene for the duration of the call and must complete
// synchronously — an action must not block, and must not call back into the
// history or queue that is applying it. The history calls each direction at
// most once per log position, always alternating, so Undo can rely on state
// captured by the preceding Redo.
type Action interface {
	// Redo applies the action.
	Redo(s *scene.Scene) Result

	// Undo reverses the action.
	Undo(s *scene.Scene) Result

	// Description returns a human-readable description of the action,
	// used in diagnostics and history listings.
	Description() string
}
