package action

import (
	"fmt"

	"github.com/vantling/shipforge/internal/logging"
	"github.com/vantling/shipforge/internal/scene"
)

// Combined groups an ordered sequence of actions into a single atomic edit.
// It is itself an Action, so the history treats the whole group as one
// undo/redo unit.
//
// Atomicity is best effort. When a sub-action fails partway through, the
// already-applied sub-actions are unwound by applying their opposite
// direction in reverse order. If the unwind itself fails, the scene is left
// between the before and after states; that condition is reported on the
// diagnostics log but cannot be repaired here, because the engine has no
// generic way to snapshot the scene — rollback is expressed purely in terms
// of the same apply primitives.
type Combined struct {
	Name    string
	Actions []Action

	log *logging.Logger
}

// NewCombined creates a combined action from the given sub-actions.
func NewCombined(name string, actions ...Action) *Combined {
	return &Combined{Name: name, Actions: actions}
}

// WithLogger sets the diagnostics logger and returns the action for chaining.
func (c *Combined) WithLogger(log *logging.Logger) *Combined {
	c.log = log
	return c
}

func (c *Combined) logger() *logging.Logger {
	if c.log == nil {
		return logging.Null
	}
	return c.log
}

// Redo applies every sub-action in order. On the first failure, the
// sub-actions that did succeed — exactly those before the failing index —
// are undone in reverse order.
func (c *Combined) Redo(s *scene.Scene) Result {
	for i, a := range c.Actions {
		if a.Redo(s) == Failed {
			c.logger().Warn("could not apply all actions in %q; unwinding partial state", c.Description())
			return c.unwind(s, i)
		}
	}
	return Success
}

// Undo reverses every sub-action in reverse order. On the first failure, the
// sub-actions already undone — exactly those after the failing index — are
// re-applied forward to restore the fully-applied state.
func (c *Combined) Undo(s *scene.Scene) Result {
	for i := len(c.Actions) - 1; i >= 0; i-- {
		if c.Actions[i].Undo(s) == Failed {
			c.logger().Warn("could not undo all actions in %q; unwinding partial state", c.Description())
			return c.rewind(s, i)
		}
	}
	return Success
}

// unwind undoes the sub-actions at indices failed-1 down to 0 after a
// forward apply failed at index failed. Only actions that actually succeeded
// are rolled back.
func (c *Combined) unwind(s *scene.Scene, failed int) Result {
	for j := failed - 1; j >= 0; j-- {
		if c.Actions[j].Undo(s) == Failed {
			c.logger().Warn("failed to unwind partial state of %q; scene may be inconsistent", c.Description())
			return Failed
		}
	}
	c.logger().Warn("unwound partial state of %q", c.Description())
	return Failed
}

// rewind re-applies the sub-actions at indices failed+1 up to the end after
// a backward apply failed at index failed. Those are exactly the entries the
// reverse sweep had already undone; re-applying forward in ascending order
// restores the state Undo started from.
func (c *Combined) rewind(s *scene.Scene, failed int) Result {
	for j := failed + 1; j < len(c.Actions); j++ {
		if c.Actions[j].Redo(s) == Failed {
			c.logger().Warn("failed to unwind partial state of %q; scene may be inconsistent", c.Description())
			return Failed
		}
	}
	c.logger().Warn("unwound partial state of %q", c.Description())
	return Failed
}

// Description returns the group name, or a summary when unnamed.
func (c *Combined) Description() string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("combined (%d actions)", len(c.Actions))
}
