package history

import (
	"sync"

	"github.com/vantling/shipforge/internal/engine/action"
	"github.com/vantling/shipforge/internal/logging"
	"github.com/vantling/shipforge/internal/scene"
)

// History is the linear undo/redo log for one editing session.
//
// It holds the ordered list of applied actions and a cursor in [0, len(log)]:
// entries before the cursor are currently reflected in the scene, entries at
// or after it have been undone and remain redoable until a new push
// overwrites them. The cursor only moves on a confirmed Success, so a failed
// apply can never corrupt the log.
//
// The log and cursor are mutex-guarded so introspection is safe from any
// goroutine, but applies run on the caller's goroutine while the lock is
// held: actions must not call back into their History.
type History struct {
	mu     sync.Mutex
	log    []action.Action
	cursor int

	diag *logging.Logger
}

// New creates an empty history. A nil logger disables diagnostics.
func New(diag *logging.Logger) *History {
	if diag == nil {
		diag = logging.Null
	}
	return &History{diag: diag}
}

// Push applies an action forward and records it. On success the redo tail —
// everything at or after the cursor — is discarded and the action becomes
// the newest entry; pushing after undos overwrites the undone future, as in
// any linear undo stack. On failure the log and cursor are untouched and the
// scene holds whatever the action itself left behind (for a Combined, its
// own unwind governs that).
func (h *History) Push(a action.Action, s *scene.Scene) action.Result {
	h.mu.Lock()
	defer h.mu.Unlock()

	if a.Redo(s) == action.Failed {
		h.diag.Warn("could not push %q; there may be more information above", a.Description())
		return action.Failed
	}

	h.log = append(h.log[:h.cursor], a)
	h.cursor = len(h.log)
	return action.Success
}

// Redo re-applies the entry at the cursor. A no-op at the tip. On failure
// the cursor stays put and the entry remains redoable on a later call —
// failures are not sticky.
func (h *History) Redo(s *scene.Scene) action.Result {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cursor >= len(h.log) {
		return action.Success
	}

	a := h.log[h.cursor]
	if a.Redo(s) == action.Failed {
		h.diag.Warn("could not redo %q; there may be more information above", a.Description())
		return action.Failed
	}

	h.cursor++
	return action.Success
}

// Undo reverses the entry before the cursor. A no-op on an empty or fully
// undone history. On failure the cursor stays put.
func (h *History) Undo(s *scene.Scene) action.Result {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cursor == 0 {
		return action.Success
	}

	a := h.log[h.cursor-1]
	if a.Undo(s) == action.Failed {
		h.diag.Warn("could not undo %q; there may be more information above", a.Description())
		return action.Failed
	}

	h.cursor--
	return action.Success
}

// Clear drops the whole log and resets the cursor. The scene is not touched;
// callers invoke this when the document itself is about to be replaced, so
// the log does not keep referring to stale state.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.log = nil
	h.cursor = 0
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor < len(h.log)
}

// Len returns the number of entries in the log, applied and undone.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.log)
}

// Cursor returns the current cursor position.
func (h *History) Cursor() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor
}

// PeekUndo returns the description of the entry Undo would reverse.
func (h *History) PeekUndo() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cursor == 0 {
		return "", false
	}
	return h.log[h.cursor-1].Description(), true
}

// PeekRedo returns the description of the entry Redo would re-apply.
func (h *History) PeekRedo() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cursor >= len(h.log) {
		return "", false
	}
	return h.log[h.cursor].Description(), true
}

// Descriptions returns the descriptions of all log entries in application
// order, along with the cursor. Used for history listings.
func (h *History) Descriptions() ([]string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]string, len(h.log))
	for i, a := range h.log {
		out[i] = a.Description()
	}
	return out, h.cursor
}
