package dispatch

import (
	"sync"

	"github.com/google/uuid"

	"github.com/vantling/shipforge/internal/engine/action"
	"github.com/vantling/shipforge/internal/engine/history"
	"github.com/vantling/shipforge/internal/logging"
	"github.com/vantling/shipforge/internal/scene"
)

// Kind identifies what a request asks the history to do.
type Kind int

const (
	// KindPush applies and records a new action.
	KindPush Kind = iota
	// KindUndo reverses the most recent applied entry.
	KindUndo
	// KindRedo re-applies the most recently undone entry.
	KindRedo
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindPush:
		return "push"
	case KindUndo:
		return "undo"
	case KindRedo:
		return "redo"
	default:
		return "unknown"
	}
}

// Request is one queued instruction for the history. Requests are transient:
// each is consumed exactly once by the drain that processes it. The ID ties
// queue and history diagnostics together for one request.
type Request struct {
	ID     string
	Kind   Kind
	Action action.Action // set only for KindPush
}

// Push creates a request that records a new action.
func Push(a action.Action) Request {
	return Request{ID: uuid.NewString(), Kind: KindPush, Action: a}
}

// Undo creates a request that undoes the latest entry.
func Undo() Request {
	return Request{ID: uuid.NewString(), Kind: KindUndo}
}

// Redo creates a request that redoes the latest undone entry.
func Redo() Request {
	return Request{ID: uuid.NewString(), Kind: KindRedo}
}

// Queue is the inbox between edit producers and the single consumer that
// owns the history. Any goroutine may enqueue; exactly one caller drains,
// once per processing cycle, holding exclusive access to the scene for the
// whole drain. Producers never touch the history directly — that indirection
// is the queue's entire reason to exist.
type Queue struct {
	mu      sync.Mutex
	pending []Request

	diag *logging.Logger
}

// NewQueue creates an empty request queue. A nil logger disables diagnostics.
func NewQueue(diag *logging.Logger) *Queue {
	if diag == nil {
		diag = logging.Null
	}
	return &Queue{diag: diag}
}

// Enqueue appends a request. Non-blocking and safe from any goroutine;
// requests are drained in FIFO order.
func (q *Queue) Enqueue(r Request) {
	q.mu.Lock()
	q.pending = append(q.pending, r)
	q.mu.Unlock()
}

// Len returns the number of requests waiting for the next drain.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Drain processes every request that was enqueued before the drain began, in
// order, and returns how many were processed. Requests enqueued while the
// drain runs — including any enqueued by action apply calls, which is
// unsupported but must not deadlock — are left for the next cycle.
func (q *Queue) Drain(h *history.History, s *scene.Scene) int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, r := range batch {
		q.apply(r, h, s)
	}
	return len(batch)
}

// Discard drops every pending request unprocessed and returns how many were
// dropped. Used when the document the requests were aimed at goes away.
func (q *Queue) Discard() int {
	q.mu.Lock()
	n := len(q.pending)
	q.pending = nil
	q.mu.Unlock()

	if n > 0 {
		q.diag.Warn("discarded %d pending requests", n)
	}
	return n
}

func (q *Queue) apply(r Request, h *history.History, s *scene.Scene) {
	switch r.Kind {
	case KindPush:
		if r.Action == nil {
			q.diag.Warn("dropping push request %s with no action", r.ID)
			return
		}
		if h.Push(r.Action, s) == action.Failed {
			q.diag.Debug("push request %s failed", r.ID)
		}
	case KindUndo:
		if h.Undo(s) == action.Failed {
			q.diag.Debug("undo request %s failed", r.ID)
		}
	case KindRedo:
		if h.Redo(s) == action.Failed {
			q.diag.Debug("redo request %s failed", r.ID)
		}
	default:
		q.diag.Warn("dropping request %s with unknown kind %d", r.ID, r.Kind)
	}
}
