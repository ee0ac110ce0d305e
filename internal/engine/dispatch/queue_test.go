package dispatch

import (
	"sync"
	"testing"

	"github.com/vantling/shipforge/internal/blueprint"
	"github.com/vantling/shipforge/internal/engine/action"
	"github.com/vantling/shipforge/internal/engine/history"
	"github.com/vantling/shipforge/internal/scene"
)

// recordingAction appends its name to a shared journal so drain order is
// observable.
type recordingAction struct {
	name    string
	journal *[]string
	fail    bool
}

func (a *recordingAction) Redo(_ *scene.Scene) action.Result {
	if a.fail {
		return action.Failed
	}
	*a.journal = append(*a.journal, a.name)
	return action.Success
}

func (a *recordingAction) Undo(_ *scene.Scene) action.Result {
	*a.journal = append(*a.journal, "undo "+a.name)
	return action.Success
}

func (a *recordingAction) Description() string { return a.name }

func newTestScene() *scene.Scene {
	return scene.New(&blueprint.Blueprint{Type: "blueprint", Version: 1})
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindPush, "push"},
		{KindUndo, "undo"},
		{KindRedo, "redo"},
		{Kind(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.expected)
		}
	}
}

func TestRequestsCarryIDs(t *testing.T) {
	a := Push(&recordingAction{name: "a"})
	b := Undo()
	if a.ID == "" || b.ID == "" {
		t.Error("requests must carry correlation IDs")
	}
	if a.ID == b.ID {
		t.Error("request IDs must be unique")
	}
}

func TestDrainFIFO(t *testing.T) {
	s := newTestScene()
	h := history.New(nil)
	q := NewQueue(nil)

	var journal []string
	q.Enqueue(Push(&recordingAction{name: "a", journal: &journal}))
	q.Enqueue(Push(&recordingAction{name: "b", journal: &journal}))
	q.Enqueue(Undo())
	q.Enqueue(Push(&recordingAction{name: "c", journal: &journal}))

	if n := q.Drain(h, s); n != 4 {
		t.Errorf("drained %d requests, want 4", n)
	}
	want := []string{"a", "b", "undo b", "c"}
	if len(journal) != len(want) {
		t.Fatalf("journal = %v, want %v", journal, want)
	}
	for i := range want {
		if journal[i] != want[i] {
			t.Fatalf("journal = %v, want %v", journal, want)
		}
	}
	if h.Len() != 2 || h.Cursor() != 2 {
		t.Errorf("history = (%d, %d), want (2, 2): undo then push truncates", h.Len(), h.Cursor())
	}
}

func TestDrainEmptyQueue(t *testing.T) {
	q := NewQueue(nil)
	if n := q.Drain(history.New(nil), newTestScene()); n != 0 {
		t.Errorf("drained %d requests from empty queue", n)
	}
}

func TestDrainLeavesMidDrainEnqueuesForNextCycle(t *testing.T) {
	s := newTestScene()
	h := history.New(nil)
	q := NewQueue(nil)

	var journal []string
	// The first action enqueues another request while the drain runs.
	q.Enqueue(Push(&enqueuingAction{q: q, journal: &journal}))

	if n := q.Drain(h, s); n != 1 {
		t.Errorf("first drain processed %d, want 1", n)
	}
	if q.Len() != 1 {
		t.Errorf("mid-drain enqueue must wait: queue len = %d, want 1", q.Len())
	}
	if n := q.Drain(h, s); n != 1 {
		t.Errorf("second drain processed %d, want 1", n)
	}
}

// enqueuingAction enqueues a follow-up request during its own apply. Not a
// supported pattern for real actions, but the queue must defer the request
// rather than deadlock or process it in the same cycle.
type enqueuingAction struct {
	q       *Queue
	journal *[]string
}

func (a *enqueuingAction) Redo(_ *scene.Scene) action.Result {
	a.q.Enqueue(Push(&recordingAction{name: "follow-up", journal: a.journal}))
	return action.Success
}

func (a *enqueuingAction) Undo(_ *scene.Scene) action.Result { return action.Success }
func (a *enqueuingAction) Description() string               { return "enqueuing" }

func TestFailedPushIsSwallowed(t *testing.T) {
	s := newTestScene()
	h := history.New(nil)
	q := NewQueue(nil)

	var journal []string
	q.Enqueue(Push(&recordingAction{name: "bad", fail: true}))
	q.Enqueue(Push(&recordingAction{name: "good", journal: &journal}))

	if n := q.Drain(h, s); n != 2 {
		t.Errorf("drained %d, want 2: failures do not abort the drain", n)
	}
	if h.Len() != 1 {
		t.Errorf("history length = %d, want 1", h.Len())
	}
}

func TestPushRequestWithoutActionDropped(t *testing.T) {
	s := newTestScene()
	h := history.New(nil)
	q := NewQueue(nil)

	q.Enqueue(Request{ID: "x", Kind: KindPush})
	q.Drain(h, s)
	if h.Len() != 0 {
		t.Error("push without an action must be dropped")
	}
}

func TestConcurrentProducers(t *testing.T) {
	s := newTestScene()
	h := history.New(nil)
	q := NewQueue(nil)

	var wg sync.WaitGroup
	const producers = 8
	const each = 25
	for i := 0; i < producers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < each; j++ {
				q.Enqueue(Undo())
			}
		}()
	}
	wg.Wait()

	if q.Len() != producers*each {
		t.Errorf("queue len = %d, want %d", q.Len(), producers*each)
	}
	if n := q.Drain(h, s); n != producers*each {
		t.Errorf("drained %d, want %d", n, producers*each)
	}
}
