package action

import (
	"testing"

	"github.com/vantling/shipforge/internal/blueprint"
	"github.com/vantling/shipforge/internal/scene"
)

// stubAction applies against a counter instead of the scene, with scripted
// results per direction.
type stubAction struct {
	name        string
	redoResults []Result
	undoResults []Result
	redoCalls   int
	undoCalls   int
	applied     int
}

func (a *stubAction) Redo(_ *scene.Scene) Result {
	r := Success
	if a.redoCalls < len(a.redoResults) {
		r = a.redoResults[a.redoCalls]
	}
	a.redoCalls++
	if r == Success {
		a.applied++
	}
	return r
}

func (a *stubAction) Undo(_ *scene.Scene) Result {
	r := Success
	if a.undoCalls < len(a.undoResults) {
		r = a.undoResults[a.undoCalls]
	}
	a.undoCalls++
	if r == Success {
		a.applied--
	}
	return r
}

func (a *stubAction) Description() string { return a.name }

func failing(name string) *stubAction {
	return &stubAction{name: name, redoResults: []Result{Failed}, undoResults: []Result{Failed}}
}

func newTestScene(components int) (*scene.Scene, []scene.ComponentID) {
	bp := &blueprint.Blueprint{Type: "blueprint", Version: 1}
	for i := 0; i < components; i++ {
		bp.Data.Components = append(bp.Data.Components, blueprint.Component{
			Module: "module", Type: "part",
		})
	}
	s := scene.New(bp)
	return s, s.ComponentIDs()
}

func TestResultString(t *testing.T) {
	tests := []struct {
		result   Result
		expected string
	}{
		{Failed, "failed"},
		{Success, "success"},
		{Result(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.result.String(); got != tt.expected {
			t.Errorf("Result(%d).String() = %q, want %q", tt.result, got, tt.expected)
		}
	}
}

func TestToggleSelectFlipsMembership(t *testing.T) {
	s, ids := newTestScene(1)
	toggle := NewToggleSelect(ids[0])

	if toggle.Redo(s) != Success {
		t.Fatal("toggle can never fail")
	}
	if !s.IsSelected(ids[0]) {
		t.Error("component should be selected after one apply")
	}

	if toggle.Undo(s) != Success {
		t.Fatal("toggle undo can never fail")
	}
	if s.IsSelected(ids[0]) {
		t.Error("undo should restore original membership")
	}
}

func TestToggleSelectSelfInverse(t *testing.T) {
	s, ids := newTestScene(1)
	toggle := NewToggleSelect(ids[0])

	// Forward twice flips twice, same as forward then backward.
	toggle.Redo(s)
	toggle.Redo(s)
	if s.IsSelected(ids[0]) {
		t.Error("double toggle should be identity")
	}
}

func TestAddComponentRoundTrip(t *testing.T) {
	s, _ := newTestScene(2)
	add := NewAddComponent(blueprint.Component{Module: "thruster", Type: "part"})

	if add.Redo(s) != Success {
		t.Fatal("add failed")
	}
	if s.ComponentCount() != 3 {
		t.Errorf("component count = %d, want 3", s.ComponentCount())
	}

	if add.Undo(s) != Success {
		t.Fatal("add undo failed")
	}
	if s.ComponentCount() != 2 {
		t.Errorf("component count after undo = %d, want 2", s.ComponentCount())
	}

	// Redo after undo reinserts at the same position.
	if add.Redo(s) != Success {
		t.Fatal("redo after undo failed")
	}
	if s.ComponentCount() != 3 {
		t.Errorf("component count after redo = %d, want 3", s.ComponentCount())
	}
}

func TestRemoveComponentRestoresSelection(t *testing.T) {
	s, ids := newTestScene(3)
	s.Select(ids[1])

	rm := NewRemoveComponent(ids[1])
	if rm.Redo(s) != Success {
		t.Fatal("remove failed")
	}
	if s.ComponentCount() != 2 {
		t.Errorf("component count = %d, want 2", s.ComponentCount())
	}
	if s.IsSelected(ids[1]) {
		t.Error("removed component should be deselected")
	}

	if rm.Undo(s) != Success {
		t.Fatal("remove undo failed")
	}
	if s.ComponentCount() != 3 {
		t.Errorf("component count after undo = %d, want 3", s.ComponentCount())
	}
	if !s.IsSelected(ids[1]) {
		t.Error("undo should restore selection")
	}
	if got := s.ComponentIDs()[1]; got != ids[1] {
		t.Errorf("component restored at index %v, want original position", got)
	}
}

func TestRemoveComponentUnknownIDFails(t *testing.T) {
	s, _ := newTestScene(1)
	rm := NewRemoveComponent(scene.NewComponentID())
	if rm.Redo(s) != Failed {
		t.Error("removing unknown component should fail")
	}
	if s.ComponentCount() != 1 {
		t.Error("failed remove should not mutate the scene")
	}
}

func TestMoveComponent(t *testing.T) {
	s, ids := newTestScene(1)
	from := blueprint.Coords{}
	to := blueprint.Coords{X: 1, Y: 2, Z: 3}

	move := NewMoveComponent(ids[0], from, to)
	if move.Redo(s) != Success {
		t.Fatal("move failed")
	}
	pos, _ := s.ComponentPosition(ids[0])
	if pos != to {
		t.Errorf("position = %+v, want %+v", pos, to)
	}

	if move.Undo(s) != Success {
		t.Fatal("move undo failed")
	}
	pos, _ = s.ComponentPosition(ids[0])
	if pos != from {
		t.Errorf("position after undo = %+v, want %+v", pos, from)
	}
}

func TestSetLabelText(t *testing.T) {
	bp := &blueprint.Blueprint{}
	bp.Data.Labels = []blueprint.Label{{Text: "fore"}}
	s := scene.New(bp)

	edit := NewSetLabelText(0, "fore", "aft")
	if edit.Redo(s) != Success {
		t.Fatal("label edit failed")
	}
	if text, _ := s.LabelText(0); text != "aft" {
		t.Errorf("text = %q, want %q", text, "aft")
	}
	if edit.Undo(s) != Success {
		t.Fatal("label edit undo failed")
	}
	if text, _ := s.LabelText(0); text != "fore" {
		t.Errorf("text after undo = %q, want %q", text, "fore")
	}

	bad := NewSetLabelText(5, "", "x")
	if bad.Redo(s) != Failed {
		t.Error("out-of-range label edit should fail")
	}
}

func TestSetLabelTextMismatch(t *testing.T) {
	bp := &blueprint.Blueprint{}
	bp.Data.Labels = []blueprint.Label{{Text: "port side"}}
	s := scene.New(bp)

	stale := NewSetLabelText(0, "fore", "aft")
	if stale.Redo(s) != Failed {
		t.Fatal("edit with stale expected text should fail")
	}
	if text, _ := s.LabelText(0); text != "port side" {
		t.Errorf("text after failed edit = %q, want %q", text, "port side")
	}

	edit := NewSetLabelText(0, "port side", "starboard side")
	if edit.Redo(s) != Success {
		t.Fatal("label edit failed")
	}
	// An outside write between apply and undo means Old no longer describes
	// the state Undo would produce; the undo must refuse rather than clobber.
	if err := s.SetLabelText(0, "midship"); err != nil {
		t.Fatal(err)
	}
	if edit.Undo(s) != Failed {
		t.Error("undo over an unexpected current text should fail")
	}
	if text, _ := s.LabelText(0); text != "midship" {
		t.Errorf("text after refused undo = %q, want %q", text, "midship")
	}
}

func TestCombinedHappyPath(t *testing.T) {
	s, _ := newTestScene(0)
	a := &stubAction{name: "a"}
	b := &stubAction{name: "b"}
	c := &stubAction{name: "c"}

	combined := NewCombined("batch", a, b, c)
	if combined.Redo(s) != Success {
		t.Fatal("all-success combined should succeed")
	}
	for _, sub := range []*stubAction{a, b, c} {
		if sub.applied != 1 {
			t.Errorf("%s applied = %d, want 1", sub.name, sub.applied)
		}
	}

	if combined.Undo(s) != Success {
		t.Fatal("combined undo should succeed")
	}
	for _, sub := range []*stubAction{a, b, c} {
		if sub.applied != 0 {
			t.Errorf("%s applied after undo = %d, want 0", sub.name, sub.applied)
		}
	}
}

func TestCombinedPartialFailureUnwinds(t *testing.T) {
	s, _ := newTestScene(0)
	a := &stubAction{name: "a"}
	b := failing("b")

	combined := NewCombined("batch", a, b)
	if combined.Redo(s) != Failed {
		t.Fatal("combined with failing member should fail")
	}
	if a.applied != 0 {
		t.Errorf("a applied = %d, want 0 (unwound)", a.applied)
	}
	if a.undoCalls != 1 {
		t.Errorf("a undo calls = %d, want exactly 1", a.undoCalls)
	}
	if b.undoCalls != 0 {
		t.Error("failing action must not be unwound; it never applied")
	}
}

func TestCombinedUnwindsAllPredecessors(t *testing.T) {
	// Failure at index 2 must unwind both index 1 and index 0, in that order.
	s, _ := newTestScene(0)
	a := &stubAction{name: "a"}
	b := &stubAction{name: "b"}
	c := failing("c")

	combined := NewCombined("batch", a, b, c)
	if combined.Redo(s) != Failed {
		t.Fatal("expected failure")
	}
	if a.undoCalls != 1 || b.undoCalls != 1 {
		t.Errorf("undo calls a=%d b=%d, want 1 and 1", a.undoCalls, b.undoCalls)
	}
	if a.applied != 0 || b.applied != 0 {
		t.Error("all applied predecessors must be rolled back")
	}
}

func TestCombinedUnwindFailureStops(t *testing.T) {
	s, _ := newTestScene(0)
	a := &stubAction{name: "a"}
	b := &stubAction{name: "b", undoResults: []Result{Failed}}
	c := failing("c")

	combined := NewCombined("batch", a, b, c)
	if combined.Redo(s) != Failed {
		t.Fatal("expected failure")
	}
	// b's undo failed, so the unwind stops before reaching a.
	if b.undoCalls != 1 {
		t.Errorf("b undo calls = %d, want 1", b.undoCalls)
	}
	if a.undoCalls != 0 {
		t.Error("unwind must stop at the first rollback failure")
	}
	if a.applied != 1 {
		t.Error("state is left partially applied, reported but not repaired")
	}
}

func TestCombinedUndoPartialFailureReapplies(t *testing.T) {
	s, _ := newTestScene(0)
	a := &stubAction{name: "a", undoResults: []Result{Failed}}
	b := &stubAction{name: "b"}
	c := &stubAction{name: "c"}

	combined := NewCombined("batch", a, b, c)
	if combined.Redo(s) != Success {
		t.Fatal("setup apply failed")
	}

	// Undo sweeps c, b, then fails on a; c and b must be re-applied forward.
	if combined.Undo(s) != Failed {
		t.Fatal("expected undo failure")
	}
	if b.applied != 1 || c.applied != 1 {
		t.Errorf("applied b=%d c=%d, want both restored to 1", b.applied, c.applied)
	}
	if a.applied != 1 {
		t.Errorf("a applied = %d, want 1 (its undo failed)", a.applied)
	}
}

func TestCombinedDescription(t *testing.T) {
	named := NewCombined("batch", &stubAction{})
	if named.Description() != "batch" {
		t.Errorf("named description = %q", named.Description())
	}
	anon := NewCombined("", &stubAction{}, &stubAction{})
	if anon.Description() != "combined (2 actions)" {
		t.Errorf("anonymous description = %q", anon.Description())
	}
}

func TestCombinedEquivalentToSequence(t *testing.T) {
	// A combined apply is observably identical to applying the members
	// individually.
	s1, ids1 := newTestScene(2)
	s2, ids2 := newTestScene(2)
	to := blueprint.Coords{X: 4}

	NewToggleSelect(ids1[0]).Redo(s1)
	NewMoveComponent(ids1[1], blueprint.Coords{}, to).Redo(s1)

	combined := NewCombined("batch",
		NewToggleSelect(ids2[0]),
		NewMoveComponent(ids2[1], blueprint.Coords{}, to),
	)
	if combined.Redo(s2) != Success {
		t.Fatal("combined apply failed")
	}

	if s1.IsSelected(ids1[0]) != s2.IsSelected(ids2[0]) {
		t.Error("selection state diverged")
	}
	p1, _ := s1.ComponentPosition(ids1[1])
	p2, _ := s2.ComponentPosition(ids2[1])
	if p1 != p2 {
		t.Error("position state diverged")
	}
}
