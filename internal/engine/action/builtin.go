package action

import (
	"fmt"

	"github.com/vantling/shipforge/internal/blueprint"
	"github.com/vantling/shipforge/internal/scene"
)

// ToggleSelect flips selection membership for one component handle. Toggling
// is its own inverse and has no precondition, so it never fails; it is the
// simplest possible action and the baseline fixture for engine tests.
type ToggleSelect struct {
	ID scene.ComponentID
}

// NewToggleSelect creates a selection toggle for the given handle.
func NewToggleSelect(id scene.ComponentID) *ToggleSelect {
	return &ToggleSelect{ID: id}
}

// Redo flips the selection bit.
func (t *ToggleSelect) Redo(s *scene.Scene) Result {
	s.ToggleSelected(t.ID)
	return Success
}

// Undo flips it back.
func (t *ToggleSelect) Undo(s *scene.Scene) Result {
	return t.Redo(s)
}

// Description implements Action.
func (t *ToggleSelect) Description() string {
	return fmt.Sprintf("toggle selection of %s", t.ID)
}

// AddComponent places a new component in the build.
type AddComponent struct {
	ID        scene.ComponentID
	Component blueprint.Component

	// index is resolved on the first apply so redo-after-undo reinserts at
	// the same build position.
	index int
}

// NewAddComponent creates an add action with a fresh handle, appending at the
// end of the build.
func NewAddComponent(c blueprint.Component) *AddComponent {
	return &AddComponent{ID: scene.NewComponentID(), Component: c, index: -1}
}

// Redo inserts the component. Fails if the handle is already present or the
// build is full.
func (a *AddComponent) Redo(s *scene.Scene) Result {
	if a.index < 0 {
		a.index = s.ComponentCount()
	}
	if err := s.InsertComponent(a.ID, a.Component, a.index); err != nil {
		return Failed
	}
	return Success
}

// Undo removes the component again.
func (a *AddComponent) Undo(s *scene.Scene) Result {
	if _, _, _, err := s.TakeComponent(a.ID); err != nil {
		return Failed
	}
	return Success
}

// Description implements Action.
func (a *AddComponent) Description() string {
	return fmt.Sprintf("add component %s", a.Component.Module)
}

// RemoveComponent deletes a component from the build, capturing enough state
// at apply time to restore it on undo.
type RemoveComponent struct {
	ID scene.ComponentID

	removed  blueprint.Component
	index    int
	selected bool
}

// NewRemoveComponent creates a remove action for the given handle.
func NewRemoveComponent(id scene.ComponentID) *RemoveComponent {
	return &RemoveComponent{ID: id}
}

// Redo removes the component. Fails on an unknown handle or when a pipe or
// composite build still references the component.
func (r *RemoveComponent) Redo(s *scene.Scene) Result {
	c, i, selected, err := s.TakeComponent(r.ID)
	if err != nil {
		return Failed
	}
	r.removed, r.index, r.selected = c, i, selected
	return Success
}

// Undo restores the component at its old build position, along with its
// selection state.
func (r *RemoveComponent) Undo(s *scene.Scene) Result {
	if err := s.InsertComponent(r.ID, r.removed, r.index); err != nil {
		return Failed
	}
	if r.selected {
		s.Select(r.ID)
	}
	return Success
}

// Description implements Action.
func (r *RemoveComponent) Description() string {
	return fmt.Sprintf("remove component %s", r.ID)
}

// MoveComponent changes a component's world position.
type MoveComponent struct {
	ID   scene.ComponentID
	From blueprint.Coords
	To   blueprint.Coords
}

// NewMoveComponent creates a move from one position to another.
func NewMoveComponent(id scene.ComponentID, from, to blueprint.Coords) *MoveComponent {
	return &MoveComponent{ID: id, From: from, To: to}
}

// Redo moves the component to the destination. Fails on an unknown handle.
func (m *MoveComponent) Redo(s *scene.Scene) Result {
	if err := s.SetComponentPosition(m.ID, m.To); err != nil {
		return Failed
	}
	return Success
}

// Undo moves it back to the origin.
func (m *MoveComponent) Undo(s *scene.Scene) Result {
	if err := s.SetComponentPosition(m.ID, m.From); err != nil {
		return Failed
	}
	return Success
}

// Description implements Action.
func (m *MoveComponent) Description() string {
	return fmt.Sprintf("move component %s", m.ID)
}

// SetLabelText replaces the text of one label.
type SetLabelText struct {
	Index int
	Old   string
	New   string
}

// NewSetLabelText creates a label edit for the label at index.
func NewSetLabelText(index int, old, new string) *SetLabelText {
	return &SetLabelText{Index: index, Old: old, New: new}
}

// Redo applies the new text. Fails when the index is out of range or the
// label no longer holds the expected old text.
func (l *SetLabelText) Redo(s *scene.Scene) Result {
	if cur, err := s.LabelText(l.Index); err != nil || cur != l.Old {
		return Failed
	}
	if err := s.SetLabelText(l.Index, l.New); err != nil {
		return Failed
	}
	return Success
}

// Undo restores the old text, with the mirror-image check against the new.
func (l *SetLabelText) Undo(s *scene.Scene) Result {
	if cur, err := s.LabelText(l.Index); err != nil || cur != l.New {
		return Failed
	}
	if err := s.SetLabelText(l.Index, l.Old); err != nil {
		return Failed
	}
	return Success
}

// Description implements Action.
func (l *SetLabelText) Description() string {
	return fmt.Sprintf("set label %d text", l.Index)
}
