package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/vantling/shipforge/internal/blueprint"
)

// Common errors for scene access.
var (
	ErrUnknownComponent  = errors.New("unknown component")
	ErrDuplicateID       = errors.New("component id already present")
	ErrComponentInUse    = errors.New("component referenced by pipe or composite build")
	ErrLabelOutOfRange   = errors.New("label index out of range")
	ErrTooManyComponents = errors.New("component limit reached")
)

// maxComponents follows the save format, which addresses components with a
// single byte (pipe endpoints, composite builds).
const maxComponents = 256

// ComponentID is a stable handle for one component in the scene. Handles are
// assigned at load time and survive reordering; the save format itself only
// knows positional indices.
type ComponentID string

// NewComponentID returns a fresh unique component handle.
func NewComponentID() ComponentID {
	return ComponentID(uuid.NewString())
}

// Scene is the single mutable document the edit engine acts upon: a loaded
// blueprint plus the editor-side state layered over it (component handles and
// the current selection). Exactly one Scene exists per editing session.
//
// A Scene is not safe for concurrent use. The engine guarantees exclusive
// access for the duration of each action apply.
type Scene struct {
	bp       *blueprint.Blueprint
	order    []ComponentID
	index    map[ComponentID]int
	selected map[ComponentID]struct{}
}

// New wraps a blueprint in a Scene, assigning a handle to every component.
func New(bp *blueprint.Blueprint) *Scene {
	s := &Scene{
		bp:       bp,
		index:    make(map[ComponentID]int),
		selected: make(map[ComponentID]struct{}),
	}
	for i := range bp.Data.Components {
		id := NewComponentID()
		s.order = append(s.order, id)
		s.index[id] = i
	}
	return s
}

// NewEmpty returns a Scene over a blank blueprint, for starting a build from
// scratch.
func NewEmpty() *Scene {
	return New(&blueprint.Blueprint{
		Type:    "blueprint",
		Version: blueprint.MaxVersion,
		Data:    blueprint.Data{Version: blueprint.MaxVersion},
	})
}

// Blueprint returns the underlying document.
func (s *Scene) Blueprint() *blueprint.Blueprint { return s.bp }

// ComponentCount returns the number of components in the build.
func (s *Scene) ComponentCount() int { return len(s.bp.Data.Components) }

// ComponentIDs returns all component handles in build order.
func (s *Scene) ComponentIDs() []ComponentID {
	ids := make([]ComponentID, len(s.order))
	copy(ids, s.order)
	return ids
}

// Component returns the component for a handle.
func (s *Scene) Component(id ComponentID) (*blueprint.Component, error) {
	i, ok := s.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownComponent, id)
	}
	return &s.bp.Data.Components[i], nil
}

// ComponentPosition returns the world position of a component.
func (s *Scene) ComponentPosition(id ComponentID) (blueprint.Coords, error) {
	c, err := s.Component(id)
	if err != nil {
		return blueprint.Coords{}, err
	}
	return c.Position, nil
}

// SetComponentPosition moves a component to a new world position.
func (s *Scene) SetComponentPosition(id ComponentID, pos blueprint.Coords) error {
	c, err := s.Component(id)
	if err != nil {
		return err
	}
	c.Position = pos
	return nil
}

// InsertComponent places a component at the given build index under the given
// handle. index == -1 appends. Pipe endpoints and composite-build links that
// point at or past the insertion point are shifted to keep referring to the
// same components.
func (s *Scene) InsertComponent(id ComponentID, c blueprint.Component, index int) error {
	if _, ok := s.index[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	if len(s.bp.Data.Components) >= maxComponents {
		return ErrTooManyComponents
	}
	if index < 0 || index > len(s.bp.Data.Components) {
		index = len(s.bp.Data.Components)
	}

	comps := s.bp.Data.Components
	s.bp.Data.Components = append(comps[:index:index], append([]blueprint.Component{c}, comps[index:]...)...)
	s.order = append(s.order[:index:index], append([]ComponentID{id}, s.order[index:]...)...)
	s.reindex()
	s.shiftRefs(index, +1)
	return nil
}

// TakeComponent removes a component and returns everything needed to restore
// it: the component itself, its build index, and whether it was selected.
// Removal fails if a pipe or composite build references the component, since
// those links would be left dangling.
func (s *Scene) TakeComponent(id ComponentID) (blueprint.Component, int, bool, error) {
	i, ok := s.index[id]
	if !ok {
		return blueprint.Component{}, 0, false, fmt.Errorf("%w: %s", ErrUnknownComponent, id)
	}
	if s.referencesComponent(i) {
		return blueprint.Component{}, 0, false, fmt.Errorf("%w: index %d", ErrComponentInUse, i)
	}

	c := s.bp.Data.Components[i]
	_, wasSelected := s.selected[id]
	delete(s.selected, id)

	s.bp.Data.Components = append(s.bp.Data.Components[:i], s.bp.Data.Components[i+1:]...)
	s.order = append(s.order[:i], s.order[i+1:]...)
	delete(s.index, id)
	s.reindex()
	s.shiftRefs(i, -1)
	return c, i, wasSelected, nil
}

// referencesComponent reports whether any pipe endpoint or composite-build
// link points at build index i.
func (s *Scene) referencesComponent(i int) bool {
	for _, p := range s.bp.Data.Pipes {
		if int(p.AComponent) == i || int(p.BComponent) == i {
			return true
		}
	}
	for _, cb := range s.bp.Data.CompositeBuilds {
		if int(cb.Component) == i {
			return true
		}
	}
	return false
}

// shiftRefs adjusts positional component references after an insert (+1) or
// removal (-1) at build index at.
func (s *Scene) shiftRefs(at, delta int) {
	adjust := func(ref *uint8) {
		if int(*ref) < at {
			return
		}
		v := int(*ref) + delta
		if v < 0 || v > 255 {
			// Dangling ref in a malformed save; leave it rather than wrap.
			return
		}
		*ref = uint8(v)
	}
	for i := range s.bp.Data.Pipes {
		adjust(&s.bp.Data.Pipes[i].AComponent)
		adjust(&s.bp.Data.Pipes[i].BComponent)
	}
	for i := range s.bp.Data.CompositeBuilds {
		adjust(&s.bp.Data.CompositeBuilds[i].Component)
	}
}

func (s *Scene) reindex() {
	for i, id := range s.order {
		s.index[id] = i
	}
}

// ToggleSelected flips selection membership for a component handle and
// returns the new membership. Unknown handles toggle like any other; a
// selection may outlive the component it referred to, matching editor
// behavior where selection is pure UI state.
func (s *Scene) ToggleSelected(id ComponentID) bool {
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return false
	}
	s.selected[id] = struct{}{}
	return true
}

// IsSelected reports selection membership for a component handle.
func (s *Scene) IsSelected(id ComponentID) bool {
	_, ok := s.selected[id]
	return ok
}

// Select adds a component handle to the selection.
func (s *Scene) Select(id ComponentID) {
	s.selected[id] = struct{}{}
}

// SelectedCount returns the number of selected components.
func (s *Scene) SelectedCount() int { return len(s.selected) }

// Selected returns the selected handles in build order; handles no longer in
// the build sort last.
func (s *Scene) Selected() []ComponentID {
	ids := make([]ComponentID, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool {
		ia, oka := s.index[ids[a]]
		ib, okb := s.index[ids[b]]
		switch {
		case oka && okb:
			return ia < ib
		case oka:
			return true
		case okb:
			return false
		default:
			return ids[a] < ids[b]
		}
	})
	return ids
}

// LabelCount returns the number of labels in the build.
func (s *Scene) LabelCount() int { return len(s.bp.Data.Labels) }

// LabelText returns the text of the label at index i.
func (s *Scene) LabelText(i int) (string, error) {
	if i < 0 || i >= len(s.bp.Data.Labels) {
		return "", fmt.Errorf("%w: %d", ErrLabelOutOfRange, i)
	}
	return s.bp.Data.Labels[i].Text, nil
}

// SetLabelText replaces the text of the label at index i.
func (s *Scene) SetLabelText(i int, text string) error {
	if i < 0 || i >= len(s.bp.Data.Labels) {
		return fmt.Errorf("%w: %d", ErrLabelOutOfRange, i)
	}
	s.bp.Data.Labels[i].Text = text
	return nil
}
