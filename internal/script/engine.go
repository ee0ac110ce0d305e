package script

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/vantling/shipforge/internal/blueprint"
	"github.com/vantling/shipforge/internal/engine/dispatch"
	"github.com/vantling/shipforge/internal/logging"
	"github.com/vantling/shipforge/internal/scene"
)

// ErrEngineClosed is returned when using an engine after Close.
var ErrEngineClosed = errors.New("script engine is closed")

// Engine hosts Lua-defined actions. It owns a sandboxed Lua state with the
// io, os, debug, and package libraries left out, and exposes a `scene` API
// table to scripts.
//
// gopher-lua's LState is not goroutine-safe and neither is Engine: create it
// on the goroutine that drains the request queue and keep it there. The
// scene a script sees is whichever one the apply in flight was given.
type Engine struct {
	L    *lua.LState
	diag *logging.Logger

	cur    *scene.Scene
	closed bool
}

// NewEngine creates a script engine. A nil logger disables diagnostics.
func NewEngine(diag *logging.Logger) *Engine {
	if diag == nil {
		diag = logging.Null
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)

	e := &Engine{L: L, diag: diag}
	e.registerSceneAPI()
	return e
}

// openSafeLibraries opens only safe Lua standard libraries.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Drop the base functions that load arbitrary chunks; io, os, debug,
	// and package are never opened.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// Close releases the Lua state. The engine cannot be used afterwards.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.L.Close()
}

// bind makes s the scene the `scene` API operates on for the duration of fn.
func (e *Engine) bind(s *scene.Scene, fn func() error) error {
	prev := e.cur
	e.cur = s
	defer func() { e.cur = prev }()
	return fn()
}

// boundScene returns the scene for the call in flight, raising a Lua error
// when no apply is active.
func (e *Engine) boundScene(L *lua.LState) *scene.Scene {
	if e.cur == nil {
		L.RaiseError("scene API called outside an apply or script run")
	}
	return e.cur
}

// registerSceneAPI installs the `scene` global table.
func (e *Engine) registerSceneAPI() {
	fns := map[string]lua.LGFunction{
		"toggle_select":   e.luaToggleSelect,
		"is_selected":     e.luaIsSelected,
		"selected_count":  e.luaSelectedCount,
		"component_count": e.luaComponentCount,
		"component_ids":   e.luaComponentIDs,
		"position":        e.luaPosition,
		"set_position":    e.luaSetPosition,
		"label_count":     e.luaLabelCount,
		"label_text":      e.luaLabelText,
		"set_label_text":  e.luaSetLabelText,
	}
	e.L.SetGlobal("scene", e.L.SetFuncs(e.L.NewTable(), fns))
}

func (e *Engine) luaToggleSelect(L *lua.LState) int {
	s := e.boundScene(L)
	id := scene.ComponentID(L.CheckString(1))
	L.Push(lua.LBool(s.ToggleSelected(id)))
	return 1
}

func (e *Engine) luaIsSelected(L *lua.LState) int {
	s := e.boundScene(L)
	id := scene.ComponentID(L.CheckString(1))
	L.Push(lua.LBool(s.IsSelected(id)))
	return 1
}

func (e *Engine) luaSelectedCount(L *lua.LState) int {
	L.Push(lua.LNumber(e.boundScene(L).SelectedCount()))
	return 1
}

func (e *Engine) luaComponentCount(L *lua.LState) int {
	L.Push(lua.LNumber(e.boundScene(L).ComponentCount()))
	return 1
}

func (e *Engine) luaComponentIDs(L *lua.LState) int {
	s := e.boundScene(L)
	t := L.NewTable()
	for i, id := range s.ComponentIDs() {
		t.RawSetInt(i+1, lua.LString(id))
	}
	L.Push(t)
	return 1
}

func (e *Engine) luaPosition(L *lua.LState) int {
	s := e.boundScene(L)
	id := scene.ComponentID(L.CheckString(1))
	pos, err := s.ComponentPosition(id)
	if err != nil {
		L.RaiseError("position: %v", err)
	}
	L.Push(lua.LNumber(pos.X))
	L.Push(lua.LNumber(pos.Y))
	L.Push(lua.LNumber(pos.Z))
	return 3
}

func (e *Engine) luaSetPosition(L *lua.LState) int {
	s := e.boundScene(L)
	id := scene.ComponentID(L.CheckString(1))
	pos := blueprint.Coords{
		X: float64(L.CheckNumber(2)),
		Y: float64(L.CheckNumber(3)),
		Z: float64(L.CheckNumber(4)),
	}
	if err := s.SetComponentPosition(id, pos); err != nil {
		L.RaiseError("set_position: %v", err)
	}
	return 0
}

func (e *Engine) luaLabelCount(L *lua.LState) int {
	L.Push(lua.LNumber(e.boundScene(L).LabelCount()))
	return 1
}

// Label indices are 1-based on the Lua side.
func (e *Engine) luaLabelText(L *lua.LState) int {
	s := e.boundScene(L)
	text, err := s.LabelText(L.CheckInt(1) - 1)
	if err != nil {
		L.RaiseError("label_text: %v", err)
	}
	L.Push(lua.LString(text))
	return 1
}

func (e *Engine) luaSetLabelText(L *lua.LState) int {
	s := e.boundScene(L)
	if err := s.SetLabelText(L.CheckInt(1)-1, L.CheckString(2)); err != nil {
		L.RaiseError("set_label_text: %v", err)
	}
	return 0
}

// RunEditScript executes a Lua file that submits edits through the request
// queue. The script gets three globals on top of the scene API:
//
//	edit(name, redo, undo)  enqueue a push of a scripted action
//	undo()                  enqueue an undo
//	redo()                  enqueue a redo
//
// The scene is bound read-write for the duration of the run so scripts can
// inspect it while deciding what to edit, but only edits submitted through
// edit() become undoable history entries. Nothing is applied until the
// queue's next drain.
func (e *Engine) RunEditScript(path string, q *dispatch.Queue, s *scene.Scene) error {
	if e.closed {
		return ErrEngineClosed
	}

	e.L.SetGlobal("edit", e.L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		redo := L.CheckFunction(2)
		undo := L.CheckFunction(3)
		q.Enqueue(dispatch.Push(e.NewAction(name, redo, undo)))
		return 0
	}))
	e.L.SetGlobal("undo", e.L.NewFunction(func(_ *lua.LState) int {
		q.Enqueue(dispatch.Undo())
		return 0
	}))
	e.L.SetGlobal("redo", e.L.NewFunction(func(_ *lua.LState) int {
		q.Enqueue(dispatch.Redo())
		return 0
	}))

	err := e.bind(s, func() error { return e.L.DoFile(path) })
	if err != nil {
		return fmt.Errorf("edit script %s: %w", path, err)
	}
	return nil
}
