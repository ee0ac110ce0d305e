package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/vantling/shipforge/internal/engine/action"
	"github.com/vantling/shipforge/internal/scene"
)

// Scripted is an action whose forward and backward logic are Lua functions.
// It satisfies the same contract as any built-in action, so it composes
// inside Combined groups and lives in the history like everything else.
//
// Each function receives no arguments and mutates the bound scene through
// the `scene` API. A return value of false, or a raised Lua error, maps to
// Failed; any other outcome is Success.
type Scripted struct {
	eng  *Engine
	name string
	redo *lua.LFunction
	undo *lua.LFunction
}

// NewAction wraps a pair of Lua functions as an Action.
func (e *Engine) NewAction(name string, redo, undo *lua.LFunction) *Scripted {
	return &Scripted{eng: e, name: name, redo: redo, undo: undo}
}

// Redo runs the forward Lua function.
func (a *Scripted) Redo(s *scene.Scene) action.Result {
	return a.eng.call(a.name, a.redo, s)
}

// Undo runs the backward Lua function.
func (a *Scripted) Undo(s *scene.Scene) action.Result {
	return a.eng.call(a.name, a.undo, s)
}

// Description implements action.Action.
func (a *Scripted) Description() string {
	return a.name
}

// call invokes one direction of a scripted action with the scene bound.
func (e *Engine) call(name string, fn *lua.LFunction, s *scene.Scene) action.Result {
	if e.closed {
		e.diag.Warn("scripted action %q applied after engine close", name)
		return action.Failed
	}

	var ret lua.LValue
	err := e.bind(s, func() error {
		if err := e.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}); err != nil {
			return err
		}
		ret = e.L.Get(-1)
		e.L.Pop(1)
		return nil
	})
	if err != nil {
		e.diag.Warn("scripted action %q: %v", name, err)
		return action.Failed
	}
	if ret == lua.LFalse {
		return action.Failed
	}
	return action.Success
}
