// Package action defines the reversible edits the engine applies to the
// scene.
//
// An Action is an opaque forward/backward pair: Redo applies the edit, Undo
// reverses it, and both report a two-valued Result rather than an error. The
// engine never inspects what an action does — each action kind supplies its
// own inverse logic explicitly; there is no diffing and no automatic inverse
// generation.
//
// Combined aggregates a sequence of actions into one atomic unit with
// rollback on partial failure. Built-in actions cover selection toggling,
// component add/remove/move, and label edits; package script adds
// Lua-defined actions behind the same interface.
package action
