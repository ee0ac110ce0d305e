// Package script embeds Lua so edits can be defined without recompiling.
//
// The engine hosts a sandboxed gopher-lua state (no io, os, debug, or
// package libraries) and exposes a `scene` table mirroring the scene
// accessors. A Scripted action pairs two Lua functions as the forward and
// backward halves of an edit; edit scripts submit them through the request
// queue with the edit/undo/redo globals.
package script
