// Package scene holds the mutable editing document: a loaded blueprint plus
// the editor state layered over it.
//
// The save format addresses components positionally (pipe endpoints and
// composite-build links are byte indices into the component list), so the
// scene assigns each component a stable ComponentID handle at load time and
// keeps the positional references consistent across inserts and removals.
// Selection is tracked per handle and never touches the document itself.
//
// A Scene has exactly one writer at a time; the engine serializes all access.
package scene
