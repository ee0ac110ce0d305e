// Package history provides the undo/redo log for the edit engine.
//
// Unlike the classic two-stack design, the log is a single ordered slice
// with a cursor: undo moves the cursor back, redo moves it forward, and a
// push after undos truncates the redo tail before appending. The cursor only
// moves on a confirmed Success, so failed applies never desynchronize the
// log from the scene.
//
// A History lives for the whole process; Clear resets it when the document
// is reloaded wholesale.
package history
