// Package blueprint models the ship save-file format and its JSON codec.
//
// A save file is a single JSON document: an envelope (author, bounding box,
// mass, version) wrapping a Data body of blocks, frames, components, labels,
// and pipes. The model preserves the wire format exactly, including the two
// untagged unions the format uses:
//
//   - palette entries are either a color-material object or the literal 0
//   - component data values are free-form JSON
//
// Sniff performs a cheap envelope check before Decode commits to a full
// unmarshal, so callers can reject arbitrary JSON early with a useful error.
package blueprint
