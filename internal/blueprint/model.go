package blueprint

import (
	"encoding/json"
	"fmt"
)

// Coords is a position or offset in world space.
type Coords struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// CoordsW is a quaternion orientation.
type CoordsW struct {
	W float64 `json:"w"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Block is a single structural block within a frame.
type Block struct {
	Colors   [7]uint8 `json:"colors"`
	Extra    uint8    `json:"extra"`
	FrameX   int8     `json:"frame_x"`
	FrameY   int8     `json:"frame_y"`
	FrameZ   int8     `json:"frame_z"`
	Material uint8    `json:"material"`
	PosX     uint8    `json:"pos_x"`
	PosY     uint8    `json:"pos_y"`
	PosZ     uint8    `json:"pos_z"`
	SizeX    uint8    `json:"size_x"`
	SizeY    uint8    `json:"size_y"`
	SizeZ    uint8    `json:"size_z"`
	Type     uint8    `json:"type"`
}

// ColorMaterial is a palette entry with surface properties.
type ColorMaterial struct {
	R         uint8 `json:"r"`
	G         uint8 `json:"g"`
	B         uint8 `json:"b"`
	Metallic  uint8 `json:"metallic"`
	Opacity   uint8 `json:"opacity"`
	Roughness uint8 `json:"roughness"`
}

// ColorRGB is a plain RGB triple.
type ColorRGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// ColorARGB is an RGB triple with alpha.
type ColorARGB struct {
	A uint8 `json:"a"`
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// PaletteEntry is an untagged union: either a ColorMaterial object or the
// bare number 0 for an unused palette slot. The save format emits both.
type PaletteEntry struct {
	Color *ColorMaterial
}

// IsZero reports whether the entry is an unused slot.
func (p PaletteEntry) IsZero() bool { return p.Color == nil }

// MarshalJSON encodes the entry as an object, or as 0 for an unused slot.
func (p PaletteEntry) MarshalJSON() ([]byte, error) {
	if p.Color == nil {
		return []byte("0"), nil
	}
	return json.Marshal(p.Color)
}

// UnmarshalJSON decodes either form.
func (p *PaletteEntry) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] != '{' {
		var n uint8
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("palette entry: %w", err)
		}
		p.Color = nil
		return nil
	}
	var c ColorMaterial
	if err := json.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("palette entry: %w", err)
	}
	p.Color = &c
	return nil
}

// Occupancy is the block-space footprint claimed by a component.
type Occupancy struct {
	FrameX int8  `json:"frame_x"`
	FrameY int8  `json:"frame_y"`
	FrameZ int8  `json:"frame_z"`
	PosX   uint8 `json:"pos_x"`
	PosY   uint8 `json:"pos_y"`
	PosZ   uint8 `json:"pos_z"`
	SizeX  uint8 `json:"size_x"`
	SizeY  uint8 `json:"size_y"`
	SizeZ  uint8 `json:"size_z"`
}

// Component is a functional module placed in the build (thruster, tank, seat).
// Data holds module-specific settings with schema known only to the module.
type Component struct {
	Alias       *string                  `json:"alias,omitempty"`
	Colors      map[string]ColorMaterial `json:"colors"`
	Data        map[string]any           `json:"data"`
	Module      string                   `json:"module"`
	Occupancies []Occupancy              `json:"occupancies"`
	Orientation CoordsW                  `json:"orientation"`
	Position    Coords                   `json:"position"`
	Type        string                   `json:"type"`
}

// Frame is one cubic frame cell with per-edge beam materials.
type Frame struct {
	Beams  [12]uint8 `json:"beams"`
	FrameX int8      `json:"frame_x"`
	FrameY int8      `json:"frame_y"`
	FrameZ int8      `json:"frame_z"`
}

// Label is free-floating 3D text attached to the build.
type Label struct {
	AlignCenter uint8     `json:"align_center"`
	DirX        uint8     `json:"dir_x"`
	DirY        uint8     `json:"dir_y"`
	DirZ        uint8     `json:"dir_z"`
	PanelColor  ColorARGB `json:"panel_color"`
	Position    Coords    `json:"position"`
	Metallic    *uint8    `json:"metallic,omitempty"`
	Roughness   uint8     `json:"roughness"`
	Size        float32   `json:"size"`
	Text        string    `json:"text"`
	TextColor   ColorRGB  `json:"text_color"`
	UpX         uint8     `json:"up_x"`
	UpY         uint8     `json:"up_y"`
	UpZ         uint8     `json:"up_z"`
}

// PipeSegment is one straight or flexible run of a pipe.
type PipeSegment struct {
	Dir         uint8   `json:"dir"`
	Flexible    bool    `json:"flexible"`
	Length      float64 `json:"length"`
	Start       Coords  `json:"start"`
	A           uint8   `json:"a"`
	R           uint8   `json:"r"`
	G           uint8   `json:"g"`
	B           uint8   `json:"b"`
	Chrome      bool    `json:"chrome"`
	Glossy      bool    `json:"glossy"`
	Metal       bool    `json:"metal"`
	Striped     bool    `json:"striped"`
	Box         bool    `json:"box"`
	RoundedCaps bool    `json:"rounded_caps"`
}

// Pipe connects two component ports through a series of segments.
type Pipe struct {
	AComponent uint8         `json:"a_component"`
	APort      string        `json:"a_port"`
	BComponent uint8         `json:"b_component"`
	BPort      string        `json:"b_port"`
	Radius     float64       `json:"radius"`
	Segments   []PipeSegment `json:"segments"`
	Type       string        `json:"type"`
}

// CompositeBuild links a component to a nested child build.
type CompositeBuild struct {
	Component    uint8 `json:"component"`
	SlaveBuildID uint8 `json:"slaveBuildId"`
}

// Data is the editable body of a blueprint.
type Data struct {
	Alias              string           `json:"alias"`
	Blocks             []Block          `json:"blocks"`
	Colors             []PaletteEntry   `json:"colors"`
	Components         []Component      `json:"components"`
	CompositeBuilds    []CompositeBuild `json:"composite_builds"`
	Doors              []any            `json:"doors"`
	Frames             []Frame          `json:"frames"`
	Labels             []Label          `json:"labels"`
	Pipes              []Pipe           `json:"pipes"`
	SymmetryAxis       uint8            `json:"symmetry_axis"`
	SymmetryAxisOffset Coords           `json:"symmetry_axis_offset"`
	Version            uint8            `json:"version"`
}

// Blueprint is a complete save file: envelope metadata plus the build data.
type Blueprint struct {
	Author   string  `json:"author"`
	BoxMax   Coords  `json:"box_max"`
	BoxMin   Coords  `json:"box_min"`
	BoxSize  Coords  `json:"box_size"`
	Data     Data    `json:"data"`
	Datetime string  `json:"datetime"`
	Mass     float32 `json:"mass"`
	Type     string  `json:"type"`
	Version  uint8   `json:"version"`
}
