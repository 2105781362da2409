package vtcore

// Width classifies how a cell occupies columns on the grid. A wide glyph
// (e.g. most CJK ideographs) always occupies two adjacent cells: the left
// one tagged WidthWide, the right one tagged WidthNextToWide and holding a
// copy of the same cell data. Narrow glyphs are WidthHalf.
type Width uint8

const (
	WidthHalf Width = iota
	WidthWide
	WidthNextToWide
)

// Attribute is a bitmask of SGR text attributes.
type Attribute uint8

const (
	AttributeBold      Attribute = 0x01
	AttributeUnderline Attribute = 0x02
	AttributeBlink     Attribute = 0x04
	AttributeReverse   Attribute = 0x08
)

// attrMask is indexed directly by SGR parameter number (1, 4, 5, 7 carry an
// attribute; everything else is 0) rather than packed, matching the
// reference terminal's own attr_mask table.
var attrMask = [8]Attribute{
	0: 0,
	1: AttributeBold,
	4: AttributeUnderline,
	5: AttributeBlink,
	7: AttributeReverse,
}

// ColorPair names a cell's foreground and background by index into a
// Palette. Both are full byte indices (0-255), not the 0-15 legacy
// ANSI range, because SGR 256-color and truecolor-via-quantization both
// resolve to a palette slot before the cell is written.
type ColorPair struct {
	FG uint8
	BG uint8
}

const (
	defaultFG uint8 = 7
	defaultBG uint8 = 0
)

func defaultColorPair() ColorPair {
	return ColorPair{FG: defaultFG, BG: defaultBG}
}

// Cell is one grid position: a code point, its glyph width class, the SGR
// attributes in effect when it was written, and the color pair to render
// it with. Neither the glyph nor a reference to it is stored here - only
// the code point, by which a renderer finds the glyph in its GlyphTable.
type Cell struct {
	Code  rune
	Width Width
	Attr  Attribute
	Color ColorPair
}

// blankCell is what EraseCell and a freshly allocated row are filled with.
// Background-color-erase means the background half of Color survives
// whatever the current attribute's BG is, so blankCell is parameterized by
// the caller rather than being a single package-level constant.
func blankCell(color ColorPair) Cell {
	return Cell{Code: ' ', Width: WidthHalf, Color: color}
}
