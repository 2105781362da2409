package vtcore

import "github.com/mattn/go-runewidth"

// Glyph is an opaque, host-owned reference. vtcore never allocates or frees
// one - it only reads Width to decide how many grid cells a code point
// occupies. Everything else (pixel data, font metrics, cache keys) belongs
// to the renderer and is carried in Ref without interpretation.
type Glyph struct {
	Width Width
	Ref   any
}

// GlyphTable is the external font/glyph store collaborator. New calls
// Lookup only for the three essential glyphs; no per-code-point table is
// built up front. addChar calls Lookup for each code point as it is
// written and reads only the returned Width - the *Glyph is never stored,
// copied or mutated.
type GlyphTable interface {
	// Lookup returns the glyph for code, or ok=false if the table has no
	// glyph for it (addChar then writes the half- or wide-width
	// substitute code point instead).
	Lookup(code rune) (*Glyph, bool)
}

// essentialGlyphs are the code points New refuses to start without: the
// default erase character and the two substitution glyphs used when a
// wide or half-width code point has no entry of its own.
var essentialGlyphs = [3]rune{' ', substituteHalf, substituteWide}

const (
	substituteHalf = 0x0020
	substituteWide = 0x3000
	replacementChar = 0x003F
)

// DefaultGlyphTable is a minimal GlyphTable good enough to drive New and
// the demo harness without a real font: every code point is present, and
// its Width is whatever go-runewidth measures it as. It carries no pixel
// data - Ref is always nil.
type DefaultGlyphTable struct{}

func (DefaultGlyphTable) Lookup(code rune) (*Glyph, bool) {
	w := WidthHalf
	if runewidth.RuneWidth(code) == 2 {
		w = WidthWide
	}
	return &Glyph{Width: w}, true
}
