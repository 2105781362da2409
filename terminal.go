package vtcore

import (
	"io"
	"sync"

	"github.com/mattn/go-runewidth"
)

// Terminal is the whole engine: grid, cursor, escape-sequence state
// machine, and UTF-8 decoder behind a single mutex. Parse is the only
// entry point that interprets the byte stream; every other exported method
// either reads under RLock or (Reset, Redraw, ClearDirty, AttachPTY,
// Destroy) takes the same Lock as Parse. A caller driving the engine from multiple
// goroutines must still serialize its own Parse calls - the mutex
// protects internal consistency, not the single-writer contract Parse
// itself assumes between calls.
type Terminal struct {
	mu sync.RWMutex

	grid   *Grid
	cursor Cursor
	scroll ScrollRegion
	mode   Mode
	saved  savedState

	attribute Attribute
	colorPair ColorPair
	palette   Palette

	glyphs GlyphTable

	esc     *escapeBuffer
	charset utf8Accumulator

	responseWriter io.Writer
	log            *logger
}

// New allocates a Terminal of the given size. It does not bind glyphs for
// the UCS-2 range up front: it looks up only the three glyphs the engine
// cannot operate without (the default erase character, and the half/wide
// substitution glyphs) and fails if the table is missing any of them;
// every other code point is looked up when addChar writes it.
func New(cols, lines int, glyphs GlyphTable, palette *Palette) (*Terminal, error) {
	if cols <= 0 || lines <= 0 {
		return nil, &InitError{Step: "dimensions"}
	}
	if glyphs == nil {
		return nil, &InitError{Step: "glyph table"}
	}
	for _, code := range essentialGlyphs {
		if _, ok := glyphs.Lookup(code); !ok {
			return nil, &InitError{Step: "essential glyph U+" + hex4(code)}
		}
	}

	if palette == nil {
		palette = DefaultPalette()
	}

	t := &Terminal{
		grid:    newGrid(cols, lines),
		palette: *palette,
		glyphs:  glyphs,
		esc:     newEscapeBuffer(),
		log:     newLogger(),
	}
	t.Reset()
	return t, nil
}

func hex4(r rune) string {
	const digits = "0123456789ABCDEF"
	buf := [4]byte{'0', '0', '0', '0'}
	for i := 3; i >= 0 && r > 0; i-- {
		buf[i] = digits[r&0xF]
		r >>= 4
	}
	return string(buf[:])
}

// Reset restores startup state: cursor home, full-screen scroll region,
// default attributes and colors, tabstops every eight columns, every
// cell blanked, and the escape/UTF-8 decoder state machines idle. It is
// also what ESC c (RIS) invokes mid-stream.
func (t *Terminal) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reset()
}

func (t *Terminal) reset() {
	t.mode = ModeCursorVisible | ModeAutoWrap
	t.cursor = Cursor{}

	t.scroll = ScrollRegion{Top: 0, Bottom: t.grid.Lines - 1}

	t.saved = savedState{cursor: t.cursor, attribute: 0}

	t.colorPair = defaultColorPair()
	t.attribute = 0

	for y := 0; y < t.grid.Lines; y++ {
		for x := 0; x < t.grid.Cols; x++ {
			t.grid.EraseCell(y, x, t.colorPair)
			t.grid.Tabstop[x] = x%tabstopWidth == 0
		}
		t.grid.LineDirty[y] = true
	}

	t.esc.reset()
	t.charset.reset()
}

// Parse feeds a chunk of a PTY's byte stream through the decoder, escape
// state machine, and CSI dispatcher. It is the engine's single entry
// point for terminal input: a multithreaded host must serialize its own calls exactly
// as it would serialize writes to any other shared, non-concurrent
// object.
func (t *Terminal) Parse(data []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, ch := range data {
		t.processByte(ch)
	}
}

func (t *Terminal) processByte(ch byte) {
	switch t.esc.state {
	case escStateReset:
		if t.charset.pending() && (ch < 0x80 || ch > 0xBF) {
			t.addChar(replacementChar)
			t.charset.reset()
		}
		switch {
		case ch <= 0x1F:
			t.controlCharacter(ch)
		case ch <= 0x7F:
			t.addChar(rune(ch))
		default:
			t.utf8Charset(ch)
		}
	case escStateEsc:
		if t.esc.push(ch) {
			t.escSequence(ch)
		}
	case escStateCSI:
		if t.esc.push(ch) {
			t.csiSequence(ch)
		}
	case escStateOSC:
		if t.esc.push(ch) {
			t.oscSequence()
		}
	case escStateDCS:
		if t.esc.push(ch) {
			t.dcsSequence()
		}
	}
}

func (t *Terminal) escSequence(ch byte) {
	if len(t.esc.buf) == 1 {
		if fn, ok := escFunc[ch]; ok {
			fn(t)
		}
	}
	if ch == '[' || ch == ']' || ch == 'P' {
		return
	}
	t.esc.reset()
}

func (t *Terminal) csiSequence(ch byte) {
	body := t.esc.buf[1 : len(t.esc.buf)-1] // drop leading '[' and the final byte
	params := parseCSIParams(body)
	private := len(body) > 0 && body[0] == '?'

	if fn, ok := csiFunc[ch]; ok {
		fn(t, params, private)
	}
	t.esc.reset()
}

// oscSequence and dcsSequence both discard their sequence body entirely -
// the engine has no palette-mutation or device-control command it
// implements, but it still has to consume the bytes so a later C0
// control or printable character isn't misread as part of the sequence.
func (t *Terminal) oscSequence() { t.esc.reset() }
func (t *Terminal) dcsSequence() { t.esc.reset() }

func (t *Terminal) utf8Charset(ch byte) {
	code, complete := t.charset.feed(ch)
	if complete {
		t.addChar(code)
	}
}

// addChar writes one decoded code point to the grid. Zero-width code
// points (combining marks) are silently dropped - combining-character
// composition is out of scope. A code point outside the BMP, with no
// bound glyph, or whose glyph's width disagrees with wcwidth falls back
// to the half- or wide-width substitution glyph.
func (t *Terminal) addChar(code rune) {
	width := runewidth.RuneWidth(code)
	if width <= 0 {
		return
	}

	var glyphWidth Width
	g, ok := t.glyphs.Lookup(code)
	if code >= 0x10000 || !ok || widthFor(width) != g.Width {
		glyphWidth = widthFor(width)
		code = substituteCode(width)
	} else {
		glyphWidth = g.Width
	}

	if (t.cursor.WrapPending && t.cursor.X == t.grid.Cols-1) ||
		(glyphWidth == WidthWide && t.cursor.X == t.grid.Cols-1) {
		t.setCursor(t.cursor.Y, 0)
		t.moveCursor(1, 0)
	}
	t.cursor.WrapPending = false

	advance := t.grid.SetCell(t.cursor.Y, t.cursor.X, glyphWidth, code, t.attribute, t.colorPair)
	t.moveCursor(0, advance)
}

func widthFor(wcwidth int) Width {
	if wcwidth == 2 {
		return WidthWide
	}
	return WidthHalf
}

func substituteCode(wcwidth int) rune {
	if wcwidth == 1 {
		return substituteHalf
	}
	return substituteWide
}

// Redraw marks every line dirty, for a host that wants a full repaint
// (e.g. after resizing its own viewport) without the engine having
// changed anything itself.
func (t *Terminal) Redraw() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.grid.markAllDirty()
}

// Destroy releases the Terminal's glyph bindings and response writer.
// Go's garbage collector reclaims the grid and buffers on its own; this
// exists so callers that mirror the reference implementation's
// init/destroy pairing have an explicit teardown point, and so a
// Terminal doesn't keep an external io.Writer or GlyphTable reachable
// past the point its host considers it dead.
func (t *Terminal) Destroy() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.glyphs = nil
	t.responseWriter = nil
}

// --- read-only views ---

func (t *Terminal) Cols() int  { t.mu.RLock(); defer t.mu.RUnlock(); return t.grid.Cols }
func (t *Terminal) Lines() int { t.mu.RLock(); defer t.mu.RUnlock(); return t.grid.Lines }

// Cell returns a copy of the cell at (y, x).
func (t *Terminal) Cell(y, x int) Cell {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.grid.Rows[y][x]
}

// DirtyLine reports whether line y has changed since a renderer last
// cleared it via ClearDirty. Redraw and Reset mark every line dirty.
func (t *Terminal) DirtyLine(y int) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.grid.LineDirty[y]
}

// ClearDirty clears the dirty flag on line y, for a renderer that has
// just painted it.
func (t *Terminal) ClearDirty(y int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.grid.LineDirty[y] = false
}

func (t *Terminal) Cursor() Cursor {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cursor
}

func (t *Terminal) Mode() Mode {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.mode
}

func (t *Terminal) ScrollRegion() ScrollRegion {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.scroll
}

// Palette returns a copy of the current 256-entry color table.
func (t *Terminal) Palette() Palette {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.palette
}
