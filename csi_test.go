package vtcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSICursorMovementClampsAtEdges(t *testing.T) {
	term := newTestTerminal(t, 5, 5)
	term.Parse([]byte("\x1b[10A")) // up 10 from row 0, clamps to 0
	assert.Equal(t, 0, term.Cursor().Y)
	term.Parse([]byte("\x1b[10C")) // right 10 from col 0, clamps to last column
	assert.Equal(t, 4, term.Cursor().X)
}

func TestCSICursorPositionOneBasedAndDefaulted(t *testing.T) {
	term := newTestTerminal(t, 10, 10)
	term.Parse([]byte("\x1b[3;5H"))
	assert.Equal(t, Cursor{X: 4, Y: 2}, term.Cursor())
	term.Parse([]byte("\x1b[H"))
	assert.Equal(t, 0, term.Cursor().X)
	assert.Equal(t, 0, term.Cursor().Y)
}

func TestCSISGRBasicAttributesAndColors(t *testing.T) {
	term := newTestTerminal(t, 10, 1)
	term.Parse([]byte("\x1b[1;31;44m"))
	assert.Equal(t, AttributeBold, term.attribute)
	assert.Equal(t, uint8(1), term.colorPair.FG) // SGR stores the plain index; SetCell brightens on write
	assert.Equal(t, uint8(4), term.colorPair.BG)
}

func TestCSISGRBoldBrightensForegroundOnWrite(t *testing.T) {
	term := newTestTerminal(t, 10, 1)
	term.Parse([]byte("\x1b[1;31mA"))
	assert.Equal(t, uint8(1+8), term.Cell(0, 0).Color.FG)
}

func TestCSISGRResetClearsAttributesAndColors(t *testing.T) {
	term := newTestTerminal(t, 10, 1)
	term.Parse([]byte("\x1b[1;31m"))
	term.Parse([]byte("\x1b[0m"))
	assert.Equal(t, Attribute(0), term.attribute)
	assert.Equal(t, defaultColorPair(), term.colorPair)
}

func TestCSISGR256ColorForegroundAndBackground(t *testing.T) {
	term := newTestTerminal(t, 10, 1)
	term.Parse([]byte("\x1b[38;5;200;48;5;17m"))
	assert.Equal(t, uint8(200), term.colorPair.FG)
	assert.Equal(t, uint8(17), term.colorPair.BG)
}

func TestCSISGRTrueColorForeground(t *testing.T) {
	term := newTestTerminal(t, 10, 1)
	term.Parse([]byte("\x1b[38;2;255;0;0m"))
	assert.Equal(t, rgb2index(255, 0, 0), term.colorPair.FG)
}

func TestCSIEraseDisplayModes(t *testing.T) {
	term := newTestTerminal(t, 3, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			term.grid.Rows[y][x] = Cell{Code: 'x'}
		}
	}
	term.setCursor(0, 1)
	term.Parse([]byte("\x1b[0J")) // erase from cursor to end of screen
	assert.Equal(t, rune('x'), term.Cell(0, 0).Code)
	assert.Equal(t, rune(' '), term.Cell(0, 1).Code)
	assert.Equal(t, rune(' '), term.Cell(1, 2).Code)
}

func TestCSIEraseLine(t *testing.T) {
	term := newTestTerminal(t, 5, 1)
	for x := 0; x < 5; x++ {
		term.grid.Rows[0][x] = Cell{Code: 'x'}
	}
	term.setCursor(0, 2)
	term.Parse([]byte("\x1b[K")) // default mode 0: cursor to end of line
	assert.Equal(t, rune('x'), term.Cell(0, 1).Code)
	assert.Equal(t, rune(' '), term.Cell(0, 2).Code)
	assert.Equal(t, rune(' '), term.Cell(0, 4).Code)
}

func TestCSISetMarginClampsAndHomesCursor(t *testing.T) {
	term := newTestTerminal(t, 10, 10)
	term.setCursor(5, 5)
	term.Parse([]byte("\x1b[2;6r"))
	assert.Equal(t, ScrollRegion{Top: 1, Bottom: 5}, term.scroll)
	assert.Equal(t, Cursor{X: 0, Y: 0}, term.Cursor()) // homed; DECSTBM alone doesn't set DECOM
	// top 0-1 and bottom 99-1 are both out of range and each is clamped
	term.Parse([]byte("\x1b[0;99r"))
	assert.Equal(t, ScrollRegion{Top: 0, Bottom: 9}, term.scroll)
}

func TestCSISetMarginNoParamsResetsFullScreen(t *testing.T) {
	term := newTestTerminal(t, 10, 10)
	term.Parse([]byte("\x1b[2;6r"))
	term.Parse([]byte("\x1b[r"))
	assert.Equal(t, ScrollRegion{Top: 0, Bottom: 9}, term.scroll)
}

func TestCSISetMarginRejectsInvertedRange(t *testing.T) {
	term := newTestTerminal(t, 10, 10)
	orig := term.scroll
	term.Parse([]byte("\x1b[6;2r"))
	assert.Equal(t, orig, term.scroll)
}

func TestCSIInsertAndDeleteChar(t *testing.T) {
	term := newTestTerminal(t, 5, 1)
	for x := 0; x < 5; x++ {
		term.grid.Rows[0][x] = Cell{Code: rune('a' + rune(x))}
	}
	term.setCursor(0, 1)
	term.Parse([]byte("\x1b[1@")) // insert one blank at col 1
	assert.Equal(t, rune(' '), term.Cell(0, 1).Code)
	assert.Equal(t, rune('b'), term.Cell(0, 2).Code)

	term2 := newTestTerminal(t, 5, 1)
	for x := 0; x < 5; x++ {
		term2.grid.Rows[0][x] = Cell{Code: rune('a' + rune(x))}
	}
	term2.setCursor(0, 1)
	term2.Parse([]byte("\x1b[1P")) // delete one char at col 1
	assert.Equal(t, rune('c'), term2.Cell(0, 1).Code)
	assert.Equal(t, rune(' '), term2.Cell(0, 4).Code)
}

func TestCSIInsertLineAndDeleteLineRespectOriginGate(t *testing.T) {
	term := newTestTerminal(t, 3, 5)
	term.Parse([]byte("\x1b[2;4r")) // scroll region rows 1..3 (0-based)
	term.Parse([]byte("\x1b[?6h"))  // DECOM on, homes cursor into the region
	for y := 0; y < 5; y++ {
		term.grid.Rows[y][0] = Cell{Code: rune('0' + rune(y))}
	}
	term.Parse([]byte("\x1b[L")) // insert one line at top of region
	assert.Equal(t, rune(' '), term.Cell(1, 0).Code)
	assert.Equal(t, rune('1'), term.Cell(2, 0).Code)
	term.Parse([]byte("\x1b[M")) // delete it again; the region's last row comes up blank
	assert.Equal(t, rune('1'), term.Cell(1, 0).Code)
	assert.Equal(t, rune('2'), term.Cell(2, 0).Code)
	assert.Equal(t, rune(' '), term.Cell(3, 0).Code)

	term.cursor.Y = 0 // above the region while DECOM is on: IL and DL are gated off
	term.Parse([]byte("\x1b[L"))
	term.Parse([]byte("\x1b[M"))
	assert.Equal(t, rune('0'), term.Cell(0, 0).Code)
	assert.Equal(t, rune('1'), term.Cell(1, 0).Code)
}

func TestCSIStatusReportCursorPosition(t *testing.T) {
	term := newTestTerminal(t, 10, 10)
	var buf fakeWriter
	term.AttachPTY(&buf)
	term.setCursor(2, 3)
	term.Parse([]byte("\x1b[6n"))
	assert.Equal(t, "\x1b[3;4R", buf.String())
}

func TestCSIDeviceAttributeRespondsWithVT102Identity(t *testing.T) {
	term := newTestTerminal(t, 10, 10)
	var buf fakeWriter
	term.AttachPTY(&buf)
	term.Parse([]byte("\x1b[c"))
	assert.Equal(t, "\x1b[?6c", buf.String())
}

// A cursor-up past the top margin scrolls by more rows than the region
// holds; moveCursor must clamp rather than index out of bounds.
func TestCSICursorUpPastTopMarginDoesNotPanic(t *testing.T) {
	term := newTestTerminal(t, 10, 24)
	assert.NotPanics(t, func() {
		term.Parse([]byte("\x1b[100A"))
	})
	assert.Equal(t, 0, term.Cursor().Y)
}

// IL/DL with a count larger than the region must clamp the same way.
func TestCSIInsertLineAndDeleteLineWithOversizedCountDoesNotPanic(t *testing.T) {
	term := newTestTerminal(t, 10, 24)
	assert.NotPanics(t, func() {
		term.Parse([]byte("\x1b[100L"))
	})
	assert.NotPanics(t, func() {
		term.Parse([]byte("\x1b[100M"))
	})
}

func TestCSIClearTabstop(t *testing.T) {
	term := newTestTerminal(t, 20, 1)
	require.True(t, term.grid.Tabstop[8])
	term.setCursor(0, 8)
	term.Parse([]byte("\x1b[g")) // mode 0: clear at cursor
	assert.False(t, term.grid.Tabstop[8])
	assert.True(t, term.grid.Tabstop[16])
	term.Parse([]byte("\x1b[3g")) // mode 3: clear all
	assert.False(t, term.grid.Tabstop[16])
}

type fakeWriter struct {
	data []byte
}

func (w *fakeWriter) Write(p []byte) (int, error) {
	w.data = append(w.data, p...)
	return len(p), nil
}

func (w *fakeWriter) String() string {
	return string(w.data)
}
