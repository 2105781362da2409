package vtcore

// Cursor is the terminal's current write position plus the pending-wrap
// flag that defers an auto-wrap decision to the next printable character.
type Cursor struct {
	X, Y        int
	WrapPending bool
}

// ScrollRegion is the inclusive top/bottom margin DECSTBM sets. Lines
// scrolled in or out of the grid by moveCursor only ever touch rows inside
// [Top, Bottom]. The line-editing CSI commands (IL/DL) scroll from the
// cursor row to Bottom, so outside ModeOrigin they can also move rows
// above Top.
type ScrollRegion struct {
	Top, Bottom int
}

// moveCursor applies a relative motion, clamping X to the grid and
// scrolling the active region when Y would otherwise leave it from the
// top or bottom edge - this is the only path that can scroll as a side
// effect of cursor motion.
func (t *Terminal) moveCursor(yOffset, xOffset int) {
	x := t.cursor.X + xOffset
	y := t.cursor.Y + yOffset

	top, bottom := t.scroll.Top, t.scroll.Bottom

	if x < 0 {
		x = 0
	} else if x >= t.grid.Cols {
		if t.mode&ModeAutoWrap != 0 {
			t.cursor.WrapPending = true
		}
		x = t.grid.Cols - 1
	}
	t.cursor.X = x

	switch {
	case y < 0:
		y = 0
	case y >= t.grid.Lines:
		y = t.grid.Lines - 1
	}

	switch {
	case t.cursor.Y == top && yOffset < 0:
		y = top
		t.grid.ScrollWindow(top, bottom, yOffset, t.colorPair)
	case t.cursor.Y == bottom && yOffset > 0:
		y = bottom
		t.grid.ScrollWindow(top, bottom, yOffset, t.colorPair)
	}
	t.cursor.Y = y
}

// setCursor is absolute positioning: it never scrolls, and under
// ModeOrigin the coordinates are relative to the scroll region instead of
// the whole grid.
func (t *Terminal) setCursor(y, x int) {
	var top, bottom int
	if t.mode&ModeOrigin != 0 {
		top, bottom = t.scroll.Top, t.scroll.Bottom
		y += t.scroll.Top
	} else {
		top, bottom = 0, t.grid.Lines-1
	}

	switch {
	case x < 0:
		x = 0
	case x >= t.grid.Cols:
		x = t.grid.Cols - 1
	}
	switch {
	case y < top:
		y = top
	case y > bottom:
		y = bottom
	}

	t.cursor.X = x
	t.cursor.Y = y
	t.cursor.WrapPending = false
}

// saveCursorState fills the single save slot. Only the origin bit of mode
// is preserved; every other mode bit and every piece of grid state is
// untouched by a later restore.
func (t *Terminal) saveCursorState() {
	t.saved = savedState{
		cursor:    t.cursor,
		origin:    t.mode&ModeOrigin != 0,
		attribute: t.attribute,
	}
}

func (t *Terminal) restoreCursorState() {
	if t.saved.origin {
		t.mode |= ModeOrigin
	} else {
		t.mode &^= ModeOrigin
	}
	t.cursor = t.saved.cursor
	t.attribute = t.saved.attribute
}
