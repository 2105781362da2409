package vtcore

// Grid is the cell matrix a Terminal writes into. Rows are stored as a
// slice of row slices so ScrollWindow can move whole lines by swapping
// slice headers instead of copying cells - an O(rows) scroll regardless
// of how wide the grid is.
type Grid struct {
	Cols, Lines int
	Rows        [][]Cell
	LineDirty   []bool
	Tabstop     []bool
}

const tabstopWidth = 8

func newGrid(cols, lines int) *Grid {
	g := &Grid{
		Cols:      cols,
		Lines:     lines,
		Rows:      make([][]Cell, lines),
		LineDirty: make([]bool, lines),
		Tabstop:   make([]bool, cols),
	}
	for y := range g.Rows {
		g.Rows[y] = make([]Cell, cols)
	}
	return g
}

// EraseCell resets a single cell to blank, preserving the given color pair
// so background-color-erase paints the current background rather than
// whatever was there before.
func (g *Grid) EraseCell(y, x int, bg ColorPair) {
	g.Rows[y][x] = blankCell(bg)
	g.LineDirty[y] = true
}

// CopyCell copies src onto dst, handling wide-glyph partner cells exactly
// as set_cell does: a NEXT_TO_WIDE source is a no-op (it has no content of
// its own), a WIDE source copying onto the last column erases instead of
// clipping a half-glyph, and copying a WIDE source elsewhere also stamps
// its NEXT_TO_WIDE partner one column to the right.
func (g *Grid) CopyCell(dstY, dstX, srcY, srcX int, bg ColorPair) {
	src := g.Rows[srcY][srcX]
	switch {
	case src.Width == WidthNextToWide:
		return
	case src.Width == WidthWide && dstX == g.Cols-1:
		g.EraseCell(dstY, dstX, bg)
	default:
		g.Rows[dstY][dstX] = src
		if src.Width == WidthWide {
			partner := src
			partner.Width = WidthNextToWide
			g.Rows[dstY][dstX+1] = partner
		}
		g.LineDirty[dstY] = true
	}
}

// SetCell writes one glyph at (y, x) with the terminal's current
// attribute and color pair (bold brightens an 0-7 foreground, blink
// brightens an 0-7 background, reverse swaps fg/bg after brightening), and
// returns how many columns the cursor should advance: 1 for a half-width
// glyph, 2 for a wide one. A wide glyph also stamps its NEXT_TO_WIDE
// partner in the next column when one exists, and writing a half-width
// glyph over what used to be the left half of a wide glyph cleans up the
// now-orphaned partner cell. Writing any glyph over the right half of a
// wide glyph erases the now-orphaned left half.
func (g *Grid) SetCell(y, x int, width Width, code rune, attr Attribute, color ColorPair) int {
	cell := Cell{Code: code, Width: width, Attr: attr, Color: color}

	if x > 0 && g.Rows[y][x].Width == WidthNextToWide && g.Rows[y][x-1].Width == WidthWide {
		g.EraseCell(y, x-1, color)
	}

	if attr&AttributeBold != 0 && cell.Color.FG <= 7 {
		cell.Color.FG += 8
	}
	if attr&AttributeBlink != 0 && cell.Color.BG <= 7 {
		cell.Color.BG += 8
	}
	if attr&AttributeReverse != 0 {
		cell.Color.FG, cell.Color.BG = cell.Color.BG, cell.Color.FG
	}

	g.Rows[y][x] = cell
	g.LineDirty[y] = true

	if cell.Width == WidthWide && x+1 < g.Cols {
		partner := cell
		partner.Width = WidthNextToWide
		g.Rows[y][x+1] = partner
		return 2
	}

	if cell.Width == WidthHalf && x+1 < g.Cols && g.Rows[y][x+1].Width == WidthNextToWide {
		g.EraseCell(y, x+1, color)
	}
	return 1
}

func (g *Grid) swapRows(i, j int) {
	g.Rows[i], g.Rows[j] = g.Rows[j], g.Rows[i]
}

// ScrollWindow moves lines [from, to] by offset rows, swapping row slices
// rather than copying cells, then erases the rows the swap vacated.
// Positive offset moves content up and blanks the last offset rows of the
// range; negative moves it down and blanks the first. offset == 0 or
// from >= to is a no-op.
func (g *Grid) ScrollWindow(from, to, offset int, bg ColorPair) {
	if offset == 0 || from >= to {
		return
	}

	for y := from; y <= to; y++ {
		g.LineDirty[y] = true
	}

	absOffset := offset
	if absOffset < 0 {
		absOffset = -absOffset
	}
	// A scroll larger than the region just erases it - clamp so the swap
	// and erase loops below never index outside [from, to].
	regionSize := to - from + 1
	if absOffset > regionSize {
		absOffset = regionSize
		if offset > 0 {
			offset = absOffset
		} else {
			offset = -absOffset
		}
	}
	lines := (to - from + 1) - absOffset

	if offset > 0 {
		for y := from; y < from+lines; y++ {
			g.swapRows(y, y+offset)
		}
		for y := to - offset + 1; y <= to; y++ {
			for x := 0; x < g.Cols; x++ {
				g.EraseCell(y, x, bg)
			}
		}
	} else {
		for y := to; y >= from+absOffset; y-- {
			g.swapRows(y, y-absOffset)
		}
		for y := from; y < from+absOffset; y++ {
			for x := 0; x < g.Cols; x++ {
				g.EraseCell(y, x, bg)
			}
		}
	}
}

// markAllDirty flags every line dirty, used by Redraw and Reset.
func (g *Grid) markAllDirty() {
	for i := range g.LineDirty {
		g.LineDirty[i] = true
	}
}
