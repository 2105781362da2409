package vtcore

import "strconv"

// csiParam is one parsed CSI parameter: its numeric value, and whether a
// digit was actually present (an empty parameter, e.g. the first field
// of "CSI ;5H", defaults to 0 same as a present 0 would).
type csiParam struct {
	value int
	given bool
}

type csiParams []csiParam

func (p csiParams) arg(i int) int {
	if i < 0 || i >= len(p) {
		return 0
	}
	return p[i].value
}

func (p csiParams) last() int {
	if len(p) == 0 {
		return 0
	}
	return p.arg(len(p) - 1)
}

func (p csiParams) sum() int {
	s := 0
	for i := range p {
		s += p.arg(i)
	}
	return s
}

// parseCSIParams splits a CSI parameter string on ';', reading the first
// run of digits out of each field - any leading private-mode marker
// ('?') or other non-digit byte in a field is simply skipped, the same
// way the reference parser's isdigit-filtered scan behaves.
func parseCSIParams(body []byte) csiParams {
	if len(body) == 0 {
		return nil
	}
	fields := splitBytes(body, ';')
	params := make(csiParams, len(fields))
	for i, f := range fields {
		j := 0
		for j < len(f) && (f[j] < '0' || f[j] > '9') {
			j++
		}
		if j == len(f) {
			continue
		}
		k := j
		for k < len(f) && f[k] >= '0' && f[k] <= '9' {
			k++
		}
		v, _ := strconv.Atoi(string(f[j:k]))
		params[i] = csiParam{value: v, given: true}
	}
	return params
}

func splitBytes(b []byte, sep byte) [][]byte {
	var out [][]byte
	start := 0
	for i := 0; i <= len(b); i++ {
		if i == len(b) || b[i] == sep {
			out = append(out, b[start:i])
			start = i + 1
		}
	}
	return out
}

// csiFunc dispatches the final byte of a CSI sequence. private reports
// whether the parameter string opened with '?' (DEC private mode form),
// needed only by setMode/resetMode.
var csiFunc = map[byte]func(t *Terminal, p csiParams, private bool){
	'@': (*Terminal).insertBlank,
	'A': func(t *Terminal, p csiParams, _ bool) { t.moveCursor(-clampMin1(p.sum()), 0) },
	'B': func(t *Terminal, p csiParams, _ bool) { t.moveCursor(clampMin1(p.sum()), 0) },
	'C': func(t *Terminal, p csiParams, _ bool) { t.moveCursor(0, clampMin1(p.sum())) },
	'D': func(t *Terminal, p csiParams, _ bool) { t.moveCursor(0, -clampMin1(p.sum())) },
	'E': func(t *Terminal, p csiParams, _ bool) { t.moveCursor(clampMin1(p.sum()), 0); t.carriageReturn() },
	'F': func(t *Terminal, p csiParams, _ bool) { t.moveCursor(-clampMin1(p.sum()), 0); t.carriageReturn() },
	'G': func(t *Terminal, p csiParams, _ bool) { t.setCursor(t.cursor.Y, lastMinus1Or0(p)) },
	'H': (*Terminal).cursorPosition,
	'J': (*Terminal).eraseDisplay,
	'K': (*Terminal).eraseLine,
	'L': (*Terminal).insertLine,
	'M': (*Terminal).deleteLine,
	'P': (*Terminal).deleteChar,
	'X': (*Terminal).eraseChar,
	'a': func(t *Terminal, p csiParams, _ bool) { t.moveCursor(0, clampMin1(p.sum())) },
	'c': (*Terminal).deviceAttribute,
	'd': func(t *Terminal, p csiParams, _ bool) { t.setCursor(lastMinus1Or0(p), t.cursor.X) },
	'e': func(t *Terminal, p csiParams, _ bool) { t.moveCursor(clampMin1(p.sum()), 0) },
	'f': (*Terminal).cursorPosition,
	'g': (*Terminal).clearTabstop,
	'h': (*Terminal).setMode,
	'l': (*Terminal).resetMode,
	'm': (*Terminal).setAttr,
	'n': (*Terminal).statusReport,
	'r': (*Terminal).setMargin,
	'`': func(t *Terminal, p csiParams, _ bool) { t.setCursor(t.cursor.Y, lastMinus1Or0(p)) },
}

func clampMin1(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

// lastMinus1Or0 replicates "argc<=0 ? 0 : dec2num(argv[argc-1])-1": an
// absent parameter means column/line 0, not -1.
func lastMinus1Or0(p csiParams) int {
	if len(p) == 0 {
		return 0
	}
	return p.last() - 1
}

func (t *Terminal) insertBlank(p csiParams, _ bool) {
	num := clampMin1(p.sum())
	for i := t.grid.Cols - 1; t.cursor.X <= i; i-- {
		if t.cursor.X <= i-num {
			t.grid.CopyCell(t.cursor.Y, i, t.cursor.Y, i-num, t.colorPair)
		} else {
			t.grid.EraseCell(t.cursor.Y, i, t.colorPair)
		}
	}
}

func (t *Terminal) cursorPosition(p csiParams, _ bool) {
	var line, col int
	switch {
	case len(p) == 0:
		line, col = 0, 0
	case len(p) == 2:
		line = p.arg(0) - 1
		col = p.arg(1) - 1
	default:
		return
	}
	if line < 0 {
		line = 0
	}
	if col < 0 {
		col = 0
	}
	t.setCursor(line, col)
}

func (t *Terminal) eraseDisplay(p csiParams, _ bool) {
	mode := p.last()
	if mode < 0 || mode > 2 {
		return
	}
	switch mode {
	case 0:
		for y := t.cursor.Y; y < t.grid.Lines; y++ {
			for x := 0; x < t.grid.Cols; x++ {
				if y > t.cursor.Y || x >= t.cursor.X {
					t.grid.EraseCell(y, x, t.colorPair)
				}
			}
		}
	case 1:
		for y := 0; y <= t.cursor.Y; y++ {
			for x := 0; x < t.grid.Cols; x++ {
				if y < t.cursor.Y || x <= t.cursor.X {
					t.grid.EraseCell(y, x, t.colorPair)
				}
			}
		}
	case 2:
		for y := 0; y < t.grid.Lines; y++ {
			for x := 0; x < t.grid.Cols; x++ {
				t.grid.EraseCell(y, x, t.colorPair)
			}
		}
	}
}

func (t *Terminal) eraseLine(p csiParams, _ bool) {
	mode := p.last()
	if mode < 0 || mode > 2 {
		return
	}
	switch mode {
	case 0:
		for x := t.cursor.X; x < t.grid.Cols; x++ {
			t.grid.EraseCell(t.cursor.Y, x, t.colorPair)
		}
	case 1:
		for x := 0; x <= t.cursor.X; x++ {
			t.grid.EraseCell(t.cursor.Y, x, t.colorPair)
		}
	case 2:
		for x := 0; x < t.grid.Cols; x++ {
			t.grid.EraseCell(t.cursor.Y, x, t.colorPair)
		}
	}
}

// insertLine and deleteLine are gated to the scroll region under
// ModeOrigin but act regardless of cursor position otherwise - an
// asymmetry the reference implementation keeps deliberately.
func (t *Terminal) insertLine(p csiParams, _ bool) {
	if t.mode&ModeOrigin != 0 && (t.cursor.Y < t.scroll.Top || t.cursor.Y > t.scroll.Bottom) {
		return
	}
	t.grid.ScrollWindow(t.cursor.Y, t.scroll.Bottom, -clampMin1(p.sum()), t.colorPair)
}

func (t *Terminal) deleteLine(p csiParams, _ bool) {
	if t.mode&ModeOrigin != 0 && (t.cursor.Y < t.scroll.Top || t.cursor.Y > t.scroll.Bottom) {
		return
	}
	t.grid.ScrollWindow(t.cursor.Y, t.scroll.Bottom, clampMin1(p.sum()), t.colorPair)
}

func (t *Terminal) deleteChar(p csiParams, _ bool) {
	num := clampMin1(p.sum())
	for i := t.cursor.X; i < t.grid.Cols; i++ {
		if i+num < t.grid.Cols {
			t.grid.CopyCell(t.cursor.Y, i, t.cursor.Y, i+num, t.colorPair)
		} else {
			t.grid.EraseCell(t.cursor.Y, i, t.colorPair)
		}
	}
}

func (t *Terminal) eraseChar(p csiParams, _ bool) {
	num := p.sum()
	if num <= 0 {
		num = 1
	} else if num+t.cursor.X > t.grid.Cols {
		num = t.grid.Cols - t.cursor.X
	}
	for i := t.cursor.X; i < t.cursor.X+num; i++ {
		t.grid.EraseCell(t.cursor.Y, i, t.colorPair)
	}
}

func (t *Terminal) setAttr(p csiParams, _ bool) {
	if len(p) == 0 {
		t.attribute = 0
		t.colorPair = defaultColorPair()
		return
	}
	for i := 0; i < len(p); i++ {
		num := p.arg(i)
		switch {
		case num == 0:
			t.attribute = 0
			t.colorPair = defaultColorPair()
		case num >= 1 && num <= 7:
			t.attribute |= attrMask[num]
		case num >= 21 && num <= 27:
			t.attribute &^= attrMask[num-20]
		case num >= 30 && num <= 37:
			t.colorPair.FG = uint8(num - 30)
		case num == 38:
			if i+2 < len(p) && p.arg(i+1) == 5 {
				t.colorPair.FG = uint8(p.arg(i + 2))
				i += 2
			} else if i+4 < len(p) && p.arg(i+1) == 2 {
				t.colorPair.FG = rgb2index(uint8(p.arg(i+2)), uint8(p.arg(i+3)), uint8(p.arg(i+4)))
				i += 4
			}
		case num == 39:
			t.colorPair.FG = defaultFG
		case num >= 40 && num <= 47:
			t.colorPair.BG = uint8(num - 40)
		case num == 48:
			if i+2 < len(p) && p.arg(i+1) == 5 {
				t.colorPair.BG = uint8(p.arg(i + 2))
				i += 2
			} else if i+4 < len(p) && p.arg(i+1) == 2 {
				t.colorPair.BG = rgb2index(uint8(p.arg(i+2)), uint8(p.arg(i+3)), uint8(p.arg(i+4)))
				i += 4
			}
		case num == 49:
			t.colorPair.BG = defaultBG
		case num >= 90 && num <= 97:
			t.colorPair.FG = uint8(num-90) + 8
		case num >= 100 && num <= 107:
			t.colorPair.BG = uint8(num-100) + 8
		}
	}
}

func (t *Terminal) statusReport(p csiParams, _ bool) {
	for i := 0; i < len(p); i++ {
		switch p.arg(i) {
		case 5:
			t.writeResponse("\033[0n")
		case 6:
			t.writeResponse("\033[" + strconv.Itoa(t.cursor.Y+1) + ";" + strconv.Itoa(t.cursor.X+1) + "R")
		case 15:
			t.writeResponse("\033[?13n")
		}
	}
}

func (t *Terminal) deviceAttribute(_ csiParams, _ bool) {
	t.writeResponse("\033[?6c")
}

func (t *Terminal) setMode(p csiParams, private bool) {
	if !private {
		return
	}
	for i := 0; i < len(p); i++ {
		switch p.arg(i) {
		case 6:
			t.mode |= ModeOrigin
			t.setCursor(0, 0)
		case 7:
			t.mode |= ModeAutoWrap
		case 25:
			t.mode |= ModeCursorVisible
		case 8901:
			t.mode |= ModeVWBS
		}
	}
}

func (t *Terminal) resetMode(p csiParams, private bool) {
	if !private {
		return
	}
	for i := 0; i < len(p); i++ {
		switch p.arg(i) {
		case 6:
			t.mode &^= ModeOrigin
			t.setCursor(0, 0)
		case 7:
			t.mode &^= ModeAutoWrap
			t.cursor.WrapPending = false
		case 25:
			t.mode &^= ModeCursorVisible
		case 8901:
			t.mode &^= ModeVWBS
		}
	}
}

// setMargin sets DECSTBM's scroll region. No parameters resets it to the
// full screen; out-of-range top/bottom are each clamped independently
// before the top>=bottom sequence is rejected outright.
func (t *Terminal) setMargin(p csiParams, _ bool) {
	var top, bottom int
	switch len(p) {
	case 0:
		top, bottom = 0, t.grid.Lines-1
	case 2:
		if p[0].given {
			top = p.arg(0) - 1
		} else {
			top = 0
		}
		if p[1].given {
			bottom = p.arg(1) - 1
		} else {
			bottom = t.grid.Lines - 1
		}
	default:
		return
	}

	if top < 0 || top >= t.grid.Lines {
		top = 0
	}
	if bottom < 0 || bottom >= t.grid.Lines {
		bottom = t.grid.Lines - 1
	}
	if top >= bottom {
		return
	}

	t.scroll.Top = top
	t.scroll.Bottom = bottom
	t.setCursor(0, 0)
}

func (t *Terminal) clearTabstop(p csiParams, _ bool) {
	if len(p) == 0 {
		t.grid.Tabstop[t.cursor.X] = false
		return
	}
	for i := 0; i < len(p); i++ {
		switch p.arg(i) {
		case 0:
			t.grid.Tabstop[t.cursor.X] = false
		case 3:
			for j := range t.grid.Tabstop {
				t.grid.Tabstop[j] = false
			}
			return
		}
	}
}
