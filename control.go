package vtcore

// C0 control codes the engine gives special meaning to. Named rather than
// left as bare literals since several of them (esc, cr, lf, bs, ht) are
// also referenced from the OSC/DCS terminator grammar in escape.go.
const (
	bel       = 0x07
	bs        = 0x08
	ht        = 0x09
	lf        = 0x0A
	vt        = 0x0B
	ff        = 0x0C
	cr        = 0x0D
	esc       = 0x1B
	del       = 0x7F
	backslash = 0x5C
)

// controlFunc dispatches a C0 control character. Only the codes that do
// something are present; everything else is a no-op, matching the
// reference implementation's sparse function-pointer table.
var controlFunc = map[byte]func(*Terminal){
	bs:  (*Terminal).backspace,
	ht:  (*Terminal).tab,
	lf:  (*Terminal).newline,
	vt:  (*Terminal).newline,
	ff:  (*Terminal).newline,
	cr:  (*Terminal).carriageReturn,
	esc: (*Terminal).enterEsc,
}

func (t *Terminal) controlCharacter(ch byte) {
	if fn, ok := controlFunc[ch]; ok {
		fn(t)
	}
}

// backspace moves left one column, or two when VWBS is set and the
// preceding cell is the right half of a wide glyph.
func (t *Terminal) backspace() {
	if t.mode&ModeVWBS != 0 && t.cursor.X-1 >= 0 &&
		t.grid.Rows[t.cursor.Y][t.cursor.X-1].Width == WidthNextToWide {
		t.moveCursor(0, -2)
	} else {
		t.moveCursor(0, -1)
	}
}

// tab advances to the next tabstop, or to the last column if none remain.
func (t *Terminal) tab() {
	for x := t.cursor.X + 1; x < t.grid.Cols; x++ {
		if t.grid.Tabstop[x] {
			t.setCursor(t.cursor.Y, x)
			return
		}
	}
	t.setCursor(t.cursor.Y, t.grid.Cols-1)
}

func (t *Terminal) newline() {
	t.moveCursor(1, 0)
}

func (t *Terminal) carriageReturn() {
	t.setCursor(t.cursor.Y, 0)
}

func (t *Terminal) crnl() {
	t.carriageReturn()
	t.newline()
}

func (t *Terminal) reverseNewline() {
	t.moveCursor(-1, 0)
}

func (t *Terminal) enterEsc() {
	t.esc.state = escStateEsc
}

func (t *Terminal) enterCSI() {
	t.esc.state = escStateCSI
}

func (t *Terminal) enterOSC() {
	t.esc.state = escStateOSC
}

func (t *Terminal) enterDCS() {
	t.esc.state = escStateDCS
}

func (t *Terminal) setTabstopHere() {
	t.grid.Tabstop[t.cursor.X] = true
}

// identify answers ESC Z with the literal VT102 device attribute string;
// CSI c (deviceAttribute in csi.go) writes the same string.
func (t *Terminal) identify() {
	t.writeResponse("\033[?6c")
}

// ris is reached from escSequence (ESC c) while Parse already holds
// t.mu, so it must call the unexported reset() rather than Reset().
func (t *Terminal) ris() {
	t.reset()
}

// escFunc dispatches the final byte of a two-character ESC sequence.
// Entries for '[', ']' and 'P' only switch state (their bodies are
// consumed afterward as CSI/OSC/DCS); they're listed here because
// escSequence looks them up the same way as every other final byte.
var escFunc = map[byte]func(*Terminal){
	'7': (*Terminal).saveCursorState,
	'8': (*Terminal).restoreCursorState,
	'D': (*Terminal).newline,
	'E': (*Terminal).crnl,
	'H': (*Terminal).setTabstopHere,
	'M': (*Terminal).reverseNewline,
	'P': (*Terminal).enterDCS,
	'Z': (*Terminal).identify,
	'[': (*Terminal).enterCSI,
	']': (*Terminal).enterOSC,
	'c': (*Terminal).ris,
}
