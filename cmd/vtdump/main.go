// Command vtdump drives a vtcore.Terminal against a real child shell and
// prints the resulting grid as plain text. It exists to exercise the
// engine end-to-end - it is not a terminal emulator UI, and makes no
// attempt to render color, attributes, or partial repaints.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/creack/pty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	vtcore "github.com/nilsmagnus/vt102"
)

func main() {
	var cols, rows int
	var shell string

	cmd := &cobra.Command{
		Use:   "vtdump",
		Short: "Run a shell through the vt102 engine and dump the resulting grid",
		RunE: func(_ *cobra.Command, args []string) error {
			return run(cols, rows, shell, args)
		},
	}
	cmd.Flags().IntVar(&cols, "cols", 80, "grid width")
	cmd.Flags().IntVar(&rows, "rows", 24, "grid height")
	cmd.Flags().StringVar(&shell, "shell", defaultShell(), "shell to launch")

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func defaultShell() string {
	if s := os.Getenv("SHELL"); s != "" {
		return s
	}
	return "/bin/sh"
}

func run(cols, rows int, shell string, shellArgs []string) error {
	vt, err := vtcore.New(cols, rows, vtcore.DefaultGlyphTable{}, nil)
	if err != nil {
		return fmt.Errorf("vtdump: %w", err)
	}

	c := exec.Command(shell, shellArgs...)
	ptmx, err := pty.StartWithSize(c, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)})
	if err != nil {
		return fmt.Errorf("vtdump: start pty: %w", err)
	}
	defer ptmx.Close()
	vt.AttachPTY(ptmx)

	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	go func() {
		for range winch {
			// vtdump's own terminal was resized; neither the child's PTY
			// size nor the grid (fixed at the dimensions New was called
			// with) is changed.
			vt.Redraw()
		}
	}()
	defer signal.Stop(winch)

	if oldState, err := term0MakeRaw(); err == nil {
		defer term0Restore(oldState)
	}

	go io.Copy(ptmx, os.Stdin)

	buf := make([]byte, 4096)
	for {
		n, err := ptmx.Read(buf)
		if n > 0 {
			vt.Parse(buf[:n])
		}
		if err != nil {
			break
		}
	}

	dumpGrid(vt)
	return nil
}

// term0MakeRaw/term0Restore are a thin indirection over golang.org/x/term
// so the raw-mode dance only happens when stdin is actually a terminal -
// running under a test harness or CI with redirected stdin is a no-op.
func term0MakeRaw() (*term.State, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("stdin is not a terminal")
	}
	return term.MakeRaw(fd)
}

func term0Restore(state *term.State) {
	_ = term.Restore(int(os.Stdin.Fd()), state)
}

func dumpGrid(t *vtcore.Terminal) {
	var b strings.Builder
	for y := 0; y < t.Lines(); y++ {
		for x := 0; x < t.Cols(); x++ {
			cell := t.Cell(y, x)
			if cell.Width == vtcore.WidthNextToWide {
				continue
			}
			b.WriteRune(cell.Code)
		}
		b.WriteByte('\n')
	}
	fmt.Print(b.String())
}
