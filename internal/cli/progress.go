package cli

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

const progressWidth = 30

// progressLine redraws a single status line in place on a terminal. On other
// writers it only prints the final line.
type progressLine struct {
	mu    sync.Mutex
	w     io.Writer
	tty   bool
	title string
	last  string
}

func newProgressLine(w io.Writer, title string) *progressLine {
	tty := false
	if f, ok := w.(*os.File); ok {
		tty = term.IsTerminal(int(f.Fd()))
	}
	return &progressLine{w: w, tty: tty, title: title}
}

func renderProgress(title string, current, duration float64) string {
	return fmt.Sprintf("%s %s %s / %s",
		TruncateString(title, 32),
		FormatProgress(current, duration, progressWidth),
		FormatSeconds(current),
		FormatSeconds(duration),
	)
}

// Update redraws the line.
func (p *progressLine) Update(current, duration float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = renderProgress(p.title, current, duration)
	if p.tty {
		fmt.Fprintf(p.w, "\r\033[K%s", p.last)
	}
}

// Finish ends the line.
func (p *progressLine) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last == "" {
		return
	}
	if p.tty {
		fmt.Fprintln(p.w)
		return
	}
	fmt.Fprintln(p.w, p.last)
}
