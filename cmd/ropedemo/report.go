package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/npillmayer/spanrope"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/term"
)

// labelWidth is the minimum width of the label column, in ‘en’s.
const labelWidth = 16

// report prints labeled values to a console or a plain writer.
type report struct {
	mu      sync.Mutex // split events arrive from a separate goroutine
	out     io.Writer
	width   int // line width in ‘en’s
	label   *color.Color
	value   *color.Color
	notice  *color.Color
	context *uax11.Context
}

var setupGraphemes sync.Once

func newReport(out io.Writer) *report {
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	r := &report{
		out:     out,
		width:   65,
		label:   color.New(color.FgBlue),
		value:   color.New(color.FgRed, color.Bold),
		notice:  color.New(color.FgGreen),
		context: uax11.LatinContext,
	}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > labelWidth {
			r.width = w
		}
		return r
	}
	r.label.DisableColor()
	r.value.DisableColor()
	r.notice.DisableColor()
	return r
}

// displayWidth returns the display width of s, respecting wide characters.
func (r *report) displayWidth(s string) int {
	return uax11.StringWidth(grapheme.StringFromString(s), r.context)
}

func (r *report) row(label string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.printRow(label, value)
}

func (r *report) printRow(label string, value any) {
	w := r.displayWidth(label)
	if w > r.width-labelWidth { // truncate over-long labels, e.g. huge keys
		runes := []rune(label)
		label = string(runes[:min(len(runes), max(0, r.width-2*labelWidth))]) + "…"
		w = r.displayWidth(label)
	}
	r.label.Fprint(r.out, label)
	fmt.Fprint(r.out, strings.Repeat(" ", max(1, labelWidth-w)))
	r.value.Fprintln(r.out, value)
}

func (r *report) event(e spanrope.SplitEvent[uint32]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notice.Fprintf(r.out, "split %s at %d: %d entries → %s | %s\n",
		short(e.Node.String()), e.Key, e.Entries, short(e.Left.String()), short(e.Right.String()))
}

func (r *report) summary(rope *spanrope.Node[uint32, uint32]) {
	st := rope.Stats()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notice.Fprintln(r.out, strings.Repeat("─", min(r.width, 40)))
	r.printRow("keys", st.Keys)
	r.printRow("segments", rope.InternalSegmentCount())
	r.printRow("leaves", st.Leaves)
	r.printRow("splits", st.Inner)
	r.printRow("depth", st.Depth)
	r.printRow("largest leaf", st.MaxLeaf)
}

// leaves lists all leaf segments in key order with their ranges.
func (r *report) leaves(rope *spanrope.Node[uint32, uint32]) {
	var walk func(n *spanrope.Node[uint32, uint32])
	walk = func(n *spanrope.Node[uint32, uint32]) {
		if n.IsLeaf() {
			r.row(n.Range().String(), fmt.Sprintf("%d keys", n.KeyCount()))
			return
		}
		for _, child := range n.Segments() {
			walk(child)
		}
	}
	walk(rope)
}

func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
