// Package output provides the terminal render sink.
package output

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/duyki2208/todo-list/internal/view"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	dateStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	doneStyle   = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	idStyle     = lipgloss.NewStyle().Faint(true)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Titles maps view names to their on-screen headers.
var Titles = map[view.Name]string{
	view.MyDay:     "My Day",
	view.ThisWeek:  "This Week",
	view.ThisMonth: "This Month",
	view.All:       "All Tasks",
}

// Terminal implements controller.Renderer on a pair of writers. Each
// Render fully replaces the previous output; nothing is patched in place.
type Terminal struct {
	out    io.Writer
	errOut io.Writer

	// Quiet suppresses success notices. Failures always show.
	Quiet bool
}

// NewTerminal creates a terminal sink writing models to out and error
// signals to errOut.
func NewTerminal(out, errOut io.Writer) *Terminal {
	return &Terminal{out: out, errOut: errOut}
}

// Render writes the full model: view title, one header per date group,
// one line per task.
func (t *Terminal) Render(current view.Name, m view.Model, now time.Time) {
	if title, ok := Titles[current]; ok {
		fmt.Fprintln(t.out, titleStyle.Render(title))
	}

	if m.Empty() {
		fmt.Fprintln(t.out, "No tasks found")
		return
	}

	for _, g := range m.Groups {
		fmt.Fprintln(t.out, dateStyle.Render(view.Label(g.Date, now)))
		for _, tk := range g.Tasks {
			marker := "[ ]"
			text := tk.Text
			if tk.Completed {
				marker = "[x]"
				text = doneStyle.Render(text)
			}
			fmt.Fprintf(t.out, "  %s %s %s\n", marker, text, idStyle.Render("("+tk.ID+")"))
		}
	}
}

// Notify surfaces timed mutation feedback.
func (t *Terminal) Notify(text string, failure bool) {
	if failure {
		fmt.Fprintln(t.errOut, errStyle.Render("✗ "+text))
		return
	}
	if t.Quiet {
		return
	}
	fmt.Fprintln(t.out, noticeStyle.Render("✓ "+text))
}

// Fail fills the persistent error region after a failed refresh.
func (t *Terminal) Fail(err error) {
	fmt.Fprintln(t.errOut, errStyle.Render("error: "+err.Error()))
}
