package scenario

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/hooked/pkg/core"
	"github.com/go-drift/hooked/pkg/hooked"
)

// Printer renders reports. Colors are used only when the writer is a
// terminal.
type Printer struct {
	w      io.Writer
	title  lipgloss.Style
	action lipgloss.Style
	text   lipgloss.Style
	state  lipgloss.Style
	errs   lipgloss.Style
	muted  lipgloss.Style
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w: w,
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		action: r.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		text:   r.NewStyle().Foreground(lipgloss.Color("#98FB98")),
		state:  r.NewStyle().Foreground(lipgloss.Color("#AAAAAA")),
		errs:   r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		muted:  r.NewStyle().Foreground(lipgloss.Color("#666666")),
	}
}

// Print writes one report.
func (p *Printer) Print(report *Report) {
	fmt.Fprintln(p.w, p.title.Render(report.Name))
	fmt.Fprintln(p.w, p.muted.Render(fmt.Sprintf("binding %s (%s setters)", report.Binding, report.Kind)))

	for _, step := range report.Steps {
		label := step.Action
		if step.Detail != "" {
			label += " " + step.Detail
		}
		fmt.Fprintf(p.w, "%3d  %s\n", step.Index, p.action.Render(label))

		if step.Mounted {
			fmt.Fprintf(p.w, "     text   %s\n", p.text.Render(fmt.Sprintf("%q", step.Text)))
		} else {
			fmt.Fprintf(p.w, "     text   %s\n", p.muted.Render("(unmounted)"))
		}
		fmt.Fprintf(p.w, "     state  %s\n", p.state.Render(formatState(step.State)))
		if step.Pending {
			fmt.Fprintf(p.w, "     %s\n", p.muted.Render("pending"))
		}
		if step.Action == "resolve" && step.Err == nil {
			fmt.Fprintf(p.w, "     value  %s\n", p.text.Render(formatValue(step.Value)))
		}
		if step.Err != nil {
			fmt.Fprintf(p.w, "     %s\n", p.errs.Render("error: "+step.Err.Error()))
		}
	}

	summary := fmt.Sprintf("%d steps, %d failed", len(report.Steps)-1, report.Failed())
	if report.Failed() > 0 {
		fmt.Fprintln(p.w, p.errs.Render(summary))
	} else {
		fmt.Fprintln(p.w, p.muted.Render(summary))
	}
}

func formatState(state core.Props) string {
	if len(state) == 0 {
		return "{}"
	}
	return formatValue(state)
}

func formatArgs(args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = formatValue(a)
	}
	return strings.Join(parts, ", ")
}

// formatValue renders a value compactly with sorted keys. Completions
// render as <completion>.
func formatValue(v any) string {
	switch typed := v.(type) {
	case nil:
		return "nil"
	case string:
		return fmt.Sprintf("%q", typed)
	case hooked.Completion:
		return "<completion>"
	case core.Props:
		return formatMap(typed)
	case map[string]any:
		return formatMap(typed)
	case []any:
		return "[" + formatArgs(typed) + "]"
	}
	return fmt.Sprint(v)
}

func formatMap(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + formatValue(m[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
