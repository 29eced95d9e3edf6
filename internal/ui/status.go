// Package ui formats the status lines printed by diagnostic commands. Tags
// are colored only when the destination is a terminal and NO_COLOR is unset.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Status classifies one check result.
type Status int

const (
	OK Status = iota
	Info
	Warn
	Miss
	Fail
)

var tags = map[Status]string{
	OK:   "[ OK ]",
	Info: "[INFO]",
	Warn: "[WARN]",
	Miss: "[MISS]",
	Fail: "[FAIL]",
}

var styles = map[Status]lipgloss.Style{
	OK:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
	Info: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	Warn: lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
	Miss: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	Fail: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
}

var sectionStyle = lipgloss.NewStyle().Bold(true)

// Tag returns the bracketed label for s.
func (s Status) Tag() string {
	return tags[s]
}

// Printer writes sections and status lines.
type Printer struct {
	w     io.Writer
	color bool

	counts map[Status]int
}

// NewPrinter returns a Printer for w, enabling color for terminals.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, color: useColor(w), counts: map[Status]int{}}
}

// Section prints a heading such as "Templates check:".
func (p *Printer) Section(title string) {
	if p.color {
		title = sectionStyle.Render(title)
	}
	fmt.Fprintln(p.w, title)
}

// Line prints one indented status line.
func (p *Printer) Line(s Status, format string, args ...any) {
	p.counts[s]++
	tag := s.Tag()
	if p.color {
		tag = styles[s].Render(tag)
	}
	fmt.Fprintf(p.w, "  %s %s\n", tag, fmt.Sprintf(format, args...))
}

// Detail prints a continuation line under the previous status line.
func (p *Printer) Detail(format string, args ...any) {
	fmt.Fprintf(p.w, "         %s\n", fmt.Sprintf(format, args...))
}

// Count returns how many lines with status s were printed.
func (p *Printer) Count(s Status) int {
	return p.counts[s]
}

func useColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
