package app

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/justyntemme/roulette/internal/session"
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// printer writes status lines styled by level.
type printer struct {
	out io.Writer
}

func (p printer) level(level session.Level, msg string) {
	style := infoStyle
	switch level {
	case session.LevelSuccess:
		style = successStyle
	case session.LevelError:
		style = errorStyle
	}
	fmt.Fprintln(p.out, style.Render(msg))
}

func (p printer) info(msg string)    { p.level(session.LevelInfo, msg) }
func (p printer) success(msg string) { p.level(session.LevelSuccess, msg) }
func (p printer) err(err error)      { p.level(session.LevelError, err.Error()) }

func (p printer) outcome(o session.Outcome) {
	p.level(o.Level, o.Message)
}

func (p printer) scan(r session.ScanResult) {
	if r.Status == session.ScanNotFound {
		p.level(session.LevelError, r.Message)
	} else {
		p.info(r.Message)
	}
	if r.SaveErr != nil {
		p.err(r.SaveErr)
	}
}

func (p printer) path(path string) {
	fmt.Fprintln(p.out, pathStyle.Render(path))
}

func (p printer) status(s *session.Session) {
	cfg := s.Config()
	fmt.Fprintf(p.out, "%s %s\n", dimStyle.Render("directory: "), cfg.Directory)
	fmt.Fprintf(p.out, "%s %s\n", dimStyle.Render("extensions:"), session.FormatExtensions(cfg.Extensions))
	fmt.Fprintf(p.out, "%s %v\n", dimStyle.Render("recursive: "), cfg.Recursive)
	fmt.Fprintf(p.out, "%s %s\n", dimStyle.Render("scope:     "), s.Scope())
	fmt.Fprintf(p.out, "%s %d\n", dimStyle.Render("files:     "), len(s.Files()))
	if active, ok := s.Active(); ok {
		fmt.Fprintf(p.out, "%s %s\n", dimStyle.Render("selected:  "), active)
	}
}
