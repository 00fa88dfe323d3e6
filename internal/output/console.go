// Package output renders service views for terminals and spreadsheets.
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/adapters/audit"
	service "github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/app"
)

// Console writes styled text reports.
type Console struct {
	w        io.Writer
	colorize bool

	header lipgloss.Style
	muted  lipgloss.Style
	good   lipgloss.Style
	bad    lipgloss.Style
	warn   lipgloss.Style
}

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// WithColor turns styling on or off.
func WithColor(on bool) ConsoleOption {
	return func(c *Console) { c.colorize = on }
}

// NewConsole creates a Console writing to w.
func NewConsole(w io.Writer, opts ...ConsoleOption) *Console {
	c := &Console{w: w, colorize: true}
	for _, opt := range opts {
		opt(c)
	}
	if c.colorize {
		c.header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
		c.muted = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		c.good = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
		c.bad = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		c.warn = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	} else {
		plain := lipgloss.NewStyle()
		c.header, c.muted, c.good, c.bad, c.warn = plain, plain, plain, plain, plain
	}
	return c
}

func (c *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.w, format, args...)
}

// Leaderboard prints one line per user. top limits the rows; zero prints
// all.
func (c *Console) Leaderboard(view service.BoardView, top int) {
	users := view.Users
	if top > 0 && len(users) > top {
		users = users[:top]
	}

	c.printf("%s\n", c.header.Render(fmt.Sprintf("%5s  %-24s %10s  %s", "#", "User", "Points", "V/C/P/Packs")))
	for _, u := range users {
		counts := fmt.Sprintf("%d/%d/%d/%d", len(u.Verified), len(u.Completed), len(u.Progressed), len(u.Packs))
		c.printf("%5d  %-24s %10s  %s\n", u.Position, u.User, formatPoints(u.Total), c.muted.Render(counts))
	}
	if len(users) < len(view.Users) {
		c.printf("%s\n", c.muted.Render(fmt.Sprintf("... %d more", len(view.Users)-len(users))))
	}
	c.footer(view.Errors, view.PacksAvailable)
}

// List prints the ranked list, marking failed slots.
func (c *Console) List(view service.ListView) {
	c.printf("%s\n", c.header.Render(fmt.Sprintf("%5s  %-32s %-20s %10s", "#", "Level", "Verifier", "Points")))
	for _, e := range view.Levels {
		if e.Level == nil {
			c.printf("%5d  %s\n", e.Rank, c.bad.Render("failed to load "+e.Path))
			continue
		}
		c.printf("%5d  %-32s %-20s %10s\n", e.Rank, e.Level.Name, e.Level.Verifier, formatPoints(e.Points))
	}
	c.footer(view.Errors, view.PacksAvailable)
}

// Packs prints each pack with its members in rank order.
func (c *Console) Packs(view service.PacksView) {
	if !view.Available {
		c.printf("%s\n", c.warn.Render("packs are unavailable"))
		return
	}
	for _, p := range view.Packs {
		title := p.Name
		if p.Points > 0 {
			title += " (" + formatPoints(p.Points) + " pts)"
		}
		c.printf("%s\n", c.header.Render(title))
		if p.Description != "" {
			c.printf("  %s\n", c.muted.Render(p.Description))
		}
		for _, l := range p.Levels {
			rank := "  -"
			if l.Rank > 0 {
				rank = fmt.Sprintf("#%d", l.Rank)
			}
			c.printf("  %5s  %s\n", rank, l.Name)
		}
	}
}

// Audit prints a data directory report and returns report.OK().
func (c *Console) Audit(r audit.Report) bool {
	c.printf("%d levels on the list\n", r.Levels)
	for _, issue := range r.Invalid {
		c.printf("%s %s (%s): %s\n", c.bad.Render("✘"), issue.Document, issue.Kind, issue.Problem)
	}
	for _, m := range r.Missing {
		c.printf("%s %s: referenced by the list but missing\n", c.bad.Render("✘"), m)
	}
	for _, d := range r.Duplicates {
		c.printf("%s %s: listed more than once\n", c.bad.Render("✘"), d)
	}
	for _, o := range r.Orphans {
		c.printf("%s %s: not referenced by the list\n", c.warn.Render("⚠"), o)
	}
	if r.OK() {
		c.printf("%s\n", c.good.Render("✓ data directory is valid"))
		return true
	}
	c.printf("%s\n", c.bad.Render("✗ data directory has problems"))
	return false
}

func (c *Console) footer(errs []string, packsAvailable bool) {
	if len(errs) > 0 {
		c.printf("%s\n", c.warn.Render("failed to load: "+strings.Join(errs, ", ")))
	}
	if !packsAvailable {
		c.printf("%s\n", c.muted.Render("packs unavailable"))
	}
}

func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
