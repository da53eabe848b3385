package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"quiz-manager/internal/config"
)

const textColumnLimit = 60

// isTerminal reports whether a writer is a TTY.
var isTerminal = defaultIsTerminal

// resolveColor decides whether output gets ANSI styling.
func resolveColor(mode string, out io.Writer) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", config.ColorAuto:
		return isTerminal(out), nil
	case config.ColorAlways:
		return true, nil
	case config.ColorNever:
		return false, nil
	default:
		return false, fmt.Errorf("invalid color mode %q (expected auto|always|never)", mode)
	}
}

// defaultIsTerminal inspects the writer for TTY support.
func defaultIsTerminal(out io.Writer) bool {
	if out == nil {
		return false
	}
	if file, ok := out.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := out.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}

type renderer struct {
	color bool
}

func (r renderer) stylize(text string, color lipgloss.Color) string {
	if !r.color {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

func (r renderer) heading(text string) string {
	if !r.color {
		return text
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")).Render(text)
}

func (r renderer) kindTag(kind string) string {
	return r.stylize("["+kind+"]", lipgloss.Color("246"))
}

func (r renderer) score(score, total int) string {
	line := fmt.Sprintf("Your score: %d/%d", score, total)
	switch {
	case total > 0 && score == total:
		return r.stylize(line, lipgloss.Color("42"))
	case score == 0:
		return r.stylize(line, lipgloss.Color("196"))
	default:
		return r.stylize(line, lipgloss.Color("220"))
	}
}

func (r renderer) notice(text string) string {
	return r.stylize(text, lipgloss.Color("244"))
}

// table renders rows as a bubbles table when color is on and as tab separated
// plain lines otherwise.
func (r renderer) table(headers []string, rows [][]string) string {
	if !r.color {
		var b strings.Builder
		b.WriteString(strings.Join(headers, "\t"))
		b.WriteString("\n")
		for _, row := range rows {
			b.WriteString(strings.Join(row, "\t"))
			b.WriteString("\n")
		}
		return b.String()
	}

	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = lipgloss.Width(header)
	}
	tableRows := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		cells := make(table.Row, len(row))
		for i, cell := range row {
			cell = truncateText(cell, textColumnLimit)
			cells[i] = cell
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
		tableRows = append(tableRows, cells)
	}
	columns := make([]table.Column, len(headers))
	for i, header := range headers {
		columns[i] = table.Column{Title: header, Width: widths[i]}
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	styles.Selected = styles.Cell

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithFocused(false),
		table.WithStyles(styles),
		table.WithHeight(len(tableRows)+2),
	)
	return t.View() + "\n"
}

// truncateText collapses whitespace and cuts long text for table cells. limit
// is a display width, and the cut always lands on a rune boundary.
func truncateText(text string, limit int) string {
	normalized := strings.Join(strings.Fields(text), " ")
	if lipgloss.Width(normalized) <= limit {
		return normalized
	}

	var b strings.Builder
	width := 0
	for _, r := range normalized {
		w := lipgloss.Width(string(r))
		if width+w > limit-3 {
			break
		}
		b.WriteRune(r)
		width += w
	}
	return b.String() + "..."
}

// formatElapsed renders a duration as "M minute S seconds" with whole minutes.
func formatElapsed(elapsed time.Duration) string {
	if elapsed < 0 {
		elapsed = 0
	}
	minutes := int(elapsed / time.Minute)
	seconds := int((elapsed % time.Minute) / time.Second)
	return strconv.Itoa(minutes) + " minute " + strconv.Itoa(seconds) + " seconds"
}
