// package formatter renders run summaries for both pipelines
package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/finallyfriday/encore/internal/tasks"
)

var styles = newPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500")

// palette is a simple stylesheet built with named [lipgloss.Style] fields
type palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
}

func newPalette(t, s, e, w string) *palette {
	return &palette{
		title: newBold(t),
		ok:    newBold(s),
		err:   newBold(e),
		warn:  newStyle(w),
	}
}

func newStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func newBold(fg string) lipgloss.Style {
	return newStyle(fg).Bold(true)
}

// FetchSummary renders the outcome of a download run.
func FetchSummary(result *tasks.FetchResult) string {
	var sb strings.Builder

	sb.WriteString(styles.title.Render("Setlist download summary"))
	sb.WriteString("\n\n")

	for _, outcome := range result.Outcomes {
		date := outcome.Concert.Date.Format("2006-01-02")
		if outcome.Err != nil {
			sb.WriteString(styles.err.Render("✗"))
			sb.WriteString(fmt.Sprintf(" %s (%s): %v\n", outcome.Concert.Group, date, outcome.Err))
			continue
		}
		sb.WriteString(styles.ok.Render("✓"))
		sb.WriteString(fmt.Sprintf(" %s (%s): %d songs → %s\n", outcome.Concert.Group, date, outcome.Songs, outcome.File))
	}

	sb.WriteString(fmt.Sprintf("\n%d written, %d skipped (output: %s)\n", result.Written, result.Skipped, result.OutputDir))
	return sb.String()
}

// BuildSummary renders the outcome of a playlist-building run.
func BuildSummary(result *tasks.BuildResult) string {
	var sb strings.Builder

	sb.WriteString(styles.title.Render("Playlist build summary"))
	sb.WriteString("\n\n")

	if result.Playlist != nil {
		action := "reused"
		if result.Created {
			action = "created"
		}
		sb.WriteString(fmt.Sprintf("Playlist %q (%s)\n\n", result.Playlist.Name, action))
	}

	for _, concert := range result.Concerts {
		if concert.Err != nil {
			sb.WriteString(styles.err.Render("✗"))
			sb.WriteString(fmt.Sprintf(" %s: %v\n", concert.Name, concert.Err))
			continue
		}

		sb.WriteString(styles.ok.Render("✓"))
		sb.WriteString(fmt.Sprintf(" %s: %d/%d tracks added", concert.Name, concert.Added, len(concert.Matches)))
		if warned := warnedCount(concert); warned > 0 {
			sb.WriteString(styles.warn.Render(fmt.Sprintf(" (%d inexact)", warned)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("\n%d tracks added, %d songs unmatched\n", result.TotalAdded, result.TotalMissed))
	return sb.String()
}

func warnedCount(concert tasks.ConcertBuild) int {
	warned := 0
	for _, match := range concert.Matches {
		if match.Warned {
			warned++
		}
	}
	return warned
}
