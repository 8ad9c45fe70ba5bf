package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/darsplan/internal/deck"
)

func writeMarkdown(w io.Writer, d *deck.Deck) error {
	bw := bufio.NewWriter(w)

	title := d.Title
	if title == "" {
		title = d.Request.Topic
	}
	fmt.Fprintf(bw, "# %s\n\n", title)

	var meta []string
	if d.Request.Subject != "" {
		meta = append(meta, "**Subject:** "+d.Request.Subject)
	}
	if d.Request.Grade != "" {
		meta = append(meta, "**Grade:** "+d.Request.Grade)
	}
	meta = append(meta, fmt.Sprintf("**Duration:** %d min", d.TotalMinutes))
	meta = append(meta, fmt.Sprintf("**Slides:** %d", len(d.Slides)))
	fmt.Fprintf(bw, "%s\n\n", strings.Join(meta, " · "))

	bw.WriteString("## Lesson plan\n\n")
	bw.WriteString("| # | Slide | Activity | Minutes | Starts at |\n")
	bw.WriteString("|---|-------|----------|--------:|----------:|\n")
	start := 0
	for i, s := range d.Slides {
		fmt.Fprintf(bw, "| %d | %s | %s | %d | %s |\n",
			i+1, escapeCell(s.Title), escapeCell(s.Activity), s.Duration, clock(start))
		start += s.Duration
	}
	fmt.Fprintf(bw, "| | **Total** | | **%d** | |\n", start)

	for i, s := range d.Slides {
		fmt.Fprintf(bw, "\n## %d. %s (%d min)\n\n", i+1, s.Title, s.Duration)
		if s.Narration != "" {
			fmt.Fprintf(bw, "%s\n", s.Narration)
		}
		if s.VisualDescription != "" {
			fmt.Fprintf(bw, "\n> **Visual:** %s\n", s.VisualDescription)
		}
	}

	return bw.Flush()
}

// clock formats a minute offset as mm:00.
func clock(minutes int) string {
	return fmt.Sprintf("%02d:00", minutes)
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
