package components

import (
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/darsplan/internal/deck"
	"github.com/abhisek/darsplan/internal/ui/theme"
)

// TimingTable renders slide titles with their minutes and start offsets.
func TimingTable(slides []deck.Slide) string {
	rows := make([][]string, 0, len(slides)+1)
	start, total := 0, 0
	for i, s := range slides {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			s.Title,
			strconv.Itoa(s.Duration),
			Clock(start * 60),
		})
		start += s.Duration
		total += s.Duration
	}
	rows = append(rows, []string{"", "Total", strconv.Itoa(total), ""})

	last := len(rows) - 1
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(theme.TableBorder).
		Headers("#", "Slide", "Min", "Start").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return theme.TableHeader
			case row == last:
				return theme.TableCell.Bold(true)
			case col == 0 || col == 2:
				return theme.TableNumber
			default:
				return theme.TableCell
			}
		}).
		Render()
}
