package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type chipState int

const (
	chipPending chipState = iota
	chipActive
	chipAnswered
	chipCorrect
	chipIncorrect
)

// chip is one rendered element of the chord chart.
type chip struct {
	s       string
	width   int
	isSpace bool
}

func chipStyle(state chipState) lipgloss.Style {
	switch state {
	case chipActive:
		return activeStyle
	case chipAnswered:
		return answeredStyle
	case chipCorrect:
		return correctStyle
	case chipIncorrect:
		return incorrectStyle
	default:
		return pendingStyle
	}
}

// buildChips renders chord symbols separated by spaces. States beyond the
// end of states render as pending.
func buildChips(labels []string, states []chipState) []chip {
	out := make([]chip, 0, len(labels)*2)
	for i, label := range labels {
		if i > 0 {
			out = append(out, chip{s: " ", width: 1, isSpace: true})
		}
		state := chipPending
		if i < len(states) {
			state = states[i]
		}
		out = append(out, chip{
			s:     chipStyle(state).Render(label),
			width: runewidth.StringWidth(label),
		})
	}
	return out
}

func renderChips(chips []chip) string {
	var b strings.Builder
	for _, item := range chips {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapChips breaks the chart at spaces so no line exceeds width. A chip
// wider than width gets a line of its own.
func wrapChips(chips []chip, width int) string {
	if width <= 0 {
		return renderChips(chips)
	}
	var out strings.Builder
	line := make([]chip, 0, len(chips))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(chips); {
		item := chips[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderChips(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]chip{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderChips(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		if item.isSpace && len(line) == 0 {
			i++
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderChips(line))
	return out.String()
}

func lineWidthOf(line []chip) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []chip) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
