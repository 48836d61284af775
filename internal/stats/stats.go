// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"golang.org/x/term"
	"gonum.org/v1/gonum/stat"

	"github.com/verte-zerg/jazzquiz/internal/model"
)

const (
	sparkChars          = " .:-=+*#%@"
	curveLabelWidth     = 10
	terminalWidthBackup = 80
)

// SessionMetrics computes accuracy and questions per minute for a session.
func SessionMetrics(correct, incorrect int, durationMs int64) (accuracy, perMinute float64) {
	total := correct + incorrect
	if total > 0 {
		accuracy = float64(correct) / float64(total)
	}
	if durationMs > 0 {
		perMinute = float64(total) / (float64(durationMs) / 60000.0)
	}
	return accuracy, perMinute
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// TerminalWidth returns the width of stdout, or a fallback when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// RenderSummary prints a summary of sessions. Average accuracy is weighted
// by the number of questions in each session.
func RenderSummary(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	accs := make([]float64, len(sessions))
	weights := make([]float64, len(sessions))
	totalXP, totalQuestions := 0, 0
	bestAcc := 0.0
	var totalDuration int64
	for i, s := range sessions {
		acc, _ := SessionMetrics(s.Correct, s.Incorrect, s.DurationMs)
		accs[i] = acc
		weights[i] = float64(s.Correct + s.Incorrect)
		totalXP += s.XPEarned
		totalQuestions += s.Correct + s.Incorrect
		totalDuration += s.DurationMs
		bestAcc = math.Max(bestAcc, acc)
	}
	avgAcc := 0.0
	if totalQuestions > 0 {
		avgAcc = stat.Mean(accs, weights)
	}
	spread := 0.0
	if len(accs) > 1 {
		spread = stat.StdDev(accs, nil)
	}
	_, perMinute := SessionMetrics(totalQuestions, 0, totalDuration)

	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", len(sessions)),
		fmt.Sprintf("Questions: %d", totalQuestions),
		fmt.Sprintf("Avg Accuracy: %.2f%% (sd %.2f)", avgAcc*100, spread*100),
		fmt.Sprintf("Best Accuracy: %.2f%%", bestAcc*100),
		fmt.Sprintf("Questions/min: %.2f", perMinute),
		fmt.Sprintf("XP Earned: %d", totalXP),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCurves prints accuracy and XP learning curves as sparklines no
// wider than totalWidth.
func RenderCurves(w io.Writer, sessions []model.SessionAggregate, window, totalWidth int) error {
	if len(sessions) == 0 {
		return nil
	}
	accs := make([]float64, len(sessions))
	xps := make([]float64, len(sessions))
	for i, s := range sessions {
		acc, _ := SessionMetrics(s.Correct, s.Incorrect, s.DurationMs)
		accs[i] = acc * 100
		xps[i] = float64(s.XPEarned)
	}
	if _, err := fmt.Fprintln(w, "Learning Curves"); err != nil {
		return err
	}
	if err := renderCurve(w, "Accuracy", MovingAverage(accs, window), totalWidth); err != nil {
		return err
	}
	if err := renderCurve(w, "XP", MovingAverage(xps, window), totalWidth); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderKeyCurves prints per-key accuracy curves across sessions.
func RenderKeyCurves(w io.Writer, sessions []model.SessionAggregate, perSession map[int64]map[string]model.KeyAggregate, keys []string, window, totalWidth int) error {
	if len(keys) == 0 || len(sessions) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Per-Key Curves"); err != nil {
		return err
	}
	for _, key := range keys {
		series := make([]float64, 0, len(sessions))
		for _, s := range sessions {
			agg, ok := perSession[s.SessionID][key]
			if !ok {
				continue
			}
			series = append(series, accuracy(agg)*100)
		}
		if err := renderCurve(w, key, MovingAverage(series, window), totalWidth); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func renderCurve(w io.Writer, label string, values []float64, totalWidth int) error {
	if len(values) == 0 {
		return nil
	}
	width := curveWidthFor(totalWidth)
	if len(values) > width {
		values = values[len(values)-width:]
	}
	last := values[len(values)-1]
	_, err := fmt.Fprintf(w, "%-*s %s %.1f\n", curveLabelWidth, label, Sparkline(values), last)
	return err
}

func curveWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		totalWidth = terminalWidthBackup
	}
	// Label, two separators and room for the trailing value.
	width := totalWidth - curveLabelWidth - 2 - 6
	if width < 10 {
		width = 10
	}
	return width
}

// RenderKeyTable prints per-key aggregates, weakest first.
func RenderKeyTable(w io.Writer, aggs []model.KeyAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No key stats found.")
		return err
	}
	rows := make([]model.KeyAggregate, len(aggs))
	copy(rows, aggs)
	sort.Slice(rows, func(i, j int) bool {
		ai, aj := accuracy(rows[i]), accuracy(rows[j])
		if ai == aj {
			return rows[i].Key < rows[j].Key
		}
		return ai < aj
	})

	if _, err := fmt.Fprintln(w, "Per-Key (Windowed)"); err != nil {
		return err
	}
	headers := []string{"Key", "Accuracy", "Correct", "Incorrect"}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, []string{
			r.Key,
			fmt.Sprintf("%.2f%%", accuracy(r)*100),
			fmt.Sprintf("%d", r.Correct),
			fmt.Sprintf("%d", r.Incorrect),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	for _, line := range formatTable(headers, tableRows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
