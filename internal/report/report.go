// Package report renders frequency and solve output as text.
package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"rotsolve/internal/freq"
	"rotsolve/internal/model"
)

const (
	sparkChars          = " .:-=+*#%@"
	defaultBarWidth     = 40
	minBarWidth         = 10
	barLabelWidth       = 14 // "a  12.34% ref " prefix before the bar
	terminalWidthBackup = 80
)

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
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

// RenderFrequency prints a per-letter bar chart of observed relative
// frequencies next to the English reference values. A width of 0 sizes
// bars to the terminal.
func RenderFrequency(w io.Writer, observed freq.Table, barWidth int) error {
	if barWidth <= 0 {
		barWidth = autoBarWidth()
	}
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}
	observedTotal := 0.0
	maxFreq := 0.0
	for i := range observed {
		observedTotal += observed[i]
		if observed[i] > maxFreq {
			maxFreq = observed[i]
		}
		if freq.English[i] > maxFreq {
			maxFreq = freq.English[i]
		}
	}
	if observedTotal <= 0 {
		_, err := fmt.Fprintln(w, "No letters in input.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Letter  Observed  English"); err != nil {
		return err
	}
	for i := range observed {
		bar := barFor(observed[i], maxFreq, barWidth)
		refMark := barPos(freq.English[i], maxFreq, barWidth)
		line := markBar(bar, refMark)
		if _, err := fmt.Fprintf(w, "%c  %6.2f%%  %6.2f%%  %s\n",
			'a'+i, observed[i]*100, freq.English[i]*100, line); err != nil {
			return err
		}
	}
	return nil
}

func barFor(value, maxVal float64, width int) string {
	n := int(math.Round(value / maxVal * float64(width)))
	if n < 0 {
		n = 0
	}
	if n > width {
		n = width
	}
	return strings.Repeat("#", n) + strings.Repeat(" ", width-n)
}

func barPos(value, maxVal float64, width int) int {
	pos := int(math.Round(value / maxVal * float64(width)))
	if pos < 0 {
		pos = 0
	}
	if pos >= width {
		pos = width - 1
	}
	return pos
}

// markBar overlays the reference position marker on a rendered bar.
func markBar(bar string, pos int) string {
	b := []byte(bar)
	if pos >= 0 && pos < len(b) {
		b[pos] = '|'
	}
	return string(b)
}

// RenderCandidates prints the scored decryption for every shift, best
// first marked with an asterisk. Previews are truncated to previewLen.
func RenderCandidates(w io.Writer, candidates []model.Candidate, best int, previewLen int) error {
	if len(candidates) == 0 {
		_, err := fmt.Fprintln(w, "No candidates.")
		return err
	}
	headers := []string{"", "Shift", "Score", "Preview"}
	rows := make([][]string, 0, len(candidates))
	for _, c := range candidates {
		mark := ""
		if c.Shift == best {
			mark = "*"
		}
		rows = append(rows, []string{
			mark,
			fmt.Sprintf("%d", c.Shift),
			fmt.Sprintf("%.4f", c.Score),
			Preview(c.Plaintext, previewLen),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderHistory prints stored solve runs with a sparkline of their
// scores. total is the full number of recorded solves, which may
// exceed len(recs) when the listing is limited.
func RenderHistory(w io.Writer, recs []model.SolveRecord, total int) error {
	if len(recs) == 0 {
		_, err := fmt.Fprintln(w, "No solves recorded.")
		return err
	}
	if total > len(recs) {
		if _, err := fmt.Fprintf(w, "Showing last %d of %d solves.\n\n", len(recs), total); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "%d solves recorded.\n\n", total); err != nil {
			return err
		}
	}
	headers := []string{"When", "Shift", "Score", "Letters", "Preview"}
	rows := make([][]string, 0, len(recs))
	scores := make([]float64, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, []string{
			rec.SolvedAt.Local().Format(time.DateTime),
			fmt.Sprintf("%d", rec.Shift),
			fmt.Sprintf("%.4f", rec.Score),
			fmt.Sprintf("%d", rec.Letters),
			rec.Preview,
		})
		scores = append(scores, rec.Score)
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "\nScores: %s\n", Sparkline(scores)); err != nil {
		return err
	}
	return nil
}

// Preview flattens text to one line and truncates it to max runes.
func Preview(text string, max int) string {
	flat := strings.Join(strings.Fields(text), " ")
	if max <= 0 {
		return flat
	}
	runes := []rune(flat)
	if len(runes) <= max {
		return flat
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

func autoBarWidth() int {
	width := terminalWidth() - barLabelWidth - 10
	if width < minBarWidth {
		return minBarWidth
	}
	if width > defaultBarWidth {
		return defaultBarWidth
	}
	return width
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
