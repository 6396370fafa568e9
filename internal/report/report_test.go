package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"rotsolve/internal/freq"
	"rotsolve/internal/model"
)

func TestSparkline(t *testing.T) {
	out := Sparkline([]float64{0, 5, 10})
	if len(out) != 3 {
		t.Fatalf("expected 3 chars, got %q", out)
	}
	if out[0] != ' ' || out[2] != '@' {
		t.Fatalf("expected full range, got %q", out)
	}
}

func TestSparklineFlatSeries(t *testing.T) {
	out := Sparkline([]float64{2, 2, 2, 2})
	if len(out) != 4 {
		t.Fatalf("expected 4 chars, got %q", out)
	}
	if strings.Trim(out, string(out[0])) != "" {
		t.Fatalf("expected a uniform line, got %q", out)
	}
}

func TestSparklineEmpty(t *testing.T) {
	if out := Sparkline(nil); out != "" {
		t.Fatalf("expected empty sparkline, got %q", out)
	}
}

func TestRenderFrequency(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderFrequency(&buf, freq.Distribution("aaab"), 20); err != nil {
		t.Fatalf("render frequency: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "a   75.00%") {
		t.Fatalf("missing observed percentage:\n%s", out)
	}
	if !strings.Contains(out, "#") || !strings.Contains(out, "|") {
		t.Fatalf("expected bars and reference markers:\n%s", out)
	}
	if len(strings.Split(strings.TrimRight(out, "\n"), "\n")) != 27 {
		t.Fatalf("expected header plus 26 letter rows:\n%s", out)
	}
}

func TestRenderFrequencyNoLetters(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderFrequency(&buf, freq.Distribution("123"), 20); err != nil {
		t.Fatalf("render frequency: %v", err)
	}
	if !strings.Contains(buf.String(), "No letters") {
		t.Fatalf("expected no-letters notice, got %q", buf.String())
	}
}

func TestRenderCandidates(t *testing.T) {
	candidates := []model.Candidate{
		{Shift: 0, Plaintext: "khoor", Score: 4.2},
		{Shift: 3, Plaintext: "hello", Score: 0.9},
	}
	var buf bytes.Buffer
	if err := RenderCandidates(&buf, candidates, 3, 10); err != nil {
		t.Fatalf("render candidates: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "hello") || !strings.Contains(out, "khoor") {
		t.Fatalf("missing previews:\n%s", out)
	}
	bestLine := ""
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "*") {
			bestLine = line
		}
	}
	if !strings.Contains(bestLine, "3") || !strings.Contains(bestLine, "hello") {
		t.Fatalf("best marker on wrong row:\n%s", out)
	}
}

func TestRenderHistory(t *testing.T) {
	recs := []model.SolveRecord{
		{SolvedAt: time.Unix(0, 0), Preview: "khoor zruog", Letters: 10, Shift: 3, Score: 0.91},
		{SolvedAt: time.Unix(60, 0), Preview: "lipps asvph", Letters: 10, Shift: 4, Score: 1.20},
	}
	var buf bytes.Buffer
	if err := RenderHistory(&buf, recs, 2); err != nil {
		t.Fatalf("render history: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "2 solves recorded.") {
		t.Fatalf("missing count header:\n%s", out)
	}
	if !strings.Contains(out, "khoor zruog") || !strings.Contains(out, "Scores:") {
		t.Fatalf("unexpected history output:\n%s", out)
	}
}

func TestRenderHistoryLimitedListing(t *testing.T) {
	recs := []model.SolveRecord{
		{SolvedAt: time.Unix(0, 0), Preview: "khoor", Letters: 5, Shift: 3, Score: 0.91},
	}
	var buf bytes.Buffer
	if err := RenderHistory(&buf, recs, 7); err != nil {
		t.Fatalf("render history: %v", err)
	}
	if !strings.Contains(buf.String(), "Showing last 1 of 7 solves.") {
		t.Fatalf("missing limited header:\n%s", buf.String())
	}
}

func TestRenderHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHistory(&buf, nil, 0); err != nil {
		t.Fatalf("render history: %v", err)
	}
	if !strings.Contains(buf.String(), "No solves recorded.") {
		t.Fatalf("expected empty notice, got %q", buf.String())
	}
}

func TestPreviewTruncates(t *testing.T) {
	if got := Preview("hello   world\nagain", 0); got != "hello world again" {
		t.Fatalf("expected flattened text, got %q", got)
	}
	if got := Preview("abcdefghij", 8); got != "abcde..." {
		t.Fatalf("expected truncation with ellipsis, got %q", got)
	}
	if got := Preview("abc", 8); got != "abc" {
		t.Fatalf("short text should pass through, got %q", got)
	}
}
