// Package model defines shared data structures.
package model

import "time"

// Candidate pairs a shift with its decryption and its distance from
// the English reference distribution. Lower scores are more
// English-like.
type Candidate struct {
	Shift     int
	Plaintext string
	Score     float64
}

// Settings holds merged CLI/file settings for solve and report
// commands.
type Settings struct {
	PreviewLen int
	NoHistory  bool
}

// SolveRecord captures one stored solve run.
type SolveRecord struct {
	ID       int64
	SolvedAt time.Time
	Preview  string
	Letters  int
	Shift    int
	Score    float64
}

// HistoryQuery filters stored solve runs.
type HistoryQuery struct {
	Last int
}
