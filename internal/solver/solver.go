// Package solver recovers Caesar shifts through frequency analysis.
package solver

import (
	"rotsolve/internal/cipher"
	"rotsolve/internal/freq"
	"rotsolve/internal/model"
)

// ChiSquared measures how far observed deviates from expected as
// Σ (o-e)²/e over the 26 letters. Both tables hold relative
// frequencies in [0,1], not raw counts, so this is a weighted
// sum-of-squared-deviations rather than a textbook chi-squared on
// integer counts. Buckets with a zero expected frequency are skipped.
// Lower means a closer match.
func ChiSquared(observed, expected freq.Table) float64 {
	total := 0.0
	for i := range observed {
		if expected[i] <= 0 {
			continue
		}
		diff := observed[i] - expected[i]
		total += diff * diff / expected[i]
	}
	return total
}

// Candidates decrypts ciphertext under every shift and scores each
// result against the English reference table. Results are returned in
// ascending shift order, 0 through 25.
func Candidates(ciphertext string) []model.Candidate {
	out := make([]model.Candidate, 0, 26)
	for shift := 0; shift < 26; shift++ {
		plaintext := cipher.Decrypt(ciphertext, shift)
		out = append(out, model.Candidate{
			Shift:     shift,
			Plaintext: plaintext,
			Score:     ChiSquared(freq.Distribution(plaintext), freq.English),
		})
	}
	return out
}

// Best picks the candidate with the smallest score. Ties keep the
// earliest candidate, so letter-free input resolves to shift 0. An
// empty slice yields the zero candidate.
func Best(candidates []model.Candidate) model.Candidate {
	if len(candidates) == 0 {
		return model.Candidate{}
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Score < best.Score {
			best = c
		}
	}
	return best
}

// Solve returns the shift whose decryption looks most like English,
// together with the decrypted text.
func Solve(ciphertext string) (int, string) {
	best := Best(Candidates(ciphertext))
	return best.Shift, best.Plaintext
}
