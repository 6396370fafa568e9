// Package freq computes letter-frequency distributions.
package freq

import "rotsolve/internal/cipher"

// Table holds relative frequencies for the 26 ASCII letters, indexed
// by alphabet position (0 = 'a'). A table derived from real text sums
// to 1; the zero value stands for text without letters.
type Table [26]float64

// English is the reference distribution for standard English text,
// a through z. It is fixed for the process lifetime; scoring depends
// on these exact values, so they must not drift.
var English = Table{
	0.08167, 0.01492, 0.02782, 0.04253, 0.12702, 0.02228, 0.02015,
	0.06094, 0.06966, 0.00153, 0.00772, 0.04025, 0.02406, 0.06749,
	0.07507, 0.01929, 0.00095, 0.05987, 0.06327, 0.09056, 0.02758,
	0.00978, 0.02360, 0.00150, 0.01974, 0.00074,
}

// Distribution counts the ASCII letters of text case-insensitively and
// returns their relative frequencies. Non-letter bytes are ignored.
// Text without any letters yields the zero table rather than an error.
func Distribution(text string) Table {
	letters := cipher.Letters(text)
	var table Table
	if len(letters) == 0 {
		return table
	}
	var counts [26]int
	for i := 0; i < len(letters); i++ {
		counts[letters[i]-'a']++
	}
	total := float64(len(letters))
	for i, c := range counts {
		table[i] = float64(c) / total
	}
	return table
}

// LetterCount returns the number of ASCII letters in text.
func LetterCount(text string) int {
	total := 0
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') {
			total++
		}
	}
	return total
}
