// Package cipher implements the Caesar alphabet shift transform.
package cipher

const alphabetSize = 26

// Normalize maps an arbitrary shift onto [0, 26).
func Normalize(shift int) int {
	return ((shift % alphabetSize) + alphabetSize) % alphabetSize
}

// Encrypt shifts every ASCII letter of text forward by shift positions
// within its own case, wrapping around the alphabet. All other bytes
// are copied unchanged. Shifts outside [0, 26) are normalized first.
func Encrypt(text string, shift int) string {
	k := byte(Normalize(shift))
	if k == 0 {
		return text
	}
	out := []byte(text)
	for i := 0; i < len(out); i++ {
		ch := out[i]
		switch {
		case ch >= 'a' && ch <= 'z':
			out[i] = 'a' + (ch-'a'+k)%alphabetSize
		case ch >= 'A' && ch <= 'Z':
			out[i] = 'A' + (ch-'A'+k)%alphabetSize
		}
	}
	return string(out)
}

// Decrypt reverses Encrypt for the same shift, so that
// Decrypt(Encrypt(t, k), k) == t for any text and any shift.
func Decrypt(text string, shift int) string {
	return Encrypt(text, alphabetSize-Normalize(shift))
}

// Letters returns the ASCII letters of text folded to lowercase, with
// all other bytes removed.
func Letters(text string) string {
	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case ch >= 'a' && ch <= 'z':
			out = append(out, ch)
		case ch >= 'A' && ch <= 'Z':
			out = append(out, ch+'a'-'A')
		}
	}
	return string(out)
}
