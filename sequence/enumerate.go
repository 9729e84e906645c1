// SPDX-License-Identifier: MIT

package sequence

import "fmt"

// Enumerate returns every upper strand of length n over alphabet, as the
// Cartesian product in alphabet order ("AA", "AT", ... for {A, T}).
// Errors: ErrLengthMismatch for n < 1 or an empty alphabet, ErrUnknownBase
// for letters outside Bases().
// Complexity: O(n*len(alphabet)^n).
func Enumerate(n int, alphabet []string) ([]string, error) {
	if n < 1 || len(alphabet) == 0 {
		return nil, fmt.Errorf("Enumerate(n=%d, |alphabet|=%d): %w", n, len(alphabet), ErrLengthMismatch)
	}
	for _, b := range alphabet {
		if len(b) != 1 {
			return nil, fmt.Errorf("Enumerate: %q: %w", b, ErrUnknownBase)
		}
		if _, ok := complement[rune(b[0])]; !ok {
			return nil, fmt.Errorf("Enumerate: %q: %w", b, ErrUnknownBase)
		}
	}

	out := []string{""}
	for k := 0; k < n; k++ {
		next := make([]string, 0, len(out)*len(alphabet))
		for _, prefix := range out {
			for _, b := range alphabet {
				next = append(next, prefix+b)
			}
		}
		out = next
	}

	return out, nil
}
