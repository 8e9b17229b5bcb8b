// Package validate holds the pure field validators and normalizers of C2.
// Every function here is side-effect free; a field extraction fails
// closed when any validator returns false (§4.2).
package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var containerShapeRe = regexp.MustCompile(`^[A-Z]{4}[0-9]{7}$`)

// containerLetterValues assigns the ISO-6346 numeric value to each letter
// used in the check-digit calculation (§3 invariant 2, §4.2).
var containerLetterValues = map[byte]int{
	'A': 10, 'B': 12, 'C': 13, 'D': 14, 'E': 15, 'F': 16, 'G': 17, 'H': 18,
	'I': 19, 'J': 20, 'K': 21, 'L': 23, 'M': 24, 'N': 25, 'O': 26, 'P': 27,
	'Q': 28, 'R': 29, 'S': 30, 'T': 31, 'U': 32, 'V': 34, 'W': 35, 'X': 36,
	'Y': 37, 'Z': 38,
}

// IsContainerNumber reports whether value has ISO-6346 shape (4 letters +
// 7 digits) AND its check digit is correct. Case and whitespace are
// ignored, as in NormalizeContainerNumber.
func IsContainerNumber(value string) bool {
	v := NormalizeContainerNumber(value)
	if !containerShapeRe.MatchString(v) {
		return false
	}
	return containerCheckDigit(v[:10]) == int(v[10]-'0')
}

// NormalizeContainerNumber upper-cases and strips whitespace, the
// canonical form used for deduplication (§3 invariant 5).
func NormalizeContainerNumber(value string) string {
	return strings.ToUpper(strings.Join(strings.Fields(value), ""))
}

// containerCheckDigit computes the ISO-6346 check digit for the first 10
// characters (owner code + category + 6-digit serial) of a container
// number.
func containerCheckDigit(prefix10 string) int {
	sum := 0
	for i := 0; i < 10; i++ {
		ch := prefix10[i]
		var v int
		if i < 4 {
			v = containerLetterValues[ch]
		} else {
			v, _ = strconv.Atoi(string(ch))
		}
		sum += v * (1 << uint(i))
	}
	remainder := sum % 11
	if remainder == 10 {
		remainder = 0
	}
	return remainder
}
