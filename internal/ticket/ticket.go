// Package ticket builds the short identifiers printed on drop-off receipts.
package ticket

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// suffixDigits is how many trailing microsecond digits end up in an ID.
const suffixDigits = 4

var upper = cases.Upper(language.Und)

// Initials returns the upper-cased first letter of each whitespace separated
// word in name.
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteString(upper.String(string(r)))
	}
	return b.String()
}

// Suffix returns the last four digits of the microsecond component of t.
// Values below 1000 are not padded.
func Suffix(t time.Time) string {
	micro := strconv.Itoa(t.Nanosecond() / int(time.Microsecond))
	if len(micro) > suffixDigits {
		micro = micro[len(micro)-suffixDigits:]
	}
	return micro
}

// New composes "<size>-<initials>-<suffix>" for a check-in happening at now.
func New(batterySize, name string, now time.Time) string {
	return batterySize + "-" + Initials(name) + "-" + Suffix(now)
}

// Valid reports whether id can safely be used as part of a receipt file name.
func Valid(id string) bool {
	id = strings.TrimSpace(id)
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`) && !strings.ContainsRune(id, 0)
}
