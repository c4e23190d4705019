package omdb

import "regexp"

var imdbIDPattern = regexp.MustCompile(`^tt\d+$`)

// IsValidID reports whether s is an IMDb title identifier: "tt" followed by
// one or more digits and nothing else.
func IsValidID(s string) bool {
	return imdbIDPattern.MatchString(s)
}
