package geo

import "strings"

// NormalizeCity lowercases a city name and collapses internal whitespace so
// user-entered values compare equal regardless of casing and spacing.
func NormalizeCity(city string) string {
	return strings.Join(strings.Fields(strings.ToLower(city)), " ")
}
