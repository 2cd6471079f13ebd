package annotate

import (
	"regexp"
	"strings"
)

var reYear = regexp.MustCompile(`(19|20)\d{2}`)

// months lists Spanish and English month names; matching is
// case-insensitive substring. Spanish comes first so "mayo" is not
// swallowed by the English "may".
var months = []string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// seasons maps each season to a representative month (northern
// hemisphere).
var seasons = []struct {
	name  string
	month string
}{
	{"winter", "january"},
	{"autumn", "october"},
	{"fall", "october"},
	{"spring", "april"},
	{"summer", "july"},
	{"invierno", "enero"},
	{"otoño", "octubre"},
	{"primavera", "abril"},
	{"verano", "julio"},
}

// NormalizeDate collapses a date mention to a coarse canonical form:
// a 4-digit year (1900-2099) wins, then a month name, then a season
// mapped to its representative month. Unrecognized text is returned
// unchanged.
func NormalizeDate(text string) string {
	if year := reYear.FindString(text); year != "" {
		return year
	}

	lowered := strings.ToLower(text)
	for _, month := range months {
		if strings.Contains(lowered, month) {
			return month
		}
	}

	for _, season := range seasons {
		if strings.Contains(lowered, season.name) {
			return season.month
		}
	}

	return text
}
