package textclean

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	reDisallowed   = regexp.MustCompile(`[^a-zA-Z0-9áéíóúÁÉÍÓÚñÑ,.\s]`)
	reNewlines     = regexp.MustCompile(`\n+`)
	reDots         = regexp.MustCompile(`\.{2,}`)
	reCommas       = regexp.MustCompile(`,{2,}`)
	reSingleLetter = regexp.MustCompile(`\b[a-zA-Z]\b`)
	reSpaces       = regexp.MustCompile(`\s+`)

	diacriticsRemover = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// StripDiacritics removes combining marks from text, mapping accented
// letters to their base form.
func StripDiacritics(text string) string {
	result, _, err := transform.String(diacriticsRemover, text)
	if err != nil {
		return text
	}
	return result
}

// collapseRepeatedWords removes consecutive case-insensitive repetitions of
// the same word, keeping the first occurrence. Extracted PDF text frequently
// doubles words across column and page boundaries.
func collapseRepeatedWords(text string) string {
	words := strings.Split(text, " ")
	out := words[:0]
	for _, word := range words {
		if len(out) > 0 && word != "" && strings.EqualFold(out[len(out)-1], word) {
			continue
		}
		out = append(out, word)
	}
	return strings.Join(out, " ")
}

// Clean normalizes raw text extracted from a PDF. It removes characters
// outside the letter/digit/punctuation whitelist, collapses repeated
// punctuation and whitespace, drops single-letter words, removes
// consecutive duplicated words and strips diacritics.
func Clean(text string) string {
	text = reDisallowed.ReplaceAllString(text, " ")
	text = reNewlines.ReplaceAllString(text, " ")
	text = reDots.ReplaceAllString(text, " ")
	text = reCommas.ReplaceAllString(text, " ")
	text = reSingleLetter.ReplaceAllString(text, " ")
	text = reSpaces.ReplaceAllString(text, " ")
	text = collapseRepeatedWords(text)
	text = StripDiacritics(text)
	return strings.TrimSpace(text)
}

// URISafe normalizes text for use as a URI local name. It percent-decodes
// the input, strips diacritics and replaces whitespace runs with a single
// underscore. The transform is idempotent; distinct inputs that normalize
// to the same output are treated as the same node downstream.
func URISafe(text string) string {
	if decoded, err := url.QueryUnescape(text); err == nil {
		text = decoded
	}
	text = StripDiacritics(text)
	return reSpaces.ReplaceAllString(text, "_")
}
