package extraction

import (
	"regexp"
	"strings"
	"unicode"
)

// headerZoneLines bounds how far into the document a line still counts as
// "near the top" for the proximity tie-break.
const headerZoneLines = 10

// fallbackZoneLines bounds the suffix-less header fallback much tighter:
// only the very first lines of a document plausibly name the sender.
const fallbackZoneLines = 5

// legalSuffixRe matches common legal-entity suffixes. Longer alternatives
// come first so "GmbH & Co. KG" is not swallowed by the bare "GmbH" branch.
var legalSuffixRe = regexp.MustCompile(`\b(?:GmbH\s*&\s*Co\.?\s*KG|gGmbH|GmbH|KGaA|AG|KG|UG|OHG|GbR|SE|Inc|Ltd|LLC|Corp|PLC)\b|e\.\s?V\.|S\.A\.|B\.V\.`)

// noiseLineRe rejects lines that are document boilerplate rather than a
// sender name.
var noiseLineRe = regexp.MustCompile(`(?i)^(?:rechnung|invoice|angebot|quittung|beleg|gutschrift|mahnung|rechnungs?-?\s*(?:nr|nummer)|invoice\s*(?:no|number)|kunden-?\s*(?:nr|nummer)|datum|date|seite|page|betreff|subject)\b`)

// labelPrefixRe strips field labels so "Firma: Acme GmbH" yields "Acme GmbH".
var labelPrefixRe = regexp.MustCompile(`(?i)^(?:firma|lieferant|vendor|von|from|an|to)\s*:\s*`)

// ExtractVendor guesses the sender of an invoice from raw OCR text. It scans
// for addressee/header-like lines: lines carrying a legal-entity suffix win,
// ties broken by proximity to the top; without any suffix line a short line
// at the very top of the document is accepted at a much weaker signal.
func ExtractVendor(text string) Guess[string] {
	var fallback string

	pos := 0
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		pos++

		if len(line) > 120 || noiseLineRe.MatchString(line) {
			continue
		}

		if loc := legalSuffixRe.FindStringIndex(line); loc != nil {
			name := cleanVendorLine(line)
			if name == "" {
				continue
			}
			signal := 0.9
			if pos > headerZoneLines {
				signal = 0.75
			}
			return guessOf(name, signal)
		}

		if fallback == "" && pos <= fallbackZoneLines && isHeaderLike(line) {
			fallback = cleanVendorLine(line)
		}
	}

	if fallback != "" {
		return guessOf(fallback, 0.35)
	}
	return noGuess[string]()
}

func cleanVendorLine(line string) string {
	name := labelPrefixRe.ReplaceAllString(line, "")
	name = strings.Trim(name, " \t-–|,;:")
	if len(name) < 3 || len(name) > 80 {
		return ""
	}
	return name
}

// isHeaderLike accepts short letter-dominated lines that could plausibly be
// a company name printed in a letterhead.
func isHeaderLike(line string) bool {
	if len(line) < 3 || len(line) > 40 {
		return false
	}
	var letters, digits int
	for _, r := range line {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsDigit(r):
			digits++
		}
	}
	if letters < 3 {
		return false
	}
	// Address and reference lines are digit-heavy; company names are not.
	return digits*3 < letters
}
