package extraction

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// maxPlausibleAmount caps what a monetary token may be worth. Anything above
// is more likely an IBAN fragment, reference number or OCR artifact.
var maxPlausibleAmount = decimal.NewFromInt(10_000_000)

// totalKeywordRe marks lines that announce an invoice total. When any such
// line exists, amount extraction is restricted to those lines.
var totalKeywordRe = regexp.MustCompile(`(?i)\b(?:gesamtbetrag|gesamtsumme|gesamt|endbetrag|endsumme|rechnungsbetrag|zahlbetrag|summe|brutto|total(?:\s+due)?|amount\s+due|grand\s+total|zu\s+zahlen(?:der\s+betrag)?)\b`)

// moneyTokenRe finds currency-formatted numeric tokens: grouped thousands
// with an optional decimal part, a plain decimal, or a bare integer.
var moneyTokenRe = regexp.MustCompile(`\d{1,3}(?:[.,]\d{3})+(?:[.,]\d{1,2})?|\d+[.,]\d{1,2}|\d+`)

var currencyMarkers = []struct {
	marker string
	code   string
}{
	{"€", "EUR"}, {"EUR", "EUR"},
	{"$", "USD"}, {"USD", "USD"},
	{"£", "GBP"}, {"GBP", "GBP"},
	{"CHF", "CHF"},
}

type amountCandidate struct {
	value    decimal.Decimal
	quality  float64 // 1.0 well-formed, lower for ambiguous tokens
	currency string
	line     string
}

// ExtractAmount guesses the invoice total from raw OCR text. Lines carrying
// total-indicating keywords are preferred; without any, the numerically
// largest plausible monetary token is used at a reduced signal (totals are
// typically the largest figure on an invoice). Malformed tokens lower the
// signal rather than failing.
func ExtractAmount(text string) (Guess[decimal.Decimal], string, string) {
	var keyword, anywhere []amountCandidate

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		onKeywordLine := totalKeywordRe.MatchString(line)
		for _, cand := range scanLine(line) {
			if onKeywordLine {
				keyword = append(keyword, cand)
			}
			// Bare integers without a currency marker are too often
			// reference numbers to trust outside a total line.
			if cand.quality >= 0.6 || cand.currency != "" {
				anywhere = append(anywhere, cand)
			}
		}
	}

	if best, ok := largest(keyword); ok {
		return guessOf(best.value, 0.9*best.quality), best.currency, best.line
	}
	if best, ok := largest(anywhere); ok {
		return guessOf(best.value, 0.55*best.quality), best.currency, best.line
	}
	return noGuess[decimal.Decimal](), "", ""
}

func largest(cands []amountCandidate) (amountCandidate, bool) {
	var best amountCandidate
	found := false
	for _, c := range cands {
		if !found || c.value.GreaterThan(best.value) {
			best = c
			found = true
		}
	}
	return best, found
}

func scanLine(line string) []amountCandidate {
	var out []amountCandidate
	for _, loc := range moneyTokenRe.FindAllStringIndex(line, -1) {
		token := line[loc[0]:loc[1]]
		if !tokenBoundariesOK(line, loc[0], loc[1]) {
			continue
		}
		value, quality, ok := parseMoneyToken(token)
		if !ok || !value.IsPositive() || value.GreaterThan(maxPlausibleAmount) {
			continue
		}
		out = append(out, amountCandidate{
			value:    value,
			quality:  quality,
			currency: currencyNear(line, loc[0], loc[1]),
			line:     clipSnippet(line),
		})
	}
	return out
}

// tokenBoundariesOK rejects matches embedded in larger figures: a date such
// as 15.03.2026 must not contribute "15.03", and percentages are not money.
func tokenBoundariesOK(line string, start, end int) bool {
	if start > 0 {
		prev := line[start-1]
		if prev >= '0' && prev <= '9' || prev == '.' || prev == ',' {
			return false
		}
	}
	rest := line[end:]
	if len(rest) > 0 {
		if rest[0] >= '0' && rest[0] <= '9' {
			return false
		}
		if (rest[0] == '.' || rest[0] == ',') && len(rest) > 1 && rest[1] >= '0' && rest[1] <= '9' {
			return false
		}
		if strings.HasPrefix(strings.TrimLeft(rest, " "), "%") {
			return false
		}
	}
	return true
}

// parseMoneyToken normalizes a numeric token with German or English
// separator conventions into a decimal. The quality reflects how
// unambiguous the token was.
func parseMoneyToken(token string) (decimal.Decimal, float64, bool) {
	dots := strings.Count(token, ".")
	commas := strings.Count(token, ",")

	normalize := func(thousands, dec string) string {
		s := strings.ReplaceAll(token, thousands, "")
		if dec != "" {
			s = strings.Replace(s, dec, ".", 1)
		}
		return s
	}

	var normalized string
	quality := 1.0

	switch {
	case dots > 0 && commas > 0:
		// Both present: whichever comes last is the decimal separator.
		if strings.LastIndex(token, ",") > strings.LastIndex(token, ".") {
			normalized = normalize(".", ",")
		} else {
			normalized = normalize(",", ".")
		}
	case dots == 1 || commas == 1:
		sep := "."
		if commas == 1 {
			sep = ","
		}
		frac := token[strings.Index(token, sep)+1:]
		switch len(frac) {
		case 1, 2:
			normalized = normalize("", sep)
		case 3:
			// 1.234 style grouping: almost certainly thousands, but the
			// missing decimal part keeps us from being sure.
			normalized = normalize(sep, "")
			quality = 0.7
		default:
			normalized = normalize("", sep)
			quality = 0.4
		}
	case dots > 1 || commas > 1:
		sep := "."
		if commas > 1 {
			sep = ","
		}
		normalized = normalize(sep, "")
		quality = 0.7
	default:
		// Bare integer: valid on a total line, but weak.
		normalized = token
		quality = 0.5
		if len(token) > 5 {
			return decimal.Zero, 0, false
		}
	}

	value, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, 0, false
	}
	return value, quality, true
}

func currencyNear(line string, start, end int) string {
	before := line[:start]
	after := line[end:]
	if len(before) > 6 {
		before = before[len(before)-6:]
	}
	if len(after) > 6 {
		after = after[:6]
	}
	context := before + after
	for _, m := range currencyMarkers {
		if strings.Contains(context, m.marker) {
			return m.code
		}
	}
	return ""
}

func clipSnippet(line string) string {
	const max = 160
	if len(line) <= max {
		return line
	}
	return line[:max]
}
