package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractVendor_LegalSuffixWins(t *testing.T) {
	text := "RECHNUNG\nAcme Services GmbH\nMusterstraße 12, 12345 Berlin\n"

	guess := ExtractVendor(text)

	require.True(t, guess.OK)
	assert.Equal(t, "Acme Services GmbH", guess.Value)
	assert.InDelta(t, 0.9, guess.Signal, 0.001)
}

func TestExtractVendor_PrefersSuffixOverEarlierHeaderLine(t *testing.T) {
	// "Bürobedarf Nord" is a plausible header line but carries no legal
	// suffix; the suffix line below must win the tie-break.
	text := "Bürobedarf Nord\nPapier und mehr\nWagner Bürotechnik AG\n"

	guess := ExtractVendor(text)

	require.True(t, guess.OK)
	assert.Equal(t, "Wagner Bürotechnik AG", guess.Value)
}

func TestExtractVendor_StripsFieldLabel(t *testing.T) {
	guess := ExtractVendor("Firma: Schulz & Partner KG\n")

	require.True(t, guess.OK)
	assert.Equal(t, "Schulz & Partner KG", guess.Value)
}

func TestExtractVendor_SuffixBelowHeaderZoneScoresLower(t *testing.T) {
	filler := ""
	for i := 0; i < 12; i++ {
		filler += "Position mit einigen Details zu gelieferten Artikeln und Mengen\n"
	}
	guess := ExtractVendor(filler + "Nordlicht Handel GmbH\n")

	require.True(t, guess.OK)
	assert.Equal(t, "Nordlicht Handel GmbH", guess.Value)
	assert.InDelta(t, 0.75, guess.Signal, 0.001)
}

func TestExtractVendor_HeaderFallbackIsWeak(t *testing.T) {
	guess := ExtractVendor("Malermeister Krause\nAngebot für Fassadenarbeiten am Objekt\n")

	require.True(t, guess.OK)
	assert.Equal(t, "Malermeister Krause", guess.Value)
	assert.InDelta(t, 0.35, guess.Signal, 0.001)
}

func TestExtractVendor_NoCandidateYieldsEmptyGuess(t *testing.T) {
	text := "Dieses Schreiben enthält ausschließlich längeren Fließtext ohne einen Absender im Kopfbereich.\n" +
		"Auch die folgenden Zeilen bestehen nur aus beschreibendem Text ohne Firmierung.\n"

	guess := ExtractVendor(text)

	assert.False(t, guess.OK)
	assert.Zero(t, guess.Signal)
}

func TestExtractVendor_BoilerplateLinesAreSkipped(t *testing.T) {
	text := "Rechnungsnummer 2024-001\nDatum: 15.03.2026\nSeite 1 von 2\n"

	guess := ExtractVendor(text)

	assert.False(t, guess.OK)
}
