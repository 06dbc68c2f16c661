package scanner

import (
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// digitKeys maps the unshifted characters of the digit row on a Belgian
// AZERTY keyboard to the digits a scanner meant to type.
var digitKeys = map[rune]rune{
	'&':  '1',
	'é':  '2',
	'"':  '3',
	'\'': '4',
	'(':  '5',
	'§':  '6',
	'è':  '7',
	'!':  '8',
	'ç':  '9',
	'à':  '0',
}

func toDigit(r rune) rune {
	if d, ok := digitKeys[r]; ok {
		return d
	}
	return r
}

// Converter returns a transformer that rewrites digit-row characters to
// digits and leaves every other rune alone.
func Converter() transform.Transformer {
	return runes.Map(toDigit)
}

// Convert rewrites the digit-row characters in input to digits. Converting
// an already converted string is a no-op.
func Convert(input string) string {
	if input == "" {
		return ""
	}
	// runes.Map never reports an error.
	out, _, _ := transform.String(Converter(), input)
	return out
}
