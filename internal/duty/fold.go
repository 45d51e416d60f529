package duty

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// indicadores ordinais e o símbolo de grau aparecem misturados em "1°BBM" / "1º BBM"
var ordinalMarks = runes.Predicate(func(r rune) bool {
	return r == '°' || r == 'º' || r == 'ª'
})

// Fold reduz s a letras e dígitos minúsculos, sem acentos nem pontuação
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(ordinalMarks), runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
