package migration

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var separatorPattern = regexp.MustCompile(`[-\s]+`)

// Russian-to-Latin transliteration, lower-case forms only; input runes are
// lower-cased before lookup.
var cyrillicToLatin = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d",
	'е': "e", 'ё': "e", 'ж': "zh", 'з': "z", 'и': "i",
	'й': "i", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
	'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t",
	'у': "u", 'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch",
	'ш': "sh", 'щ': "shch", 'ъ': "", 'ы': "y", 'ь': "",
	'э': "e", 'ю': "yu", 'я': "ya", 'і': "i", 'ї': "i",
	'є': "e", 'ґ': "g",
}

// Slugify derives a remote-safe slug from a free-text legacy name: at most
// the first two words, transliterated to Latin, diacritics and punctuation
// stripped, lower-cased, word separators replaced by dots.
// "Иван Петров" becomes "ivan.petrov".
func Slugify(s string) string {
	words := strings.Fields(s)
	if len(words) > 2 {
		words = words[:2]
	}
	s = strings.Join(words, " ")

	s = transliterate(s)
	s = stripDiacritics(s)
	s = strings.ToLower(s)

	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '-' {
			b.WriteRune(r)
		}
	}

	s = separatorPattern.ReplaceAllString(b.String(), ".")
	return strings.Trim(s, ".")
}

func transliterate(s string) string {
	var b strings.Builder
	for _, r := range s {
		if repl, ok := cyrillicToLatin[unicode.ToLower(r)]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
