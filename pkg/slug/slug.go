package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Letters with no canonical decomposition to an ASCII base.
var foldReplacer = strings.NewReplacer(
	"ı", "i",
	"ß", "ss",
	"æ", "ae",
	"ø", "o",
	"œ", "oe",
	"ł", "l",
	"đ", "d",
	"&", " and ",
)

// Generate creates a URL-friendly slug from name. Accents are stripped
// ("Café Crème" becomes "cafe-creme") and any run of other characters
// collapses to a single hyphen.
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = foldReplacer.Replace(s)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}

	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
