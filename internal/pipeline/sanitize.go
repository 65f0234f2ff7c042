package pipeline

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alnah/go-docx2tex/internal/assets"
)

// Edge marks where a text fragment sits inside its paragraph. Opening
// fragments get their first letter capitalized, closing fragments a final
// period; fragments in the middle get neither.
type Edge uint8

const (
	EdgeNone  Edge = 0
	EdgeBegin Edge = 1 << 0
	EdgeEnd   Edge = 1 << 1
)

func (e Edge) has(flag Edge) bool { return e&flag != 0 }

// abbreviation is one compiled shorthand rule.
type abbreviation struct {
	pattern     *regexp.Regexp
	replacement string
}

// Sanitizer applies LaTeX escaping and prose dressing to raw document
// text. Rules come from the resource files; see the assets package.
type Sanitizer struct {
	escapes       []assets.Rule
	abbreviations []abbreviation
}

// NewSanitizer compiles the rule set. Escape rules apply sequentially in
// declaration order; abbreviation matching is whole-word and
// case-insensitive.
func NewSanitizer(res *assets.Resources) *Sanitizer {
	s := &Sanitizer{escapes: res.Escapes}
	for _, rule := range res.Abbreviations {
		s.abbreviations = append(s.abbreviations, abbreviation{
			pattern:     regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(rule.From) + `\b`),
			replacement: rule.To,
		})
	}
	return s
}

// Escape rewrites LaTeX special characters using the escape table. The
// table order is significant: each rule sees the output of the previous
// one.
func (s *Sanitizer) Escape(text string) string {
	for _, rule := range s.escapes {
		text = strings.ReplaceAll(text, rule.From, rule.To)
	}
	return text
}

// Tidy dresses a fragment as prose. Closing fragments get a final period
// unless they already end with sentence punctuation, opening fragments get
// a capital first letter, and shorthand expands to its full form
// everywhere. An expansion is capitalized when the matched word was.
func (s *Sanitizer) Tidy(text string, edges Edge) string {
	if text == "" {
		return text
	}
	if edges.has(EdgeEnd) && !endsWithPunctuation(text) {
		text = strings.TrimRightFunc(text, unicode.IsSpace) + "."
	}
	if edges.has(EdgeBegin) {
		text = CapitalizeFirst(text)
	}
	for _, abbr := range s.abbreviations {
		text = abbr.pattern.ReplaceAllStringFunc(text, func(word string) string {
			if firstRuneIsUpper(word) {
				return CapitalizeFirst(abbr.replacement)
			}
			return abbr.replacement
		})
	}
	return text
}

// CapitalizeFirst uppercases the first rune and leaves the rest untouched.
func CapitalizeFirst(text string) string {
	r, size := utf8.DecodeRuneInString(text)
	if r == utf8.RuneError && size <= 1 {
		return text
	}
	return string(unicode.ToUpper(r)) + text[size:]
}

func endsWithPunctuation(text string) bool {
	trimmed := strings.TrimRightFunc(text, unicode.IsSpace)
	return strings.HasSuffix(trimmed, ".") ||
		strings.HasSuffix(trimmed, "?") ||
		strings.HasSuffix(trimmed, "!")
}

func firstRuneIsUpper(word string) bool {
	r, _ := utf8.DecodeRuneInString(word)
	return unicode.IsUpper(r)
}
