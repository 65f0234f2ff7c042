package pipeline

import (
	"regexp"
	"strings"
)

// Agenda headings: numbered items open sections, single-letter items open
// subsections.
var (
	sectionPattern    = regexp.MustCompile(`^\d+\)`)
	subsectionPattern = regexp.MustCompile(`^[a-zA-Z]\)`)
)

// IsSectionHeading reports whether text opens a numbered agenda section,
// such as "1) Budget".
func IsSectionHeading(text string) bool {
	return sectionPattern.MatchString(text)
}

// IsSubsectionHeading reports whether text opens a lettered agenda
// subsection, such as "a) Détails".
func IsSubsectionHeading(text string) bool {
	return subsectionPattern.MatchString(text)
}

// HeadingTitle strips the "1)" or "a)" marker and returns the trimmed
// title. Text without a marker comes back unchanged.
func HeadingTitle(text string) string {
	if IsSectionHeading(text) || IsSubsectionHeading(text) {
		_, title, _ := strings.Cut(text, ")")
		return strings.TrimSpace(title)
	}
	return text
}
