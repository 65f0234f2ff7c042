// Package dateutil provides date helpers for meeting-minutes metadata.
package dateutil

import "fmt"

// FrenchDate renders separate day, month and year fields as DD/MM/YYYY.
// Fields come straight from the document title and are not validated as a
// real calendar day; the title pattern already constrains their shape.
func FrenchDate(day, month, year string) string {
	return fmt.Sprintf("%s/%s/%s", day, month, year)
}

// AcademicYear returns the academic year a meeting date falls in, formatted
// as "YYYY - YYYY". Meetings from July onward belong to the year starting
// that fall; earlier meetings belong to the year ending that spring.
func AcademicYear(year, month int) string {
	if month > 6 {
		return fmt.Sprintf("%d - %d", year, year+1)
	}
	return fmt.Sprintf("%d - %d", year-1, year)
}
