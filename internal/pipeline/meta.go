package pipeline

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/alnah/go-docx2tex/internal/dateutil"
)

// ErrTitleFormat indicates a document name that does not follow the
// "PV RC <n> - Anno <roman> - <yyyy>-<mm>-<dd>" convention.
var ErrTitleFormat = errors.New("pipeline: unrecognized title format")

// titlePattern matches the minutes naming convention at the start of the
// document name; trailing text (a version suffix, say) is ignored.
var titlePattern = regexp.MustCompile(`^PV RC (\d+) - Anno (LIX|[IVXLCDM]+) - (\d{4})-(\d{2})-(\d{2})`)

// TitleMeta holds the components parsed from a minutes document name such
// as "PV RC 7 - Anno LIX - 2025-01-27".
type TitleMeta struct {
	Number       string // meeting number, "7"
	Anno         string // organizational year in roman numerals, "LIX"
	Year         string // "2025"
	Month        string // "01"
	Day          string // "27"
	FrenchDate   string // "27/01/2025"
	AcademicYear string // "2024 - 2025"
}

// ParseTitle extracts the page header components from a document name.
func ParseTitle(title string) (TitleMeta, error) {
	m := titlePattern.FindStringSubmatch(title)
	if m == nil {
		return TitleMeta{}, fmt.Errorf("%w: %q", ErrTitleFormat, title)
	}

	meta := TitleMeta{
		Number: m[1],
		Anno:   m[2],
		Year:   m[3],
		Month:  m[4],
		Day:    m[5],
	}
	meta.FrenchDate = dateutil.FrenchDate(meta.Day, meta.Month, meta.Year)

	// The pattern guarantees both fields are digit-only.
	year, _ := strconv.Atoi(meta.Year)
	month, _ := strconv.Atoi(meta.Month)
	meta.AcademicYear = dateutil.AcademicYear(year, month)

	return meta, nil
}
