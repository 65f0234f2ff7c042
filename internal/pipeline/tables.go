package pipeline

import (
	"strings"

	"github.com/alnah/go-docx2tex/internal/docxio"
)

// tableRows renders every cell of a decoded table to LaTeX-ready text.
// Runs are escaped and styled; cell paragraphs are joined with single
// spaces.
func tableRows(t *docxio.Table, san *Sanitizer) [][]string {
	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, cellText(cell, san))
		}
		rows = append(rows, cells)
	}
	return rows
}

func cellText(cell *docxio.Cell, san *Sanitizer) string {
	var parts []string
	for _, para := range cell.Paragraphs {
		if text := styledRunText(para, san); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// styledRunText flattens a paragraph's runs with escaping and bold/italic
// wrapping, runs separated by single spaces.
func styledRunText(para *docxio.Paragraph, san *Sanitizer) string {
	var b strings.Builder
	for _, run := range para.Runs {
		text := san.Escape(strings.TrimSpace(run.Text))
		if text == "" {
			continue
		}
		if run.Bold {
			text = `\textbf{` + text + `}`
		}
		if run.Italic {
			text = `\textit{` + text + `}`
		}
		b.WriteString(text)
		b.WriteString(" ")
	}
	return strings.TrimSpace(b.String())
}

// RemoveDuplicateColumns drops any column whose cells duplicate an earlier
// column on every row. Word repeats the value of horizontally merged cells
// across the span, which would otherwise render twice.
func RemoveDuplicateColumns(rows [][]string) [][]string {
	if len(rows) == 0 || len(rows[0]) <= 1 {
		return rows
	}

	numCols := len(rows[0])
	drop := make(map[int]bool)
	for col1 := 0; col1 < numCols-1; col1++ {
		for col2 := col1 + 1; col2 < numCols; col2++ {
			if !drop[col2] && columnsEqual(rows, col1, col2) {
				drop[col2] = true
			}
		}
	}
	if len(drop) == 0 {
		return rows
	}

	filtered := make([][]string, 0, len(rows))
	for _, row := range rows {
		kept := make([]string, 0, len(row))
		for i, cell := range row {
			if !drop[i] {
				kept = append(kept, cell)
			}
		}
		filtered = append(filtered, kept)
	}
	return filtered
}

// columnsEqual reports whether two columns hold the same text on every
// row. Rows too short to have both columns count as unequal.
func columnsEqual(rows [][]string, col1, col2 int) bool {
	for _, row := range rows {
		if col2 >= len(row) || row[col1] != row[col2] {
			return false
		}
	}
	return true
}
