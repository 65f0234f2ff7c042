package pipeline

import (
	"reflect"
	"testing"

	"github.com/alnah/go-docx2tex/internal/docxio"
)

// ---------------------------------------------------------------------------
// TestRemoveDuplicateColumns - Merged cell span collapsing
// ---------------------------------------------------------------------------

func TestRemoveDuplicateColumns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rows [][]string
		want [][]string
	}{
		{
			name: "empty table unchanged",
			rows: nil,
			want: nil,
		},
		{
			name: "single column unchanged",
			rows: [][]string{{"a"}, {"b"}},
			want: [][]string{{"a"}, {"b"}},
		},
		{
			name: "adjacent duplicate dropped",
			rows: [][]string{{"a", "a", "b"}, {"c", "c", "d"}},
			want: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name: "non-adjacent duplicate dropped",
			rows: [][]string{{"a", "b", "a"}, {"c", "d", "c"}},
			want: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name: "all columns identical collapse to one",
			rows: [][]string{{"x", "x", "x"}},
			want: [][]string{{"x"}},
		},
		{
			name: "partial match kept",
			rows: [][]string{{"a", "a"}, {"b", "c"}},
			want: [][]string{{"a", "a"}, {"b", "c"}},
		},
		{
			name: "short row blocks comparison",
			rows: [][]string{{"a", "a"}, {"b"}},
			want: [][]string{{"a", "a"}, {"b"}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := RemoveDuplicateColumns(tt.rows); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("RemoveDuplicateColumns() = %v, want %v", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestTableRows - Cell flattening with styling
// ---------------------------------------------------------------------------

func TestTableRows(t *testing.T) {
	t.Parallel()

	san := newTestSanitizer(t)

	table := &docxio.Table{Rows: [][]*docxio.Cell{
		{
			{Paragraphs: []*docxio.Paragraph{
				{Runs: []*docxio.Run{{Text: " Poste ", Bold: true}}},
			}},
			{Paragraphs: []*docxio.Paragraph{
				{Runs: []*docxio.Run{{Text: "Recettes & dépenses"}}},
			}},
		},
		{
			{Paragraphs: []*docxio.Paragraph{
				{Runs: []*docxio.Run{{Text: "Bar", Italic: true}}},
				{Runs: []*docxio.Run{{Text: "2025"}}},
			}},
			{Paragraphs: nil},
		},
	}}

	got := tableRows(table, san)
	want := [][]string{
		{`\textbf{Poste}`, `Recettes \& dépenses`},
		{`\textit{Bar} 2025`, ""},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tableRows() = %v, want %v", got, want)
	}
}

func TestStyledRunTextSkipsEmptyRuns(t *testing.T) {
	t.Parallel()

	san := newTestSanitizer(t)

	para := &docxio.Paragraph{Runs: []*docxio.Run{
		{Text: "  ", Bold: true},
		{Text: "Total", Bold: true},
		{Text: ""},
	}}
	if got, want := styledRunText(para, san), `\textbf{Total}`; got != want {
		t.Errorf("styledRunText() = %q, want %q", got, want)
	}
}
