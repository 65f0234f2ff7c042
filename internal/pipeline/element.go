package pipeline

import "github.com/alnah/go-docx2tex/internal/docxio"

// Element is one entry of the ordered stream produced by the walker.
// Rendering consumes the stream in order; each concrete type maps to one
// LaTeX block.
type Element interface {
	isElement()
}

// Title is the first non-empty paragraph of the document, rendered as the
// centered document title.
type Title struct {
	Text string
}

// Section is a numbered agenda item ("1) Budget"), rendered as a numbered
// LaTeX section.
type Section struct {
	Title string
}

// Subsection is a lettered agenda item ("a) Détails"), rendered as an
// unnumbered LaTeX subsection.
type Subsection struct {
	Title string
}

// AttendeeList holds the names accumulated after a "Présents" marker,
// rendered as a two-column block.
type AttendeeList struct {
	Names []string
}

// Table holds pre-rendered cell text, one string per cell with escaping and
// run styling already applied.
type Table struct {
	Rows [][]string
}

// Image references an extracted media file. WidthCM and HeightCM are zero
// when the document carried no usable extent.
type Image struct {
	Path     string
	WidthCM  float64
	HeightCM float64
}

// Paragraph is a body paragraph. It keeps the decoded paragraph alive so
// that corrections applied after the walk surface in the rendered runs.
type Paragraph struct {
	Para *docxio.Paragraph
}

// StartText marks the "__"-prefixed paragraph that closes the attendee
// block. It renders nothing itself but anchors the table of contents.
type StartText struct {
	Text string
}

func (Title) isElement()        {}
func (Section) isElement()      {}
func (Subsection) isElement()   {}
func (AttendeeList) isElement() {}
func (Table) isElement()        {}
func (Image) isElement()        {}
func (Paragraph) isElement()    {}
func (StartText) isElement()    {}

// OutlineEntry pairs a subsection title with the section that owns it, in
// document order. The agenda block consumes entries while the owning
// section matches the section being listed.
type OutlineEntry struct {
	Section    string
	Subsection string
}

// Document is the walker output: the ordered element stream plus the
// derived agenda outline and the paragraphs queued for spell correction.
type Document struct {
	Title    string
	Elements []Element

	// Sections and Outline feed the "Ordre du jour" block. Both hold raw
	// (unescaped) titles; escaping happens at render time.
	Sections []string
	Outline  []OutlineEntry

	// CorrectionQueue lists body paragraphs in document order. Callers may
	// rewrite their runs before rendering.
	CorrectionQueue []*docxio.Paragraph
}
