package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/alnah/go-docx2tex/internal/docxio"
)

// LaTeXRenderer defines the contract for rendering a walked document to a
// complete LaTeX source.
type LaTeXRenderer interface {
	Render(ctx context.Context, doc *Document) string
}

// RendererOptions carries the preamble and layout knobs, normally taken
// from configuration.
type RendererOptions struct {
	// Packages and Settings are written verbatim between \documentclass
	// and \begin{document}.
	Packages []string
	Settings []string

	// LogoPath is the \includegraphics argument of the logo page, relative
	// to the directory the document is compiled in.
	LogoPath string
}

// Renderer writes the LaTeX document for a walked element stream.
type Renderer struct {
	sanitizer *Sanitizer
	opts      RendererOptions
	logger    *slog.Logger
}

// NewRenderer returns a Renderer. A nil logger falls back to slog.Default.
func NewRenderer(sanitizer *Sanitizer, opts RendererOptions, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{sanitizer: sanitizer, opts: opts, logger: logger}
}

// Render produces the full LaTeX source: preamble, page headers, then one
// block per element. The agenda ("Ordre du jour") and the logo page are
// inserted once, anchored on the "__" marker paragraph or, failing that,
// on the first heading or paragraph after the attendee block.
//
// Render reads paragraph runs at call time, so corrections applied to the
// walk output between Walk and Render show up in the result.
func (r *Renderer) Render(ctx context.Context, doc *Document) string {
	var b strings.Builder
	if ctx.Err() != nil {
		return ""
	}

	b.WriteString(r.documentHeader())
	b.WriteString(r.titleHeader(doc.Title) + "\n\n")

	agendaDone := false
	afterAttendees := false

	// insertAgenda writes the agenda and logo page at most once, and only
	// when the document has sections to list.
	insertAgenda := func() {
		if agendaDone || len(doc.Sections) == 0 {
			return
		}
		b.WriteString(r.agendaBlock(doc.Sections, doc.Outline))
		b.WriteString(r.logoBlock())
		agendaDone = true
	}

	for _, elem := range doc.Elements {
		switch el := elem.(type) {
		case Title:
			b.WriteString(r.titleBlock(el.Text))
		case Table:
			b.WriteString(r.tableBlock(el.Rows))
		case Image:
			b.WriteString(r.figureBlock(el))
		case AttendeeList:
			b.WriteString(r.attendeeBlock(el.Names))
			afterAttendees = true
		case StartText:
			insertAgenda()
			afterAttendees = false
		case Section:
			if afterAttendees {
				insertAgenda()
				afterAttendees = false
			}
			b.WriteString(r.sectionBlock(el.Title))
		case Subsection:
			if afterAttendees {
				insertAgenda()
				afterAttendees = false
			}
			b.WriteString(r.subsectionBlock(el.Title))
		case Paragraph:
			if afterAttendees {
				insertAgenda()
				afterAttendees = false
			}
			b.WriteString(r.paragraphBlock(el.Para))
		}
	}

	b.WriteString("\\end{document}\n")
	return b.String()
}

// documentHeader emits \documentclass, the configured preamble, and
// \begin{document}.
func (r *Renderer) documentHeader() string {
	lines := make([]string, 0, len(r.opts.Packages)+len(r.opts.Settings)+2)
	lines = append(lines, `\documentclass{article}`)
	lines = append(lines, r.opts.Packages...)
	lines = append(lines, r.opts.Settings...)
	lines = append(lines, "\\begin{document}\n")
	return strings.Join(lines, "\n")
}

// titleHeader emits the fancyhdr page headers. Names following the minutes
// convention get the split header with meeting number and dates; anything
// else falls back to a plain centered header.
func (r *Renderer) titleHeader(title string) string {
	meta, err := ParseTitle(title)
	if err != nil {
		r.logger.Error("falling back to plain page header", slog.Any("error", err))
		return `\fancyhead[C]{` + r.sanitizer.Escape(title) + `}`
	}
	return fmt.Sprintf(
		"\\fancyhead[L]{CBB - Anno %s \\hfill %s \n\n} \\fancyhead[R]{Réunion Comité n° %s \\hfill %s}",
		meta.Anno, meta.AcademicYear, meta.Number, meta.FrenchDate,
	)
}

func (r *Renderer) titleBlock(text string) string {
	return "\\begin{center}\n\\LARGE \\textbf{" + r.sanitizer.Escape(text) + "}\\\\ \n\\end{center}\n\n"
}

// agendaBlock renders the "Ordre du jour" listing. Outline entries are
// consumed in order while their owning section matches the section being
// listed, which keeps each subsection under its own heading even when
// section titles repeat.
func (r *Renderer) agendaBlock(sections []string, outline []OutlineEntry) string {
	if len(sections) == 0 {
		return ""
	}

	lines := []string{
		`\begin{center}`,
		`\section*{\hspace{-1.5cm}Ordre du jour}`,
		`\hspace*{-0.5cm}\begin{varwidth}{\textwidth}`,
	}

	pending := outline
	for _, section := range sections {
		heading := CapitalizeFirst(r.sanitizer.Escape(section))
		lines = append(lines, `\textbf{- `+heading+`}\\ `)
		for len(pending) > 0 && strings.HasPrefix(pending[0].Section, section) {
			sub := r.sanitizer.Escape(pending[0].Subsection)
			pending = pending[1:]
			lines = append(lines, `\hspace*{0.8cm} - \textbf{`+sub+`}\\ `)
		}
	}

	lines = append(lines, `\end{varwidth}`)
	lines = append(lines, "\\end{center}\n\n")
	return strings.Join(lines, "\n")
}

// attendeeBlock renders the attendee names in two columns. Names are
// trimmed, a single leading "#" is dropped, and empties are skipped.
func (r *Renderer) attendeeBlock(names []string) string {
	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		name = strings.TrimSpace(strings.TrimPrefix(name, "#"))
		if name == "" {
			continue
		}
		cleaned = append(cleaned, name)
	}
	if len(cleaned) == 0 {
		return ""
	}

	lines := []string{
		`\section*{Camarades présents :}`,
		"",
		`\begin{multicols}{2}`,
	}
	for i, name := range cleaned {
		escaped := r.sanitizer.Escape(name)
		if i < len(cleaned)-1 {
			lines = append(lines, " "+escaped+"\\\\ ")
		} else {
			lines = append(lines, " "+escaped+" ")
		}
	}
	lines = append(lines, "\\end{multicols}\n")
	return strings.Join(lines, "\n")
}

func (r *Renderer) sectionBlock(title string) string {
	return "\\section{" + CapitalizeFirst(r.sanitizer.Escape(title)) + "}\n\n"
}

func (r *Renderer) subsectionBlock(title string) string {
	return "\\subsection*{" + CapitalizeFirst(r.sanitizer.Escape(title)) + "}\n\n"
}

func (r *Renderer) tableBlock(rows [][]string) string {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return ""
	}

	cols := make([]string, len(rows[0]))
	for i := range cols {
		cols[i] = "c"
	}

	lines := []string{
		`\begin{table}[h]`,
		`\centering`,
		`\begin{tabular}{|` + strings.Join(cols, " | ") + ` |}`,
		`\hline`,
	}
	for _, row := range rows {
		lines = append(lines, strings.Join(row, " & ")+` \\`)
		lines = append(lines, `\hline`)
	}
	lines = append(lines, `\end{tabular}`, "\\end{table}\n")
	return strings.Join(lines, "\n")
}

// figureBlock renders an extracted image as a centered figure. The
// \includegraphics path is always relative to the LaTeX directory; sizes
// only appear when the document carried a usable extent.
func (r *Renderer) figureBlock(img Image) string {
	if img.Path == "" {
		return ""
	}

	var opts []string
	if img.WidthCM > 0 {
		opts = append(opts, fmt.Sprintf("width=%.2fcm", img.WidthCM))
	}
	if img.HeightCM > 0 {
		opts = append(opts, fmt.Sprintf("height=%.2fcm", img.HeightCM))
	}
	optStr := ""
	if len(opts) > 0 {
		optStr = "[" + strings.Join(opts, ",") + "]"
	}

	relPath := path.Join("images", filepath.Base(img.Path))
	return "\\begin{figure}[h]\n\\centering\n" +
		"\\includegraphics" + optStr + "{" + relPath + "}\n" +
		"\\end{figure}\n\n"
}

// logoBlock fills the rest of the page with the organization logo and
// breaks to a fresh page. It always follows the agenda.
func (r *Renderer) logoBlock() string {
	return "\\vspace{\\fill}\n\\begin{center}\n" +
		"\\includegraphics[height=\\dimexpr\\textheight-\\pagetotal\\relax]{" + r.opts.LogoPath + "}\n" +
		"\\end{center}\n\\newpage\n"
}

// paragraphBlock renders a body paragraph. Paragraphs shaped like
// "Label : rest" render the label bold before the colon with the rest
// flowing after it; anything else renders run by run with styling
// preserved.
func (r *Renderer) paragraphBlock(para *docxio.Paragraph) string {
	text := para.Text()
	if label, _, found := strings.Cut(text, ":"); found {
		return r.labeledParagraph(strings.TrimSpace(label), para)
	}
	return r.plainParagraph(para)
}

// labeledParagraph renders "Label : rest". The label renders bold once up
// front; each run then contributes its text with the label and the
// separating colon removed. The first run opens the sentence and the last
// one closes it. An italic run also italicizes the label.
func (r *Renderer) labeledParagraph(label string, para *docxio.Paragraph) string {
	boldPart := `\textbf{` + r.sanitizer.Escape(label) + `}`
	labelItalic := false

	var b strings.Builder
	last := len(para.Runs) - 1
	for i, run := range para.Runs {
		edges := EdgeNone
		if i == 0 {
			edges |= EdgeBegin
		}
		if i == last {
			edges |= EdgeEnd
		}

		remaining := strings.TrimSpace(run.Text)
		if strings.Contains(remaining, label) {
			remaining = strings.ReplaceAll(remaining, label, "")
			remaining = strings.TrimSpace(strings.Replace(remaining, ":", "", 1))
		}
		remaining = strings.TrimSpace(strings.TrimPrefix(remaining, ":"))

		remaining = r.sanitizer.Escape(remaining)
		remaining = r.sanitizer.Tidy(remaining, edges)
		if remaining == "" {
			continue
		}
		if run.Bold {
			remaining = `\textbf{` + remaining + `}`
		}
		if run.Italic {
			remaining = `\textit{` + remaining + `}`
			labelItalic = true
		}
		b.WriteString(remaining)
	}

	if labelItalic {
		boldPart = `\textit{` + boldPart + `}`
	}
	return boldPart + " : " + strings.TrimSpace(b.String()) + "\n\n"
}

// plainParagraph renders runs joined by single spaces. Every run is
// dressed as a full sentence, so multi-run paragraphs come out with each
// styled fragment capitalized and closed.
func (r *Renderer) plainParagraph(para *docxio.Paragraph) string {
	var b strings.Builder
	for _, run := range para.Runs {
		text := strings.TrimSpace(run.Text)
		text = r.sanitizer.Escape(text)
		text = r.sanitizer.Tidy(text, EdgeBegin|EdgeEnd)
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

	result := strings.TrimSpace(b.String())
	if result == "" {
		return ""
	}
	return result + "\n\n"
}

// Compile-time interface compliance check.
var _ LaTeXRenderer = (*Renderer)(nil)
