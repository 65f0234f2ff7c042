package pipeline

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/alnah/go-docx2tex/internal/docxio"
)

// attendeeMarker opens the attendee block; attendeeEndPrefix closes it and
// doubles as the anchor for the agenda.
const (
	attendeeMarker    = "Présents"
	attendeeEndPrefix = "__"
)

// emuPerInch and cmPerInch convert word-processor image extents (English
// Metric Units) to centimeters.
const (
	emuPerInch = 914400.0
	cmPerInch  = 2.54
)

// DocumentWalker defines the contract for turning decoded documents into
// element streams.
type DocumentWalker interface {
	Walk(ctx context.Context, src *docxio.Document, title string, images map[string]string) *Document
}

// Walker classifies document items in order and accumulates walk state:
// whether the title was seen, the open attendee block, and the agenda
// outline.
type Walker struct {
	sanitizer *Sanitizer
	logger    *slog.Logger
}

// NewWalker returns a Walker using the given sanitizer for table cell
// escaping. A nil logger falls back to slog.Default.
func NewWalker(sanitizer *Sanitizer, logger *slog.Logger) *Walker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Walker{sanitizer: sanitizer, logger: logger}
}

// Walk produces the ordered element stream for a decoded document. The
// title argument names the document (it feeds the page header, not the
// stream); images maps relationship IDs to extracted file paths.
//
// The first non-empty paragraph becomes the document title. A paragraph
// starting with "Présents" opens the attendee block: following paragraphs
// accumulate as names until an empty paragraph or one starting with "__"
// closes it. Every other non-empty paragraph is classified as a section
// heading, a subsection heading, or a body paragraph, and is queued for
// correction.
func (w *Walker) Walk(ctx context.Context, src *docxio.Document, title string, images map[string]string) *Document {
	out := &Document{Title: title}
	if ctx.Err() != nil {
		return out
	}

	var (
		sawTitle    bool
		inAttendees bool
		attendees   []string
	)

	for _, item := range src.Items {
		switch it := item.(type) {
		case *docxio.Table:
			rows := RemoveDuplicateColumns(tableRows(it, w.sanitizer))
			out.Elements = append(out.Elements, Table{Rows: rows})

		case *docxio.Paragraph:
			// Drawings render even when their paragraph is consumed by
			// title or attendee handling, so they go out first.
			for _, ref := range it.Images {
				path, ok := images[ref.RelID]
				if !ok {
					continue
				}
				img := Image{Path: path}
				if ref.CX > 0 && ref.CY > 0 {
					img.WidthCM = emuToCM(ref.CX)
					img.HeightCM = emuToCM(ref.CY)
				}
				out.Elements = append(out.Elements, img)
			}

			text := it.Text()

			if !sawTitle && text != "" {
				sawTitle = true
				out.Elements = append(out.Elements, Title{Text: text})
				continue
			}

			if strings.HasPrefix(text, attendeeMarker) {
				inAttendees = true
				continue
			}

			if inAttendees {
				if text == "" || strings.HasPrefix(text, attendeeEndPrefix) {
					inAttendees = false
					out.Elements = append(out.Elements, AttendeeList{Names: slices.Clone(attendees)})
					if strings.HasPrefix(text, attendeeEndPrefix) {
						out.Elements = append(out.Elements, StartText{Text: text})
					}
					attendees = attendees[:0]
				} else {
					attendees = append(attendees, text)
				}
				continue
			}

			if text == "" {
				continue
			}

			out.CorrectionQueue = append(out.CorrectionQueue, it)
			w.classify(out, it, text)
		}
	}

	return out
}

// classify appends the element for a body paragraph and keeps the agenda
// outline in sync with the headings seen so far.
func (w *Walker) classify(out *Document, para *docxio.Paragraph, text string) {
	switch {
	case IsSectionHeading(text):
		heading := HeadingTitle(text)
		out.Sections = append(out.Sections, heading)
		out.Elements = append(out.Elements, Section{Title: heading})

	case IsSubsectionHeading(text):
		heading := HeadingTitle(text)
		if len(out.Sections) == 0 {
			// No owning section yet: the heading still renders in place
			// but cannot be listed in the agenda.
			w.logger.Warn("subsection precedes any section, omitted from agenda",
				slog.String("title", heading))
		} else {
			out.Outline = append(out.Outline, OutlineEntry{
				Section:    out.Sections[len(out.Sections)-1],
				Subsection: heading,
			})
		}
		out.Elements = append(out.Elements, Subsection{Title: heading})

	default:
		out.Elements = append(out.Elements, Paragraph{Para: para})
	}
}

func emuToCM(emu int64) float64 {
	return float64(emu) / emuPerInch * cmPerInch
}

// Compile-time interface compliance check.
var _ DocumentWalker = (*Walker)(nil)
