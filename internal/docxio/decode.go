package docxio

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fumiama/go-docx"
)

// ErrOpenDocument indicates the input file could not be read as a word
// processor document.
var ErrOpenDocument = errors.New("cannot open document")

// Open decodes the document at path into the neutral model.
func Open(path string) (*Document, error) {
	f, err := os.Open(path) // #nosec G304 -- input path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenDocument, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenDocument, err)
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenDocument, err)
	}

	out := &Document{}
	for _, item := range doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			out.Items = append(out.Items, decodeParagraph(it))
		case *docx.Table:
			out.Items = append(out.Items, decodeTable(it))
		}
	}

	// go-docx keeps relationships private, so image targets and media come
	// straight from the archive.
	images, err := readImageMedia(path)
	if err != nil {
		return nil, err
	}
	out.images = images

	return out, nil
}

func decodeParagraph(p *docx.Paragraph) *Paragraph {
	out := &Paragraph{}
	if p.Properties != nil && p.Properties.Style != nil {
		out.Style = p.Properties.Style.Val
	}

	for _, child := range p.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}

		r := &Run{}
		if rp := run.RunProperties; rp != nil {
			r.Bold = rp.Bold != nil
			r.Italic = rp.Italic != nil
		}

		var text strings.Builder
		for _, rc := range run.Children {
			switch c := rc.(type) {
			case *docx.Text:
				text.WriteString(c.Text)
			case *docx.Drawing:
				if ref, ok := decodeDrawing(c); ok {
					out.Images = append(out.Images, ref)
				}
			}
		}
		r.Text = text.String()

		out.Runs = append(out.Runs, r)
	}

	return out
}

func decodeTable(t *docx.Table) *Table {
	out := &Table{}
	for _, row := range t.TableRows {
		var cells []*Cell
		for _, tc := range row.TableCells {
			cell := &Cell{}
			for _, p := range tc.Paragraphs {
				cell.Paragraphs = append(cell.Paragraphs, decodeParagraph(p))
			}
			cells = append(cells, cell)
		}
		out.Rows = append(out.Rows, cells)
	}
	return out
}

// decodeDrawing pulls the relationship id and extent out of an inline or
// anchored drawing. Drawings without a blip reference (shapes, charts) are
// skipped.
func decodeDrawing(d *docx.Drawing) (ImageRef, bool) {
	var ref ImageRef

	if d.Inline != nil {
		if e := d.Inline.Extent; e != nil {
			ref.CX, ref.CY = e.CX, e.CY
		}
		if g := d.Inline.Graphic; g != nil && g.GraphicData != nil && g.GraphicData.Pic != nil &&
			g.GraphicData.Pic.BlipFill != nil && g.GraphicData.Pic.BlipFill.Blip.Embed != "" {
			ref.RelID = g.GraphicData.Pic.BlipFill.Blip.Embed
		}
	} else if d.Anchor != nil {
		if e := d.Anchor.Extent; e != nil {
			ref.CX, ref.CY = e.CX, e.CY
		}
		if g := d.Anchor.Graphic; g != nil && g.GraphicData != nil && g.GraphicData.Pic != nil &&
			g.GraphicData.Pic.BlipFill != nil && g.GraphicData.Pic.BlipFill.Blip.Embed != "" {
			ref.RelID = g.GraphicData.Pic.BlipFill.Blip.Embed
		}
	}

	return ref, ref.RelID != ""
}
