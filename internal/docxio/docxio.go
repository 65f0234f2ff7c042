// Package docxio reads the parts of a .docx archive the converter needs:
// the body element stream with run formatting, embedded image references,
// and the media files they resolve to.
package docxio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Item is one body-level element, either *Paragraph or *Table.
type Item interface {
	isItem()
}

// Run is a span of paragraph text sharing one character format.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
}

// ImageRef is an image anchored in a paragraph, identified by its
// relationship id. Extents are in EMU (914400 per inch); zero means the
// document gave no size.
type ImageRef struct {
	RelID string
	CX    int64
	CY    int64
}

// Paragraph is a body paragraph: runs in order plus any anchored images.
type Paragraph struct {
	Style  string
	Runs   []*Run
	Images []ImageRef
}

func (*Paragraph) isItem() {}

// Text returns the runs joined without separators, trimmed of surrounding
// whitespace. This is the text classification and correction operate on.
func (p *Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return strings.TrimSpace(b.String())
}

// SetText replaces the paragraph content with a single run, dropping any
// previous formatting splits.
func (p *Paragraph) SetText(text string) {
	p.Runs = []*Run{{Text: text}}
}

// Cell is one table cell; its paragraphs keep their run formatting.
type Cell struct {
	Paragraphs []*Paragraph
}

// Table is a body table as a row-major cell grid.
type Table struct {
	Rows [][]*Cell
}

func (*Table) isItem() {}

// mediaEntry is an image file carried inside the archive.
type mediaEntry struct {
	name string // base file name, e.g. image1.png
	data []byte
}

// Document is the decoded body stream plus the media its images reference.
type Document struct {
	Items  []Item
	images map[string]mediaEntry // relationship id → media file
}

// HasImages reports whether the document references embedded images.
func (d *Document) HasImages() bool {
	return len(d.images) > 0
}

// ExtractImages writes every image the document references into dir and
// returns relationship id → written file path. The directory must exist.
func (d *Document) ExtractImages(dir string) (map[string]string, error) {
	saved := make(map[string]string, len(d.images))
	for relID, m := range d.images {
		target := filepath.Join(dir, m.name)
		if err := os.WriteFile(target, m.data, 0o644); err != nil { // #nosec G306 -- images feed the LaTeX build
			return nil, fmt.Errorf("extracting image %s: %w", m.name, err)
		}
		saved[relID] = target
	}
	return saved, nil
}
