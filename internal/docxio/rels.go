package docxio

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"
)

const documentRelsPath = "word/_rels/document.xml.rels"

// relationships models the document part's relationship table.
type relationships struct {
	XMLName       xml.Name       `xml:"Relationships"`
	Relationships []relationship `xml:"Relationship"`
}

type relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// parseRelationships decodes a document.xml.rels stream.
func parseRelationships(r io.Reader) ([]relationship, error) {
	var rels relationships
	if err := xml.NewDecoder(r).Decode(&rels); err != nil {
		return nil, fmt.Errorf("parsing relationships: %w", err)
	}
	return rels.Relationships, nil
}

// isImageRel reports whether a relationship points at embedded media.
func isImageRel(rel relationship) bool {
	return strings.Contains(strings.ToLower(rel.Type), "image")
}

// mediaPath resolves a relationship target to its archive entry name.
// Targets are relative to the word/ part ("media/image1.png"), occasionally
// package-absolute ("/word/media/image1.png").
func mediaPath(target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Clean("word/" + target)
}

// readImageMedia opens the archive at filePath and loads every image the
// document part references, keyed by relationship id.
func readImageMedia(filePath string) (map[string]mediaEntry, error) {
	archive, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenDocument, err)
	}
	defer func() { _ = archive.Close() }()

	entries := make(map[string]*zip.File, len(archive.File))
	for _, f := range archive.File {
		entries[f.Name] = f
	}

	relsFile, ok := entries[documentRelsPath]
	if !ok {
		// No relationship part means no embedded images.
		return nil, nil
	}

	rc, err := relsFile.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", documentRelsPath, err)
	}
	rels, err := parseRelationships(rc)
	_ = rc.Close()
	if err != nil {
		return nil, err
	}

	images := make(map[string]mediaEntry)
	for _, rel := range rels {
		if !isImageRel(rel) {
			continue
		}
		entry, ok := entries[mediaPath(rel.Target)]
		if !ok {
			continue
		}
		data, err := readZipFile(entry)
		if err != nil {
			return nil, fmt.Errorf("reading media %s: %w", rel.Target, err)
		}
		images[rel.ID] = mediaEntry{name: path.Base(rel.Target), data: data}
	}

	if len(images) == 0 {
		return nil, nil
	}
	return images, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}
