// Package docx2tex converts DOCX meeting minutes to LaTeX, and optionally
// compiles the result to PDF.
//
// # Quick Start
//
// Create a converter, convert a document, and close when done:
//
//	conv, err := docx2tex.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, docx2tex.Request{
//	    InputPath: "PV RC 7 - Anno LIX - 2025-01-27.docx",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.TeXPath, result.PDFPath)
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Document decoding (body paragraphs, runs, tables, inline images)
//  2. Walk: classification into titles, sections, subsections, attendee
//     lists, tables, images, and body paragraphs
//  3. Optional spell correction of body paragraphs through an external
//     chat-completion API (batched, best-effort)
//  4. LaTeX rendering (escaping, abbreviation expansion, agenda, logo page)
//  5. Optional PDF compilation via pdflatex/lualatex with missing-package
//     retries
//
// # Document Convention
//
// Input documents follow one fixed convention: the first non-empty
// paragraph is the document title, a paragraph starting with "Présents"
// opens the attendee list (one name per paragraph, closed by an empty
// paragraph or one starting with "__"), sections are numbered "1)" and
// subsections lettered "a)". Titles shaped like
// "PV RC <n> - Anno <roman> - <yyyy-mm-dd>" produce structured page
// headers with the meeting number and date.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := docx2tex.NewConverter(
//	    docx2tex.WithConfigFile("docx2tex.yaml"),
//	    docx2tex.WithOutputDir("/srv/minutes"),
//	    docx2tex.WithResourcesDir("/etc/docx2tex"),
//	)
//
// The resources directory may override any of the editable resource files
// (see ResourceFiles); absent files fall back to the embedded defaults.
//
// # Output Layout
//
// Results are written under the first writable output root (explicit
// directory, executable directory, working directory, ~/Documents/
// PV_Convertis, system temp directory):
//
//	<root>/LaTeX/<name>.tex
//	<root>/LaTeX/images/<image files>
//	<root>/PDF/<name>.pdf
//
// # Parallel Processing
//
// For batch conversion, use ConverterPool to bound concurrent conversions:
//
//	pool := docx2tex.NewConverterPool(4)
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Release(conv)
//	result, err := conv.Convert(ctx, req)
//
// # External Requirements
//
// PDF compilation requires a LaTeX engine (pdflatex or lualatex) on PATH;
// without one, conversion still produces the .tex source. Spell correction
// requires an API key in the environment variable named by the
// configuration (COHERE_API_KEY by default); without it, correction is
// skipped and texts pass through unchanged.
package docx2tex
