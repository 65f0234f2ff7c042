// Package pipeline turns a decoded word-processor document into LaTeX.
//
// This package handles the walking, classification, and rendering stages:
//   - Document walking (title detection, attendee accumulation, heading
//     classification, image and table capture)
//   - Text sanitization (LaTeX escaping, abbreviation expansion,
//     sentence dressing)
//   - Agenda outline extraction for the "Ordre du jour" block
//   - LaTeX rendering (preamble, headers, table of contents, attendee
//     columns, sections, styled paragraphs, tables, figures)
//
// Spell correction is handled separately by the correct package and PDF
// compilation by the textex package. The walker exposes the paragraphs it
// queued for correction so the caller can mutate them between Walk and
// Render; rendering reads run text at render time, so corrections applied
// in between show up in the output.
package pipeline
