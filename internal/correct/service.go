// Package correct sends document paragraphs to a language-model API for
// spelling and grammar correction, in batches, and rewrites the paragraph
// runs with the corrected text.
//
// Correction is best-effort: a failed or misaligned API reply leaves the
// affected batch untouched and the conversion proceeds with the original
// text. Only context cancellation aborts the pass.
package correct

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-docx2tex/internal/assets"
	"github.com/alnah/go-docx2tex/internal/docxio"
)

// defaultBatchSize and defaultSeparator back missing options.
const (
	defaultBatchSize = 100
	defaultSeparator = "#SEP#"
)

// ParagraphCorrector defines the contract for batch paragraph correction.
type ParagraphCorrector interface {
	CorrectParagraphs(ctx context.Context, paragraphs []*docxio.Paragraph) error
}

// Options carries the correction settings, normally taken from
// configuration and the resource files.
type Options struct {
	// Prompt is the template sent to the model. The batch text replaces
	// {text}; the whitelist, joined with commas, replaces {whitelist}.
	Prompt string

	// Whitelist lists terms the model must leave untouched.
	Whitelist []string

	// BatchSize caps how many paragraphs join one API call.
	BatchSize int

	// Separator joins batched paragraphs; the reply must echo it between
	// corrected texts for the batch to realign.
	Separator string
}

// Service batches paragraphs through a correction client.
type Service struct {
	client    Client
	prompt    string
	whitelist []string
	batchSize int
	separator string
	logger    *slog.Logger
}

// NewService returns a Service. Zero options fall back to defaults; a nil
// logger falls back to slog.Default.
func NewService(client Client, opts Options, logger *slog.Logger) *Service {
	if opts.BatchSize < 1 {
		opts.BatchSize = defaultBatchSize
	}
	if opts.Separator == "" {
		opts.Separator = defaultSeparator
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client:    client,
		prompt:    opts.Prompt,
		whitelist: opts.Whitelist,
		batchSize: opts.BatchSize,
		separator: opts.Separator,
		logger:    logger,
	}
}

// CorrectParagraphs corrects the non-empty paragraphs in place, batching
// them to bound API calls. Failed batches keep their original text; the
// only returned error is context cancellation.
func (s *Service) CorrectParagraphs(ctx context.Context, paragraphs []*docxio.Paragraph) error {
	valid := make([]*docxio.Paragraph, 0, len(paragraphs))
	for _, p := range paragraphs {
		if p.Text() != "" {
			valid = append(valid, p)
		}
	}
	if len(valid) == 0 {
		return nil
	}

	totalBatches := (len(valid) + s.batchSize - 1) / s.batchSize
	for start, num := 0, 1; start < len(valid); start, num = start+s.batchSize, num+1 {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := min(start+s.batchSize, len(valid))
		s.logger.Info("correcting paragraph batch",
			slog.Int("batch", num),
			slog.Int("batches", totalBatches),
			slog.Int("paragraphs", end-start))
		s.correctBatch(ctx, valid[start:end])
	}

	return nil
}

// correctBatch joins the batch texts, asks the client for corrections, and
// applies them when the reply splits back into exactly one text per
// paragraph. Anything else leaves the batch untouched.
func (s *Service) correctBatch(ctx context.Context, batch []*docxio.Paragraph) {
	texts := make([]string, len(batch))
	for i, p := range batch {
		texts[i] = p.Text()
	}

	corrected, err := s.client.Correct(ctx, s.buildPrompt(strings.Join(texts, s.separator)))
	if err != nil {
		s.logger.Warn("correction call failed, keeping original text", slog.Any("error", err))
		return
	}

	parts := strings.Split(corrected, s.separator)
	if len(parts) != len(batch) {
		s.logger.Warn("correction reply does not align with batch, keeping original text",
			slog.Int("sent", len(batch)),
			slog.Int("received", len(parts)))
		return
	}

	for i, p := range batch {
		applyCorrection(p, strings.TrimSpace(parts[i]))
	}
}

func (s *Service) buildPrompt(text string) string {
	whitelist := "aucun"
	if len(s.whitelist) > 0 {
		whitelist = strings.Join(s.whitelist, ", ")
	}
	prompt := strings.ReplaceAll(s.prompt, assets.PromptTextPlaceholder, text)
	return strings.ReplaceAll(prompt, assets.PromptWhitelistPlaceholder, whitelist)
}

// applyCorrection rewrites the paragraph runs with the corrected text. A
// single run is replaced directly; several runs keep their styling, each
// taking a share of the new text proportional to its old length.
func applyCorrection(p *docxio.Paragraph, text string) {
	switch len(p.Runs) {
	case 0:
		p.SetText(text)
	case 1:
		p.Runs[0].Text = text
	default:
		distributeAcrossRuns(p.Runs, text)
	}
}

// distributeAcrossRuns splits text across runs by rune count, so styled
// spans keep roughly their original share. The last run takes whatever
// remains after truncating the earlier shares.
func distributeAcrossRuns(runs []*docxio.Run, text string) {
	total := 0
	for _, run := range runs {
		total += utf8.RuneCountInString(run.Text)
	}
	if total == 0 {
		runs[0].Text = text
		for _, run := range runs[1:] {
			run.Text = ""
		}
		return
	}

	remaining := []rune(text)
	newLen := len(remaining)
	for i, run := range runs {
		if len(remaining) == 0 {
			run.Text = ""
			continue
		}
		if i == len(runs)-1 {
			run.Text = string(remaining)
			remaining = nil
			continue
		}

		share := newLen * utf8.RuneCountInString(run.Text) / total
		if share > len(remaining) {
			share = len(remaining)
		}
		run.Text = string(remaining[:share])
		remaining = remaining[share:]
	}
}

// Compile-time interface compliance check.
var _ ParagraphCorrector = (*Service)(nil)
