package correct

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-docx2tex/internal/docxio"
)

// fakeClient replays canned replies and records prompts.
type fakeClient struct {
	prompts []string
	replies []string
	err     error
}

func (f *fakeClient) Correct(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	reply := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	return reply, nil
}

func singleRun(text string) *docxio.Paragraph {
	return &docxio.Paragraph{Runs: []*docxio.Run{{Text: text}}}
}

const testPrompt = "Corrige : {text} (garde : {whitelist})"

// ---------------------------------------------------------------------------
// TestCorrectParagraphs - Batch flow
// ---------------------------------------------------------------------------

func TestCorrectParagraphs(t *testing.T) {
	t.Parallel()

	t.Run("applies aligned corrections", func(t *testing.T) {
		t.Parallel()

		client := &fakeClient{replies: []string{" Premier corrigé. #SEP# Second corrigé. "}}
		svc := NewService(client, Options{
			Prompt:    testPrompt,
			Whitelist: []string{"Anno", "CBB"},
			Separator: "#SEP#",
		}, nil)

		paras := []*docxio.Paragraph{singleRun("premier texte"), singleRun("second texte")}
		if err := svc.CorrectParagraphs(context.Background(), paras); err != nil {
			t.Fatalf("CorrectParagraphs() error = %v, want nil", err)
		}

		if got := paras[0].Text(); got != "Premier corrigé." {
			t.Errorf("paras[0] = %q", got)
		}
		if got := paras[1].Text(); got != "Second corrigé." {
			t.Errorf("paras[1] = %q", got)
		}

		if len(client.prompts) != 1 {
			t.Fatalf("len(prompts) = %d, want 1", len(client.prompts))
		}
		prompt := client.prompts[0]
		if !strings.Contains(prompt, "premier texte#SEP#second texte") {
			t.Errorf("prompt missing joined batch: %q", prompt)
		}
		if !strings.Contains(prompt, "garde : Anno, CBB") {
			t.Errorf("prompt missing whitelist: %q", prompt)
		}
	})

	t.Run("empty whitelist renders as aucun", func(t *testing.T) {
		t.Parallel()

		client := &fakeClient{replies: []string{"texte"}}
		svc := NewService(client, Options{Prompt: testPrompt}, nil)

		if err := svc.CorrectParagraphs(context.Background(), []*docxio.Paragraph{singleRun("texte")}); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(client.prompts[0], "garde : aucun") {
			t.Errorf("prompt = %q", client.prompts[0])
		}
	})

	t.Run("misaligned reply keeps originals", func(t *testing.T) {
		t.Parallel()

		client := &fakeClient{replies: []string{"un seul texte sans séparateur"}}
		svc := NewService(client, Options{Prompt: testPrompt, Separator: "#SEP#"}, nil)

		paras := []*docxio.Paragraph{singleRun("premier"), singleRun("second")}
		if err := svc.CorrectParagraphs(context.Background(), paras); err != nil {
			t.Fatal(err)
		}
		if paras[0].Text() != "premier" || paras[1].Text() != "second" {
			t.Errorf("paragraphs changed: %q, %q", paras[0].Text(), paras[1].Text())
		}
	})

	t.Run("API failure keeps originals", func(t *testing.T) {
		t.Parallel()

		client := &fakeClient{err: errors.New("boom")}
		svc := NewService(client, Options{Prompt: testPrompt}, nil)

		paras := []*docxio.Paragraph{singleRun("texte original")}
		if err := svc.CorrectParagraphs(context.Background(), paras); err != nil {
			t.Fatalf("CorrectParagraphs() error = %v, want nil", err)
		}
		if got := paras[0].Text(); got != "texte original" {
			t.Errorf("paragraph = %q, want original", got)
		}
	})

	t.Run("batches split by size", func(t *testing.T) {
		t.Parallel()

		client := &fakeClient{replies: []string{"a#SEP#b", "c"}}
		svc := NewService(client, Options{Prompt: testPrompt, BatchSize: 2, Separator: "#SEP#"}, nil)

		paras := []*docxio.Paragraph{singleRun("un"), singleRun("deux"), singleRun("trois")}
		if err := svc.CorrectParagraphs(context.Background(), paras); err != nil {
			t.Fatal(err)
		}
		if len(client.prompts) != 2 {
			t.Fatalf("len(prompts) = %d, want 2", len(client.prompts))
		}
		if paras[2].Text() != "c" {
			t.Errorf("paras[2] = %q, want c", paras[2].Text())
		}
	})

	t.Run("empty paragraphs are not sent", func(t *testing.T) {
		t.Parallel()

		client := &fakeClient{replies: []string{"ok"}}
		svc := NewService(client, Options{Prompt: testPrompt}, nil)

		paras := []*docxio.Paragraph{singleRun("  "), {}}
		if err := svc.CorrectParagraphs(context.Background(), paras); err != nil {
			t.Fatal(err)
		}
		if len(client.prompts) != 0 {
			t.Errorf("len(prompts) = %d, want 0", len(client.prompts))
		}
	})

	t.Run("canceled context aborts", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		client := &fakeClient{replies: []string{"x"}}
		svc := NewService(client, Options{Prompt: testPrompt}, nil)

		err := svc.CorrectParagraphs(ctx, []*docxio.Paragraph{singleRun("texte")})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("CorrectParagraphs() error = %v, want context.Canceled", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestApplyCorrection - Run rewriting
// ---------------------------------------------------------------------------

func TestApplyCorrection(t *testing.T) {
	t.Parallel()

	t.Run("single run replaced directly", func(t *testing.T) {
		t.Parallel()

		p := &docxio.Paragraph{Runs: []*docxio.Run{{Text: "ancien", Bold: true}}}
		applyCorrection(p, "nouveau")
		if p.Runs[0].Text != "nouveau" || !p.Runs[0].Bold {
			t.Errorf("run = %+v", p.Runs[0])
		}
	})

	t.Run("no runs creates one", func(t *testing.T) {
		t.Parallel()

		p := &docxio.Paragraph{}
		applyCorrection(p, "texte")
		if p.Text() != "texte" {
			t.Errorf("Text() = %q", p.Text())
		}
	})

	t.Run("proportional split preserves styling boundaries", func(t *testing.T) {
		t.Parallel()

		p := &docxio.Paragraph{Runs: []*docxio.Run{
			{Text: "éé", Italic: true},
			{Text: "aa"},
		}}
		applyCorrection(p, "ûûûûûû")

		if got := p.Runs[0].Text; got != "ûûû" {
			t.Errorf("Runs[0] = %q, want ûûû", got)
		}
		if got := p.Runs[1].Text; got != "ûûû" {
			t.Errorf("Runs[1] = %q, want ûûû", got)
		}
		if !p.Runs[0].Italic {
			t.Error("Runs[0] lost italic")
		}
	})

	t.Run("last run takes the remainder", func(t *testing.T) {
		t.Parallel()

		p := &docxio.Paragraph{Runs: []*docxio.Run{
			{Text: "abc"},
			{Text: "d"},
		}}
		applyCorrection(p, "corrigé")
		// 7 runes * 3/4 = 5 for the first run, the rest for the last.
		if got := p.Runs[0].Text; got != "corri" {
			t.Errorf("Runs[0] = %q, want corri", got)
		}
		if got := p.Runs[1].Text; got != "gé" {
			t.Errorf("Runs[1] = %q, want gé", got)
		}
	})

	t.Run("all-empty runs give everything to the first", func(t *testing.T) {
		t.Parallel()

		p := &docxio.Paragraph{Runs: []*docxio.Run{{Text: ""}, {Text: ""}}}
		applyCorrection(p, "tout")
		if p.Runs[0].Text != "tout" || p.Runs[1].Text != "" {
			t.Errorf("runs = %q, %q", p.Runs[0].Text, p.Runs[1].Text)
		}
	})

	t.Run("short correction empties trailing runs", func(t *testing.T) {
		t.Parallel()

		p := &docxio.Paragraph{Runs: []*docxio.Run{
			{Text: "aaaaaaaaaa"},
			{Text: "bbbbbbbbbb"},
			{Text: "cccccccccc"},
		}}
		applyCorrection(p, "ab")
		if p.Text() != "ab" {
			t.Errorf("Text() = %q, want ab", p.Text())
		}
	})
}
