package assets

import (
	"fmt"
	"strings"

	"github.com/alnah/go-docx2tex/internal/yamlutil"
)

// Rule is one ordered text rewrite: occurrences of From become To.
type Rule struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Resources bundles the parsed resource files used by rendering and
// correction.
type Resources struct {
	// Escapes is the LaTeX escape table, applied in declaration order.
	Escapes []Rule
	// Abbreviations expands informal shorthand (whole-word, case-insensitive).
	Abbreviations []Rule
	// Whitelist lists terms the correction service must leave untouched.
	Whitelist []string
	// Prompt is the correction prompt template. It references the text to
	// correct as {text} and the whitelist as {whitelist}.
	Prompt string
}

// PromptTextPlaceholder must appear in every prompt template; the correction
// client substitutes the batch text for it. PromptWhitelistPlaceholder is
// optional and receives the comma-separated whitelist.
const (
	PromptTextPlaceholder      = "{text}"
	PromptWhitelistPlaceholder = "{whitelist}"
)

type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

type wordFile struct {
	Words []string `yaml:"words"`
}

// LoadResources reads and parses all resource files through the given loader.
func LoadResources(loader Loader) (*Resources, error) {
	escapes, err := loadRules(loader, EscapesFile)
	if err != nil {
		return nil, err
	}

	abbreviations, err := loadRules(loader, AbbreviationsFile)
	if err != nil {
		return nil, err
	}

	whitelist, err := loadWords(loader, WhitelistFile)
	if err != nil {
		return nil, err
	}

	promptRaw, err := loader.Load(PromptFile)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", PromptFile, err)
	}
	prompt := string(promptRaw)
	if !strings.Contains(prompt, PromptTextPlaceholder) {
		return nil, fmt.Errorf("%w: %s is missing the %s placeholder",
			ErrMalformedResource, PromptFile, PromptTextPlaceholder)
	}

	return &Resources{
		Escapes:       escapes,
		Abbreviations: abbreviations,
		Whitelist:     whitelist,
		Prompt:        prompt,
	}, nil
}

// LoadDefaults parses the embedded resource files only.
func LoadDefaults() (*Resources, error) {
	return LoadResources(NewEmbeddedLoader())
}

func loadRules(loader Loader, name string) ([]Rule, error) {
	raw, err := loader.Load(name)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}

	var f ruleFile
	if err := yamlutil.UnmarshalStrict(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedResource, name, err)
	}

	for i, r := range f.Rules {
		if r.From == "" {
			return nil, fmt.Errorf("%w: %s: rule %d has an empty \"from\"",
				ErrMalformedResource, name, i)
		}
	}

	return f.Rules, nil
}

func loadWords(loader Loader, name string) ([]string, error) {
	raw, err := loader.Load(name)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}

	var f wordFile
	if err := yamlutil.UnmarshalStrict(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedResource, name, err)
	}

	return f.Words, nil
}
