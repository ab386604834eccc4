package prompt

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"gopkg.in/yaml.v3"

	"ai-teacher/internal/lang"
)

// overrides is the shape of the optional prompts file. Empty templates keep
// the built-in text.
type overrides struct {
	System        string             `yaml:"system"`
	Correction    string             `yaml:"correction"`
	Clarification string             `yaml:"clarification"`
	Vocabulary    string             `yaml:"vocabulary"`
	Examples      map[string]Example `yaml:"examples"`
}

// Load returns a Builder with templates and examples overridden by the YAML
// file at path. An empty path yields the defaults.
func Load(path string) (*Builder, error) {
	b := New()
	if path == "" {
		return b, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open prompts file: %w", err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)
	if err := b.apply(f); err != nil {
		return nil, fmt.Errorf("prompts file %s: %w", path, err)
	}
	return b, nil
}

func (b *Builder) apply(r io.Reader) error {
	var o overrides
	if err := yaml.NewDecoder(r).Decode(&o); err != nil && err != io.EOF {
		return fmt.Errorf("decode: %w", err)
	}

	replace := []struct {
		name   string
		text   string
		target **template.Template
		sample any
	}{
		{"system", o.System, &b.system, systemData{}},
		{"correction", o.Correction, &b.correction, correctionData{}},
		{"clarification", o.Clarification, &b.clarification, clarificationData{}},
		{"vocabulary", o.Vocabulary, &b.vocabulary, vocabularyData{}},
	}
	for _, tpl := range replace {
		if tpl.text == "" {
			continue
		}
		t, err := parse(tpl.name, tpl.text)
		if err != nil {
			return fmt.Errorf("parse %s template: %w", tpl.name, err)
		}
		// catches references to fields the template data does not have
		if _, err := render(t, tpl.sample); err != nil {
			return err
		}
		*tpl.target = t
	}

	for name, ex := range o.Examples {
		l, err := lang.Parse(name)
		if err != nil {
			return fmt.Errorf("example: %w", err)
		}
		target, err := lang.Parse(string(ex.Target))
		if err != nil {
			return fmt.Errorf("example %s target: %w", l, err)
		}
		if ex.Literal == "" {
			return fmt.Errorf("example %s: empty literal", l)
		}
		b.examples[l] = Example{Literal: ex.Literal, Target: target}
	}
	return nil
}
