// Package lang holds the closed set of languages and tones the tutor supports
// and the per-session tutor configuration built from them.
package lang

import (
	"fmt"
	"strings"
)

type Language string

const (
	Italian Language = "Italian"
	English Language = "English"
	French  Language = "French"
	Spanish Language = "Spanish"
	German  Language = "German"
)

// Supported lists the languages in the order the settings form offers them.
var Supported = []Language{Italian, English, French, Spanish, German}

type Tone string

const (
	Formal   Tone = "Formal"
	Informal Tone = "Informal"
)

var Tones = []Tone{Formal, Informal}

// UnsupportedLanguageError reports a language outside the supported set, or one
// that lacks data needed for a request (e.g. a canonical vocabulary example).
type UnsupportedLanguageError struct {
	Language string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported language: %q", e.Language)
}

// Parse resolves a user supplied language name case-insensitively.
func Parse(s string) (Language, error) {
	name := strings.TrimSpace(s)
	for _, l := range Supported {
		if strings.EqualFold(name, string(l)) {
			return l, nil
		}
	}
	return "", &UnsupportedLanguageError{Language: s}
}

func ParseTone(s string) (Tone, error) {
	name := strings.TrimSpace(s)
	for _, t := range Tones {
		if strings.EqualFold(name, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unsupported tone: %q", s)
}

// Pair is the (learn, clarification) language pair a request or store row belongs to.
type Pair struct {
	Learn         Language
	Clarification Language
}

func (p Pair) String() string {
	return string(p.Learn) + "/" + string(p.Clarification)
}

// Config is the tutor configuration taken from the settings form.
type Config struct {
	Learn         Language
	Clarification Language
	Tone          Tone
	Topics        string
}

func (c Config) Pair() Pair {
	return Pair{Learn: c.Learn, Clarification: c.Clarification}
}

// ParseConfig validates raw settings values and builds a Config.
func ParseConfig(learn, clarification, tone, topics string) (Config, error) {
	l, err := Parse(learn)
	if err != nil {
		return Config{}, fmt.Errorf("learn language: %w", err)
	}
	c, err := Parse(clarification)
	if err != nil {
		return Config{}, fmt.Errorf("clarification language: %w", err)
	}
	t, err := ParseTone(tone)
	if err != nil {
		return Config{}, err
	}
	return Config{Learn: l, Clarification: c, Tone: t, Topics: strings.TrimSpace(topics)}, nil
}
