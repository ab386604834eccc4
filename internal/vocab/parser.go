// Package vocab turns the model's vocabulary answer into typed entries.
//
// The model is asked for a literal such as
//
//	[["gehen", "andare", "Ich will heute gehen", "Voglio andare oggi"], ...]
//
// and nothing it returns is trusted until it has been parsed here.
package vocab

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// fieldsPerEntry is the arity of every inner array.
const fieldsPerEntry = 4

// MalformedResponseError is returned when the response is not a literal of the
// expected shape. No entries are returned alongside it.
type MalformedResponseError struct {
	Raw    string
	Reason string
	Offset int
}

func (e *MalformedResponseError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("malformed vocabulary response: %s (offset %d)", e.Reason, e.Offset)
	}
	return "malformed vocabulary response: " + e.Reason
}

// Parse converts raw model output into entries.
//
// A single top-level array of four strings is one entry; an array of such
// arrays is a list of entries in input order.
func Parse(raw string) ([]Entry, error) {
	p := &literalParser{src: raw}
	p.skipSpace()
	if p.eof() || p.peek() != '[' {
		return nil, p.fail("expected an array")
	}
	top, err := p.value()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, p.fail("unexpected trailing content")
	}

	items := top.([]any)
	if len(items) == 0 {
		return []Entry{}, nil
	}

	if _, single := items[0].(string); single {
		e, err := toEntry(items)
		if err != nil {
			return nil, &MalformedResponseError{Raw: raw, Reason: err.Error(), Offset: -1}
		}
		return []Entry{e}, nil
	}

	entries := make([]Entry, 0, len(items))
	for i, it := range items {
		row, ok := it.([]any)
		if !ok {
			return nil, &MalformedResponseError{Raw: raw, Reason: fmt.Sprintf("element %d is not an array", i), Offset: -1}
		}
		e, err := toEntry(row)
		if err != nil {
			return nil, &MalformedResponseError{Raw: raw, Reason: fmt.Sprintf("element %d: %v", i, err), Offset: -1}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func toEntry(row []any) (Entry, error) {
	if len(row) != fieldsPerEntry {
		return Entry{}, fmt.Errorf("want %d fields, got %d", fieldsPerEntry, len(row))
	}
	var f [fieldsPerEntry]string
	for i, v := range row {
		s, ok := v.(string)
		if !ok {
			return Entry{}, fmt.Errorf("field %d is not a string", i)
		}
		f[i] = s
	}
	return Entry{Term: f[0], Translation: f[1], Sentence: f[2], TranslatedSentence: f[3]}, nil
}

// literalParser reads nested arrays of quoted strings. Values are either
// string or []any.
type literalParser struct {
	src string
	pos int
}

func (p *literalParser) eof() bool  { return p.pos >= len(p.src) }
func (p *literalParser) peek() byte { return p.src[p.pos] }

func (p *literalParser) fail(reason string) error {
	return &MalformedResponseError{Raw: p.src, Reason: reason, Offset: p.pos}
}

func (p *literalParser) skipSpace() {
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *literalParser) value() (any, error) {
	p.skipSpace()
	if p.eof() {
		return nil, p.fail("unexpected end of input")
	}
	switch c := p.peek(); c {
	case '[':
		return p.list()
	case '"', '\'':
		return p.str(c)
	default:
		return nil, p.fail(fmt.Sprintf("unexpected character %q", c))
	}
}

func (p *literalParser) list() (any, error) {
	p.pos++ // [
	items := []any{}
	for {
		p.skipSpace()
		if p.eof() {
			return nil, p.fail("unterminated array")
		}
		if p.peek() == ']' {
			p.pos++
			return items, nil
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		items = append(items, v)

		p.skipSpace()
		if p.eof() {
			return nil, p.fail("unterminated array")
		}
		switch p.peek() {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return items, nil
		default:
			return nil, p.fail("expected ',' or ']'")
		}
	}
}

func (p *literalParser) str(quote byte) (any, error) {
	start := p.pos
	p.pos++ // opening quote
	var b strings.Builder
	for {
		if p.eof() {
			p.pos = start
			return nil, p.fail("unterminated string")
		}
		c := p.peek()
		switch {
		case c == quote:
			p.pos++
			return b.String(), nil
		case c == '\n':
			return nil, p.fail("newline in string")
		case c == '\\':
			if err := p.escape(&b); err != nil {
				return nil, err
			}
		default:
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			b.WriteRune(r)
			p.pos += size
		}
	}
}

func (p *literalParser) escape(b *strings.Builder) error {
	p.pos++ // backslash
	if p.eof() {
		return p.fail("unterminated escape")
	}
	c := p.peek()
	p.pos++
	switch c {
	case '\\', '\'', '"':
		b.WriteByte(c)
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case '\n':
		// line continuation
	case 'x':
		return p.hexEscape(b, 2)
	case 'u':
		return p.hexEscape(b, 4)
	case 'U':
		return p.hexEscape(b, 8)
	default:
		// unknown escapes keep the backslash
		b.WriteByte('\\')
		p.pos--
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		b.WriteRune(r)
		p.pos += size
	}
	return nil
}

func (p *literalParser) hexEscape(b *strings.Builder, digits int) error {
	if p.pos+digits > len(p.src) {
		return p.fail("truncated escape")
	}
	n, err := strconv.ParseUint(p.src[p.pos:p.pos+digits], 16, 32)
	if err != nil || !utf8.ValidRune(rune(n)) {
		return p.fail("invalid escape")
	}
	b.WriteRune(rune(n))
	p.pos += digits
	return nil
}
