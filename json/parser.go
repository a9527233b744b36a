package json

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// parser is a straightforward recursive-descent reader over a rune
// stream, one rune of lookahead at a time — the same "peek, consume,
// reject" discipline mcvoid-json's character-driven automaton uses,
// reshaped into ordinary recursive descent so each JSON production
// (value/object/array/string/number) is one method instead of one
// state-table entry.
type parser struct {
	r    *bufio.Reader
	pos  int
	peek rune
	eof  bool
}

func newParser(r io.Reader) *parser {
	p := &parser{r: bufio.NewReader(r)}
	p.advance()
	return p
}

func (p *parser) advance() {
	r, _, err := p.r.ReadRune()
	if err != nil {
		p.eof = true
		p.peek = 0
		return
	}
	if r == utf8.RuneError {
		p.eof = true
		p.peek = 0
		return
	}
	p.pos++
	p.peek = r
}

func (p *parser) skipSpace() {
	for !p.eof && (p.peek == ' ' || p.peek == '\t' || p.peek == '\n' || p.peek == '\r') {
		p.advance()
	}
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s (at byte %d)", ErrParse, fmt.Sprintf(format, args...), p.pos)
}

// Parse reads exactly one JSON value from r.
func Parse(r io.Reader) (*Value, error) {
	p := newParser(r)
	p.skipSpace()
	v, err := p.parseValue()
	if err != nil {
		return &Value{}, err
	}
	p.skipSpace()
	if !p.eof {
		return &Value{}, p.errorf("trailing data after value")
	}
	return v, nil
}

// ParseString reads exactly one JSON value from s.
func ParseString(s string) (*Value, error) {
	return Parse(strings.NewReader(s))
}

// ParseBytes reads exactly one JSON value from b.
func ParseBytes(b []byte) (*Value, error) {
	return ParseString(string(b))
}

func (p *parser) parseValue() (*Value, error) {
	p.skipSpace()
	if p.eof {
		return nil, p.errorf("unexpected end of input")
	}
	switch {
	case p.peek == '{':
		return p.parseObject()
	case p.peek == '[':
		return p.parseArray()
	case p.peek == '"':
		s, err := p.parseStringLiteral()
		if err != nil {
			return nil, err
		}
		return NewString(s), nil
	case p.peek == 't' || p.peek == 'f':
		return p.parseBool()
	case p.peek == 'n':
		return p.parseNull()
	case p.peek == '-' || (p.peek >= '0' && p.peek <= '9'):
		return p.parseNumber()
	default:
		return nil, p.errorf("unexpected character %q", p.peek)
	}
}

func (p *parser) expect(r rune) error {
	if p.eof || p.peek != r {
		return p.errorf("expected %q", r)
	}
	p.advance()
	return nil
}

func (p *parser) parseObject() (*Value, error) {
	if err := p.expect('{'); err != nil {
		return nil, err
	}
	var pairs []Pair
	p.skipSpace()
	if !p.eof && p.peek == '}' {
		p.advance()
		return NewObject(pairs), nil
	}
	for {
		p.skipSpace()
		if p.eof || p.peek != '"' {
			return nil, p.errorf("expected string key")
		}
		key, err := p.parseStringLiteral()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if err := p.expect(':'); err != nil {
			return nil, err
		}
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, Pair{Key: key, Value: val})
		p.skipSpace()
		if p.eof {
			return nil, p.errorf("unterminated object")
		}
		if p.peek == ',' {
			p.advance()
			continue
		}
		if p.peek == '}' {
			p.advance()
			return NewObject(pairs), nil
		}
		return nil, p.errorf("expected ',' or '}'")
	}
}

func (p *parser) parseArray() (*Value, error) {
	if err := p.expect('['); err != nil {
		return nil, err
	}
	var items []*Value
	p.skipSpace()
	if !p.eof && p.peek == ']' {
		p.advance()
		return NewArray(items), nil
	}
	for {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
		p.skipSpace()
		if p.eof {
			return nil, p.errorf("unterminated array")
		}
		if p.peek == ',' {
			p.advance()
			continue
		}
		if p.peek == ']' {
			p.advance()
			return NewArray(items), nil
		}
		return nil, p.errorf("expected ',' or ']'")
	}
}

func (p *parser) parseStringLiteral() (string, error) {
	if err := p.expect('"'); err != nil {
		return "", err
	}
	var b strings.Builder
	for {
		if p.eof {
			return "", p.errorf("unterminated string")
		}
		switch p.peek {
		case '"':
			p.advance()
			return b.String(), nil
		case '\\':
			p.advance()
			if p.eof {
				return "", p.errorf("unterminated escape")
			}
			switch p.peek {
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			case '/':
				b.WriteByte('/')
			case 'b':
				b.WriteByte('\b')
			case 'f':
				b.WriteByte('\f')
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case 'u':
				r, err := p.parseUnicodeEscape()
				if err != nil {
					return "", err
				}
				b.WriteRune(r)
				continue
			default:
				return "", p.errorf("invalid escape \\%c", p.peek)
			}
			p.advance()
		default:
			b.WriteRune(p.peek)
			p.advance()
		}
	}
}

func (p *parser) parseUnicodeEscape() (rune, error) {
	var digits [4]rune
	for i := 0; i < 4; i++ {
		p.advance()
		if p.eof {
			return 0, p.errorf("truncated \\u escape")
		}
		digits[i] = p.peek
	}
	p.advance()
	n, err := strconv.ParseInt(string(digits[:]), 16, 32)
	if err != nil {
		return 0, p.errorf("invalid \\u escape")
	}
	return rune(n), nil
}

func (p *parser) parseBool() (*Value, error) {
	if p.peek == 't' {
		if err := p.expectLiteral("true"); err != nil {
			return nil, err
		}
		return NewBool(true), nil
	}
	if err := p.expectLiteral("false"); err != nil {
		return nil, err
	}
	return NewBool(false), nil
}

func (p *parser) parseNull() (*Value, error) {
	if err := p.expectLiteral("null"); err != nil {
		return nil, err
	}
	return NewNull(), nil
}

func (p *parser) expectLiteral(lit string) error {
	for _, want := range lit {
		if p.eof || p.peek != want {
			return p.errorf("expected literal %q", lit)
		}
		p.advance()
	}
	return nil
}

func (p *parser) parseNumber() (*Value, error) {
	var b strings.Builder
	isFloat := false
	if p.peek == '-' {
		b.WriteRune(p.peek)
		p.advance()
	}
	for !p.eof && p.peek >= '0' && p.peek <= '9' {
		b.WriteRune(p.peek)
		p.advance()
	}
	if !p.eof && p.peek == '.' {
		isFloat = true
		b.WriteRune(p.peek)
		p.advance()
		for !p.eof && p.peek >= '0' && p.peek <= '9' {
			b.WriteRune(p.peek)
			p.advance()
		}
	}
	if !p.eof && (p.peek == 'e' || p.peek == 'E') {
		isFloat = true
		b.WriteRune(p.peek)
		p.advance()
		if !p.eof && (p.peek == '+' || p.peek == '-') {
			b.WriteRune(p.peek)
			p.advance()
		}
		for !p.eof && p.peek >= '0' && p.peek <= '9' {
			b.WriteRune(p.peek)
			p.advance()
		}
	}
	text := b.String()
	if text == "" || text == "-" {
		return nil, p.errorf("invalid number")
	}
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, p.errorf("invalid number %q", text)
		}
		return NewNumber(f), nil
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, p.errorf("invalid integer %q", text)
	}
	return NewInteger(i), nil
}
