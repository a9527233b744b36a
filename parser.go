package tempearly

import "fmt"

// Parser drives both statement and expression grammars over the
// lexer's flat token stream, mixing Template-mode tokens (Text,
// tag-open/close) with Script-mode tokens (keywords, identifiers,
// literals, symbols), via a Peek/Match/Consume combinator set, against
// Tempearly's fixed statement grammar (if/while/for/try/break/
// continue/return/throw) rather than a pluggable tag system.
type Parser struct {
	name   string
	tokens []*Token
	pos    int
}

func newParser(name string, tokens []*Token) *Parser {
	return &Parser{name: name, tokens: tokens}
}

// Peek returns the current token without advancing.
func (p *Parser) Peek() *Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

// PeekN returns the token n positions ahead of current.
func (p *Parser) PeekN(n int) *Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) advance() *Token {
	t := p.Peek()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

// MatchType consumes the current token if it has type t.
func (p *Parser) MatchType(t TokenType) (*Token, bool) {
	if p.Peek().Typ == t {
		return p.advance(), true
	}
	return nil, false
}

// Match consumes the current token if it is a symbol/keyword with
// value val.
func (p *Parser) Match(val string) (*Token, bool) {
	tok := p.Peek()
	if (tok.Typ == TokenSymbol || tok.Typ == TokenKeyword) && tok.Val == val {
		return p.advance(), true
	}
	return nil, false
}

// Consume requires the current token to have type t, else returns a
// SyntaxError-flavored RuntimeError.
func (p *Parser) Consume(t TokenType) (*Token, error) {
	if tok, ok := p.MatchType(t); ok {
		return tok, nil
	}
	return nil, p.errorf("expected %s, found %s", t, p.Peek().Typ)
}

// ConsumeVal requires the current token to be the symbol/keyword val.
func (p *Parser) ConsumeVal(val string) (*Token, error) {
	if tok, ok := p.Match(val); ok {
		return tok, nil
	}
	return nil, p.errorf("expected %q, found %q", val, p.Peek().Val)
}

func (p *Parser) errorf(format string, args ...any) error {
	tok := p.Peek()
	return newError("Parser", p.name, tok.Line, tok.Col, ErrSyntax, format, args...)
}

func (p *Parser) atEOF() bool { return p.Peek().Typ == TokenEOF }

// isKeyword reports whether the current token is the given keyword.
func (p *Parser) isKeyword(word string) bool {
	tok := p.Peek()
	return tok.Typ == TokenKeyword && tok.Val == word
}

// parse is the template-level entry point: parses the whole token
// stream into one BlockStmt, the template's root document node.
func parse(name string, tokens []*Token) (*BlockStmt, error) {
	p := newParser(name, tokens)
	stmts, stop, err := p.parseStatements()
	if err != nil {
		return nil, err
	}
	if stop != "" {
		return nil, p.errorf("unexpected %q at top level", stop)
	}
	if !p.atEOF() {
		return nil, fmt.Errorf("parser did not consume entire input")
	}
	return &BlockStmt{Stmts: stmts}, nil
}
