package tempearly

import "io"

// Template is a parsed Tempearly source file: the lexed token stream
// plus its parsed root BlockStmt. Execute drives the tree-walking
// evaluator directly against an Interpreter/Frame pair.
type Template struct {
	Name   string
	Source string
	tokens []*Token
	root   *BlockStmt
}

// ParseString parses src as an anonymous, in-memory template (used by
// the REPL and tests).
func ParseString(src string) (*Template, error) {
	return Parse("<string>", src)
}

// Parse lexes and parses src, named for diagnostics as name.
func Parse(name, src string) (*Template, error) {
	tokens, err := lex(name, src)
	if err != nil {
		return nil, err
	}
	root, err := parse(name, tokens)
	if err != nil {
		return nil, err
	}
	return &Template{Name: name, Source: src, tokens: tokens, root: root}, nil
}

// Execute runs the template's statements against i, writing output to
// i.Out. Returns the Result of the final statement, which callers
// rarely need — most interesting outcomes are either RSuccess
// (rendered cleanly) or RError (an uncaught exception unwinds all the
// way to the host).
func (t *Template) Execute(i *Interpreter) Result {
	return t.root.Execute(i, i.Globals)
}

// ExecuteWriter is a convenience wrapper for hosts that just want a
// fresh interpreter pointed at w and don't need to share state across
// renders (the common REPL/CGI/one-shot-HTTP-handler case).
func ExecuteWriter(t *Template, w io.Writer) (*Interpreter, Result) {
	i := NewInterpreter(w)
	return i, t.Execute(i)
}
