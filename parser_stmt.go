package tempearly

// This file implements the template/statement grammar:
// the loop that stitches Text, {{ }}/{! !} expression tags, and {% %}
// statement tags into one ordered Stmt list, plus the block-statement
// parsers (if/while/for/try/function) that each tag a `{% end ... %}`
// (or catch/else/finally in between) closes.
//
// Every block construct supports both of the grammar's body forms: the
// block form, where the header's own `%}` closes the tag and the body
// spans subsequent {% %} tags; and the inline form, where a `:` keeps
// the whole construct inside one {% %} tag, with each clause keyword
// appearing directly rather than wrapped in its own tag. A construct
// picks its form once, at its first body, and keeps it for every
// later clause (else/catch/finally) since an inline construct never
// leaves its one enclosing tag to reopen a new one.

func isStopWord(w string) bool {
	switch w {
	case "end", "else", "catch", "finally":
		return true
	}
	return false
}

func (p *Parser) consumeTagOpen() error {
	_, err := p.Consume(TokenTagOpenScript)
	return err
}

func (p *Parser) consumeTagClose() error {
	_, err := p.Consume(TokenTagCloseScript)
	return err
}

func (p *Parser) isTagClose() bool { return p.Peek().Typ == TokenTagCloseScript }

func (p *Parser) isSemicolon() bool {
	tok := p.Peek()
	return tok.Typ == TokenSymbol && tok.Val == ";"
}

func (p *Parser) optionalSemicolon() { p.Match(";") }

// parseOneTemplateUnit parses a single template-level unit: literal
// text, one expression tag, or one statement tag (fully consumed,
// including its own {% ... %} wrapping for the script-statement case).
func (p *Parser) parseOneTemplateUnit() (Stmt, error) {
	tok := p.Peek()
	switch tok.Typ {
	case TokenText:
		p.advance()
		return &TextStmt{Text: tok.Val, Token: tok}, nil

	case TokenTagOpenEscaped:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.Consume(TokenTagCloseEscaped); err != nil {
			return nil, err
		}
		esc := true
		return &ExprStmt{Expr: expr, Escape: &esc, Token: tok}, nil

	case TokenTagOpenRaw:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.Consume(TokenTagCloseRaw); err != nil {
			return nil, err
		}
		esc := false
		return &ExprStmt{Expr: expr, Escape: &esc, Token: tok}, nil

	case TokenTagOpenScript:
		p.advance()
		return p.parseScriptStatement()

	default:
		return nil, p.errorf("unexpected token %s in template", tok.Typ)
	}
}

// parseStatements consumes Text/expression-tag/statement-tag tokens
// until EOF or a block-closing keyword tag is reached. On a
// block-closing tag it stops WITHOUT consuming the "{%" token, so the
// caller (parseIfRest et al.) can consume the full closing tag itself.
func (p *Parser) parseStatements() ([]Stmt, string, error) {
	var stmts []Stmt
	for {
		tok := p.Peek()
		if tok.Typ == TokenEOF {
			return stmts, "", nil
		}
		if tok.Typ == TokenTagOpenScript {
			next := p.PeekN(1)
			if next.Typ == TokenKeyword && isStopWord(next.Val) {
				return stmts, next.Val, nil
			}
		}
		stmt, err := p.parseOneTemplateUnit()
		if err != nil {
			return nil, "", err
		}
		stmts = append(stmts, stmt)
	}
}

// parseInlineStatements parses a sequence of statements that remain
// inside the SAME {% %} tag (the inline body form introduced by a
// ':'), stopping at (without consuming) the next stop-word keyword. No
// Text or expression-tag token can appear here: the inline form never
// leaves its one enclosing script tag.
func (p *Parser) parseInlineStatements() ([]Stmt, string, error) {
	var stmts []Stmt
	for {
		tok := p.Peek()
		if tok.Typ == TokenKeyword && isStopWord(tok.Val) {
			return stmts, tok.Val, nil
		}
		if tok.Typ == TokenEOF {
			return nil, "", p.errorf("unterminated inline block body")
		}
		stmt, err := p.parseScriptStatementInline()
		if err != nil {
			return nil, "", err
		}
		stmts = append(stmts, stmt)
	}
}

// parseBody begins a block/clause's body immediately after its
// header (condition, lvalue, param list, ...), choosing the body form:
// ':' selects inline, anything else must be the header's own tag-close
// and selects block form.
func (p *Parser) parseBody() (stmts []Stmt, stopWord string, inline bool, err error) {
	if _, ok := p.Match(":"); ok {
		stmts, stopWord, err = p.parseInlineStatements()
		return stmts, stopWord, true, err
	}
	if err = p.consumeTagClose(); err != nil {
		return nil, "", false, err
	}
	stmts, stopWord, err = p.parseStatements()
	return stmts, stopWord, false, err
}

// parseClauseBody parses a later clause's body (else/catch/finally),
// once the construct's form is already fixed by its first parseBody
// call: inline requires an explicit ':', block requires the clause's
// own tag-close.
func (p *Parser) parseClauseBody(inline bool) ([]Stmt, string, error) {
	if inline {
		if _, err := p.ConsumeVal(":"); err != nil {
			return nil, "", err
		}
		return p.parseInlineStatements()
	}
	if err := p.consumeTagClose(); err != nil {
		return nil, "", err
	}
	return p.parseStatements()
}

// consumeClauseKeyword consumes a clause-introducing keyword
// (else/catch/finally/end): in block form it first consumes a fresh
// "{%"; in inline form the keyword already follows directly, still
// inside the construct's one tag.
func (p *Parser) consumeClauseKeyword(inline bool, kw string) (*Token, error) {
	if !inline {
		if err := p.consumeTagOpen(); err != nil {
			return nil, err
		}
	}
	return p.ConsumeVal(kw)
}

// parseScriptStatement parses one statement, having already consumed
// the opening "{%".
func (p *Parser) parseScriptStatement() (Stmt, error) {
	tok := p.Peek()
	if tok.Typ == TokenKeyword {
		switch tok.Val {
		case "if":
			p.advance()
			return p.parseIfRest(tok)
		case "while":
			p.advance()
			return p.parseWhileRest(tok)
		case "do":
			p.advance()
			return p.parseDoWhileRest(tok)
		case "for":
			p.advance()
			return p.parseForRest(tok)
		case "try":
			p.advance()
			return p.parseTryRest(tok)
		case "function":
			p.advance()
			return p.parseFunctionStmtRest(tok)
		case "break":
			p.advance()
			p.optionalSemicolon()
			if err := p.consumeTagClose(); err != nil {
				return nil, err
			}
			return &BreakStmt{Token: tok}, nil
		case "continue":
			p.advance()
			p.optionalSemicolon()
			if err := p.consumeTagClose(); err != nil {
				return nil, err
			}
			return &ContinueStmt{Token: tok}, nil
		case "return":
			p.advance()
			var value Expr
			if !p.isTagClose() && !p.isSemicolon() {
				v, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				value = v
			}
			p.optionalSemicolon()
			if err := p.consumeTagClose(); err != nil {
				return nil, err
			}
			return &ReturnStmt{Value: value, Token: tok}, nil
		case "throw":
			p.advance()
			var value Expr
			if !p.isTagClose() && !p.isSemicolon() {
				v, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				value = v
			}
			p.optionalSemicolon()
			if err := p.consumeTagClose(); err != nil {
				return nil, err
			}
			return &ThrowStmt{Value: value, Token: tok}, nil
		}
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	p.optionalSemicolon()
	if err := p.consumeTagClose(); err != nil {
		return nil, err
	}
	return &ExprStmt{Expr: expr, Escape: nil, Token: tok}, nil
}

// parseScriptStatementInline is parseScriptStatement's counterpart for
// the inline body form: it never consumes a tag boundary (open or
// close), since the whole construct shares one {% %} tag. Nested
// constructs (if/while/for/try/function) parsed from here pick their
// own body form independently, starting fresh at their own header.
func (p *Parser) parseScriptStatementInline() (Stmt, error) {
	tok := p.Peek()
	if tok.Typ == TokenKeyword {
		switch tok.Val {
		case "if":
			p.advance()
			return p.parseIfRest(tok)
		case "while":
			p.advance()
			return p.parseWhileRest(tok)
		case "do":
			p.advance()
			return p.parseDoWhileRest(tok)
		case "for":
			p.advance()
			return p.parseForRest(tok)
		case "try":
			p.advance()
			return p.parseTryRest(tok)
		case "function":
			p.advance()
			return p.parseFunctionStmtRest(tok)
		case "break":
			p.advance()
			p.optionalSemicolon()
			return &BreakStmt{Token: tok}, nil
		case "continue":
			p.advance()
			p.optionalSemicolon()
			return &ContinueStmt{Token: tok}, nil
		case "return":
			p.advance()
			var value Expr
			if !p.isSemicolon() && !(p.Peek().Typ == TokenKeyword && isStopWord(p.Peek().Val)) {
				v, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				value = v
			}
			p.optionalSemicolon()
			return &ReturnStmt{Value: value, Token: tok}, nil
		case "throw":
			p.advance()
			var value Expr
			if !p.isSemicolon() && !(p.Peek().Typ == TokenKeyword && isStopWord(p.Peek().Val)) {
				v, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				value = v
			}
			p.optionalSemicolon()
			return &ThrowStmt{Value: value, Token: tok}, nil
		}
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	p.optionalSemicolon()
	return &ExprStmt{Expr: expr, Escape: nil, Token: tok}, nil
}

// peekElseIf reports whether the token(s) right after a pending "else"
// keyword spell "else if", accounting for the construct's body form:
// in block form the "else" is still hidden behind an unconsumed "{%";
// in inline form "else" is the very next token.
func (p *Parser) peekElseIf(inline bool) bool {
	if inline {
		return p.PeekN(1).Typ == TokenKeyword && p.PeekN(1).Val == "if"
	}
	return p.PeekN(2).Typ == TokenKeyword && p.PeekN(2).Val == "if"
}

// parseIfRest parses the condition/body/else-if-chain/else/end of an
// `if` whose keyword has already been consumed. An "else if" arm is
// folded into a nested IfStmt without requiring its own closing tag;
// only the outermost "end if" terminates the whole chain.
func (p *Parser) parseIfRest(tok *Token) (Stmt, error) {
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	thenStmts, stopWord, inline, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	thenBlock := &BlockStmt{Stmts: thenStmts}

	type branch struct {
		cond Expr
		body *BlockStmt
	}
	var branches []branch
	var elseBlock *BlockStmt

	for stopWord == "else" {
		if p.peekElseIf(inline) {
			if _, err := p.consumeClauseKeyword(inline, "else"); err != nil {
				return nil, err
			}
			if _, err := p.ConsumeVal("if"); err != nil {
				return nil, err
			}
			c, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			bodyStmts, sw, err := p.parseClauseBody(inline)
			if err != nil {
				return nil, err
			}
			branches = append(branches, branch{cond: c, body: &BlockStmt{Stmts: bodyStmts}})
			stopWord = sw
			continue
		}

		if _, err := p.consumeClauseKeyword(inline, "else"); err != nil {
			return nil, err
		}
		bodyStmts, sw, err := p.parseClauseBody(inline)
		if err != nil {
			return nil, err
		}
		elseBlock = &BlockStmt{Stmts: bodyStmts}
		stopWord = sw
		break
	}

	if stopWord != "end" {
		return nil, p.errorf("unterminated if (expected end, got %q)", stopWord)
	}
	if _, err := p.consumeClauseKeyword(inline, "end"); err != nil {
		return nil, err
	}
	if _, err := p.ConsumeVal("if"); err != nil {
		return nil, err
	}
	if err := p.consumeTagClose(); err != nil {
		return nil, err
	}

	var result Stmt
	if elseBlock != nil {
		result = elseBlock
	}
	for idx := len(branches) - 1; idx >= 0; idx-- {
		b := branches[idx]
		result = &IfStmt{Cond: b.cond, Then: b.body, Else: result}
	}
	return &IfStmt{Cond: cond, Then: thenBlock, Else: result, Token: tok}, nil
}

func (p *Parser) parseWhileRest(tok *Token) (Stmt, error) {
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	bodyStmts, stopWord, inline, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	if stopWord != "end" {
		return nil, p.errorf("unterminated while (expected end, got %q)", stopWord)
	}
	if _, err := p.consumeClauseKeyword(inline, "end"); err != nil {
		return nil, err
	}
	if _, err := p.ConsumeVal("while"); err != nil {
		return nil, err
	}
	if err := p.consumeTagClose(); err != nil {
		return nil, err
	}
	return &WhileStmt{Cond: cond, Body: &BlockStmt{Stmts: bodyStmts}, Token: tok}, nil
}

// parseDoWhileRest parses `do %} body {% while cond %}` (block form) or
// `do : body while cond %}` (inline form): the body always runs once
// before the condition is tested. Termination is a literal "while"
// token rather than a shared stop-word, since "while" must still be
// free to start an ordinary nested while-loop anywhere else in a body.
func (p *Parser) parseDoWhileRest(tok *Token) (Stmt, error) {
	inline := false
	if _, ok := p.Match(":"); ok {
		inline = true
	} else if err := p.consumeTagClose(); err != nil {
		return nil, err
	}

	var bodyStmts []Stmt
	for {
		if inline {
			if p.Peek().Typ == TokenKeyword && p.Peek().Val == "while" {
				break
			}
		} else if p.Peek().Typ == TokenTagOpenScript && p.PeekN(1).Typ == TokenKeyword && p.PeekN(1).Val == "while" {
			break
		}
		if p.Peek().Typ == TokenEOF {
			return nil, p.errorf("unterminated do (expected while)")
		}
		var stmt Stmt
		var err error
		if inline {
			stmt, err = p.parseScriptStatementInline()
		} else {
			stmt, err = p.parseOneTemplateUnit()
		}
		if err != nil {
			return nil, err
		}
		bodyStmts = append(bodyStmts, stmt)
	}

	if !inline {
		if err := p.consumeTagOpen(); err != nil {
			return nil, err
		}
	}
	if _, err := p.ConsumeVal("while"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	p.optionalSemicolon()
	if err := p.consumeTagClose(); err != nil {
		return nil, err
	}
	body := &BlockStmt{Stmts: bodyStmts}
	return &BlockStmt{Stmts: []Stmt{body, &WhileStmt{Cond: cond, Body: body, Token: tok}}}, nil
}

func (p *Parser) parseLvalue() (Variable, error) {
	if tok, ok := p.MatchType(TokenIdentifier); ok {
		return &IdentifierExpr{Name: tok.Val, Token: tok}, nil
	}
	if tok, ok := p.Match("["); ok {
		var items []Expr
		if _, ok := p.Match("]"); ok {
			return &ListExpr{Items: items, Token: tok}, nil
		}
		for {
			item, err := p.parseLvalue()
			if err != nil {
				return nil, err
			}
			items = append(items, item)
			if _, ok := p.Match(","); ok {
				continue
			}
			break
		}
		if _, err := p.ConsumeVal("]"); err != nil {
			return nil, err
		}
		return &ListExpr{Items: items, Token: tok}, nil
	}
	return nil, p.errorf("expected an assignable variable, found %q", p.Peek().Val)
}

// parseForRest parses `for lvalue : collection %} body [else body] end for`
// (or, inline, `for lvalue : collection : body [else : body] end for`).
func (p *Parser) parseForRest(tok *Token) (Stmt, error) {
	v, err := p.parseLvalue()
	if err != nil {
		return nil, err
	}
	if _, err := p.ConsumeVal(":"); err != nil {
		return nil, err
	}
	coll, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	bodyStmts, stopWord, inline, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	var elseBlock *BlockStmt
	if stopWord == "else" {
		if _, err := p.consumeClauseKeyword(inline, "else"); err != nil {
			return nil, err
		}
		elseStmts, sw, err := p.parseClauseBody(inline)
		if err != nil {
			return nil, err
		}
		elseBlock = &BlockStmt{Stmts: elseStmts}
		stopWord = sw
	}

	if stopWord != "end" {
		return nil, p.errorf("unterminated for (expected end, got %q)", stopWord)
	}
	if _, err := p.consumeClauseKeyword(inline, "end"); err != nil {
		return nil, err
	}
	if _, err := p.ConsumeVal("for"); err != nil {
		return nil, err
	}
	if err := p.consumeTagClose(); err != nil {
		return nil, err
	}

	var elseStmt Stmt
	if elseBlock != nil {
		elseStmt = elseBlock
	}
	return &ForStmt{Var: v, Collection: coll, Body: &BlockStmt{Stmts: bodyStmts}, Else: elseStmt, Token: tok}, nil
}

// parseTryRest parses `try %} body (catch Type? var? %} body)* (else
// %} body)? (finally %} body)? end try` (or its inline equivalent).
func (p *Parser) parseTryRest(tok *Token) (Stmt, error) {
	bodyStmts, stopWord, inline, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	var catches []*CatchClause
	for stopWord == "catch" {
		catchTok, err := p.consumeClauseKeyword(inline, "catch")
		if err != nil {
			return nil, err
		}

		noHeader := false
		if inline {
			noHeader = p.Peek().Typ == TokenSymbol && p.Peek().Val == ":"
		} else {
			noHeader = p.isTagClose()
		}

		var typeExpr Expr
		var varNode Variable
		if !noHeader {
			first := p.Peek()
			if first.Typ == TokenIdentifier {
				if p.PeekN(1).Typ == TokenIdentifier {
					typeExpr = &IdentifierExpr{Name: first.Val, Token: first}
					p.advance()
					second := p.advance()
					varNode = &IdentifierExpr{Name: second.Val, Token: second}
				} else {
					p.advance()
					varNode = &IdentifierExpr{Name: first.Val, Token: first}
				}
			}
		}
		catchStmts, sw, err := p.parseClauseBody(inline)
		if err != nil {
			return nil, err
		}
		catches = append(catches, &CatchClause{Type: typeExpr, Var: varNode, Body: &BlockStmt{Stmts: catchStmts}, Token: catchTok})
		stopWord = sw
	}

	var elseBlock, finallyBlock *BlockStmt
	if stopWord == "else" {
		if _, err := p.consumeClauseKeyword(inline, "else"); err != nil {
			return nil, err
		}
		elseStmts, sw, err := p.parseClauseBody(inline)
		if err != nil {
			return nil, err
		}
		elseBlock = &BlockStmt{Stmts: elseStmts}
		stopWord = sw
	}
	if stopWord == "finally" {
		if _, err := p.consumeClauseKeyword(inline, "finally"); err != nil {
			return nil, err
		}
		finallyStmts, sw, err := p.parseClauseBody(inline)
		if err != nil {
			return nil, err
		}
		finallyBlock = &BlockStmt{Stmts: finallyStmts}
		stopWord = sw
	}

	if stopWord != "end" {
		return nil, p.errorf("unterminated try (expected end, got %q)", stopWord)
	}
	if _, err := p.consumeClauseKeyword(inline, "end"); err != nil {
		return nil, err
	}
	if _, err := p.ConsumeVal("try"); err != nil {
		return nil, err
	}
	if err := p.consumeTagClose(); err != nil {
		return nil, err
	}

	var elseStmt, finallyStmt Stmt
	if elseBlock != nil {
		elseStmt = elseBlock
	}
	if finallyBlock != nil {
		finallyStmt = finallyBlock
	}
	return &TryStmt{Body: &BlockStmt{Stmts: bodyStmts}, Catches: catches, Else: elseStmt, Finally: finallyStmt, Token: tok}, nil
}

// parseFunctionStmtRest parses the named-function sugar
// `function name(params) %} body end function`, desugaring to a plain
// assignment of a FunctionExpr to name.
func (p *Parser) parseFunctionStmtRest(tok *Token) (Stmt, error) {
	nameTok, err := p.Consume(TokenIdentifier)
	if err != nil {
		return nil, err
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	bodyStmts, stopWord, inline, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	if stopWord != "end" {
		return nil, p.errorf("unterminated function (expected end, got %q)", stopWord)
	}
	if _, err := p.consumeClauseKeyword(inline, "end"); err != nil {
		return nil, err
	}
	if _, err := p.ConsumeVal("function"); err != nil {
		return nil, err
	}
	if err := p.consumeTagClose(); err != nil {
		return nil, err
	}
	fnExpr := &FunctionExpr{Params: params, Body: bodyStmts, Token: tok}
	target := &IdentifierExpr{Name: nameTok.Val, Token: nameTok}
	return &ExprStmt{Expr: &AssignExpr{Var: target, Value: fnExpr, Token: tok}, Token: tok}, nil
}

func (p *Parser) parseParamList() ([]*Parameter, error) {
	if _, err := p.ConsumeVal("("); err != nil {
		return nil, err
	}
	var params []*Parameter
	if _, ok := p.Match(")"); ok {
		return params, nil
	}
	for {
		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if _, ok := p.Match(","); ok {
			continue
		}
		break
	}
	if _, err := p.ConsumeVal(")"); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseParam() (*Parameter, error) {
	rest := false
	if _, ok := p.Match("..."); ok {
		rest = true
	}
	nameTok, err := p.Consume(TokenIdentifier)
	if err != nil {
		return nil, err
	}
	param := &Parameter{Name: nameTok.Val, Rest: rest}
	if _, ok := p.Match(":"); ok {
		hint, err := p.parseTypeHint()
		if err != nil {
			return nil, err
		}
		param.Type = hint
	}
	if !rest {
		if _, ok := p.Match("="); ok {
			def, err := p.parseRange()
			if err != nil {
				return nil, err
			}
			param.Default = def
		}
	}
	return param, nil
}

func (p *Parser) parseTypeHint() (*TypeHint, error) { return p.parseTypeHintOr() }

func (p *Parser) parseTypeHintOr() (*TypeHint, error) {
	left, err := p.parseTypeHintAnd()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.Match("|"); ok {
			right, err := p.parseTypeHintAnd()
			if err != nil {
				return nil, err
			}
			left = &TypeHint{Kind: HintOr, Left: left, Right: right}
			continue
		}
		return left, nil
	}
}

func (p *Parser) parseTypeHintAnd() (*TypeHint, error) {
	left, err := p.parseTypeHintPrimary()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.Match("&"); ok {
			right, err := p.parseTypeHintPrimary()
			if err != nil {
				return nil, err
			}
			left = &TypeHint{Kind: HintAnd, Left: left, Right: right}
			continue
		}
		return left, nil
	}
}

func (p *Parser) parseTypeHintPrimary() (*TypeHint, error) {
	nullable := false
	if _, ok := p.Match("?"); ok {
		nullable = true
	}
	nameTok, err := p.Consume(TokenIdentifier)
	if err != nil {
		return nil, err
	}
	base := &TypeHint{Kind: HintClass, Class: &IdentifierExpr{Name: nameTok.Val, Token: nameTok}}
	if nullable {
		return &TypeHint{Kind: HintNullable, Of: base}, nil
	}
	return base, nil
}
