package parser

import (
	"github.com/glsl-lang/glslfront/internal/ast"
	"github.com/glsl-lang/glslfront/internal/token"
)

// parseBlock parses a `{ stmt... }` compound statement.
func (p *Parser) parseBlock() *ast.Block {
	lb, _ := p.expect(token.Punct, "{")
	b := &ast.Block{Range: lb.Range}
	for !p.is(token.Punct, "}") && !p.atEOF() && !p.aborted {
		s := p.parseStatement()
		if s == nil {
			break
		}
		b.Stmts = append(b.Stmts, s)
	}
	rb, _ := p.expect(token.Punct, "}")
	b.Range = b.Range.Union(rb.Range)
	return b
}

// isDeclarationStart reports whether the cursor begins a declaration
// statement rather than an expression statement. GLSL's grammar is
// otherwise ambiguous at this point without a symbol table; this
// generalizes on the same signal the GLSL reference grammar itself uses
// (a TYPE_NAME token class fed back by the lexer) by tracking
// user-declared struct names in p.userTypeNames and requiring a second
// identifier to follow before treating a bare identifier as a type.
func (p *Parser) isDeclarationStart() bool {
	t := p.Current()
	switch t.Kind {
	case token.TypeName:
		return true
	case token.Keyword:
		return t.Text == "precision" || t.Text == "struct" || t.Text == "layout" || qualifierWords[t.Text] || precisionWords[t.Text]
	case token.Identifier:
		if !p.userTypeNames[t.Text] {
			return false
		}
		nt := p.PeekN(1)
		return nt.Kind == token.Identifier || (nt.Kind == token.Punct && nt.Text == "{")
	}
	return false
}

// parseStatement parses one statement (§4.6).
func (p *Parser) parseStatement() ast.Statement {
	t := p.Current()

	if t.Kind == token.Punct && t.Text == "{" {
		return p.parseBlock()
	}
	if t.Kind == token.Punct && t.Text == ";" {
		semi := p.advance()
		return &ast.ExprStatement{Range: semi.Range}
	}

	if t.Kind == token.Keyword {
		switch t.Text {
		case "if":
			return p.parseIf()
		case "for":
			return p.parseFor()
		case "while":
			return p.parseWhile()
		case "do":
			return p.parseDoWhile()
		case "switch":
			return p.parseSwitch()
		case "return":
			return p.parseReturn()
		case "break":
			p.advance()
			semi, _ := p.expect(token.Punct, ";")
			return &ast.BreakStatement{Range: t.Range.Union(semi.Range)}
		case "continue":
			p.advance()
			semi, _ := p.expect(token.Punct, ";")
			return &ast.ContinueStatement{Range: t.Range.Union(semi.Range)}
		case "discard":
			p.advance()
			semi, _ := p.expect(token.Punct, ";")
			return &ast.DiscardStatement{Range: t.Range.Union(semi.Range)}
		case "precision":
			return p.parsePrecisionDecl()
		}
	}

	if p.isDeclarationStart() {
		return p.parseDeclarationStatement()
	}

	expr := p.parseExpression()
	semi, _ := p.expect(token.Punct, ";")
	r := t.Range.Union(semi.Range)
	return &ast.ExprStatement{X: expr, Range: r}
}

// parseDeclarationStatement parses a block-scoped variable/struct
// declaration, registering any struct type name it introduces so later
// statements in the same scope can be recognized as declarations too.
func (p *Parser) parseDeclarationStatement() *ast.Declaration {
	typ := p.parseTypeSpecifier()
	if typ == nil {
		p.errorf(p.Current().Range, "expected a declaration")
		return nil
	}
	if typ.Struct != nil && typ.Struct.Name != "" {
		p.registerTypeName(typ.Struct.Name)
	}
	if typ.Struct != nil && p.is(token.Punct, ";") {
		semi := p.advance()
		return &ast.Declaration{Type: typ, Range: typ.Range.Union(semi.Range)}
	}
	nameTok := p.Current()
	if nameTok.Kind != token.Identifier && nameTok.Kind != token.TypeName {
		p.errorf(nameTok.Range, "expected a declarator name")
		return &ast.Declaration{Type: typ, Range: typ.Range}
	}
	p.advance()
	return p.parseDeclarationTail(typ, nameTok)
}

// registerTypeName records name as a user-declared struct type so
// isDeclarationStart recognizes subsequent uses of it as a type rather
// than a variable reference.
func (p *Parser) registerTypeName(name string) {
	if p.userTypeNames == nil {
		p.userTypeNames = make(map[string]bool)
	}
	p.userTypeNames[name] = true
}

func (p *Parser) parseIf() ast.Statement {
	kw := p.advance() // "if"
	p.expect(token.Punct, "(")
	cond := p.parseExpression()
	p.expect(token.Punct, ")")
	then := p.parseStatement()
	stmt := &ast.IfStatement{Cond: cond, Then: then, Range: kw.Range}
	if then != nil {
		stmt.Range = stmt.Range.Union(then.Span())
	}
	if _, ok := p.match(token.Keyword, "else"); ok {
		els := p.parseStatement()
		stmt.Else = els
		if els != nil {
			stmt.Range = stmt.Range.Union(els.Span())
		}
	}
	return stmt
}

func (p *Parser) parseFor() ast.Statement {
	kw := p.advance() // "for"
	p.expect(token.Punct, "(")

	var init ast.Statement
	if p.is(token.Punct, ";") {
		semi := p.advance()
		init = &ast.ExprStatement{Range: semi.Range}
	} else if p.isDeclarationStart() {
		init = p.parseDeclarationStatement()
	} else {
		expr := p.parseExpression()
		semi, _ := p.expect(token.Punct, ";")
		init = &ast.ExprStatement{X: expr, Range: semi.Range}
	}

	var cond ast.Expr
	if !p.is(token.Punct, ";") {
		cond = p.parseExpression()
	}
	p.expect(token.Punct, ";")

	var post ast.Expr
	if !p.is(token.Punct, ")") {
		post = p.parseExpression()
	}
	p.expect(token.Punct, ")")

	body := p.parseStatement()
	r := kw.Range
	if body != nil {
		r = r.Union(body.Span())
	}
	return &ast.ForStatement{Init: init, Cond: cond, Post: post, Body: body, Range: r}
}

func (p *Parser) parseWhile() ast.Statement {
	kw := p.advance() // "while"
	p.expect(token.Punct, "(")
	cond := p.parseExpression()
	p.expect(token.Punct, ")")
	body := p.parseStatement()
	r := kw.Range
	if body != nil {
		r = r.Union(body.Span())
	}
	return &ast.WhileStatement{Cond: cond, Body: body, Range: r}
}

func (p *Parser) parseDoWhile() ast.Statement {
	kw := p.advance() // "do"
	body := p.parseStatement()
	p.expect(token.Keyword, "while")
	p.expect(token.Punct, "(")
	cond := p.parseExpression()
	p.expect(token.Punct, ")")
	semi, _ := p.expect(token.Punct, ";")
	return &ast.DoWhileStatement{Body: body, Cond: cond, Range: kw.Range.Union(semi.Range)}
}

func (p *Parser) parseSwitch() ast.Statement {
	kw := p.advance() // "switch"
	p.expect(token.Punct, "(")
	cond := p.parseExpression()
	p.expect(token.Punct, ")")
	lb, _ := p.expect(token.Punct, "{")
	sw := &ast.SwitchStatement{Cond: cond, Range: kw.Range.Union(lb.Range)}

	for !p.is(token.Punct, "}") && !p.atEOF() && !p.aborted {
		c := &ast.SwitchCase{}
		if ct, ok := p.match(token.Keyword, "case"); ok {
			c.Value = p.parseExpression()
			c.Range = ct.Range
		} else if dt, ok := p.match(token.Keyword, "default"); ok {
			c.IsDefault = true
			c.Range = dt.Range
		} else {
			p.errorf(p.Current().Range, "expected 'case' or 'default'")
			break
		}
		colon, _ := p.expect(token.Punct, ":")
		c.Range = c.Range.Union(colon.Range)
		for !p.is(token.Keyword, "case") && !p.is(token.Keyword, "default") && !p.is(token.Punct, "}") && !p.atEOF() && !p.aborted {
			s := p.parseStatement()
			if s == nil {
				break
			}
			c.Stmts = append(c.Stmts, s)
			c.Range = c.Range.Union(s.Span())
		}
		sw.Cases = append(sw.Cases, c)
	}
	rb, _ := p.expect(token.Punct, "}")
	sw.Range = sw.Range.Union(rb.Range)
	return sw
}

func (p *Parser) parseReturn() ast.Statement {
	kw := p.advance() // "return"
	var val ast.Expr
	if !p.is(token.Punct, ";") {
		val = p.parseExpression()
	}
	semi, _ := p.expect(token.Punct, ";")
	return &ast.ReturnStatement{Value: val, Range: kw.Range.Union(semi.Range)}
}
