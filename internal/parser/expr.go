package parser

import (
	"github.com/glsl-lang/glslfront/internal/ast"
	"github.com/glsl-lang/glslfront/internal/token"
)

// parseExpression parses GLSL's comma-sequencing expression: the widest
// production, used wherever the grammar allows a full expression (e.g. a
// statement's top level), generalizing the teacher's top-level
// ParseExpression entry point.
func (p *Parser) parseExpression() ast.Expr {
	first := p.parseAssignment()
	if first == nil {
		return nil
	}
	if !p.is(token.Punct, ",") {
		return first
	}
	exprs := []ast.Expr{first}
	for {
		comma, ok := p.match(token.Punct, ",")
		if !ok {
			break
		}
		next := p.parseAssignment()
		if next == nil {
			p.errorf(comma.Range, "expected expression after ','")
			break
		}
		exprs = append(exprs, next)
	}
	return &ast.CommaExpr{Exprs: exprs, Range: first.Span().Union(exprs[len(exprs)-1].Span())}
}

// isAssignOp reports whether t is one of GLSL's assignment operators
// (§4.6): `= += -= *= /= %= <<= >>= &= ^= |=`.
func isAssignOp(t token.Token) bool {
	switch t.Kind {
	case token.AddAssign, token.SubAssign, token.MulAssign, token.DivAssign, token.ModAssign,
		token.LeftAssign, token.RightAssign, token.AndAssign, token.OrAssign, token.XorAssign:
		return true
	case token.Punct:
		return t.Text == "="
	}
	return false
}

// parseAssignment handles GLSL's right-associative assignment operators,
// falling through to the ternary conditional for everything else.
func (p *Parser) parseAssignment() ast.Expr {
	lhs := p.parseConditional()
	if lhs == nil {
		return nil
	}
	if !isAssignOp(p.Current()) {
		return lhs
	}
	op := p.advance()
	rhs := p.parseAssignment()
	if rhs == nil {
		p.errorf(op.Range, "expected expression after %q", op.Text)
		return lhs
	}
	return &ast.AssignExpr{Op: op.Text, LHS: lhs, RHS: rhs, Range: lhs.Span().Union(rhs.Span())}
}

// parseConditional handles the ternary `cond ? then : else`, right
// associative on the Else branch per GLSL's grammar.
func (p *Parser) parseConditional() ast.Expr {
	cond := p.parseLogicalOr()
	if cond == nil {
		return nil
	}
	if _, ok := p.match(token.Punct, "?"); !ok {
		return cond
	}
	then := p.parseExpression()
	p.expect(token.Punct, ":")
	els := p.parseAssignment()
	end := cond.Span()
	if els != nil {
		end = els.Span()
	}
	return &ast.CondExpr{Cond: cond, Then: then, Else: els, Range: cond.Span().Union(end)}
}

// binaryLevel is one precedence tier: a next-tier parser plus the set of
// operator tokens recognized at this tier, matching this kind of table
// rather than one function body per level since GLSL's binary chain (11
// levels from logical-or down to multiplicative) is otherwise extremely
// repetitive.
type binaryLevel struct {
	match func(t token.Token) (op string, ok bool)
}

func punctOp(vals ...string) func(token.Token) (string, bool) {
	set := make(map[string]bool, len(vals))
	for _, v := range vals {
		set[v] = true
	}
	return func(t token.Token) (string, bool) {
		if t.Kind == token.Punct && set[t.Text] {
			return t.Text, true
		}
		return "", false
	}
}

func kindOp(kinds ...token.Kind) func(token.Token) (string, bool) {
	return func(t token.Token) (string, bool) {
		for _, k := range kinds {
			if t.Kind == k {
				return t.Text, true
			}
		}
		return "", false
	}
}

func (p *Parser) parseLogicalOr() ast.Expr {
	return p.parseLeftAssoc(kindOp(token.OrOp), p.parseLogicalXor)
}

func (p *Parser) parseLogicalXor() ast.Expr {
	return p.parseLeftAssoc(kindOp(token.XorOpLog), p.parseLogicalAnd)
}

func (p *Parser) parseLogicalAnd() ast.Expr {
	return p.parseLeftAssoc(kindOp(token.AndOp), p.parseBitOr)
}

func (p *Parser) parseBitOr() ast.Expr {
	return p.parseLeftAssoc(punctOp("|"), p.parseBitXor)
}

func (p *Parser) parseBitXor() ast.Expr {
	return p.parseLeftAssoc(punctOp("^"), p.parseBitAnd)
}

func (p *Parser) parseBitAnd() ast.Expr {
	return p.parseLeftAssoc(punctOp("&"), p.parseEquality)
}

func (p *Parser) parseEquality() ast.Expr {
	return p.parseLeftAssoc(kindOp(token.EqOp, token.NeOp), p.parseRelational)
}

func (p *Parser) parseRelational() ast.Expr {
	return p.parseLeftAssoc(func(t token.Token) (string, bool) {
		if t.Kind == token.LeOp || t.Kind == token.GeOp {
			return t.Text, true
		}
		if t.Kind == token.Punct && (t.Text == "<" || t.Text == ">") {
			return t.Text, true
		}
		return "", false
	}, p.parseShift)
}

func (p *Parser) parseShift() ast.Expr {
	return p.parseLeftAssoc(kindOp(token.LeftOp, token.RightOp), p.parseAdditive)
}

func (p *Parser) parseAdditive() ast.Expr {
	return p.parseLeftAssoc(punctOp("+", "-"), p.parseMultiplicative)
}

func (p *Parser) parseMultiplicative() ast.Expr {
	return p.parseLeftAssoc(punctOp("*", "/", "%"), p.parseUnary)
}

// parseLeftAssoc implements one left-associative binary precedence tier:
// parse next, then repeatedly consume a matching operator and another
// next, folding into a left-leaning BinaryExpr chain.
func (p *Parser) parseLeftAssoc(opMatch func(token.Token) (string, bool), next func() ast.Expr) ast.Expr {
	lhs := next()
	if lhs == nil {
		return nil
	}
	for {
		op, ok := opMatch(p.Current())
		if !ok {
			return lhs
		}
		p.advance()
		rhs := next()
		if rhs == nil {
			p.errorf(lhs.Span(), "expected expression after %q", op)
			return lhs
		}
		lhs = &ast.BinaryExpr{Op: op, LHS: lhs, RHS: rhs, Range: lhs.Span().Union(rhs.Span())}
	}
}

// matchUnaryOp recognizes the prefix operators GLSL allows directly on a
// unary expression (§4.6); `++`/`--` here are pre-increment/decrement.
func matchUnaryOp(t token.Token) (string, bool) {
	switch t.Kind {
	case token.IncOp, token.DecOp:
		return t.Text, true
	case token.Punct:
		switch t.Text {
		case "+", "-", "!", "~":
			return t.Text, true
		}
	}
	return "", false
}

func (p *Parser) parseUnary() ast.Expr {
	if op, ok := matchUnaryOp(p.Current()); ok {
		tok := p.advance()
		operand := p.parseUnary()
		if operand == nil {
			p.errorf(tok.Range, "expected expression after %q", op)
			return nil
		}
		return &ast.UnaryExpr{Op: op, Operand: operand, Range: tok.Range.Union(operand.Span())}
	}
	return p.parsePostfix()
}

// parsePostfix handles postfix `++`/`--`, `[index]`, `.field`, and call
// argument lists chained onto a primary expression.
func (p *Parser) parsePostfix() ast.Expr {
	x := p.parsePrimary()
	if x == nil {
		return nil
	}
	for {
		switch {
		case p.is(token.Punct, "["):
			lb := p.advance()
			idx := p.parseExpression()
			rb, _ := p.expect(token.Punct, "]")
			r := lb.Range.Union(rb.Range)
			if idx != nil {
				r = x.Span().Union(r)
			}
			x = &ast.IndexExpr{Base: x, Index: idx, Range: r}
		case p.is(token.Punct, "."):
			p.advance()
			name := p.Current()
			if name.Kind != token.Identifier && name.Kind != token.Keyword && name.Kind != token.TypeName {
				p.errorf(name.Range, "expected field name after '.'")
				return x
			}
			p.advance()
			x = &ast.FieldSelectExpr{Base: x, Field: name.Text, Range: x.Span().Union(name.Range)}
		case p.Current().Kind == token.IncOp || p.Current().Kind == token.DecOp:
			op := p.advance()
			x = &ast.PostfixExpr{Op: op.Text, Operand: x, Range: x.Span().Union(op.Range)}
		default:
			return x
		}
	}
}

// parsePrimary handles literals, identifiers (bare, or as a call/
// constructor when followed directly by '('), and parenthesized
// sub-expressions.
func (p *Parser) parsePrimary() ast.Expr {
	t := p.Current()
	switch t.Kind {
	case token.IntConstant, token.UintConstant, token.FloatConstant, token.DoubleConstant:
		p.advance()
		return &ast.Literal{Kind: t.Kind, Text: t.Text, Range: t.Range}
	case token.Keyword:
		if t.Text == "true" || t.Text == "false" {
			p.advance()
			return &ast.Literal{Kind: token.Keyword, Text: t.Text, Range: t.Range}
		}
	case token.Identifier, token.TypeName:
		p.advance()
		if p.is(token.Punct, "(") {
			return p.parseCallArgs(t.Text, t.Kind == token.TypeName, t.Range)
		}
		return &ast.Ident{Name: t.Text, Range: t.Range}
	case token.Punct:
		if t.Text == "(" {
			lp := p.advance()
			inner := p.parseExpression()
			rp, _ := p.expect(token.Punct, ")")
			return &ast.ParenExpr{Inner: inner, Range: lp.Range.Union(rp.Range)}
		}
	}
	p.errorf(t.Range, "expected expression, found %q", t.Text)
	return nil
}

// parseCallArgs parses the `(args...)` suffix shared by function calls and
// type constructors (§4.6's CallExpr).
func (p *Parser) parseCallArgs(callee string, isCtor bool, nameRange token.Range) ast.Expr {
	lp := p.advance() // '('
	var args []ast.Expr
	if !p.is(token.Punct, ")") {
		if void, ok := p.match(token.Keyword, "void"); ok {
			_ = void // `f(void)` is a call with no arguments, same as `f()`
		} else {
			for {
				arg := p.parseAssignment()
				if arg == nil {
					break
				}
				args = append(args, arg)
				if _, ok := p.match(token.Punct, ","); !ok {
					break
				}
			}
		}
	}
	rp, _ := p.expect(token.Punct, ")")
	return &ast.CallExpr{
		Callee:        callee,
		IsConstructor: isCtor,
		Args:          args,
		Range:         nameRange.Union(lp.Range).Union(rp.Range),
	}
}
