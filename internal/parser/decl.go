package parser

import (
	"github.com/glsl-lang/glslfront/internal/ast"
	"github.com/glsl-lang/glslfront/internal/token"
)

// qualifierWords lists every storage/interpolation/memory qualifier this
// parser recognizes ahead of a type specifier (§4.6); "layout" is handled
// separately since it carries its own parenthesized argument list.
var qualifierWords = map[string]bool{
	"const": true, "in": true, "out": true, "inout": true,
	"uniform": true, "buffer": true, "shared": true, "attribute": true, "varying": true,
	"centroid": true, "flat": true, "smooth": true, "noperspective": true, "patch": true, "sample": true,
	"coherent": true, "volatile": true, "restrict": true, "readonly": true, "writeonly": true,
	"invariant": true, "precise": true, "subroutine": true,
}

var precisionWords = map[string]bool{"highp": true, "mediump": true, "lowp": true}

// parseExternalDeclaration parses one top-level translation-unit member: a
// precision statement, a struct/variable declaration, a function
// prototype, or a function definition (§4.6).
func (p *Parser) parseExternalDeclaration() ast.ExternalDecl {
	start := p.Current().Range

	if p.is(token.Keyword, "precision") {
		return p.parsePrecisionDecl()
	}

	typ := p.parseTypeSpecifier()
	if typ == nil {
		p.errorf(start, "expected a declaration")
		return nil
	}
	if typ.Struct != nil && typ.Struct.Name != "" {
		p.registerTypeName(typ.Struct.Name)
	}

	// A bare struct definition with no declarator: `struct S { ... };`.
	if typ.Struct != nil && p.is(token.Punct, ";") {
		semi := p.advance()
		return &ast.Declaration{Type: typ, Range: typ.Range.Union(semi.Range)}
	}

	nameTok := p.Current()
	if nameTok.Kind != token.Identifier && nameTok.Kind != token.TypeName {
		p.errorf(nameTok.Range, "expected a name after type %q", typ.Name)
		return nil
	}
	p.advance()

	if p.is(token.Punct, "(") {
		proto := p.parseFunctionPrototypeTail(typ, nameTok)
		if p.is(token.Punct, "{") {
			body := p.parseBlock()
			return &ast.FunctionDefinition{Prototype: proto, Body: body, Range: proto.Range.Union(body.Range)}
		}
		semi, _ := p.expect(token.Punct, ";")
		proto.Range = proto.Range.Union(semi.Range)
		return proto
	}

	return p.parseDeclarationTail(typ, nameTok)
}

// parsePrecisionDecl parses `precision <highp|mediump|lowp> <type>;`.
func (p *Parser) parsePrecisionDecl() *ast.Declaration {
	kw := p.advance() // "precision"
	prec := p.Current()
	if !precisionWords[prec.Text] {
		p.errorf(prec.Range, "expected a precision qualifier, found %q", prec.Text)
	} else {
		p.advance()
	}
	typ := p.parseTypeSpecifier()
	if typ != nil {
		typ.Precision = prec.Text
	}
	semi, _ := p.expect(token.Punct, ";")
	r := kw.Range.Union(semi.Range)
	return &ast.Declaration{Type: typ, IsPrecision: true, Range: r}
}

// parseFunctionPrototypeTail parses the `(params)` suffix of a function
// prototype whose return type and name have already been consumed.
func (p *Parser) parseFunctionPrototypeTail(ret *ast.TypeSpecifier, name token.Token) *ast.FunctionPrototype {
	lp := p.advance() // '('
	proto := &ast.FunctionPrototype{ReturnType: ret, Name: name.Text, Range: ret.Range.Union(name.Range).Union(lp.Range)}

	if p.is(token.Punct, ")") {
		// could still be `f()` or `f(void)`, both zero-parameter
	} else if void, ok := p.match(token.Keyword, "void"); ok {
		_ = void
	} else {
		for {
			param := p.parseParam()
			if param == nil {
				break
			}
			proto.Params = append(proto.Params, param)
			if _, ok := p.match(token.Punct, ","); !ok {
				break
			}
		}
	}
	rp, _ := p.expect(token.Punct, ")")
	proto.Range = proto.Range.Union(rp.Range)
	return proto
}

// parseParam parses one formal parameter: qualifiers, a type, an optional
// name, and optional array dimensions.
func (p *Parser) parseParam() *ast.Param {
	start := p.Current().Range
	typ := p.parseTypeSpecifier()
	if typ == nil {
		return nil
	}
	param := &ast.Param{Type: typ, Range: start.Union(typ.Range)}
	if nt := p.Current(); nt.Kind == token.Identifier || nt.Kind == token.TypeName {
		p.advance()
		param.Name = nt.Text
		param.Range = param.Range.Union(nt.Range)
	}
	param.ArraySizes, param.Range = p.parseArraySuffixes(param.Range)
	return param
}

// parseDeclarationTail parses the comma-separated declarator list and
// terminating ';' of a variable declaration whose type and first
// declarator name have already been consumed.
func (p *Parser) parseDeclarationTail(typ *ast.TypeSpecifier, firstName token.Token) *ast.Declaration {
	decl := &ast.Declaration{Type: typ, Range: typ.Range}

	d := p.parseDeclaratorTail(firstName)
	decl.Declarators = append(decl.Declarators, d)
	decl.Range = decl.Range.Union(d.Range)

	for {
		if _, ok := p.match(token.Punct, ","); !ok {
			break
		}
		nt := p.Current()
		if nt.Kind != token.Identifier && nt.Kind != token.TypeName {
			p.errorf(nt.Range, "expected a declarator name")
			break
		}
		p.advance()
		d := p.parseDeclaratorTail(nt)
		decl.Declarators = append(decl.Declarators, d)
		decl.Range = decl.Range.Union(d.Range)
	}

	semi, _ := p.expect(token.Punct, ";")
	decl.Range = decl.Range.Union(semi.Range)
	return decl
}

// parseDeclaratorTail parses one declarator's array dimensions and
// optional initializer, given its name token has already been consumed.
func (p *Parser) parseDeclaratorTail(name token.Token) *ast.Declarator {
	d := &ast.Declarator{Name: name.Text, Range: name.Range}
	d.ArraySizes, d.Range = p.parseArraySuffixes(d.Range)
	if _, ok := p.match(token.Punct, "="); ok {
		init := p.parseAssignment()
		d.Initializer = init
		if init != nil {
			d.Range = d.Range.Union(init.Span())
		}
	}
	return d
}

// parseArraySuffixes parses zero or more `[size]`/`[]` dimensions.
func (p *Parser) parseArraySuffixes(r token.Range) ([]ast.Expr, token.Range) {
	var sizes []ast.Expr
	for p.is(token.Punct, "[") {
		p.advance()
		var size ast.Expr
		if !p.is(token.Punct, "]") {
			size = p.parseAssignment()
		}
		rb, _ := p.expect(token.Punct, "]")
		r = r.Union(rb.Range)
		sizes = append(sizes, size)
	}
	return sizes, r
}

// parseTypeSpecifier parses qualifiers, an optional layout(...) list, an
// optional precision qualifier, and the type name itself (a builtin
// TypeName token, a struct specifier, or a plain Identifier used as a
// previously declared struct name).
func (p *Parser) parseTypeSpecifier() *ast.TypeSpecifier {
	start := p.Current().Range
	spec := &ast.TypeSpecifier{Range: start}

	for {
		t := p.Current()
		if t.Kind == token.Keyword && t.Text == "layout" {
			lay, r := p.parseLayoutQualifier()
			spec.Layout = append(spec.Layout, lay...)
			spec.Range = spec.Range.Union(r)
			continue
		}
		if t.Kind == token.Keyword && qualifierWords[t.Text] {
			spec.Qualifiers = append(spec.Qualifiers, t.Text)
			spec.Range = spec.Range.Union(t.Range)
			p.advance()
			continue
		}
		if t.Kind == token.Keyword && precisionWords[t.Text] {
			spec.Precision = t.Text
			spec.Range = spec.Range.Union(t.Range)
			p.advance()
			continue
		}
		break
	}

	if p.is(token.Keyword, "struct") {
		st := p.parseStructSpecifier()
		spec.Struct = st
		spec.Range = spec.Range.Union(st.Range)
		spec.ArraySizes, spec.Range = p.parseArraySuffixes(spec.Range)
		return spec
	}

	nameTok := p.Current()
	isVoid := nameTok.Kind == token.Keyword && nameTok.Text == "void"
	if nameTok.Kind != token.TypeName && nameTok.Kind != token.Identifier && !isVoid {
		if len(spec.Qualifiers) == 0 && spec.Precision == "" && len(spec.Layout) == 0 {
			return nil
		}
		p.errorf(nameTok.Range, "expected a type name, found %q", nameTok.Text)
		return spec
	}
	p.advance()
	spec.Name = nameTok.Text
	spec.Range = spec.Range.Union(nameTok.Range)
	spec.ArraySizes, spec.Range = p.parseArraySuffixes(spec.Range)
	return spec
}

// parseLayoutQualifier parses `layout ( id [= value] , ... )`.
func (p *Parser) parseLayoutQualifier() ([]ast.LayoutQualifier, token.Range) {
	kw := p.advance() // "layout"
	r := kw.Range
	lp, _ := p.expect(token.Punct, "(")
	r = r.Union(lp.Range)

	var quals []ast.LayoutQualifier
	for {
		idTok := p.Current()
		if idTok.Kind != token.Identifier && idTok.Kind != token.Keyword && idTok.Kind != token.TypeName {
			break
		}
		p.advance()
		q := ast.LayoutQualifier{Name: idTok.Text, Range: idTok.Range}
		if _, ok := p.match(token.Punct, "="); ok {
			val := p.parseConditional()
			q.Value = val
			if val != nil {
				q.Range = q.Range.Union(val.Span())
			}
		}
		quals = append(quals, q)
		if _, ok := p.match(token.Punct, ","); !ok {
			break
		}
	}
	rp, _ := p.expect(token.Punct, ")")
	r = r.Union(rp.Range)
	return quals, r
}

// parseStructSpecifier parses `struct [Name] { member-decl... }`.
func (p *Parser) parseStructSpecifier() *ast.StructSpecifier {
	kw := p.advance() // "struct"
	st := &ast.StructSpecifier{Range: kw.Range}
	if nt := p.Current(); nt.Kind == token.Identifier {
		st.Name = nt.Text
		st.Range = st.Range.Union(nt.Range)
		p.advance()
	}
	lb, _ := p.expect(token.Punct, "{")
	st.Range = st.Range.Union(lb.Range)
	for !p.is(token.Punct, "}") && !p.atEOF() && !p.aborted {
		fieldStart := p.Current().Range
		typ := p.parseTypeSpecifier()
		if typ == nil {
			p.errorf(fieldStart, "expected a field declaration")
			break
		}
		nameTok := p.Current()
		if nameTok.Kind != token.Identifier {
			p.errorf(nameTok.Range, "expected a field name")
			break
		}
		p.advance()
		field := p.parseDeclarationTail(typ, nameTok)
		st.Fields = append(st.Fields, field)
	}
	rb, _ := p.expect(token.Punct, "}")
	st.Range = st.Range.Union(rb.Range)
	return st
}
