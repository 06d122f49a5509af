package ast

import "strings"

// Print renders a TranslationUnit back into GLSL source text, for the
// `--format glsl` CLI mode and for the round-trip testable property in
// SPEC_FULL.md §8 (parse -> print -> re-parse -> structurally-equal AST).
// It is not intended to reproduce the original byte-for-byte formatting,
// only syntactically valid, semantically equivalent GLSL.
func Print(tu *TranslationUnit) string {
	var b strings.Builder
	for _, d := range tu.Decls {
		printExternalDecl(&b, d)
		b.WriteByte('\n')
	}
	return b.String()
}

func printExternalDecl(b *strings.Builder, d ExternalDecl) {
	switch v := d.(type) {
	case *FunctionDefinition:
		printPrototype(b, v.Prototype)
		b.WriteByte(' ')
		printBlock(b, v.Body, 0)
	case *FunctionPrototype:
		printPrototype(b, v)
		b.WriteString(";")
	case *Declaration:
		printDeclaration(b, v)
	}
}

func printPrototype(b *strings.Builder, p *FunctionPrototype) {
	printTypeSpecifier(b, p.ReturnType)
	b.WriteByte(' ')
	b.WriteString(p.Name)
	b.WriteByte('(')
	for i, param := range p.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		printTypeSpecifier(b, param.Type)
		if param.Name != "" {
			b.WriteByte(' ')
			b.WriteString(param.Name)
		}
		printArraySizes(b, param.ArraySizes)
	}
	b.WriteByte(')')
}

func printTypeSpecifier(b *strings.Builder, t *TypeSpecifier) {
	if t == nil {
		return
	}
	if len(t.Layout) > 0 {
		b.WriteString("layout(")
		for i, l := range t.Layout {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(l.Name)
			if l.Value != nil {
				b.WriteString(" = ")
				printExpr(b, l.Value)
			}
		}
		b.WriteString(") ")
	}
	for _, q := range t.Qualifiers {
		b.WriteString(q)
		b.WriteByte(' ')
	}
	if t.Precision != "" {
		b.WriteString(t.Precision)
		b.WriteByte(' ')
	}
	if t.Struct != nil {
		printStructSpecifier(b, t.Struct)
	} else {
		b.WriteString(t.Name)
	}
	printArraySizes(b, t.ArraySizes)
}

func printStructSpecifier(b *strings.Builder, s *StructSpecifier) {
	b.WriteString("struct")
	if s.Name != "" {
		b.WriteByte(' ')
		b.WriteString(s.Name)
	}
	b.WriteString(" {\n")
	for _, f := range s.Fields {
		b.WriteString("  ")
		printDeclaration(b, f)
		b.WriteByte('\n')
	}
	b.WriteByte('}')
}

func printArraySizes(b *strings.Builder, sizes []Expr) {
	for _, sz := range sizes {
		b.WriteByte('[')
		if sz != nil {
			printExpr(b, sz)
		}
		b.WriteByte(']')
	}
}

func printDeclaration(b *strings.Builder, d *Declaration) {
	if d.IsPrecision {
		b.WriteString("precision ")
		b.WriteString(d.Type.Precision)
		b.WriteByte(' ')
		b.WriteString(d.Type.Name)
		b.WriteString(";")
		return
	}
	printTypeSpecifier(b, d.Type)
	for i, decl := range d.Declarators {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteString(", ")
		}
		b.WriteString(decl.Name)
		printArraySizes(b, decl.ArraySizes)
		if decl.Initializer != nil {
			b.WriteString(" = ")
			printExpr(b, decl.Initializer)
		}
	}
	b.WriteString(";")
}

func printBlock(b *strings.Builder, blk *Block, depth int) {
	b.WriteString("{\n")
	for _, s := range blk.Stmts {
		indent(b, depth+1)
		printStatement(b, s, depth+1)
		b.WriteByte('\n')
	}
	indent(b, depth)
	b.WriteByte('}')
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

func printStatement(b *strings.Builder, s Statement, depth int) {
	switch v := s.(type) {
	case *Block:
		printBlock(b, v, depth)
	case *ExprStatement:
		if v.X != nil {
			printExpr(b, v.X)
		}
		b.WriteString(";")
	case *Declaration:
		printDeclaration(b, v)
	case *IfStatement:
		b.WriteString("if (")
		printExpr(b, v.Cond)
		b.WriteString(") ")
		printStatement(b, v.Then, depth)
		if v.Else != nil {
			b.WriteString(" else ")
			printStatement(b, v.Else, depth)
		}
	case *ForStatement:
		b.WriteString("for (")
		printStatement(b, v.Init, 0)
		b.WriteByte(' ')
		if v.Cond != nil {
			printExpr(b, v.Cond)
		}
		b.WriteString("; ")
		if v.Post != nil {
			printExpr(b, v.Post)
		}
		b.WriteString(") ")
		printStatement(b, v.Body, depth)
	case *WhileStatement:
		b.WriteString("while (")
		printExpr(b, v.Cond)
		b.WriteString(") ")
		printStatement(b, v.Body, depth)
	case *DoWhileStatement:
		b.WriteString("do ")
		printStatement(b, v.Body, depth)
		b.WriteString(" while (")
		printExpr(b, v.Cond)
		b.WriteString(");")
	case *SwitchStatement:
		b.WriteString("switch (")
		printExpr(b, v.Cond)
		b.WriteString(") {\n")
		for _, c := range v.Cases {
			indent(b, depth+1)
			if c.IsDefault {
				b.WriteString("default:\n")
			} else {
				b.WriteString("case ")
				printExpr(b, c.Value)
				b.WriteString(":\n")
			}
			for _, cs := range c.Stmts {
				indent(b, depth+2)
				printStatement(b, cs, depth+2)
				b.WriteByte('\n')
			}
		}
		indent(b, depth)
		b.WriteByte('}')
	case *ReturnStatement:
		b.WriteString("return")
		if v.Value != nil {
			b.WriteByte(' ')
			printExpr(b, v.Value)
		}
		b.WriteString(";")
	case *BreakStatement:
		b.WriteString("break;")
	case *ContinueStatement:
		b.WriteString("continue;")
	case *DiscardStatement:
		b.WriteString("discard;")
	}
}

func printExpr(b *strings.Builder, e Expr) {
	switch v := e.(type) {
	case *Ident:
		b.WriteString(v.Name)
	case *Literal:
		b.WriteString(v.Text)
	case *UnaryExpr:
		b.WriteString(v.Op)
		printExpr(b, v.Operand)
	case *PostfixExpr:
		printExpr(b, v.Operand)
		b.WriteString(v.Op)
	case *BinaryExpr:
		printExpr(b, v.LHS)
		b.WriteByte(' ')
		b.WriteString(v.Op)
		b.WriteByte(' ')
		printExpr(b, v.RHS)
	case *CondExpr:
		printExpr(b, v.Cond)
		b.WriteString(" ? ")
		printExpr(b, v.Then)
		b.WriteString(" : ")
		printExpr(b, v.Else)
	case *AssignExpr:
		printExpr(b, v.LHS)
		b.WriteByte(' ')
		b.WriteString(v.Op)
		b.WriteByte(' ')
		printExpr(b, v.RHS)
	case *CommaExpr:
		for i, x := range v.Exprs {
			if i > 0 {
				b.WriteString(", ")
			}
			printExpr(b, x)
		}
	case *CallExpr:
		b.WriteString(v.Callee)
		b.WriteByte('(')
		for i, a := range v.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			printExpr(b, a)
		}
		b.WriteByte(')')
	case *IndexExpr:
		printExpr(b, v.Base)
		b.WriteByte('[')
		if v.Index != nil {
			printExpr(b, v.Index)
		}
		b.WriteByte(']')
	case *FieldSelectExpr:
		printExpr(b, v.Base)
		b.WriteByte('.')
		b.WriteString(v.Field)
	case *ParenExpr:
		b.WriteByte('(')
		if v.Inner != nil {
			printExpr(b, v.Inner)
		}
		b.WriteByte(')')
	}
}
