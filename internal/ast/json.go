package ast

import "github.com/glsl-lang/glslfront/internal/token"

// ToJSON renders any AST node into a plain JSON-marshalable tree: a
// map[string]interface{} tagged with a "kind" discriminator per node,
// mirroring the AST's variant tags the way SPEC_FULL.md §6 describes for
// the CLI's `--format json` output, without requiring a MarshalJSON method
// (and its interface-field boilerplate) on every one of the ~25 node
// types declared in ast.go.
func ToJSON(n Node) interface{} {
	if n == nil || isNilNode(n) {
		return nil
	}
	m := map[string]interface{}{"range": rangeJSON(n.Span())}
	switch v := n.(type) {
	case *TranslationUnit:
		m["kind"] = "TranslationUnit"
		m["decls"] = externalDeclsJSON(v.Decls)
	case *TypeSpecifier:
		m["kind"] = "TypeSpecifier"
		m["qualifiers"] = v.Qualifiers
		m["precision"] = v.Precision
		m["name"] = v.Name
		if v.Struct != nil {
			m["struct"] = ToJSON(v.Struct)
		}
		m["arraySizes"] = exprsJSON(v.ArraySizes)
	case *StructSpecifier:
		m["kind"] = "StructSpecifier"
		m["name"] = v.Name
		fields := make([]interface{}, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = ToJSON(f)
		}
		m["fields"] = fields
	case *Declaration:
		m["kind"] = "Declaration"
		m["isPrecision"] = v.IsPrecision
		if v.Type != nil {
			m["type"] = ToJSON(v.Type)
		}
		decls := make([]interface{}, len(v.Declarators))
		for i, d := range v.Declarators {
			decls[i] = declaratorJSON(d)
		}
		m["declarators"] = decls
	case *FunctionPrototype:
		m["kind"] = "FunctionPrototype"
		m["name"] = v.Name
		if v.ReturnType != nil {
			m["returnType"] = ToJSON(v.ReturnType)
		}
		params := make([]interface{}, len(v.Params))
		for i, p := range v.Params {
			params[i] = map[string]interface{}{
				"name":       p.Name,
				"type":       ToJSON(p.Type),
				"arraySizes": exprsJSON(p.ArraySizes),
				"range":      rangeJSON(p.Range),
			}
		}
		m["params"] = params
	case *FunctionDefinition:
		m["kind"] = "FunctionDefinition"
		m["prototype"] = ToJSON(v.Prototype)
		m["body"] = ToJSON(v.Body)
	case *Block:
		m["kind"] = "Block"
		m["stmts"] = statementsJSON(v.Stmts)
	case *ExprStatement:
		m["kind"] = "ExprStatement"
		m["x"] = ToJSON(v.X)
	case *IfStatement:
		m["kind"] = "IfStatement"
		m["cond"] = ToJSON(v.Cond)
		m["then"] = ToJSON(v.Then)
		m["else"] = ToJSON(v.Else)
	case *ForStatement:
		m["kind"] = "ForStatement"
		m["init"] = ToJSON(v.Init)
		m["cond"] = ToJSON(v.Cond)
		m["post"] = ToJSON(v.Post)
		m["body"] = ToJSON(v.Body)
	case *WhileStatement:
		m["kind"] = "WhileStatement"
		m["cond"] = ToJSON(v.Cond)
		m["body"] = ToJSON(v.Body)
	case *DoWhileStatement:
		m["kind"] = "DoWhileStatement"
		m["body"] = ToJSON(v.Body)
		m["cond"] = ToJSON(v.Cond)
	case *SwitchStatement:
		m["kind"] = "SwitchStatement"
		m["cond"] = ToJSON(v.Cond)
		cases := make([]interface{}, len(v.Cases))
		for i, c := range v.Cases {
			cases[i] = map[string]interface{}{
				"isDefault": c.IsDefault,
				"value":     ToJSON(c.Value),
				"stmts":     statementsJSON(c.Stmts),
				"range":     rangeJSON(c.Range),
			}
		}
		m["cases"] = cases
	case *ReturnStatement:
		m["kind"] = "ReturnStatement"
		m["value"] = ToJSON(v.Value)
	case *BreakStatement:
		m["kind"] = "BreakStatement"
	case *ContinueStatement:
		m["kind"] = "ContinueStatement"
	case *DiscardStatement:
		m["kind"] = "DiscardStatement"
	case *Ident:
		m["kind"] = "Ident"
		m["name"] = v.Name
	case *Literal:
		m["kind"] = "Literal"
		m["literalKind"] = v.Kind.String()
		m["text"] = v.Text
	case *UnaryExpr:
		m["kind"] = "UnaryExpr"
		m["op"] = v.Op
		m["operand"] = ToJSON(v.Operand)
	case *PostfixExpr:
		m["kind"] = "PostfixExpr"
		m["op"] = v.Op
		m["operand"] = ToJSON(v.Operand)
	case *BinaryExpr:
		m["kind"] = "BinaryExpr"
		m["op"] = v.Op
		m["lhs"] = ToJSON(v.LHS)
		m["rhs"] = ToJSON(v.RHS)
	case *CondExpr:
		m["kind"] = "CondExpr"
		m["cond"] = ToJSON(v.Cond)
		m["then"] = ToJSON(v.Then)
		m["else"] = ToJSON(v.Else)
	case *AssignExpr:
		m["kind"] = "AssignExpr"
		m["op"] = v.Op
		m["lhs"] = ToJSON(v.LHS)
		m["rhs"] = ToJSON(v.RHS)
	case *CommaExpr:
		m["kind"] = "CommaExpr"
		m["exprs"] = exprsJSON(v.Exprs)
	case *CallExpr:
		m["kind"] = "CallExpr"
		m["callee"] = v.Callee
		m["isConstructor"] = v.IsConstructor
		m["args"] = exprsJSON(v.Args)
	case *IndexExpr:
		m["kind"] = "IndexExpr"
		m["base"] = ToJSON(v.Base)
		m["index"] = ToJSON(v.Index)
	case *FieldSelectExpr:
		m["kind"] = "FieldSelectExpr"
		m["base"] = ToJSON(v.Base)
		m["field"] = v.Field
	case *ParenExpr:
		m["kind"] = "ParenExpr"
		m["inner"] = ToJSON(v.Inner)
	default:
		m["kind"] = "Unknown"
	}
	return m
}

func rangeJSON(r token.Range) map[string]int {
	return map[string]int{"start": r.Start, "end": r.End}
}

func declaratorJSON(d *Declarator) map[string]interface{} {
	return map[string]interface{}{
		"name":        d.Name,
		"arraySizes":  exprsJSON(d.ArraySizes),
		"initializer": ToJSON(d.Initializer),
		"range":       rangeJSON(d.Range),
	}
}

func exprsJSON(exprs []Expr) []interface{} {
	out := make([]interface{}, len(exprs))
	for i, e := range exprs {
		out[i] = ToJSON(e)
	}
	return out
}

func statementsJSON(stmts []Statement) []interface{} {
	out := make([]interface{}, len(stmts))
	for i, s := range stmts {
		out[i] = ToJSON(s)
	}
	return out
}

func externalDeclsJSON(decls []ExternalDecl) []interface{} {
	out := make([]interface{}, len(decls))
	for i, d := range decls {
		out[i] = ToJSON(d)
	}
	return out
}

// isNilNode reports whether n holds a typed nil pointer (e.g. a nil
// *ast.Ident stored in an Expr field), which the Node interface itself
// cannot distinguish from "no value" via a plain != nil check.
func isNilNode(n Node) bool {
	switch v := n.(type) {
	case *TranslationUnit:
		return v == nil
	case *TypeSpecifier:
		return v == nil
	case *StructSpecifier:
		return v == nil
	case *Declaration:
		return v == nil
	case *FunctionPrototype:
		return v == nil
	case *FunctionDefinition:
		return v == nil
	case *Block:
		return v == nil
	case *ExprStatement:
		return v == nil
	case *IfStatement:
		return v == nil
	case *ForStatement:
		return v == nil
	case *WhileStatement:
		return v == nil
	case *DoWhileStatement:
		return v == nil
	case *SwitchStatement:
		return v == nil
	case *ReturnStatement:
		return v == nil
	case *BreakStatement:
		return v == nil
	case *ContinueStatement:
		return v == nil
	case *DiscardStatement:
		return v == nil
	case *Ident:
		return v == nil
	case *Literal:
		return v == nil
	case *UnaryExpr:
		return v == nil
	case *PostfixExpr:
		return v == nil
	case *BinaryExpr:
		return v == nil
	case *CondExpr:
		return v == nil
	case *AssignExpr:
		return v == nil
	case *CommaExpr:
		return v == nil
	case *CallExpr:
		return v == nil
	case *IndexExpr:
		return v == nil
	case *FieldSelectExpr:
		return v == nil
	case *ParenExpr:
		return v == nil
	default:
		return false
	}
}
