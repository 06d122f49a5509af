package preprocessor

import (
	"strconv"

	"github.com/glsl-lang/glslfront/internal/token"
)

// evalConstExpr evaluates a #if/#elif constant expression (§4.4.2) over a
// token list already macro-expanded except for defined(...) operands,
// which must be resolved by the caller before calling this (defined() has
// to see the raw macro table, not the expansion of its argument). Integer
// promotion follows signed 64-bit C semantics.
type exprEval struct {
	toks []token.Token
	pos  int
	err  error
}

func evalConstExpr(toks []token.Token) (int64, error) {
	e := &exprEval{toks: toks}
	v := e.parseLogicalOr()
	if e.err != nil {
		return 0, e.err
	}
	if e.pos != len(e.toks) {
		return 0, &ExprError{Msg: "unexpected tokens in #if expression"}
	}
	return v, nil
}

// ExprError reports a malformed constant expression.
type ExprError struct{ Msg string }

func (e *ExprError) Error() string { return e.Msg }

func (e *exprEval) cur() (token.Token, bool) {
	if e.pos < len(e.toks) {
		return e.toks[e.pos], true
	}
	return token.Token{}, false
}

func (e *exprEval) at(text string) bool {
	t, ok := e.cur()
	return ok && t.Text == text
}

func (e *exprEval) consume() token.Token {
	t := e.toks[e.pos]
	e.pos++
	return t
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func (e *exprEval) parseLogicalOr() int64 {
	v := e.parseLogicalAnd()
	for e.err == nil && e.at("||") {
		e.consume()
		rhs := e.parseLogicalAnd()
		v = boolToInt(v != 0 || rhs != 0)
	}
	return v
}

func (e *exprEval) parseLogicalAnd() int64 {
	v := e.parseBitOr()
	for e.err == nil && e.at("&&") {
		e.consume()
		rhs := e.parseBitOr()
		v = boolToInt(v != 0 && rhs != 0)
	}
	return v
}

func (e *exprEval) parseBitOr() int64 {
	v := e.parseBitXor()
	for e.err == nil && e.at("|") {
		e.consume()
		v |= e.parseBitXor()
	}
	return v
}

func (e *exprEval) parseBitXor() int64 {
	v := e.parseBitAnd()
	for e.err == nil && e.at("^") {
		e.consume()
		v ^= e.parseBitAnd()
	}
	return v
}

func (e *exprEval) parseBitAnd() int64 {
	v := e.parseEquality()
	for e.err == nil && e.at("&") {
		e.consume()
		v &= e.parseEquality()
	}
	return v
}

func (e *exprEval) parseEquality() int64 {
	v := e.parseRelational()
	for e.err == nil {
		if e.at("==") {
			e.consume()
			v = boolToInt(v == e.parseRelational())
		} else if e.at("!=") {
			e.consume()
			v = boolToInt(v != e.parseRelational())
		} else {
			break
		}
	}
	return v
}

func (e *exprEval) parseRelational() int64 {
	v := e.parseShift()
	for e.err == nil {
		switch {
		case e.at("<="):
			e.consume()
			v = boolToInt(v <= e.parseShift())
		case e.at(">="):
			e.consume()
			v = boolToInt(v >= e.parseShift())
		case e.at("<"):
			e.consume()
			v = boolToInt(v < e.parseShift())
		case e.at(">"):
			e.consume()
			v = boolToInt(v > e.parseShift())
		default:
			return v
		}
	}
	return v
}

func (e *exprEval) parseShift() int64 {
	v := e.parseAdditive()
	for e.err == nil {
		if e.at("<<") {
			e.consume()
			v <<= uint64(e.parseAdditive())
		} else if e.at(">>") {
			e.consume()
			v >>= uint64(e.parseAdditive())
		} else {
			break
		}
	}
	return v
}

func (e *exprEval) parseAdditive() int64 {
	v := e.parseMultiplicative()
	for e.err == nil {
		if e.at("+") {
			e.consume()
			v += e.parseMultiplicative()
		} else if e.at("-") {
			e.consume()
			v -= e.parseMultiplicative()
		} else {
			break
		}
	}
	return v
}

func (e *exprEval) parseMultiplicative() int64 {
	v := e.parseUnary()
	for e.err == nil {
		switch {
		case e.at("*"):
			e.consume()
			v *= e.parseUnary()
		case e.at("/"):
			e.consume()
			rhs := e.parseUnary()
			if rhs == 0 {
				e.err = &ExprError{Msg: "division by zero in constant expression"}
				return 0
			}
			v /= rhs
		case e.at("%"):
			e.consume()
			rhs := e.parseUnary()
			if rhs == 0 {
				e.err = &ExprError{Msg: "division by zero in constant expression"}
				return 0
			}
			v %= rhs
		default:
			return v
		}
	}
	return v
}

func (e *exprEval) parseUnary() int64 {
	switch {
	case e.at("!"):
		e.consume()
		return boolToInt(e.parseUnary() == 0)
	case e.at("~"):
		e.consume()
		return ^e.parseUnary()
	case e.at("-"):
		e.consume()
		return -e.parseUnary()
	case e.at("+"):
		e.consume()
		return e.parseUnary()
	default:
		return e.parsePrimary()
	}
}

func (e *exprEval) parsePrimary() int64 {
	t, ok := e.cur()
	if !ok {
		e.err = &ExprError{Msg: "unexpected end of #if expression"}
		return 0
	}

	if t.Text == "(" {
		e.consume()
		v := e.parseLogicalOr()
		if !e.at(")") {
			if e.err == nil {
				e.err = &ExprError{Msg: "expected ')' in #if expression"}
			}
			return 0
		}
		e.consume()
		return v
	}

	switch t.Kind {
	case token.Digits, token.IntConstant, token.UintConstant:
		e.consume()
		v, err := strconv.ParseInt(t.Text, 0, 64)
		if err != nil {
			// Accept unsigned-looking literals too (e.g. with a 'u' suffix
			// already stripped upstream); fall back to unsigned parse.
			uv, uerr := strconv.ParseUint(t.Text, 0, 64)
			if uerr != nil {
				e.err = &ExprError{Msg: "invalid integer literal: " + t.Text}
				return 0
			}
			return int64(uv)
		}
		return v
	case token.Identifier:
		// An identifier that survived macro expansion is, by definition,
		// undefined: undefined identifiers evaluate to 0 (§4.4.2).
		e.consume()
		return 0
	default:
		e.err = &ExprError{Msg: "unexpected token in #if expression: " + t.Text}
		return 0
	}
}
