package preprocessor

import (
	"strconv"
	"strings"

	"github.com/glsl-lang/glslfront/internal/diag"
	"github.com/glsl-lang/glslfront/internal/lineinfo"
	"github.com/glsl-lang/glslfront/internal/macro"
	"github.com/glsl-lang/glslfront/internal/prelex"
	"github.com/glsl-lang/glslfront/internal/token"
)

// directiveHandler processes one recognized directive's body (everything
// after the directive name) once it has already been dispatched by name.
type directiveHandler func(p *Processor, unit *fileUnit, nameTok token.Token, rest []token.Token)

// directiveTable is the name -> handler dispatch table of §4.4.1,
// generalizing the teacher's `tags map[string]*tag` + RegisterTag idiom
// (tags.go) from template tags to preprocessor directives.
var directiveTable = map[string]directiveHandler{
	"define":     (*Processor).doDefine,
	"undef":      (*Processor).doUndef,
	"if":         (*Processor).doIf,
	"ifdef":      (*Processor).doIfdef,
	"ifndef":     (*Processor).doIfndef,
	"elif":       (*Processor).doElif,
	"else":       (*Processor).doElse,
	"endif":      (*Processor).doEndif,
	"error":      (*Processor).doError,
	"pragma":     (*Processor).doPragma,
	"extension":  (*Processor).doExtension,
	"version":    (*Processor).doVersion,
	"line":       (*Processor).doLine,
	"include":    (*Processor).doInclude,
	"moj_import": (*Processor).doMojImport,
}

// handleDirective dispatches a `#`-led logical line (rest excludes the Hash
// token itself) to the directive recognized by its first token, per §4.4.1.
// Conditional directives are dispatched even inside an inactive branch so
// nesting depth still tracks correctly; every other directive is skipped
// there, per "tokens inside an inactive branch are suppressed but still
// scanned for nested directives" (§4.4.2).
func (p *Processor) handleDirective(unit *fileUnit, rest []token.Token) {
	defer func() { p.sawAnyLine = true }()

	if len(rest) == 0 {
		return // "#\n" alone is a legal null directive.
	}
	nameTok := rest[0]
	body := rest[1:]

	if nameTok.Kind != token.Identifier {
		p.emitError(diag.KindUnknownDirective, unit.id, unit.lineMap, nameTok.Range, "preprocessor directive name expected", !p.state.Active())
		return
	}

	switch nameTok.Text {
	case "if", "ifdef", "ifndef", "elif", "else", "endif":
	default:
		if !p.state.Active() {
			return
		}
	}

	handler, ok := directiveTable[nameTok.Text]
	if !ok {
		p.emit(Event{Kind: EventDirective, Directive: &DirectiveNode{Kind: DirUnknown, Name: nameTok.Text, Range: nameTok.Range}})
		p.emitError(diag.KindUnknownDirective, unit.id, unit.lineMap, nameTok.Range, "unknown preprocessor directive: "+nameTok.Text, false)
		return
	}
	handler(p, unit, nameTok, body)
}

func unionRange(toks []token.Token) token.Range {
	var r token.Range
	for _, t := range toks {
		r = r.Union(t.Range)
	}
	return r
}

// --- #define / #undef (§4.4.3) ---

func (p *Processor) doDefine(unit *fileUnit, nameTok token.Token, rest []token.Token) {
	if len(rest) == 0 || rest[0].Kind != token.Identifier {
		p.emitError(diag.KindExtraTokensInDirective, unit.id, unit.lineMap, nameTok.Range, "#define requires a macro name", false)
		return
	}
	macroNameTok := rest[0]
	body := rest[1:]

	var def *macro.Define
	if len(body) > 0 && body[0].Text == "(" && body[0].Range.Start == macroNameTok.Range.End {
		// No space between NAME and '(': function-like macro (§4.4.3).
		params, variadic, afterParen, ok := parseParamList(body[1:])
		if !ok {
			p.emitError(diag.KindExtraTokensInDirective, unit.id, unit.lineMap, macroNameTok.Range, "malformed macro parameter list", false)
			return
		}
		def = &macro.Define{Name: macroNameTok.Text, Body: macro.FunctionBody{Params: params, Variadic: variadic, List: afterParen}}
	} else {
		def = &macro.Define{Name: macroNameTok.Text, Body: macro.ObjectBody{List: body}}
	}

	if existing, ok := p.state.Macros.Lookup(macroNameTok.Text); ok && existing.Define != nil {
		if existing.Define.Protected {
			p.emitError(diag.KindProtectedMacro, unit.id, unit.lineMap, macroNameTok.Range, "redefinition of protected macro "+macroNameTok.Text, false)
			return
		}
		if !macro.SameDefinition(existing.Define, def) {
			p.emitError(diag.KindMacroRedefinition, unit.id, unit.lineMap, macroNameTok.Range, "macro redefined with a different body: "+macroNameTok.Text, false)
		}
	}

	switch b := def.Body.(type) {
	case macro.ObjectBody:
		p.state.Macros.DefineObjectLike(def.Name, b.List, false)
	case macro.FunctionBody:
		p.state.Macros.DefineFunctionLike(def.Name, b.Params, b.Variadic, b.List, false)
	}
	p.emit(Event{Kind: EventDirective, Directive: &DirectiveNode{Kind: DirDefine, Name: "define", MacroName: macroNameTok.Text, Range: nameTok.Range.Union(unionRange(rest))}})
}

// parseParamList consumes a function-macro's formal-parameter list up to and
// including its closing ')', starting just after the opening '('.
func parseParamList(toks []token.Token) (params []string, variadic bool, body []token.Token, ok bool) {
	i := 0
	for i < len(toks) {
		t := toks[i]
		switch {
		case t.Text == ")":
			return params, variadic, toks[i+1:], true
		case t.Text == ",":
		case t.Text == "...":
			variadic = true
		case t.Kind == token.Identifier:
			params = append(params, t.Text)
		default:
			return nil, false, nil, false
		}
		i++
	}
	return nil, false, nil, false
}

func (p *Processor) doUndef(unit *fileUnit, nameTok token.Token, rest []token.Token) {
	if len(rest) == 0 || rest[0].Kind != token.Identifier {
		p.emitError(diag.KindExtraTokensInDirective, unit.id, unit.lineMap, nameTok.Range, "#undef requires a macro name", false)
		return
	}
	target := rest[0]
	if !p.state.Macros.Undef(target.Text) {
		p.emitError(diag.KindProtectedMacro, unit.id, unit.lineMap, target.Range, "cannot #undef protected macro "+target.Text, false)
		return
	}
	p.emit(Event{Kind: EventDirective, Directive: &DirectiveNode{Kind: DirUndef, Name: "undef", MacroName: target.Text, Range: nameTok.Range.Union(target.Range)}})
}

// --- conditional compilation (§4.4.2) ---

func (p *Processor) evaluateCondition(unit *fileUnit, body []token.Token) (int64, bool) {
	resolved := p.resolveDefined(body)
	expander := macro.NewExpander(p.state.Macros, &builtinResolver{file: unit.id, lineMap: unit.lineMap, state: p.state})
	expanded := expander.Expand(resolved)
	for _, d := range expander.Diagnostics() {
		p.emitError(diag.KindExtraTokensInDirective, unit.id, unit.lineMap, d.Range, d.Msg, false)
	}
	v, err := evalConstExpr(expanded)
	if err != nil {
		p.emitError(diag.KindExtraTokensInDirective, unit.id, unit.lineMap, unionRange(body), err.Error(), false)
		return 0, false
	}
	return v, true
}

// resolveDefined resolves every `defined(X)`/`defined X` occurrence against
// the raw macro table before macro expansion runs, per §4.4.4's note that
// defined()'s operand must never itself be macro-expanded.
func (p *Processor) resolveDefined(toks []token.Token) []token.Token {
	var out []token.Token
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if t.Kind == token.Identifier && t.Text == "defined" {
			if name, consumed, ok := parseDefinedOperand(toks[i+1:]); ok {
				_, isDefined := p.state.Macros.Lookup(name)
				val := "0"
				if isDefined {
					val = "1"
				}
				out = append(out, token.Token{Kind: token.Digits, Text: val, Range: t.Range})
				i += consumed
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

func parseDefinedOperand(rest []token.Token) (name string, consumed int, ok bool) {
	if len(rest) == 0 {
		return "", 0, false
	}
	if rest[0].Text == "(" {
		if len(rest) >= 3 && rest[1].Kind == token.Identifier && rest[2].Text == ")" {
			return rest[1].Text, 3, true
		}
		return "", 0, false
	}
	if rest[0].Kind == token.Identifier {
		return rest[0].Text, 1, true
	}
	return "", 0, false
}

func (p *Processor) doIf(unit *fileUnit, nameTok token.Token, rest []token.Token) {
	cond := false
	if p.state.Active() {
		if v, ok := p.evaluateCondition(unit, rest); ok {
			cond = v != 0
		}
	}
	p.state.PushIf(cond)
	p.emit(Event{Kind: EventDirective, Directive: &DirectiveNode{Kind: DirIf, Name: "if", Range: nameTok.Range.Union(unionRange(rest))}})
}

func (p *Processor) doIfdef(unit *fileUnit, nameTok token.Token, rest []token.Token) {
	cond := false
	if len(rest) > 0 && rest[0].Kind == token.Identifier {
		_, cond = p.state.Macros.Lookup(rest[0].Text)
	}
	p.state.PushIf(cond)
	p.emit(Event{Kind: EventDirective, Directive: &DirectiveNode{Kind: DirIfdef, Name: "ifdef", Range: nameTok.Range.Union(unionRange(rest))}})
}

func (p *Processor) doIfndef(unit *fileUnit, nameTok token.Token, rest []token.Token) {
	cond := true
	if len(rest) > 0 && rest[0].Kind == token.Identifier {
		_, defined := p.state.Macros.Lookup(rest[0].Text)
		cond = !defined
	}
	p.state.PushIf(cond)
	p.emit(Event{Kind: EventDirective, Directive: &DirectiveNode{Kind: DirIfndef, Name: "ifndef", Range: nameTok.Range.Union(unionRange(rest))}})
}

func (p *Processor) doElif(unit *fileUnit, nameTok token.Token, rest []token.Token) {
	cond := false
	if len(p.state.Conditionals) > 0 {
		top := p.state.Conditionals[len(p.state.Conditionals)-1]
		if top.ParentActive && !top.Taken {
			if v, ok := p.evaluateCondition(unit, rest); ok {
				cond = v != 0
			}
		}
	}
	if !p.state.Elif(cond) {
		p.emitError(diag.KindConditionalUnderflow, unit.id, unit.lineMap, nameTok.Range, "#elif without matching #if, or after #else", true)
		return
	}
	p.emit(Event{Kind: EventDirective, Directive: &DirectiveNode{Kind: DirElif, Name: "elif", Range: nameTok.Range.Union(unionRange(rest))}})
}

func (p *Processor) doElse(unit *fileUnit, nameTok token.Token, rest []token.Token) {
	if len(rest) > 0 {
		p.emitError(diag.KindExtraTokensInDirective, unit.id, unit.lineMap, unionRange(rest), "extra tokens after #else", false)
	}
	if !p.state.Else() {
		p.emitError(diag.KindConditionalUnderflow, unit.id, unit.lineMap, nameTok.Range, "#else without matching #if, or after another #else", true)
		return
	}
	p.emit(Event{Kind: EventDirective, Directive: &DirectiveNode{Kind: DirElse, Name: "else", Range: nameTok.Range}})
}

func (p *Processor) doEndif(unit *fileUnit, nameTok token.Token, rest []token.Token) {
	if len(rest) > 0 {
		p.emitError(diag.KindExtraTokensInDirective, unit.id, unit.lineMap, unionRange(rest), "extra tokens after #endif", false)
	}
	if !p.state.Endif() {
		p.emitError(diag.KindConditionalUnderflow, unit.id, unit.lineMap, nameTok.Range, "#endif without matching #if", true)
		return
	}
	p.emit(Event{Kind: EventDirective, Directive: &DirectiveNode{Kind: DirEndif, Name: "endif", Range: nameTok.Range}})
}

// --- #error / #pragma ---

func (p *Processor) doError(unit *fileUnit, nameTok token.Token, rest []token.Token) {
	msg := "'#error' " + joinText(rest)
	p.emit(Event{Kind: EventDirective, Directive: &DirectiveNode{Kind: DirError, Name: "error", Range: nameTok.Range.Union(unionRange(rest))}})
	p.emitError(diag.KindErrorDirective, unit.id, unit.lineMap, nameTok.Range, msg, true)
}

func (p *Processor) doPragma(unit *fileUnit, nameTok token.Token, rest []token.Token) {
	p.emit(Event{Kind: EventDirective, Directive: &DirectiveNode{Kind: DirPragma, Name: "pragma", Range: nameTok.Range.Union(unionRange(rest))}})
}

// --- #extension / #version / #line (§4.4.6) ---

func (p *Processor) doExtension(unit *fileUnit, nameTok token.Token, rest []token.Token) {
	if len(rest) < 3 || rest[0].Kind != token.Identifier || rest[1].Text != ":" {
		p.emitError(diag.KindExtraTokensInDirective, unit.id, unit.lineMap, nameTok.Range.Union(unionRange(rest)), "malformed #extension directive", false)
		return
	}
	extName := rest[0].Text
	behaviorTok := rest[2]

	var behavior Behavior
	switch behaviorTok.Text {
	case "require":
		behavior = BehaviorRequire
	case "enable":
		behavior = BehaviorEnable
	case "warn":
		behavior = BehaviorWarn
	case "disable":
		behavior = BehaviorDisable
	default:
		p.emitError(diag.KindExtraTokensInDirective, unit.id, unit.lineMap, behaviorTok.Range, "unknown extension behavior: "+behaviorTok.Text, false)
		return
	}

	p.state.applyExtension(Extension{Name: extName, Behavior: behavior})
	if extName != "all" {
		p.state.Macros.DefineSentinel(extName)
	}
	p.emit(Event{Kind: EventDirective, Directive: &DirectiveNode{Kind: DirExtension, Name: "extension", MacroName: extName, Range: nameTok.Range.Union(unionRange(rest))}})
}

func (p *Processor) doVersion(unit *fileUnit, nameTok token.Token, rest []token.Token) {
	if p.sawAnyLine {
		p.emitError(diag.KindExtraTokensInDirective, unit.id, unit.lineMap, nameTok.Range, "#version must be the first directive or token of the unit", false)
	}
	if len(rest) == 0 || rest[0].Kind != token.Digits {
		p.emitError(diag.KindExtraTokensInDirective, unit.id, unit.lineMap, nameTok.Range.Union(unionRange(rest)), "malformed #version directive", false)
		return
	}
	n, err := strconv.Atoi(rest[0].Text)
	if err != nil {
		p.emitError(diag.KindExtraTokensInDirective, unit.id, unit.lineMap, rest[0].Range, "invalid #version number", false)
		return
	}
	profile := ""
	if len(rest) > 1 && rest[1].Kind == token.Identifier {
		profile = rest[1].Text
	}
	p.state.Version = Version{Number: n, Profile: profile}
	switch profile {
	case "core":
		p.state.Macros.DefineSentinel("GL_core_profile")
	case "compatibility":
		p.state.Macros.DefineSentinel("GL_compatibility_profile")
	case "es":
		p.state.Macros.DefineSentinel("GL_es_profile")
	}
	p.emit(Event{Kind: EventDirective, Directive: &DirectiveNode{Kind: DirVersion, Name: "version", Range: nameTok.Range.Union(unionRange(rest))}})
}

func (p *Processor) doLine(unit *fileUnit, nameTok token.Token, rest []token.Token) {
	if len(rest) == 0 || rest[0].Kind != token.Digits {
		p.emitError(diag.KindExtraTokensInDirective, unit.id, unit.lineMap, nameTok.Range.Union(unionRange(rest)), "malformed #line directive", false)
		return
	}
	n, err := strconv.Atoi(rest[0].Text)
	if err != nil {
		p.emitError(diag.KindExtraTokensInDirective, unit.id, unit.lineMap, rest[0].Range, "invalid #line number", false)
		return
	}
	file := ""
	if len(rest) > 1 {
		switch {
		case rest[1].Kind == token.String:
			file = strings.Trim(rest[1].Text, `"`)
		case rest[1].Kind == token.Digits:
			// bare profile-less extra number (rare); ignored.
		default:
			p.emitError(diag.KindExtraTokensInDirective, unit.id, unit.lineMap, rest[1].Range, "malformed #line directive", false)
			return
		}
	}
	unit.lineMap.AddLineOverride(nameTok.Range.End, n, file)
	p.emit(Event{Kind: EventDirective, Directive: &DirectiveNode{Kind: DirLine, Name: "line", Range: nameTok.Range.Union(unionRange(rest))}})
}

// --- #include / #moj_import (§4.4.7) ---

func (p *Processor) doInclude(unit *fileUnit, nameTok token.Token, rest []token.Token) {
	p.handleInclude(unit, nameTok, rest, DirInclude)
}

func (p *Processor) doMojImport(unit *fileUnit, nameTok token.Token, rest []token.Token) {
	p.handleInclude(unit, nameTok, rest, DirMojImport)
}

func (p *Processor) handleInclude(unit *fileUnit, nameTok token.Token, rest []token.Token, kind DirectiveKind) {
	if kind == DirInclude && p.state.IncludeMode == IncludeNone {
		p.emitError(diag.KindIncludeDisabled, unit.id, unit.lineMap, nameTok.Range, "#include requires GL_ARB_shading_language_include or GL_GOOGLE_include_directive", true)
		return
	}
	if len(rest) == 0 {
		p.emitError(diag.KindIncludeNotFound, unit.id, unit.lineMap, nameTok.Range, "#include/#moj_import requires a path", true)
		return
	}

	path, angled, ok := parseIncludePath(unit, rest)
	if !ok {
		p.emitError(diag.KindIncludeNotFound, unit.id, unit.lineMap, unionRange(rest), "malformed include path", true)
		return
	}
	if p.opts.FileSystem == nil {
		p.emitError(diag.KindIncludeNotFound, unit.id, unit.lineMap, unionRange(rest), "no FileSystem configured for #include", true)
		return
	}

	resolved, found := p.resolvePath(unit, path, angled)
	if !found {
		p.emitError(diag.KindIncludeNotFound, unit.id, unit.lineMap, unionRange(rest), "include not found: "+path, true)
		return
	}
	canon, err := p.opts.FileSystem.Canonicalize(resolved)
	if err != nil {
		p.emitError(diag.KindIO, unit.id, unit.lineMap, unionRange(rest), err.Error(), true)
		return
	}
	for _, onStack := range p.includeStk {
		if onStack == canon {
			p.emitError(diag.KindIncludeCycle, unit.id, unit.lineMap, unionRange(rest), "include cycle: "+canon, true)
			return
		}
	}
	content, err := p.opts.FileSystem.Read(resolved, nil)
	if err != nil {
		p.emitError(diag.KindIncludeNotFound, unit.id, unit.lineMap, unionRange(rest), err.Error(), true)
		return
	}

	childID := p.nextFileID
	p.emit(Event{Kind: EventEnterFile, File: childID, Path: resolved})
	p.includeStk = append(p.includeStk, canon)
	p.runUnit(resolved, content)
	p.includeStk = p.includeStk[:len(p.includeStk)-1]
	p.emit(Event{Kind: EventExitFile, File: childID, Path: resolved})
}

// resolver is implemented by fs.OSFileSystem and fs.MapFileSystem; it is
// queried via a type assertion rather than added to fs.FileSystem itself,
// since the base interface's three operations are the only contract the
// rest of §6 depends on.
type resolver interface {
	Resolve(relativeTo, name string) (string, bool)
}

func (p *Processor) resolvePath(unit *fileUnit, path string, angled bool) (string, bool) {
	_ = angled
	if r, ok := p.opts.FileSystem.(resolver); ok {
		return r.Resolve(unit.path, path)
	}
	return path, p.opts.FileSystem.Exists(path)
}

// parseIncludePath extracts the literal path text from an #include/
// #moj_import directive body. A double-quoted path lexes normally as a
// String token. An angle-bracket path, however, was scanned before the
// preprocessor could raise expect_angle_string on the PreLexer (the whole
// file is pre-lexed ahead of directive dispatch), so it instead arrives as a
// run of individual punctuation/identifier tokens; in that case the raw
// source slice spanning the directive body is re-lexed in isolation with
// the flag set, matching what a single-pass reader would have produced.
func parseIncludePath(unit *fileUnit, rest []token.Token) (path string, angled bool, ok bool) {
	switch rest[0].Kind {
	case token.String:
		return strings.Trim(rest[0].Text, `"`), false, true
	case token.AngleString:
		return strings.TrimSuffix(strings.TrimPrefix(rest[0].Text, "<"), ">"), true, true
	}

	if rest[0].Text != "<" {
		return "", false, false
	}

	start := rest[0].Range.Start
	end := rest[len(rest)-1].Range.End
	raw := unit.source[start:end]

	lm := lineinfo.NewLineMap(unit.id)
	logical, origOff := lineinfo.Splice(raw, lm)
	pl := prelex.New(unit.path, unit.id, logical, origOff)
	pl.SetExpectAngleString(true)
	for _, t := range pl.Lex() {
		if t.Kind == token.AngleString {
			return strings.TrimSuffix(strings.TrimPrefix(t.Text, "<"), ">"), true, true
		}
	}
	return "", false, false
}
