package preprocessor

import (
	"strconv"

	"github.com/glsl-lang/glslfront/internal/lineinfo"
	"github.com/glsl-lang/glslfront/internal/token"
)

// builtinResolver resolves __LINE__/__FILE__/__VERSION__ at each
// invocation site (§4.4.5), implementing macro.BuiltinResolver.
type builtinResolver struct {
	file    lineinfo.FileId
	lineMap *lineinfo.LineMap
	state   *ProcessorState
}

func (b *builtinResolver) ResolveLine(site token.Token) token.Token {
	line, _ := b.lineMap.OffsetToLineCol(site.Range.Start)
	return token.Token{Kind: token.Digits, Text: strconv.Itoa(line), Range: site.Range}
}

func (b *builtinResolver) ResolveFile(site token.Token) token.Token {
	if b.state.CppStyleLine {
		if name, ok := b.lineMap.FileNameAt(site.Range.Start); ok {
			return token.Token{Kind: token.String, Text: strconv.Quote(name), Range: site.Range}
		}
	}
	return token.Token{Kind: token.Digits, Text: strconv.Itoa(int(b.file)), Range: site.Range}
}

func (b *builtinResolver) ResolveVersion(site token.Token) token.Token {
	return token.Token{Kind: token.Digits, Text: strconv.Itoa(b.state.Version.Number), Range: site.Range}
}
