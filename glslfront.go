package glslfront

import (
	"io"
	"io/ioutil"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/glsl-lang/glslfront/internal/ast"
	"github.com/glsl-lang/glslfront/internal/diag"
	"github.com/glsl-lang/glslfront/internal/fs"
	"github.com/glsl-lang/glslfront/internal/lineinfo"
	"github.com/glsl-lang/glslfront/internal/parser"
	"github.com/glsl-lang/glslfront/internal/posttoken"
	"github.com/glsl-lang/glslfront/internal/preprocessor"
	"github.com/glsl-lang/glslfront/internal/token"
)

// Result is the outcome of one Parse/ParseString/ParseFile call: the
// parsed translation unit (nil if the preprocessor hit a fatal error
// before any tokens reached the parser), every diagnostic raised along the
// way in emission order, and the final preprocessor state (active
// extensions, version, macro table) for tools that want to inspect it.
type Result struct {
	Unit        *ast.TranslationUnit
	Tokens      []token.Token
	Diagnostics []*diag.Error
	State       *preprocessor.ProcessorState
}

// HasFatalError reports whether Diagnostics contains an unmasked fatal
// error (§7): the CLI uses this to decide its exit code.
func (r *Result) HasFatalError() bool {
	for _, d := range r.Diagnostics {
		if d.Fatal && !d.Masked {
			return true
		}
	}
	return false
}

// ParseString runs the full pipeline over an in-memory source string. name
// is used for diagnostics and as the base for any relative #include the
// source contains (via opts.FileSystem); pass "" for an anonymous string
// with no includes.
func ParseString(name, source string, opts Options) (*Result, error) {
	return run(name, source, opts)
}

// ParseFile reads path (through opts.FileSystem if set, else a fresh
// OSFileSystem rooted at path's directory) and runs the full pipeline over
// its contents.
func ParseFile(path string, opts Options) (*Result, error) {
	fsys := opts.FileSystem
	if fsys == nil {
		fsys = fs.NewOSFileSystem(filepath.Dir(path))
		opts.FileSystem = fsys
	}
	source, err := fsys.Read(path, opts.Encoding)
	if err != nil {
		return nil, errors.Wrapf(err, "glslfront: reading %q", path)
	}
	return run(path, source, opts)
}

// Parse reads r fully (decoding through opts.Encoding if set) and runs the
// pipeline over the result, for callers reading from stdin or a network
// stream rather than a named file (§6's CLI stdin mode).
func Parse(r io.Reader, opts Options) (*Result, error) {
	raw, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "glslfront: reading input")
	}
	source := string(raw)
	if opts.Encoding != nil {
		decoded, err := opts.Encoding.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, errors.Wrap(err, "glslfront: decoding input")
		}
		source = string(decoded)
	}
	return run("", source, opts)
}

// run drives one translation unit through Preprocessor -> Post-Tokenizer ->
// Parser, matching the pull-based single-threaded pipeline of SPEC_FULL.md
// §5: the preprocessor's Event stream is fully drained and post-tokenized
// before the parser runs, since the parser (unlike the preprocessor) needs
// random-access lookahead rather than a pull iterator.
func run(name, source string, opts Options) (*Result, error) {
	log := opts.logger()
	log.WithFields(logrus.Fields{"stage": "preprocessor", "file": name}).Debug("starting preprocessing")

	proc := preprocessor.NewProcessor(preprocessor.Options{
		FileSystem:   opts.FileSystem,
		Version:      opts.Version,
		CppStyleLine: opts.CppStyleLine,
		IncludeMode:  opts.IncludeMode,
	})
	events := proc.Run(name, source)

	res := &Result{State: proc.State()}
	tok := posttoken.New(proc.State())

	fatal := false
	for _, e := range events {
		switch e.Kind {
		case preprocessor.EventToken:
			res.Tokens = append(res.Tokens, tok.Fold(e.Token))
		case preprocessor.EventError:
			res.Diagnostics = append(res.Diagnostics, e.Err)
			log.WithFields(logrus.Fields{
				"stage": "preprocessor", "file": int(e.File), "line": e.Err.Line, "col": e.Err.Col,
			}).Debug(e.Err.Msg)
			if e.Err.Fatal && !e.Err.Masked {
				fatal = true
			}
		case preprocessor.EventEnterFile, preprocessor.EventExitFile, preprocessor.EventDirective:
			// No parser-visible effect; directive structure is already
			// folded into the token/conditional state by this point.
		}
	}
	rootLineMap := proc.LineMap(lineinfo.PrimaryFile)

	if fatal {
		log.WithField("stage", "preprocessor").Debug("halting before parse: fatal diagnostic")
		return res, nil
	}

	log.WithFields(logrus.Fields{"stage": "parser", "tokens": len(res.Tokens)}).Debug("starting parse")
	unit, perrs := parser.ParseTranslationUnit(lineinfo.PrimaryFile, rootLineMap, res.Tokens, proc.LineMap)
	res.Unit = unit
	res.Diagnostics = append(res.Diagnostics, perrs...)
	for _, e := range perrs {
		log.WithFields(logrus.Fields{"stage": "parser", "line": e.Line, "col": e.Col}).Debug(e.Msg)
	}

	return res, nil
}
