// Command lang-cli is the thin demonstration harness around package
// glslfront (§6): it reads one GLSL translation unit (from a path argument
// or stdin), runs it through the full Preprocessor -> Post-Tokenizer ->
// Parser pipeline, and prints the result as plain-text diagnostics, a JSON
// AST, or re-printed GLSL source.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/glsl-lang/glslfront"
	"github.com/glsl-lang/glslfront/internal/ast"
	"github.com/glsl-lang/glslfront/internal/fs"
	"github.com/glsl-lang/glslfront/internal/preprocessor"
)

var (
	format       string
	includeRoots []string
	defVersion   int
	defProfile   string
	verbose      bool
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "lang-cli [PATH]",
		Short:         "Parse a GLSL translation unit and print diagnostics or its AST",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
	}
	cmd.PersistentFlags().StringVar(&format, "format", "text", "output format: text|json|glsl")
	cmd.PersistentFlags().StringSliceVar(&includeRoots, "include", nil, "additional #include search roots")
	cmd.PersistentFlags().IntVar(&defVersion, "glsl-version", 0, "default #version number if the source has none")
	cmd.PersistentFlags().StringVar(&defProfile, "profile", "", "default GLSL profile (core|compatibility|es)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "emit debug-level pipeline logging to stderr")
	return cmd
}

// loadConfig merges an optional .langrc (searched in the working directory
// and $HOME) over the flag defaults, the way a CLI is expected to layer
// config-file and environment precedence beneath explicit flags (§6).
func loadConfig(cmd *cobra.Command) error {
	v := viper.New()
	v.SetConfigName(".langrc")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.SetEnvPrefix("LANG_CLI")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return errors.Wrap(err, "lang-cli: reading .langrc")
		}
		return nil
	}

	if !cmd.Flags().Changed("format") && v.IsSet("format") {
		format = v.GetString("format")
	}
	if !cmd.Flags().Changed("include") && v.IsSet("include") {
		includeRoots = v.GetStringSlice("include")
	}
	if !cmd.Flags().Changed("glsl-version") && v.IsSet("version") {
		defVersion = v.GetInt("version")
	}
	if !cmd.Flags().Changed("profile") && v.IsSet("profile") {
		defProfile = v.GetString("profile")
	}
	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}

	switch format {
	case "text", "json", "glsl":
	default:
		return fmt.Errorf("lang-cli: unknown --format %q (want text|json|glsl)", format)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}

	opts := glslfront.Options{
		Logger:      log,
		IncludeMode: preprocessor.IncludeArb,
		Version:     preprocessor.Version{Number: defVersion, Profile: defProfile},
	}

	var res *glslfront.Result
	var err error
	if len(args) == 1 {
		path := args[0]
		opts.FileSystem = fs.NewOSFileSystem(dirOf(path), includeRoots...)
		res, err = glslfront.ParseFile(path, opts)
	} else {
		res, err = glslfront.Parse(os.Stdin, opts)
	}
	if err != nil {
		return errors.Wrap(err, "lang-cli")
	}

	switch format {
	case "json":
		return printJSON(res)
	case "glsl":
		return printGLSL(res)
	default:
		printText(res)
	}

	if res.HasFatalError() {
		os.Exit(1)
	}
	return nil
}

func dirOf(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return "."
}

func printText(res *glslfront.Result) {
	for _, d := range res.Diagnostics {
		fmt.Fprintln(os.Stderr, d.Error())
	}
	if res.Unit != nil && len(res.Diagnostics) == 0 {
		fmt.Fprintf(os.Stderr, "ok: %d top-level declarations\n", len(res.Unit.Decls))
	}
}

func printJSON(res *glslfront.Result) error {
	out := map[string]interface{}{
		"diagnostics": diagnosticsJSON(res),
	}
	if res.Unit != nil {
		out["ast"] = ast.ToJSON(res.Unit)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(err, "lang-cli: encoding JSON output")
	}
	if res.HasFatalError() {
		os.Exit(1)
	}
	return nil
}

func diagnosticsJSON(res *glslfront.Result) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(res.Diagnostics))
	for _, d := range res.Diagnostics {
		out = append(out, map[string]interface{}{
			"kind":    d.Kind.String(),
			"file":    strconv.Itoa(int(d.File)),
			"line":    d.Line,
			"col":     d.Col,
			"message": d.Msg,
			"fatal":   d.Fatal,
			"masked":  d.Masked,
		})
	}
	return out
}

func printGLSL(res *glslfront.Result) error {
	for _, d := range res.Diagnostics {
		fmt.Fprintln(os.Stderr, d.Error())
	}
	if res.Unit == nil {
		if res.HasFatalError() {
			os.Exit(1)
		}
		return nil
	}
	fmt.Print(ast.Print(res.Unit))
	if res.HasFatalError() {
		os.Exit(1)
	}
	return nil
}
