// Command zinc is the CLI driver: it is the only place in this module
// that touches the filesystem or spawns a subprocess (internal/zsema
// and internal/zemit never do I/O, per spec.md §6). It parses one
// source file through pkg/zinc and, depending on flags, dumps the AST,
// reports diagnostics only, or emits C99 and shells out to a C99
// compiler. The flag surface is a github.com/spf13/cobra root command,
// the pattern the retrieved ailang/guanabana/rugo/surge manifests all
// converge on for a small compiler CLI.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/redodson01/zinc/internal/logger"
	"github.com/redodson01/zinc/internal/runtime"
	"github.com/redodson01/zinc/internal/zparser"
	"github.com/redodson01/zinc/pkg/zinc"
)

var (
	flagAST   bool
	flagCheck bool
	flagC     bool
	flagOut   string
	flagCC    string
)

func main() {
	root := &cobra.Command{
		Use:           "zinc <source.zn>",
		Short:         "Compile Zinc source to C99",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	root.Flags().BoolVar(&flagAST, "ast", false, "parse the source, print the AST, and exit")
	root.Flags().BoolVar(&flagCheck, "check", false, "parse and analyze only; print error counts, skip codegen")
	root.Flags().BoolVarP(&flagC, "compile", "c", false, "emit C99 and invoke a C compiler on the result")
	root.Flags().StringVarP(&flagOut, "out", "o", "", "output file base name (default: input file's base name)")
	root.Flags().StringVar(&flagCC, "cc", "cc", "C99 compiler to invoke in -c mode")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	useColor := logger.SupportsColor(os.Stderr)
	base := flagOut
	if base == "" {
		base = baseNameOf(path)
	}

	if flagAST {
		return dumpAST(string(src))
	}

	if flagCheck {
		return checkOnly(string(src))
	}

	return compileAndMaybeBuild(string(src), path, base, useColor)
}

// baseNameOf strips the directory and the extension from path,
// mirroring spec.md §6's "<base>.c and <base>.h" naming off the input
// file when -o is not given.
func baseNameOf(path string) string {
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	return name[:len(name)-len(ext)]
}

// dumpAST parses source and prints every top-level statement's Go
// struct representation, then exits without analyzing or emitting.
func dumpAST(src string) error {
	prog, parseLog := zparser.Parse(src)
	parseLog.PrintSummary(logger.SupportsColor(os.Stderr))
	for _, stmt := range prog.Stmts {
		fmt.Printf("%#v\n", stmt.Data)
	}
	if parseLog.HasErrors() {
		os.Exit(1)
	}
	return nil
}

// checkOnly runs the parse + semantic-analysis phases and prints their
// error-count summaries without emitting anything, for editors and CI
// that just want a pass/fail signal.
func checkOnly(src string) error {
	res := zinc.Compile(src, zinc.Options{BaseName: "check"})
	printDiagnostics(res, logger.SupportsColor(os.Stderr))
	if res.ParseErrors > 0 || res.SemaErrors > 0 {
		os.Exit(1)
	}
	return nil
}

// compileAndMaybeBuild runs the full parse/analyze/emit pipeline. With
// -c it also materializes the embedded runtime alongside the emitted
// files and invokes flagCC on the result; without -c it just writes
// the emitted header/source pair next to the input.
func compileAndMaybeBuild(src, sourcePath, base string, useColor bool) error {
	res := zinc.Compile(src, zinc.Options{SourcePath: sourcePath, BaseName: base})
	printDiagnostics(res, useColor)
	if res.ParseErrors > 0 || res.SemaErrors > 0 {
		os.Exit(1)
	}

	outDir := filepath.Dir(sourcePath)
	headerPath := filepath.Join(outDir, base+".h")
	sourceCPath := filepath.Join(outDir, base+".c")
	if err := os.WriteFile(headerPath, []byte(res.Header), 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(sourceCPath, []byte(res.Source), 0o644); err != nil {
		return err
	}

	if !flagC {
		return nil
	}

	runtimeHeaderPath := filepath.Join(outDir, "zinc_runtime.h")
	runtimeSourcePath := filepath.Join(outDir, "zinc_runtime.c")
	if err := os.WriteFile(runtimeHeaderPath, []byte(runtime.Header()), 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(runtimeSourcePath, []byte(runtime.Source()), 0o644); err != nil {
		return err
	}

	binPath := filepath.Join(outDir, base)
	cc := exec.Command(flagCC, "-std=c99", "-I", outDir, "-o", binPath, sourceCPath, runtimeSourcePath)
	cc.Stdout = os.Stdout
	cc.Stderr = os.Stderr
	return cc.Run()
}

// printDiagnostics prints pkg/zinc.Result's flattened diagnostic list
// and the parse/semantic error-count summary lines spec.md §6's
// tooling contract expects, the same red-bold-prefix shape
// internal/logger.Log.PrintSummary uses via fatih/color.
func printDiagnostics(res zinc.Result, useColor bool) {
	errColor := color.New(color.FgRed, color.Bold)
	errColor.DisableColor()
	if useColor {
		errColor.EnableColor()
	}
	for _, d := range res.Diagnostics {
		phaseLabel := "Semantic"
		if d.Phase == "parse" {
			phaseLabel = "Parse"
		}
		errColor.Fprintf(os.Stderr, "%s error at line %d: ", phaseLabel, d.Line)
		fmt.Fprintln(os.Stderr, d.Text)
	}
	fmt.Printf("%d parse error(s) encountered.\n", res.ParseErrors)
	if res.ParseErrors == 0 {
		fmt.Printf("%d semantic error(s) encountered.\n", res.SemaErrors)
	}
}
