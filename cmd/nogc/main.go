// Command nogc is a thin driver over internal/pipeline. It does not
// dispatch a full subcommand surface, invoke a host C++ compiler, run a
// resulting test binary, or walk upward for a project.toml — those are
// explicitly out of scope (spec.md §1); this binary exists to give the
// pipeline a runnable front door and a readable diagnostic format.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/nog-lang/nogc/internal/errs"
	"github.com/nog-lang/nogc/internal/pipeline"
)

var (
	red    = color.New(color.FgRed, color.Bold).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	green  = color.New(color.FgGreen, color.Bold).SprintFunc()
)

func main() {
	var (
		rootFlag = flag.String("root", "", "project root dotted imports resolve against (defaults to the entry file's directory)")
		outFlag  = flag.String("o", "", "output path for emitted C++ (defaults to stdout)")
		testFlag = flag.Bool("test", false, "emit the test-harness main() instead of the program's own main()")
	)
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() == 0 {
		printUsage()
		os.Exit(1)
	}

	command := flag.Arg(0)
	flag.CommandLine.Parse(flag.Args()[1:]) // flags may also follow the subcommand
	switch command {
	case "build":
		runBuild(flag.Arg(0), *rootFlag, *outFlag, *testFlag)
	case "check":
		runCheck(flag.Arg(0), *rootFlag)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", red("error"), command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: nogc build [-root dir] [-o out.cpp] [-test] <entry.nog>")
	fmt.Fprintln(os.Stderr, "       nogc check [-root dir] <entry.nog>")
}

func resolveRoot(root, entryFile string) string {
	if root != "" {
		return root
	}
	return filepath.Dir(entryFile)
}

func runBuild(entryFile, root, out string, testMode bool) {
	if entryFile == "" {
		fmt.Fprintf(os.Stderr, "%s: missing entry file\n", red("error"))
		printUsage()
		os.Exit(1)
	}

	result, err := pipeline.Run(resolveRoot(root, entryFile), entryFile, testMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", red("error"), err)
		os.Exit(1)
	}
	if len(result.TypeErrors) > 0 {
		printDiagnostics(result.TypeErrors, result.Warnings)
		os.Exit(1)
	}
	printWarnings(result.Warnings)

	if out == "" {
		fmt.Print(result.CPP)
		return
	}
	if err := os.WriteFile(out, []byte(result.CPP), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "%s: writing %s: %v\n", red("error"), out, err)
		os.Exit(1)
	}
	if len(result.ExternLibs) > 0 {
		fmt.Fprintf(os.Stderr, "%s link libraries: %v\n", green("note:"), result.ExternLibs)
	}
}

func runCheck(entryFile, root string) {
	if entryFile == "" {
		fmt.Fprintf(os.Stderr, "%s: missing entry file\n", red("error"))
		printUsage()
		os.Exit(1)
	}

	result, err := pipeline.Run(resolveRoot(root, entryFile), entryFile, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", red("error"), err)
		os.Exit(1)
	}
	if len(result.TypeErrors) > 0 {
		printDiagnostics(result.TypeErrors, result.Warnings)
		os.Exit(1)
	}
	printWarnings(result.Warnings)
	fmt.Println(green("ok"))
}

// printDiagnostics prints warnings ahead of the errors that follow them, the
// order spec.md §7 implies ("warnings never block emission" but still
// belong alongside the errors that did).
func printDiagnostics(typeErrors []*errs.TypeError, warnings []*errs.Warning) {
	printWarnings(warnings)
	for _, e := range typeErrors {
		fmt.Fprintln(os.Stderr, red(e.Format()))
	}
}

func printWarnings(warnings []*errs.Warning) {
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, yellow(w.String()))
	}
}
