package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alnah/go-md2gb/internal/fileutil"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	env := DefaultEnv()

	// Configure GOMAXPROCS before the worker count is derived from it
	undo := configureMaxProcs(hasVerboseFlag(os.Args[1:]), env.Stderr)
	code := runMain(os.Args, env)
	undo()

	os.Exit(code)
}

// configureMaxProcs sets GOMAXPROCS from the container CPU quota and logs
// the decision only in verbose mode.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func configureMaxProcs(verbose bool, w io.Writer) func() {
	logger := func(string, ...interface{}) {}
	if verbose {
		logger = func(format string, args ...interface{}) {
			fmt.Fprintf(w, format+"\n", args...)
		}
	}
	undo, _ := maxprocs.Set(maxprocs.Logger(logger))
	if undo == nil {
		return func() {}
	}
	return undo
}

// hasVerboseFlag reports whether -v/--verbose appears before "--".
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		switch {
		case a == "--":
			return false
		case a == "-v", a == "--verbose", a == "--verbose=true":
			return true
		case strings.HasPrefix(a, "-") && !strings.HasPrefix(a, "--") && strings.ContainsRune(a[1:], 'v'):
			// Combined short flags such as -nv
			return true
		}
	}
	return false
}

// runMain dispatches to a command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	switch cmd {
	case "convert":
		return runConvertCmd(rest, env)
	case "rules":
		return runRulesCmd(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "go-md2gb %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(rest, env)
	}

	// Paths and flags without a command mean convert
	if looksLikeConvertArg(cmd) {
		return runConvertCmd(args[1:], env)
	}

	fmt.Fprintf(env.Stderr, "unknown command: %s\n", cmd)
	printUsage(env.Stderr)
	return ExitUsage
}

// isCommand reports whether s names a command.
func isCommand(s string) bool {
	switch s {
	case "convert", "rules", "version", "help":
		return true
	}
	return false
}

// looksLikeConvertArg reports whether s is a flag, a markdown file, a path,
// or an existing file or directory.
func looksLikeConvertArg(s string) bool {
	if isCommand(s) {
		return false
	}
	if strings.HasPrefix(s, "-") || fileutil.IsMarkdown(s) || fileutil.IsFilePath(s) {
		return true
	}
	_, err := os.Stat(s)
	return err == nil
}
