package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2gb <command> [flags] [args]")
	fmt.Fprintln(w, "       md2gb [flags] <file|dir>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert markdown files to British spelling (default)")
	fmt.Fprintln(w, "  rules      Show the effective rule table and preserve phrases")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2gb help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2gb convert <file|dir>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rewrite American spellings to British spellings in place.")
	fmt.Fprintln(w, "Code blocks, inline code, URLs and colour markup are left untouched.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  file|dir   Markdown files, or directories searched for .md/.markdown")
	fmt.Fprintln(w, "             (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -n, --dry-run             Show what would change without writing")
	fmt.Fprintln(w, "      --check               Dry run; exit 4 if any file would change")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Conversion:")
	fmt.Fprintln(w, "      --window-size <n>     Characters searched for preserve phrases (default 100)")
	fmt.Fprintln(w, "      --preserve <regexp>   Extra preserve phrase (repeatable)")
	fmt.Fprintln(w, "      --refresh-regions     Rescan protected regions before every rule")
	fmt.Fprintln(w, "      --verify              Fail a file if code or link targets would change")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             List every change with its line")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2GB_CONFIG, MD2GB_INPUT_DIR, MD2GB_WORKERS, MD2GB_WINDOW_SIZE")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 ok, 1 file failed, 2 usage/config, 3 I/O, 4 --check found changes")
}

// printRulesUsage prints usage for the rules command.
func printRulesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2gb rules [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show the rules and preserve phrases convert would use.")
	fmt.Fprintln(w, "The yaml format is a valid config file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -f, --format <s>          Output format: text, yaml (default text)")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "rules":
		printRulesUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2gb version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2gb help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
