// Command mython is the CLI driver for the Language: run a source file,
// check it for parse errors without executing it, start a REPL, or fetch
// a conformance fixture corpus. Grounded on the teacher's cmd/able/main.go
// dispatch shape (os.Exit(run(args)), a flat switch over subcommands,
// plain fmt/os.Stderr diagnostics — no external logging library, matching
// the teacher's own choice for CLI-facing output).
package main

import (
	"fmt"
	"os"
)

const cliToolVersion = "mython-cli 0.0.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "run":
		return runFile(args[1:])
	case "check":
		return checkFile(args[1:])
	case "repl":
		return runRepl(args[1:])
	case "fixtures":
		return runFixtures(args[1:])
	default:
		return runFile(args)
	}
}
