package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"mython/interpreter-go/pkg/driver"
	"mython/interpreter-go/pkg/parser"
	"mython/interpreter-go/pkg/runtime"
)

// runRepl reads whole programs separated by a blank line: the Language's
// indentation sensitivity makes single-line REPL evaluation unreliable
// (an "if" header isn't complete until its indented suite follows), so
// each program is buffered until a blank line or EOF closes it, then
// parsed and executed against one persistent top-level closure.
func runRepl(args []string) int {
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "mython repl does not take arguments\n")
		return 1
	}

	closure := runtime.Closure{}
	ctx := driver.NewContext(os.Stdout)
	scanner := bufio.NewScanner(os.Stdin)
	var buf strings.Builder

	flush := func() {
		text := buf.String()
		buf.Reset()
		if strings.TrimSpace(text) == "" {
			return
		}
		program, err := parser.Parse(strings.NewReader(text))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		if _, err := program.Execute(closure, ctx); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	fmt.Fprint(os.Stdout, ">>> ")
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
			fmt.Fprint(os.Stdout, ">>> ")
			continue
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	flush()
	return 0
}
