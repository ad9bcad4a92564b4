package main

import (
	"fmt"
	"os"
)

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  mython run <file.my>")
	fmt.Fprintln(os.Stderr, "  mython <file.my>")
	fmt.Fprintln(os.Stderr, "  mython check <file.my>")
	fmt.Fprintln(os.Stderr, "  mython repl")
	fmt.Fprintln(os.Stderr, "  mython fixtures fetch")
}
