package main

import (
	"errors"
	"fmt"
	"os"

	"mython/interpreter-go/pkg/driver"
)

// resolveEntry picks the source file to run/check: an explicit path if
// given, otherwise the "entry" field of a mython.yaml found by walking up
// from the current directory (grounded on the teacher's entry.go, which
// falls back to a manifest-resolved target when no path is given).
func resolveEntry(args []string) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("unexpected arguments: %v", args[1:])
	}
	if len(args) == 1 {
		return args[0], nil
	}

	manifestPath, err := driver.FindManifest(".")
	if err != nil {
		if errors.Is(err, driver.ErrManifestNotFound) {
			return "", fmt.Errorf("no source file given and no mython.yaml found")
		}
		return "", err
	}
	manifest, err := driver.LoadManifest(manifestPath)
	if err != nil {
		return "", fmt.Errorf("failed to load manifest: %w", err)
	}
	return manifest.ResolvedEntry()
}

func runFile(args []string) int {
	path, err := resolveEntry(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	program, err := driver.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := program.Run(os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func checkFile(args []string) int {
	path, err := resolveEntry(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if _, err := driver.Load(path); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Fprintln(os.Stdout, "check: ok")
	return 0
}
