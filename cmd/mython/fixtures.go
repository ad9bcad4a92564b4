package main

import (
	"errors"
	"fmt"
	"os"

	"mython/interpreter-go/pkg/driver"
)

func runFixtures(args []string) int {
	if len(args) != 1 || args[0] != "fetch" {
		fmt.Fprintln(os.Stderr, "usage: mython fixtures fetch")
		return 1
	}

	manifestPath, err := driver.FindManifest(".")
	if err != nil {
		if errors.Is(err, driver.ErrManifestNotFound) {
			fmt.Fprintln(os.Stderr, "no mython.yaml found; fixtures_repo is not configured")
			return 1
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	manifest, err := driver.LoadManifest(manifestPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
		return 1
	}
	if manifest.FixturesRepo == "" {
		fmt.Fprintln(os.Stderr, "mython.yaml has no fixtures_repo configured")
		return 1
	}
	if err := driver.FetchFixtures(manifest.FixturesRepo, manifest.FixturesDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Fprintf(os.Stdout, "fixtures fetched into %s\n", manifest.FixturesDir)
	return 0
}
