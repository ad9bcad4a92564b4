package driver

import (
	"fmt"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
)

// FetchFixtures clones (or, if already present, leaves alone) repoURL into
// destDir. This is a developer-facing corpus tool — a way to pull down a
// bundle of ".my" conformance scripts that `mython run` can execute —
// never a Language-level import mechanism (spec.md §1's Non-goals forbid
// that). Grounded on the teacher's cmd/able/deps_fetchers.go::
// ensureGitCheckout: shallow-clone into a temp directory, then atomically
// rename into place so a failed fetch never leaves a half-populated
// destination.
func FetchFixtures(repoURL, destDir string) error {
	if repoURL == "" {
		return fmt.Errorf("fixtures: no fixtures_repo configured")
	}
	if _, err := os.Stat(destDir); err == nil {
		return nil
	}

	parent := filepath.Dir(destDir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("fixtures: prepare %s: %w", parent, err)
	}

	tmpDir, err := os.MkdirTemp(parent, "fixtures-fetch-*")
	if err != nil {
		return fmt.Errorf("fixtures: create temp dir: %w", err)
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return fmt.Errorf("fixtures: clear temp dir: %w", err)
	}

	_, err = git.PlainClone(tmpDir, false, &git.CloneOptions{
		URL:   repoURL,
		Depth: 1,
	})
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("fixtures: clone %s: %w", repoURL, err)
	}

	if err := os.Rename(tmpDir, destDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("fixtures: move into place: %w", err)
	}
	return nil
}
