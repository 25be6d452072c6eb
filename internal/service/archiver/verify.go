package archiver

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/oshokin/project-archiver/internal/config"
	"github.com/oshokin/project-archiver/internal/domain/archive"
	"github.com/oshokin/project-archiver/internal/logger"
	"github.com/oshokin/project-archiver/internal/repository/zipfile"
)

// VerifyOptions contains inputs for checking an existing archive.
type VerifyOptions struct {
	// ConfigPath is an optional archive plan file; empty means the built-in plan.
	ConfigPath string
	// ArchivePath is the archive to inspect; empty means the plan's archive name.
	ArchivePath string
	// Output receives the checklist (defaults to stdout).
	Output io.Writer
}

// Verify reopens the archive read-only and evaluates every check against all entry names.
func Verify(path string, checks []archive.ManifestCheck) ([]archive.CheckResult, error) {
	names, err := zipfile.ListEntries(path)
	if err != nil {
		return nil, err
	}

	return evaluate(names, checks), nil
}

// VerifyArchive runs only the manifest checklist against an existing archive.
// Missing entries are reported, not returned as an error.
func VerifyArchive(ctx context.Context, opts *VerifyOptions) ([]archive.CheckResult, error) {
	ctx = logger.WithName(ctx, "verifier")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load plan: %w", err)
	}

	path := opts.ArchivePath
	if path == "" {
		path = cfg.ArchiveName
	}

	logger.InfoKV(ctx, "Verifying archive", "path", path)

	results, err := Verify(path, cfg.Manifest)
	if err != nil {
		return nil, err
	}

	renderChecklist(output(opts.Output), results)

	return results, nil
}

// evaluate reports, per check, whether any name contains its fragment.
func evaluate(names []string, checks []archive.ManifestCheck) []archive.CheckResult {
	results := make([]archive.CheckResult, 0, len(checks))

	for _, check := range checks {
		found := false

		for _, name := range names {
			if strings.Contains(name, check.Fragment) {
				found = true
				break
			}
		}

		results = append(results, archive.CheckResult{Check: check, Found: found})
	}

	return results
}

func notFound(checks []archive.ManifestCheck) []archive.CheckResult {
	return evaluate(nil, checks)
}
