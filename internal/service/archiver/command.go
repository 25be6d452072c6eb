package archiver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/project-archiver/internal/config"
	"github.com/oshokin/project-archiver/internal/domain/archive"
	"github.com/oshokin/project-archiver/internal/filter"
	"github.com/oshokin/project-archiver/internal/logger"
	"github.com/oshokin/project-archiver/internal/repository/zipfile"
)

// Options contains inputs for the archiver entry point.
type Options struct {
	// ConfigPath is an optional archive plan file; empty means the built-in plan.
	ConfigPath string
	// ProjectRoot is the directory being archived (defaults to the working directory).
	ProjectRoot string
	// ArchivePath overrides the plan's archive name.
	ArchivePath string
	// Output receives the summary and checklist (defaults to stdout).
	Output io.Writer
	// Force skips the check for another running archiver.
	Force bool
}

var (
	// ErrArchiveNotCreated is returned when no archive exists on disk after the run.
	ErrArchiveNotCreated = errors.New("archive was not created")
	// errArchiverRunning indicates that another archiver process is active.
	errArchiverRunning = errors.New("another archiver is running now")
	// errNotDirectory is returned when the project root is a file.
	errNotDirectory = errors.New("not a directory")
)

// archiver builds one archive according to a plan.
type archiver struct {
	// cfg is the validated archive plan.
	cfg *config.Config
	// root is the project directory entry names are relative to.
	root string
	// archivePath is the absolute archive location.
	archivePath string
	// filter rejects excluded paths during traversal.
	filter *filter.PathFilter
}

// Run builds the archive, verifies it and renders the summary.
// Manifest misses are reported in the summary but do not produce an error.
func Run(ctx context.Context, opts *Options) (*archive.Summary, error) {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "archiver")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load plan: %w", err)
	}

	if !opts.Force && isArchiverRunningNow(ctx, ps.Processes) {
		return nil, errArchiverRunning
	}

	a, err := newArchiver(cfg, opts.ProjectRoot, opts.ArchivePath)
	if err != nil {
		return nil, err
	}

	a.flagGlobRules(ctx)

	total, err := a.build(ctx)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(a.archivePath)
	if err != nil {
		logger.ErrorKV(ctx, "Archive missing after build", "path", a.archivePath, "error", err)
		return nil, ErrArchiveNotCreated
	}

	summary := &archive.Summary{
		Path:      a.archivePath,
		SizeBytes: info.Size(),
		Files:     total,
	}

	summary.Checks, err = Verify(a.archivePath, cfg.Manifest)
	if err != nil {
		// The archive exists, so verification trouble stays informational.
		logger.ErrorKV(ctx, "Unable to verify archive", "path", a.archivePath, "error", err)

		summary.Checks = notFound(cfg.Manifest)
	}

	renderSummary(output(opts.Output), summary)

	return summary, nil
}

// newArchiver resolves the project root and archive location for a plan.
func newArchiver(cfg *config.Config, root, archivePath string) (*archiver, error) {
	if root == "" {
		root = "."
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("project root: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("project root %s: %w", root, errNotDirectory)
	}

	if archivePath == "" {
		archivePath = cfg.ArchiveName
	}

	if !filepath.IsAbs(archivePath) {
		archivePath = filepath.Join(root, archivePath)
	}

	archivePath, err = filepath.Abs(archivePath)
	if err != nil {
		return nil, fmt.Errorf("resolve archive path: %w", err)
	}

	return &archiver{
		cfg:         cfg,
		root:        filepath.Clean(root),
		archivePath: archivePath,
		filter:      filter.New(cfg.Exclusions),
	}, nil
}

// build writes every plan step into a fresh archive and returns the entry count.
func (a *archiver) build(ctx context.Context) (int, error) {
	w, removed, err := zipfile.Create(a.archivePath)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrArchiveNotCreated, err)
	}

	if removed {
		logger.Info(ctx, "Removed existing archive")
	}

	logger.InfoKV(ctx, "Creating project archive", "path", a.archivePath, "root", a.root)

	c := &collector{
		w:      w,
		filter: a.filter,
		base:   a.root,
		skip:   a.archivePath,
	}

	var total int

	for i, s := range planSteps(a.cfg) {
		stepCtx := logger.WithKV(ctx, "step", i+1)
		logger.Infof(stepCtx, "%d. %s...", i+1, s.title)

		count := s.run(stepCtx, c)
		total += count

		logger.Infof(stepCtx, "   Added %d files", count)
	}

	// The write handle must be closed before verification reopens the archive.
	if err = w.Close(); err != nil {
		return total, err
	}

	return total, nil
}

// flagGlobRules warns about rules that look like patterns but match literally.
func (a *archiver) flagGlobRules(ctx context.Context) {
	for _, rule := range a.filter.GlobLikeRules() {
		logger.DebugKV(ctx, "Exclusion rule is matched as a literal substring, not a pattern", "rule", rule)
	}
}

func output(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}

	return w
}
