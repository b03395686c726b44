// Package apply implements the apply command: load a configuration, collect
// the target files under a root and run every step over each of them.
package apply

import (
	"github.com/rs/zerolog"

	"github.com/arthur-debert/repatch/pkg/config"
	"github.com/arthur-debert/repatch/pkg/discovery"
	"github.com/arthur-debert/repatch/pkg/errors"
	"github.com/arthur-debert/repatch/pkg/filesystem"
	"github.com/arthur-debert/repatch/pkg/logging"
	"github.com/arthur-debert/repatch/pkg/pipeline"
	"github.com/arthur-debert/repatch/pkg/report"
	"github.com/arthur-debert/repatch/pkg/types"
	"github.com/arthur-debert/repatch/pkg/ui/output"
)

// ApplyOptions holds options for the apply command
type ApplyOptions struct {
	Root string
	// ConfigPath overrides configuration discovery under Root
	ConfigPath string
	DryRun     bool
	Verbose    bool
	FileSystem types.FS
	// Renderer receives per-file output; a plain renderer on stdout is
	// used when nil
	Renderer *output.Renderer
}

// FileResult is the outcome for one target file
type FileResult struct {
	Path          string
	Changed       bool
	BackupCreated bool
	Err           error
}

// Result is the outcome of a whole run
type Result struct {
	ConfigPath   string
	DryRun       bool
	Files        []FileResult
	Changed      int
	Unchanged    int
	Failed       int
	SkippedSteps []string
}

// Apply discovers and loads the configuration, then runs it
func Apply(opts ApplyOptions) (*Result, error) {
	logger := logging.GetLogger("commands.apply")
	done := logging.LogOperationStart(logger, "apply")
	defer done()

	root := opts.Root
	if root == "" {
		root = "."
	}

	path, err := config.Discover(root, opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	ctx := &types.RunContext{
		Root:         root,
		Mode:         types.RunModeFor(opts.DryRun),
		Verbose:      opts.Verbose,
		BackupSuffix: cfg.BackupSuffix,
		FS:           opts.FileSystem,
	}
	return Run(ctx, cfg, opts.Renderer)
}

// Run applies a loaded configuration to every target under ctx.Root.
// Files are processed one at a time in path order. A file that cannot be
// read or written is recorded as failed and the run moves on; the returned
// error then reports the failure count. Finding no target at all is also
// an error.
func Run(ctx *types.RunContext, cfg *config.Config, r *output.Renderer) (*Result, error) {
	logger := logging.GetLogger("commands.apply")

	if ctx.FS == nil {
		ctx.FS = filesystem.NewOS()
		if ctx.DryRun() {
			ctx.FS = filesystem.NewReadOnlyOS()
		}
	}
	if r == nil {
		r = output.NewRenderer(ctx.Writer(), output.Options{Verbose: ctx.Verbose})
	}

	result := &Result{
		ConfigPath:   cfg.Path,
		DryRun:       ctx.DryRun(),
		SkippedSteps: cfg.Skipped,
	}
	ctx.SkippedSteps = len(cfg.Skipped)
	for _, kind := range cfg.Skipped {
		if err := r.Warning("unknown step type \"" + kind + "\" skipped"); err != nil {
			return result, err
		}
	}

	// Step 1: collect targets
	targets, err := discovery.Collect(discovery.Options{
		Root:       ctx.Root,
		Matchers:   cfg.Targets,
		Extensions: cfg.Extensions,
		FS:         ctx.FS,
	})
	if err != nil {
		return result, err
	}
	if len(targets) == 0 {
		return result, errors.Newf(errors.ErrNoFilesMatched, "no files under %s match %v", ctx.Root, cfg.Targets.Patterns()).
			WithDetail("root", ctx.Root)
	}
	discovery.Sort(targets)
	logger.Info().Int("targets", len(targets)).Str("mode", string(ctx.Mode)).Msg("Collected targets")

	if ctx.DryRun() {
		if err := r.DryRunBanner(); err != nil {
			return result, err
		}
	}

	// Step 2: run the pipeline over each file
	p := pipeline.New(cfg.Steps...)
	for _, target := range targets {
		fr := processFile(ctx, p, r, target, logger)
		result.Files = append(result.Files, fr)
	}

	result.Changed = ctx.Changed
	result.Unchanged = ctx.Unchanged
	result.Failed = ctx.Failed

	// Step 3: summarize
	if err := r.Summary(output.Summary{
		Changed:      ctx.Changed,
		Unchanged:    ctx.Unchanged,
		Failed:       ctx.Failed,
		SkippedSteps: ctx.SkippedSteps,
		DryRun:       ctx.DryRun(),
	}); err != nil {
		return result, err
	}

	logger.Info().
		Int("changed", result.Changed).
		Int("unchanged", result.Unchanged).
		Int("failed", result.Failed).
		Msg("Apply completed")

	if result.Failed > 0 {
		return result, errors.Newf(errors.ErrFilesFailed, "%d of %d files failed", result.Failed, len(targets))
	}
	return result, nil
}

func processFile(ctx *types.RunContext, p *pipeline.Pipeline, r *output.Renderer, target discovery.Target, logger zerolog.Logger) FileResult {
	fr := FileResult{Path: target.Rel}

	fail := func(err error) FileResult {
		ctx.Failed++
		fr.Err = err
		logger.Error().Err(err).Str("path", target.Rel).Msg("File failed")
		if rerr := r.Failed(target.Rel, err); rerr != nil {
			logger.Warn().Err(rerr).Msg("Failed to render file failure")
		}
		return fr
	}

	data, err := ctx.FS.ReadFile(target.Path)
	if err != nil {
		return fail(errors.Wrapf(err, errors.ErrFileRead, "cannot read %s", target.Rel))
	}

	res := p.Apply(string(data))
	logger.Debug().
		Str("path", target.Rel).
		Bool("changed", res.Changed).
		Int("stepsChanged", res.StepsChanged()).
		Msg("Pipeline applied")

	if !res.Changed {
		ctx.Unchanged++
		if err := r.Unchanged(target.Rel); err != nil {
			logger.Warn().Err(err).Msg("Failed to render unchanged file")
		}
		return fr
	}

	if ctx.DryRun() {
		ctx.Changed++
		fr.Changed = true
		if err := r.Diff(target.Rel, res.Original, res.Text); err != nil {
			logger.Warn().Err(err).Msg("Failed to render diff")
		}
		return fr
	}

	created, err := report.Commit(ctx.FS, target.Path, res.Original, res.Text, ctx.Suffix())
	fr.BackupCreated = created
	if err != nil {
		return fail(err)
	}
	ctx.Changed++
	fr.Changed = true
	if err := r.Written(target.Rel, created); err != nil {
		logger.Warn().Err(err).Msg("Failed to render write notice")
	}
	return fr
}
