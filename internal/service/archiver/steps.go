package archiver

import (
	"context"

	"github.com/oshokin/project-archiver/internal/config"
)

// step is one ordered stage of the archive plan.
type step struct {
	// title is printed before the step runs.
	title string
	// run adds the step's files and returns how many were written.
	run func(ctx context.Context, c *collector) int
}

// planSteps lays out the archive plan in its fixed order.
func planSteps(cfg *config.Config) []step {
	return []step{
		{
			title: "Adding " + cfg.SourceTree + " (all source files, resources, manifest)",
			run: func(ctx context.Context, c *collector) int {
				return c.tree(ctx, cfg.SourceTree)
			},
		},
		{
			title: "Adding module build files",
			run: func(ctx context.Context, c *collector) int {
				return c.files(ctx, cfg.ModuleFiles)
			},
		},
		{
			title: "Adding root build files",
			run: func(ctx context.Context, c *collector) int {
				return c.files(ctx, cfg.RootFiles)
			},
		},
		{
			title: "Adding build wrapper",
			run: func(ctx context.Context, c *collector) int {
				if cfg.WrapperDir == "" {
					return 0
				}

				return c.tree(ctx, cfg.WrapperDir)
			},
		},
		{
			title: "Adding wrapper scripts",
			run: func(ctx context.Context, c *collector) int {
				return c.files(ctx, cfg.WrapperScripts)
			},
		},
		{
			title: "Adding rules file",
			run: func(ctx context.Context, c *collector) int {
				if cfg.RulesFile == "" {
					return 0
				}

				return c.files(ctx, []string{cfg.RulesFile})
			},
		},
		{
			title: "Adding version control files",
			run: func(ctx context.Context, c *collector) int {
				return c.files(ctx, cfg.VCSFiles)
			},
		},
		{
			title: "Adding documentation and scripts",
			run: func(ctx context.Context, c *collector) int {
				return c.scan(ctx, cfg.DocExtensions, cfg.VCSFiles)
			},
		},
	}
}
