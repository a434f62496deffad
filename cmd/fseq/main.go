package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/fseq/fseq/internal/config"
	"github.com/fseq/fseq/internal/enumerate"
	"github.com/fseq/fseq/internal/mcpserver"
	"github.com/fseq/fseq/internal/present"
	"github.com/fseq/fseq/internal/sequence"
	"github.com/fseq/fseq/internal/version"
	"github.com/fseq/fseq/pkg/pathutil"
)

var Version = version.Version

// loadConfigWithOverrides loads layered configuration for the target
// directory and applies CLI flag overrides on top.
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	root := c.String("root")
	if root == "" {
		root = "."
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path %q: %w", root, err)
	}

	cfg, err := config.Load(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load config for %s: %w", absRoot, err)
	}
	cfg.Project.Root = absRoot

	if keep := c.String("keep"); keep != "" {
		cfg.Collate.SplitStrategy = keep
	}
	if c.IsSet("merge-padding") {
		cfg.Collate.MergePadding = c.Bool("merge-padding")
	}
	if c.IsSet("pack") {
		cfg.Collate.Pack = c.Bool("pack")
	}
	if c.IsSet("bake-singleton") {
		cfg.Collate.BakeSingleton = c.Bool("bake-singleton")
	}
	if c.IsSet("sort") {
		cfg.Collate.Sort = c.Bool("sort")
	}
	if includeFlags := c.StringSlice("include"); len(includeFlags) > 0 {
		cfg.Include = includeFlags
	}
	if excludeFlags := c.StringSlice("exclude"); len(excludeFlags) > 0 {
		cfg.Exclude = append(cfg.Exclude, excludeFlags...)
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func enumeratorOptions(cfg *config.Config) enumerate.Options {
	opts := enumerate.Options{
		Root:           cfg.Project.Root,
		Include:        cfg.Include,
		Exclude:        cfg.Exclude,
		FollowSymlinks: cfg.Enumerate.FollowSymlinks,
	}
	if cfg.Enumerate.RespectGitignore {
		gp := config.NewGitignoreParser()
		if err := gp.LoadGitignore(cfg.Project.Root); err == nil {
			opts.Gitignore = gp
		}
	}
	return opts
}

func collateOnce(c *cli.Context, cfg *config.Config) error {
	fc, err := enumerate.Collate(enumeratorOptions(cfg), cfg.ToSequenceConfig())
	if err != nil {
		return err
	}

	// Display the root relative to the working directory, not as an absolute
	// path; a root outside the working directory stays absolute.
	if cwd, err := os.Getwd(); err == nil {
		fc.Name = pathutil.ToRelative(fc.Name, cwd)
	}

	if c.Bool("verbose") {
		reportStats(c, fc)
	}

	if c.Bool("json") {
		return present.JSON(c.App.Writer, fc)
	}
	return present.Text(c.App.Writer, fc)
}

func reportStats(c *cli.Context, fc sequence.FolderContent) {
	var singles, sequences int
	for _, item := range fc.Files {
		if item.Type == sequence.Single {
			singles++
		} else {
			sequences++
		}
	}
	fmt.Fprintf(c.App.ErrWriter, "fseq: %s: %d directories, %d plain files, %d sequences\n",
		pathutil.Leaf(fc.Name), len(fc.Directories), singles, sequences)
}

func listCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if err := collateOnce(c, cfg); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}

func watchCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	debounce := time.Duration(cfg.Enumerate.WatchDebounceMs) * time.Millisecond
	if c.Bool("verbose") {
		fmt.Fprintf(c.App.ErrWriter, "fseq: watching %s (debounce %s)\n", cfg.Project.Root, debounce)
	}

	err = enumerate.Watch(ctx, cfg.Project.Root, debounce, func() error {
		return collateOnce(c, cfg)
	})
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}

func mcpCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := mcpserver.NewServer(cfg)
	if err := server.Start(ctx); err != nil && ctx.Err() == nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}

func configInitCommand(c *cli.Context) error {
	path := projectConfigPath(c)
	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return cli.Exit(fmt.Sprintf("%s already exists (use --force to overwrite)", path), 1)
	}

	content := `// fseq project configuration
collate {
    split_strategy "variance"
    pack true
    bake_singleton true
    sort true
}
enumerate {
    respect_gitignore true
}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	fmt.Fprintf(c.App.Writer, "wrote %s\n", path)
	return nil
}

func configShowCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	fmt.Fprintf(c.App.Writer, "root            %s\n", cfg.Project.Root)
	fmt.Fprintf(c.App.Writer, "name            %s\n", cfg.Project.Name)
	fmt.Fprintf(c.App.Writer, "split_strategy  %s\n", cfg.Collate.SplitStrategy)
	fmt.Fprintf(c.App.Writer, "merge_padding   %t\n", cfg.Collate.MergePadding)
	fmt.Fprintf(c.App.Writer, "pack            %t\n", cfg.Collate.Pack)
	fmt.Fprintf(c.App.Writer, "bake_singleton  %t\n", cfg.Collate.BakeSingleton)
	fmt.Fprintf(c.App.Writer, "sort            %t\n", cfg.Collate.Sort)
	fmt.Fprintf(c.App.Writer, "include         %v\n", cfg.Include)
	fmt.Fprintf(c.App.Writer, "exclude         %v\n", cfg.Exclude)
	return nil
}

func configValidateCommand(c *cli.Context) error {
	if _, err := loadConfigWithOverrides(c); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	fmt.Fprintln(c.App.Writer, "configuration is valid")
	return nil
}

func projectConfigPath(c *cli.Context) string {
	root := c.String("root")
	if root == "" {
		root = "."
	}
	return filepath.Join(root, ".fseq.kdl")
}

func collateFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "keep",
			Usage: "Strategy for ambiguous digit runs: variance (default), none, first, last",
		},
		&cli.BoolFlag{
			Name:    "merge-padding",
			Aliases: []string{"m"},
			Usage:   "Merge sequences that differ only in zero-padding width",
		},
		&cli.BoolFlag{
			Name:    "pack",
			Aliases: []string{"p"},
			Usage:   "Replace index lists with contiguous [start:end]/step ranges",
		},
		&cli.BoolFlag{
			Name:    "bake-singleton",
			Aliases: []string{"b"},
			Usage:   "Report one-element sequences as plain files",
		},
		&cli.BoolFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "Sort directories and files by item type, then by name",
		},
		&cli.BoolFlag{
			Name:    "json",
			Aliases: []string{"j"},
			Usage:   "Output result as a JSON document",
		},
	}
}

func main() {
	app := &cli.App{
		Name:                   "fseq",
		Usage:                  "Collapse numbered file sequences into compact patterns",
		Version:                Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Directory to collate (default: current directory)",
			},
			&cli.StringSliceFlag{
				Name:  "include",
				Usage: "Only consider files matching glob patterns (e.g. --include '*.exr')",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Skip entries matching glob patterns (e.g. --exclude '*.tmp')",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Print collation statistics to stderr",
			},
		},
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "Collate the directory once and print the result",
				Flags:   collateFlags(),
				Action:  listCommand,
			},
			{
				Name:   "watch",
				Usage:  "Re-collate and reprint whenever the directory changes",
				Flags:  collateFlags(),
				Action: watchCommand,
			},
			{
				Name:   "mcp",
				Usage:  "Serve collation as MCP tools over stdio",
				Action: mcpCommand,
			},
			{
				Name:  "config",
				Usage: "Manage fseq configuration",
				Subcommands: []*cli.Command{
					{
						Name:  "init",
						Usage: "Write a starter .fseq.kdl to the project root",
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:  "force",
								Usage: "Overwrite an existing config file",
							},
						},
						Action: configInitCommand,
					},
					{
						Name:   "show",
						Usage:  "Print the resolved configuration",
						Action: configShowCommand,
					},
					{
						Name:   "validate",
						Usage:  "Check config files without collating",
						Action: configValidateCommand,
					},
				},
			},
		},
	}
	// Bare `fseq [flags]` behaves like `fseq list`.
	app.Flags = append(app.Flags, collateFlags()...)
	app.Action = listCommand

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
