package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/codegen"
	"github.com/randalmurphal/codegen/config"
	"github.com/randalmurphal/codegen/globals"
	"github.com/randalmurphal/codegen/writer"
)

// errStale is returned by --verify when generated files are out of date.
var errStale = errors.New("generated files are out of date")

// watchDebounce coalesces bursts of file events from editors.
const watchDebounce = 100 * time.Millisecond

type generateOptions struct {
	configPath  string
	globalsPath string
	outDir      string
	newLine     string
	indent      string
	culture     string
	singleFile  string
	snakeCase   bool
	dryRun      bool
	verify      bool
	watch       bool
	verbose     *bool
}

func newGenerateCmd(verbose *bool) *cobra.Command {
	opts := &generateOptions{verbose: verbose}

	cmd := &cobra.Command{
		Use:   "generate [template]",
		Short: "Render a template into files",
		Long: `Render a template and write the files it produces.

Without a template argument, settings are read from codegen.yaml, codegen.yml,
codegen.toml or codegen.json in the current directory or its parents.
Flags override config values.`,
		Example: `  codegen generate
  codegen generate model.tmpl -g model.yaml -o gen --indent tab
  codegen generate --verify`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "Config file (default: search for codegen.yaml)")
	f.StringVarP(&opts.globalsPath, "globals", "g", "", "YAML, TOML or JSON data file bound as globals")
	f.StringVarP(&opts.outDir, "out", "o", "", "Output directory")
	f.StringVar(&opts.newLine, "newline", "", "Line terminator: lf, crlf or cr (default: platform)")
	f.StringVar(&opts.indent, "indent", "", "Re-indent with tab or a number of spaces")
	f.StringVar(&opts.culture, "culture", "", "BCP 47 language tag for number formatting")
	f.StringVar(&opts.singleFile, "single-file", "", "Write the whole output to one file with this name")
	f.BoolVar(&opts.snakeCase, "snake-case", false, "Expose globals under snake_case names")
	f.BoolVar(&opts.dryRun, "dry-run", false, "Show what would be written without writing")
	f.BoolVar(&opts.verify, "verify", false, "Fail if any generated file is out of date")
	f.BoolVar(&opts.watch, "watch", false, "Regenerate when the template, globals or config change")

	cmd.MarkFlagsMutuallyExclusive("dry-run", "verify", "watch")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *generateOptions, args []string) error {
	out := newPrinter(cmd.OutOrStdout(), *opts.verbose)

	cfg, configPath, err := opts.load(cmd, args)
	if err != nil {
		return err
	}
	if configPath != "" {
		out.Verbose("config: %s", configPath)
	}

	if !opts.watch {
		return opts.run(cfg, out)
	}

	if err := opts.run(cfg, out); err != nil {
		out.Error("%v", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	for {
		watched := watchTargets(cfg, configPath)
		out.Info("watching %d files, press Ctrl+C to stop", len(watched))

		// A config change that moves the template or globals restarts the
		// watcher on the new paths.
		watchCtx, stop := context.WithCancel(ctx)
		restart := false
		err := watchFiles(watchCtx, watched, watchDebounce, func(path string) {
			out.Verbose("changed: %s", path)
			if path == configPath {
				reloaded, _, err := opts.load(cmd, args)
				if err != nil {
					out.Error("%v", err)
					return
				}
				cfg = reloaded
				if !slices.Equal(watchTargets(cfg, configPath), watched) {
					restart = true
					stop()
				}
			}
			if err := opts.run(cfg, out); err != nil {
				out.Error("%v", err)
			}
		})
		stop()
		if err != nil || !restart || ctx.Err() != nil {
			return err
		}
	}
}

// watchTargets lists the files whose changes trigger regeneration.
func watchTargets(cfg *config.Config, configPath string) []string {
	watched := []string{cfg.TemplatePath()}
	if p := cfg.GlobalsPath(); p != "" {
		watched = append(watched, p)
	}
	if configPath != "" {
		watched = append(watched, configPath)
	}
	return watched
}

// load builds the effective config: the config file, then CODEGEN_*
// environment variables, then explicitly set flags.
func (o *generateOptions) load(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	path := o.configPath
	if path == "" && len(args) == 0 {
		found, err := config.Find(".")
		if err != nil {
			return nil, "", fmt.Errorf("no template given and %w", err)
		}
		path = found
	}

	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, "", err
		}
		cfg = loaded
		if path, err = filepath.Abs(path); err != nil {
			return nil, "", err
		}
	}
	cfg.LoadFromEnv()

	flags := cmd.Flags()
	if len(args) == 1 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return nil, "", err
		}
		cfg.Template = abs
	}
	if flags.Changed("globals") {
		abs, err := filepath.Abs(o.globalsPath)
		if err != nil {
			return nil, "", err
		}
		cfg.Globals = abs
	}
	if flags.Changed("out") {
		abs, err := filepath.Abs(o.outDir)
		if err != nil {
			return nil, "", err
		}
		cfg.Output = abs
	}
	if flags.Changed("newline") {
		cfg.NewLine = o.newLine
	}
	if flags.Changed("indent") {
		cfg.Indent = o.indent
	}
	if flags.Changed("culture") {
		cfg.Culture = o.culture
	}
	if flags.Changed("single-file") {
		cfg.SingleFile = o.singleFile
	}
	if flags.Changed("snake-case") {
		cfg.SnakeCase = o.snakeCase
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// run generates once and writes, previews or verifies the result.
func (o *generateOptions) run(cfg *config.Config, out *printer) error {
	files, err := generate(cfg)
	if err != nil {
		return err
	}

	dir := cfg.OutputDir()
	changes, err := writer.Plan(dir, files)
	if err != nil {
		return err
	}
	stale := writer.Stale(changes)

	switch {
	case o.dryRun:
		for _, c := range changes {
			out.Step("%-9s %s", c.Action, c.Name)
		}
		out.Info("%d of %d files would change in %s", len(stale), len(changes), dir)
		return nil

	case o.verify:
		if len(stale) == 0 {
			out.Success("%d files up to date", len(changes))
			return nil
		}
		for _, c := range stale {
			out.Step("%-9s %s", c.Action, c.Name)
		}
		return fmt.Errorf("%w: %d of %d files", errStale, len(stale), len(changes))
	}

	if err := writer.Commit(changes); err != nil {
		return err
	}
	for _, c := range stale {
		out.Verbose("%s %s", c.Action, c.Path)
	}
	out.Success("generated %d files in %s (%d changed)", len(changes), dir, len(stale))
	return nil
}

// generate renders the configured template.
func generate(cfg *config.Config) ([]codegen.OutputFile, error) {
	path := cfg.TemplatePath()
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}

	tmpl, err := codegen.ParseNamed(filepath.Base(path), string(text))
	if err != nil {
		return nil, err
	}

	var g *globals.Globals
	if p := cfg.GlobalsPath(); p != "" {
		values, err := config.LoadData(p)
		if err != nil {
			return nil, err
		}
		if g, err = globals.FromMap(values); err != nil {
			return nil, fmt.Errorf("globals %s: %w", p, err)
		}
	}

	settings, err := cfg.Settings()
	if err != nil {
		return nil, err
	}

	return tmpl.Generate(g, &settings)
}
