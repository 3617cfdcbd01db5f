package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/excise/internal/configloader"
	"github.com/yaklabco/excise/internal/logging"
	"github.com/yaklabco/excise/pkg/config"
	"github.com/yaklabco/excise/pkg/excise"
	"github.com/yaklabco/excise/pkg/reporter"
	"github.com/yaklabco/excise/pkg/runner"
)

// ErrIssuesFound is returned when the run produced error diagnostics.
var ErrIssuesFound = errors.New("issues found")

type runFlags struct {
	format    string
	language  string
	marker    string
	blocks    []string
	rules     []string
	ignore    []string
	strict    bool
	noContext bool
	compact   bool
}

func newRunCommand() *cobra.Command {
	var cfg config.Config
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Remove configured blocks from source files",
		Long:  runLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExcise(cmd, args, &cfg, flags)
		},
	}

	addRunFlags(cmd, &cfg, flags)

	return cmd
}

const runLongDescription = `Remove configured blocks from source files.

By default, processes all supported source files in the current directory
and subdirectories. Specify paths to process specific files or directories.
Blocks and pattern rules come from .excise.yml; --block and --rule given
on the command line take their place for this run.

Examples:
  excise run                           # Process current directory
  excise run src/                      # Process src directory
  excise run src/app.ts                # Process single file
  excise run --block deployArtifact    # Excise one block by name
  excise run --rule 'drop-call=oldApi\(\);\n?='  # Ad-hoc pattern rule
  excise run --dry-run --format diff   # Show changes without applying
  excise run --format json             # Output as JSON for CI
  excise run --strict                  # Treat warnings as errors`

func runExcise(cmd *cobra.Command, args []string, cfg *config.Config, flags *runFlags) error {
	logger := logging.Default()

	// Map string flags to typed config values.
	// Only set values that were explicitly provided via CLI flags.
	cfg.Format = config.OutputFormat(flags.format)
	if cmd.Flags().Changed("language") {
		cfg.Language = flags.language
	}
	if cmd.Flags().Changed("marker") {
		cfg.Marker = flags.marker
	}
	cfg.Blocks = flags.blocks
	cfg.Ignore = flags.ignore
	cfg.Strict = flags.strict

	rules, err := parseRuleFlags(flags.rules)
	if err != nil {
		return err
	}
	cfg.Rules = rules

	// Load and merge configuration.
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	// Get working directory for config discovery.
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	// Build load options.
	loadOpts := configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cfg,
	}

	loadResult, err := configloader.Load(ctx, loadOpts)
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	finalCfg := loadResult.Config

	// Log warnings from config loading.
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	// Log loaded configuration files.
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	logger.Debug("configuration loaded",
		logging.FieldLanguage, finalCfg.Language,
		logging.FieldBlocks, len(finalCfg.Blocks),
		logging.FieldRules, len(finalCfg.Rules),
		logging.FieldDryRun, finalCfg.DryRun,
		logging.FieldJobs, finalCfg.Jobs,
	)

	if len(finalCfg.Blocks) == 0 && len(finalCfg.Rules) == 0 {
		logger.Warn("no blocks or rules configured; nothing to do")
		return nil
	}

	// Create the transform engine.
	engine, err := excise.NewEngine(finalCfg)
	if err != nil {
		return errors.Join(errors.New("invalid rule configuration"), err)
	}

	// Create the safety pipeline.
	pipeline := excise.NewPipeline(engine)

	// Create the runner.
	exciseRunner := runner.New(pipeline)

	// Build runner options.
	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   finalCfg.Extensions,
		ExcludeGlobs: finalCfg.Ignore,
		Jobs:         finalCfg.Jobs,
		Config:       finalCfg,
	}

	logger.Debug("starting run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	// Run the transform.
	result, err := exciseRunner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("run failed"), err)
	}

	// Get color mode from persistent flag.
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto" // Default to auto if flag retrieval fails
	}

	// Parse output format.
	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	// Create reporter.
	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	// Report results.
	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	// Determine exit code based on result.
	exitCode := ExitCodeFromResult(result, finalCfg.Strict)
	if exitCode != ExitSuccess {
		return ErrIssuesFound
	}

	return nil
}

// parseRuleFlags converts --rule values of the form id=pattern=replace
// into rule configs. The replacement may be empty or omitted; the
// pattern is a regular expression and may itself contain '='.
func parseRuleFlags(values []string) ([]config.RuleConfig, error) {
	if len(values) == 0 {
		return nil, nil
	}

	rules := make([]config.RuleConfig, 0, len(values))
	for _, value := range values {
		parts := strings.SplitN(value, "=", 2)
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid --rule %q: expected id=pattern=replace", value)
		}

		id := parts[0]
		pattern := parts[1]
		replace := ""
		if idx := strings.LastIndex(parts[1], "="); idx >= 0 {
			pattern = parts[1][:idx]
			replace = parts[1][idx+1:]
		}
		if pattern == "" {
			return nil, fmt.Errorf("invalid --rule %q: empty pattern", value)
		}

		rules = append(rules, config.RuleConfig{ID: id, Pattern: pattern, Replace: replace})
	}

	return rules, nil
}

func addRunFlags(cmd *cobra.Command, cfg *config.Config, flags *runFlags) {
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show changes without applying them")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, diff")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.blocks, "block", nil, "block names to excise (repeatable)")
	cmd.Flags().StringArrayVar(&flags.rules, "rule", nil,
		"pattern rule as id=pattern=replace (repeatable)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringVar(&flags.language, "language", "auto",
		"string-literal profile: auto, typescript, javascript, go")
	cmd.Flags().StringVar(&flags.marker, "marker", "",
		"replacement template for excised blocks ({name} expands)")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when rewriting")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
}
