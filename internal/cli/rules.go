package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/excise/internal/configloader"
	"github.com/yaklabco/excise/internal/logging"
)

type rulesFlags struct {
	format string
}

const formatJSON = "json"

// blockInfo represents a configured block in JSON output.
type blockInfo struct {
	Name string `json:"name"`
}

// patternInfo represents a configured pattern rule in JSON output.
type patternInfo struct {
	ID      string `json:"id"`
	Pattern string `json:"pattern"`
	Replace string `json:"replace"`
	Literal bool   `json:"literal"`
}

// rulesOutput is the top-level JSON structure for the rules command.
type rulesOutput struct {
	Blocks []blockInfo   `json:"blocks"`
	Rules  []patternInfo `json:"rules"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List configured blocks and pattern rules",
		Long: `List the blocks and pattern rules that the current configuration
would apply, after merging config files, environment, and flags.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			configPath, err := cmd.Flags().GetString("config")
			if err != nil {
				return fmt.Errorf("get config flag: %w", err)
			}

			loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
				ExplicitPath: configPath,
			})
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			cfg := loadResult.Config

			// Handle JSON output format.
			if flags.format == formatJSON {
				output := rulesOutput{
					Blocks: make([]blockInfo, 0, len(cfg.Blocks)),
					Rules:  make([]patternInfo, 0, len(cfg.Rules)),
				}
				for _, name := range cfg.Blocks {
					output.Blocks = append(output.Blocks, blockInfo{Name: name})
				}
				for _, rule := range cfg.Rules {
					output.Rules = append(output.Rules, patternInfo{
						ID:      rule.ID,
						Pattern: rule.Pattern,
						Replace: rule.Replace,
						Literal: rule.Literal,
					})
				}

				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(output); err != nil {
					return fmt.Errorf("encoding rules: %w", err)
				}
				return nil
			}

			// Default to text output.
			logger := logging.NewInteractive()

			if len(cfg.Blocks) == 0 && len(cfg.Rules) == 0 {
				logger.Info("no blocks or rules configured")
				logger.Info("add them to .excise.yml or pass --block")
				return nil
			}

			if len(cfg.Blocks) > 0 {
				logger.Info("configured blocks")
				for _, name := range cfg.Blocks {
					logger.Info(name)
				}
			}

			if len(cfg.Rules) > 0 {
				logger.Info("configured pattern rules")
				for _, rule := range cfg.Rules {
					logger.Info(rule.ID,
						logging.FieldPattern, rule.Pattern,
						logging.FieldReplace, rule.Replace,
					)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")

	return cmd
}
