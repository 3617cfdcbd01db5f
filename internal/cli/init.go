package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/excise/internal/configloader"
	"github.com/yaklabco/excise/internal/logging"
	"github.com/yaklabco/excise/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new excise configuration file",
		Long: `Create a new .excise.yml configuration file in the current directory
with sensible defaults. The file can be customized to name blocks to
excise, add pattern rules, and configure other options.

Examples:
  excise init                     Create minimal .excise.yml
  excise init --full              Create full config with documentation
  excise init --output custom.yml Write to a custom file path`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with documentation")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .excise.yml)")

	return cmd
}

func runInit(flags *initFlags) error {
	logger := logging.NewInteractive()

	// Determine output path
	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".excise.yml"
	}

	// Make path absolute
	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	// Check if file exists
	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			if !configloader.IsInteractive() {
				return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
			}
			overwrite, err := promptOverwrite(outputPath)
			if err != nil {
				return err
			}
			if !overwrite {
				return fmt.Errorf("file %q already exists", outputPath)
			}
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	// Generate template
	content := config.GenerateTemplate(config.TemplateOptions{Full: flags.full})

	// Write file
	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)

	if flags.full {
		logger.Info("full template documents every option")
	}

	logger.Info("name blocks to excise under 'blocks' and run 'excise run'")

	return nil
}

// promptOverwrite asks the user whether to overwrite an existing file.
func promptOverwrite(path string) (bool, error) {
	if _, err := os.Stdout.WriteString("File " + path + " already exists. Overwrite? [y/N] "); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
