package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/excise/pkg/config"
)

// envVarPrefix is the prefix for all excise environment variables.
const envVarPrefix = "EXCISE_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"LANGUAGE":        {field: "language", typ: envTypeString},
	"MARKER":          {field: "marker", typ: envTypeString},
	"DRY_RUN":         {field: "dry_run", typ: envTypeBool},
	"STRICT":          {field: "strict", typ: envTypeBool},
	"JOBS":            {field: "jobs", typ: envTypeInt},
	"FORMAT":          {field: "format", typ: envTypeString},
	"BACKUPS_ENABLED": {field: "backups.enabled", typ: envTypeBool},
	"BACKUPS_MODE":    {field: "backups.mode", typ: envTypeString},
	"BLOCKS":          {field: "blocks", typ: envTypeSlice},
	"EXTENSIONS":      {field: "extensions", typ: envTypeSlice},
	"IGNORE":          {field: "ignore", typ: envTypeSlice},
	"NO_BACKUPS":      {field: "no_backups", typ: envTypeBool},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with EXCISE_ (e.g., EXCISE_LANGUAGE).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		parts := parseSliceValue(value)
		return setSliceField(cfg, mapping.field, parts)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "language":
		cfg.Language = value
	case "marker":
		cfg.Marker = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "backups.mode":
		cfg.Backups.Mode = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "dry_run":
		cfg.DryRun = value
	case "strict":
		cfg.Strict = value
	case "backups.enabled":
		cfg.Backups.Enabled = value
	case "no_backups":
		cfg.NoBackups = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "blocks":
		cfg.Blocks = value
	case "extensions":
		cfg.Extensions = value
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns a list of all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"EXCISE_LANGUAGE":        "String-literal profile: auto, typescript, javascript, or go",
		"EXCISE_MARKER":          "Replacement template for excised blocks",
		"EXCISE_DRY_RUN":         "Dry-run mode: true or false",
		"EXCISE_STRICT":          "Treat warnings as errors: true or false",
		"EXCISE_JOBS":            "Number of parallel workers (0 = auto)",
		"EXCISE_FORMAT":          "Output format: text, json, or diff",
		"EXCISE_BACKUPS_ENABLED": "Enable backups when rewriting: true or false",
		"EXCISE_BACKUPS_MODE":    "Backup mode: sidecar or none",
		"EXCISE_BLOCKS":          "Comma-separated list of block names to excise",
		"EXCISE_EXTENSIONS":      "Comma-separated list of file extensions",
		"EXCISE_IGNORE":          "Comma-separated list of ignore patterns",
		"EXCISE_NO_BACKUPS":      "Disable backups: true or false",
	}
}
