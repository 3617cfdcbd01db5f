package configloader

import "github.com/yaklabco/excise/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	// Start with a shallow copy of base
	result := *base

	// Scalars: override overwrites base if set (non-zero value)
	if override.Language != "" {
		result.Language = override.Language
	}
	if override.Marker != "" {
		result.Marker = override.Marker
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// Booleans: these are tricky because false is the zero value.
	// For DryRun, Strict, NoBackups - we check if they're true in override.
	// This means CLI --dry-run will override, but config file cannot unset.
	if override.DryRun {
		result.DryRun = override.DryRun
	}
	if override.Strict {
		result.Strict = override.Strict
	}
	if override.NoBackups {
		result.NoBackups = override.NoBackups
	}

	// Backups: merge individual fields
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	// For Enabled, we need to handle it specially since false is meaningful
	// The BackupsConfig struct uses bool directly, so we can only detect
	// "true" being set. This is a limitation of the current config structure.
	if override.Backups.Enabled {
		result.Backups.Enabled = override.Backups.Enabled
	}

	// Slices: override replaces base entirely if non-nil
	if override.Modifiers != nil {
		result.Modifiers = override.Modifiers
	}
	if override.Blocks != nil {
		result.Blocks = override.Blocks
	}
	if override.Rules != nil {
		result.Rules = override.Rules
	}
	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
