package configloader

import "github.com/yaklabco/qdiff/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Booleans: override can only switch an option on
//   - Kind switches: merged per kind, with the same rule as booleans
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
	if override.MinMatch != 0 {
		result.MinMatch = override.MinMatch
	}
	if override.Mode != "" {
		result.Mode = override.Mode
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.BytesPerLine != 0 {
		result.BytesPerLine = override.BytesPerLine
	}
	if override.TabSize != 0 {
		result.TabSize = override.TabSize
	}
	if override.Unprintable != "" {
		result.Unprintable = override.Unprintable
	}
	if override.Color != "" {
		result.Color = override.Color
	}

	// Booleans: false is the zero value, so only true is carried over.
	// A config file can switch an option on but never off; the
	// environment layer writes fields directly and can do both.
	result.NoHeuristics = result.NoHeuristics || override.NoHeuristics
	result.ByteByByte = result.ByteByByte || override.ByteByByte
	result.StopOnEOF = result.StopOnEOF || override.StopOnEOF
	result.LargeFiles = result.LargeFiles || override.LargeFiles
	result.LineNumbers = result.LineNumbers || override.LineNumbers
	result.NoLineBreak = result.NoLineBreak || override.NoLineBreak
	result.ShowLFAndTab = result.ShowLFAndTab || override.ShowLFAndTab
	result.ShowSpace = result.ShowSpace || override.ShowSpace
	result.ControlHex = result.ControlHex || override.ControlHex
	result.AlignmentMarks = result.AlignmentMarks || override.AlignmentMarks
	result.AltColors = result.AltColors || override.AltColors
	result.Progress = result.Progress || override.Progress
	result.Verbose = result.Verbose || override.Verbose

	result.Hide = mergeKinds(base.Hide, override.Hide)
	result.Range = mergeKinds(base.Range, override.Range)

	return &result
}

// mergeKinds merges per-kind switches.
func mergeKinds(base, override config.KindSwitches) config.KindSwitches {
	return config.KindSwitches{
		Match:        base.Match || override.Match,
		Deletion:     base.Deletion || override.Deletion,
		Insertion:    base.Insertion || override.Insertion,
		Substitution: base.Substitution || override.Substitution,
	}
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
