package logger

// OutputCategory defines a category of CLI output that can be enabled/disabled.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults OutputCategory = iota // Generated file list, check verdicts
	OutputErrors                        // Errors with hints

	// Level 1 (-v) - Informational
	OutputProgress // Per-group progress ("Processing dijit")
	OutputConfig   // Config summary

	// Level 2 (-vv) - Detailed
	OutputTiming   // Synthesis timing
	OutputWarnings // Overload and patch warnings per entity

	// Level 3 (-vvv) - Trace
	OutputEntityTrace // One line per classified entity
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputResults:     VerbosityUser,
	OutputErrors:      VerbosityUser,
	OutputProgress:    VerbosityInfo,
	OutputConfig:      VerbosityInfo,
	OutputTiming:      VerbosityDebug,
	OutputWarnings:    VerbosityDebug,
	OutputEntityTrace: VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}
