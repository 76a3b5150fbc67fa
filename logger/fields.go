package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging.
// Use these constants instead of raw strings to ensure consistency.
const (
	FieldComponent = "component"
	FieldOperation = "operation"

	// Entities and declarations
	FieldEntity     = "entity"
	FieldShape      = "shape"
	FieldPrefix     = "prefix"
	FieldSuperclass = "superclass"
	FieldStray      = "stray_optionals"
	FieldRule       = "rule"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts and sizes
	FieldCount   = "count"
	FieldSize    = "size"
	FieldWorkers = "workers"

	// Files and paths
	FieldFile = "file"
	FieldPath = "path"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	g := &Generator{log: logger.ComponentLogger("typegen")}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
