// Package logging builds the slog loggers used across the pipelines and
// defines the standardized structured field names. The console handler
// renders compact single-line output for interactive runs; the JSON handler
// serves log files and non-TTY output.
package logging
