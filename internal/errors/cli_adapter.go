package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
)

// CLIErrorAdapter handles error presentation and exit code determination for the CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	stderr  io.Writer
	exit    func(int)
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		stderr:  os.Stderr,
		exit:    os.Exit,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if dge, ok := As(err); ok {
		return a.exitCodeFromDeployGen(dge)
	}

	return 1
}

// exitCodeFromDeployGen maps DeployGenError to exit codes.
func (a *CLIErrorAdapter) exitCodeFromDeployGen(err *DeployGenError) int {
	switch err.Category {
	case CategoryValidation:
		return 2 // Invalid usage or input
	case CategoryCatalog:
		return 3 // Unknown repository
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryGit:
		return 8 // External system error
	case CategoryRender, CategoryInternal:
		return 10 // Internal error
	case CategoryFileSystem:
		return 11 // Output error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if dge, ok := As(err); ok {
		return a.formatDeployGen(dge)
	}

	return fmt.Sprintf("Error: %v", err)
}

// formatDeployGen formats a DeployGenError for display.
func (a *CLIErrorAdapter) formatDeployGen(err *DeployGenError) string {
	if a.verbose {
		return err.Error()
	}

	switch err.Category {
	case CategoryConfig, CategoryValidation, CategoryCatalog:
		return err.Message
	default:
		return fmt.Sprintf("%s: %s", err.Category, err.Message)
	}
}

// HandleError processes an error and exits the program with appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	exitCode := a.ExitCodeFor(err)
	message := a.FormatError(err)

	if a.shouldLog(err) {
		a.logError(err)
	}

	_, _ = fmt.Fprintf(a.stderr, "%s\n", message)
	a.exit(exitCode)
}

// shouldLog determines if an error should be logged.
func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}

	if dge, ok := As(err); ok {
		return dge.Category == CategoryInternal ||
			dge.Category == CategoryRender ||
			dge.Category == CategoryFileSystem
	}

	return true
}

// logError logs an error with appropriate level and context.
func (a *CLIErrorAdapter) logError(err error) {
	if dge, ok := As(err); ok {
		level := a.slogLevelFromSeverity(dge.Severity)
		attrs := []slog.Attr{
			slog.String("category", string(dge.Category)),
		}
		for _, k := range slices.Sorted(maps.Keys(dge.Context)) {
			attrs = append(attrs, slog.Any(k, dge.Context[k]))
		}
		if dge.Cause != nil {
			attrs = append(attrs, slog.String("error", dge.Cause.Error()))
		}

		a.logger.LogAttrs(context.Background(), level, dge.Message, attrs...)
		return
	}

	a.logger.Error("Unclassified error", "error", err)
}

// slogLevelFromSeverity converts DeployGenError severity to slog level.
func (a *CLIErrorAdapter) slogLevelFromSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
