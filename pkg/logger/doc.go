// Package logger provides a context-aware wrapper around Go's slog package
// adding functional options for configuration, helper attribute constructors,
// and transparent injection of values stored in context.Context.
//
// The qsgen command logs through a single *slog.Logger created by New. By
// default records are written as text to stderr at INFO level, so the
// generated source printed with --stdout is never mixed with log output.
//
// # Architecture
//
// New picks slog.NewTextHandler or slog.NewJSONHandler based on the configured
// Format and wraps it with LogHandlerDecorator, which runs the registered
// ContextExtractor callbacks before delegating to the underlying handler.
//
// Helper constructors such as Component, Type, File and Error live in attr.go
// and keep attribute keys consistent across packages.
//
// # Usage
//
//	import "github.com/dmitrymomot/qsgen/pkg/logger"
//
//	level, err := logger.ParseLevel(os.Getenv("QSGEN_LOG_LEVEL"))
//	if err != nil {
//	    return err
//	}
//	log := logger.New(
//	    logger.WithLevel(level),
//	    logger.WithTool("qsgen", version),
//	    logger.WithContextValue("dir", dirKey{}),
//	)
//
//	ctx := context.WithValue(ctx, dirKey{}, "./api")
//	log.InfoContext(ctx, "generated", logger.Type("ListUsersRequest"))
//
// # Configuration
//
//   - WithFormat / WithTextFormatter / WithJSONFormatter: output format.
//   - WithLevel / WithVerbose: minimum level.
//   - WithTool / WithAttr: static attributes.
//   - WithContextExtractors / WithContextValue: attributes from context.
//   - ParseFormat / ParseLevel: validate user supplied values.
//
// # Error Handling
//
// Error and Errors produce attributes only when the supplied error is non-nil:
//
//	log.Info("done", logger.Error(err))
package logger
