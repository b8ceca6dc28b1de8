// Package logger builds the *slog.Logger used across formkit and names the
// attributes forms, backends and the CLI log with.
//
// New picks a text or JSON handler, applies static attributes and wraps the
// result so every record logged with a context also carries the attributes
// of the registered ContextExtractor functions, such as the request ID:
//
//	log := logger.New(
//		logger.WithEnvironment(os.Getenv("APP_ENV"), "formkit"),
//		logger.WithLevelName(os.Getenv("LOG_LEVEL")),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//
//	log.DebugContext(ctx, "async check superseded",
//		logger.Path("root.nickname"),
//		logger.ValidatorID("uniqueness:nickname"),
//	)
//
// Error returns an empty attribute for a nil error, so it can be
// passed unconditionally. Noop discards everything; libraries in this module
// fall back to it when no logger is given.
package logger
