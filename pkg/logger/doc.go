// Package logger builds structured slog loggers with context extraction and
// optional Sentry reporting.
//
// # Usage
//
//	requestID := func(ctx context.Context) (slog.Attr, bool) {
//		if id, ok := ctx.Value(ctxKey{}).(string); ok {
//			return slog.String("request_id", id), true
//		}
//		return slog.Attr{}, false
//	}
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithFormat(logger.FormatText),
//		logger.WithExtractors(requestID),
//	)
//
// NewWithSentry tees warnings and errors to Sentry when a DSN is configured
// and falls back to stdout only otherwise:
//
//	log := logger.NewWithSentry(cfg.Log.Sentry, opts...)
//	defer logger.Flush(2 * time.Second)
//
// NewNope returns a logger that discards everything. Components use it as
// their default.
package logger
