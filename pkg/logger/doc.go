// Package logger builds log/slog loggers for the service.
//
// New returns a *slog.Logger writing JSON (default) or text, optionally
// preconfigured for an environment:
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "bussearch"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//
// Context extractors run on every record written with a context, so request
// scoped values such as the request id appear without threading the logger
// through every call.
//
// The attribute helpers (Error, SessionID, CacheKey, Endpoint, …) keep key
// names consistent across packages. Helpers that receive an empty value
// return an empty slog.Attr, which slog drops.
package logger
