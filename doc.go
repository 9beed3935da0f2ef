// Package logex provides configuration-driven structured logging: a
// process-wide logger that writes to a rotating file and the console,
// enriched exception formatting, and a multi-tier strategy for locating a
// logging.yaml without requiring the caller to pass one explicitly.
//
// Key features
//   - Zero-config startup: the first logging call discovers a config file
//     (env override, walk-up search, common locations) or synthesizes the
//     default one
//   - Partial-override merge: file settings merge over built-in defaults
//     field by field, the console block key by key
//   - Rotating file sink via lumberjack plus an optional colorized console
//     sink, behind an asynchronous dispatch queue
//   - Exception records with traceback-style formatting: kind, message,
//     origin file/line/function, the failing source line, and the full
//     frame walk
//   - Atomic reconfiguration: SetConfig validates the new config before the
//     old sinks are torn down
//   - Context loggers via With()/Bind() for per-request scoping
//
// Typical usage
//
//	logex.Info("service starting")
//	logex.Bind("request_id", rid).InfoWith().Int("items", n).Msg("processed")
//
//	if err := doWork(); err != nil {
//		logex.Exception(err)
//	}
//	defer logex.Complete()
//
// Applications that want explicit control construct their own Service:
//
//	svc := &logex.Service{ConfigPath: "configs/logging.yaml"}
//	if err := svc.Configure(); err != nil { panic(err) }
//	defer svc.Close()
package logex
