// Package logger provides structured logging for foldkit using zerolog.
//
// It supports JSON and console output, level configuration and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	log:
//	  level: "info"
//	  format: "console"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.New(&cfg, "stream")
//	log.Debug("fold finished", logger.Fields("pulled", 12, "stopped", true))
package logger
