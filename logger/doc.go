// Package logger provides structured logging for dikit using zerolog.
//
// It supports JSON and console output, per-logger level configuration and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("di")
//	log.Debug("registration stored", logger.Fields("type", "app.Person"))
package logger
