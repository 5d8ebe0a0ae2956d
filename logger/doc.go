// Package logger provides structured logging for reqkit using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers. Transports log one line per exchange at debug
// level, tagged with the exchange's request ID.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("fetch")
//	log.Debug("exchange started", logger.Fields(logger.FieldRequestID, id, logger.FieldURL, url))
package logger
