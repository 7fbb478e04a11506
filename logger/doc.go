// Package logger provides structured logging on top of zerolog.
//
// Loggers are either console (human readable, tagged with the first three
// letters of the service name) or JSON. Components obtain a tagged logger
// with WithComponent; request-scoped ids travel through the context and are
// attached by WithContext.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Init(cfg.Logging, "storefront").WithComponent("authform")
//	log.Info("sign-in succeeded", logger.Fields(logger.FieldMode, "sign_in"))
package logger
