// Package utils exposes reusable helpers consumed by the CLI commands.
//
// It houses ConfigurationLoader and LoggerFactory, which integrate Viper,
// environment variables and zap logging, plus the invocation metadata carried
// through command contexts.
package utils
