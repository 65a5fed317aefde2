// Package utils exposes reusable helpers consumed by the CLI and its commands.
//
// It houses the ConfigurationLoader, which layers embedded defaults, config
// files, and environment variables through Viper, the LoggerFactory that builds
// zap loggers, and the RunContext carried from the root command into subcommands.
package utils
