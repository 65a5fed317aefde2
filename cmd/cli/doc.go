// Package cli builds the pushall command-line interface: the Cobra root
// command, the viper-backed configuration loader with embedded defaults, the
// zap logger, and the push-all subcommand.
package cli
