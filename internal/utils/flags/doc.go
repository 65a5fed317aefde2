// Package flags provides pflag values shared by Cobra commands.
package flags
