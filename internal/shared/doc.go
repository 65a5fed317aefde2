// Package shared holds the contracts used across the pushall packages: the git
// executor and repository client capabilities, the clock, and the progress reporter.
package shared
