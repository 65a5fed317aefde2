// Package ui renders git command lifecycle events as concise console messages.
//
// The console logger is attached as an execshell observer when human-readable
// logging is enabled, while structured telemetry keeps flowing through zap.
package ui
