// Package submodules reads submodule declarations from .gitmodules and reports
// whether each declared path holds a checkout. Declarations keep the order in
// which they appear in the file.
package submodules
