package pathutils

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
)

const (
	tildeSymbolConstant                 = "~"
	forwardSlashConstant                = "/"
	homeDirectoryUnknownMessageConstant = "home directory is unknown"
)

// ErrHomeDirectoryUnknown indicates the home directory could not be determined.
var ErrHomeDirectoryUnknown = errors.New(homeDirectoryUnknownMessageConstant)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// XDGHomeDirectory reports the home directory resolved by the XDG base directory lookup.
func XDGHomeDirectory() (string, error) {
	if len(strings.TrimSpace(xdg.Home)) == 0 {
		return "", ErrHomeDirectoryUnknown
	}
	return xdg.Home, nil
}

// HomeExpander rewrites "~" and "~/..." prefixes to paths under the home directory.
// "~user" forms are returned unchanged.
type HomeExpander struct {
	homeDirectoryProvider HomeDirectoryProvider
	resolveOnce           sync.Once
	homeDirectory         string
}

// NewHomeExpander constructs a HomeExpander backed by XDGHomeDirectory.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(XDGHomeDirectory)
}

// NewHomeExpanderWithProvider constructs a HomeExpander with a custom provider.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = XDGHomeDirectory
	}
	return &HomeExpander{homeDirectoryProvider: provider}
}

// Expand resolves a leading tilde; other paths and unresolvable homes pass through.
func (expander *HomeExpander) Expand(candidatePath string) string {
	if expander == nil || !strings.HasPrefix(candidatePath, tildeSymbolConstant) {
		return candidatePath
	}

	remainder := strings.TrimPrefix(candidatePath, tildeSymbolConstant)
	if len(remainder) > 0 && !isSeparatorPrefixed(remainder) {
		return candidatePath
	}

	homeDirectory := expander.resolveHomeDirectory()
	if len(homeDirectory) == 0 {
		return candidatePath
	}
	return filepath.Join(homeDirectory, filepath.FromSlash(strings.TrimLeft(remainder, forwardSlashConstant+string(os.PathSeparator))))
}

func (expander *HomeExpander) resolveHomeDirectory() string {
	expander.resolveOnce.Do(func() {
		homeDirectory, resolveError := expander.homeDirectoryProvider()
		if resolveError != nil {
			return
		}
		expander.homeDirectory = strings.TrimSpace(homeDirectory)
	})
	return expander.homeDirectory
}

func isSeparatorPrefixed(remainder string) bool {
	return strings.HasPrefix(remainder, forwardSlashConstant) || strings.HasPrefix(remainder, string(os.PathSeparator))
}
