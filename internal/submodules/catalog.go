package submodules

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	formatconfig "github.com/go-git/go-git/v5/plumbing/format/config"
)

const (
	// DeclarationFileNameConstant is the file holding submodule declarations at the superproject root.
	DeclarationFileNameConstant = ".gitmodules"

	gitMarkerNameConstant                   = ".git"
	submoduleSectionNameConstant            = "submodule"
	pathOptionNameConstant                  = "path"
	urlOptionNameConstant                   = "url"
	parentDirectoryConstant                 = ".."
	currentDirectoryConstant                = "."
	pathSeparatorConstant                   = "/"
	windowsPathSeparatorConstant            = "\\"
	declarationsMalformedMessageConstant    = "submodule declarations are malformed"
	declarationsUnreadableMessageConstant   = "submodule declarations are unreadable"
	checkoutInspectionFailedMessageConstant = "submodule checkout could not be inspected"
	declarationErrorTemplateConstant        = "%w: %s: %v"
)

// ErrDeclarationsMalformed indicates .gitmodules exists but could not be parsed.
var ErrDeclarationsMalformed = errors.New(declarationsMalformedMessageConstant)

// ErrDeclarationsUnreadable indicates .gitmodules exists but could not be read.
var ErrDeclarationsUnreadable = errors.New(declarationsUnreadableMessageConstant)

// ErrCheckoutInspectionFailed indicates the checkout marker could not be examined.
var ErrCheckoutInspectionFailed = errors.New(checkoutInspectionFailedMessageConstant)

// Declaration describes one submodule entry from .gitmodules.
type Declaration struct {
	Name string
	Path string
	URL  string
}

// FilesystemFactory opens a filesystem rooted at the superproject directory.
type FilesystemFactory func(rootPath string) billy.Filesystem

// OSFilesystemFactory returns an operating system filesystem rooted at rootPath.
func OSFilesystemFactory(rootPath string) billy.Filesystem {
	return osfs.New(rootPath)
}

// Catalog lists submodule declarations and checks their checkouts.
type Catalog struct {
	filesystemFactory FilesystemFactory
}

// NewCatalog constructs a Catalog; a nil factory selects the operating system filesystem.
func NewCatalog(filesystemFactory FilesystemFactory) *Catalog {
	if filesystemFactory == nil {
		filesystemFactory = OSFilesystemFactory
	}
	return &Catalog{filesystemFactory: filesystemFactory}
}

// ReadDeclarations returns the declared submodules in file order.
// A missing declaration file yields an empty list and no error.
// Entries without a path, or whose path leaves the superproject, are ignored.
func (catalog *Catalog) ReadDeclarations(rootPath string) ([]Declaration, error) {
	filesystem := catalog.filesystemFactory(rootPath)

	declarationFile, openError := filesystem.Open(DeclarationFileNameConstant)
	if openError != nil {
		if errors.Is(openError, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf(declarationErrorTemplateConstant, ErrDeclarationsUnreadable, DeclarationFileNameConstant, openError)
	}
	defer declarationFile.Close()

	decodedConfiguration := formatconfig.New()
	if decodeError := formatconfig.NewDecoder(declarationFile).Decode(decodedConfiguration); decodeError != nil {
		return nil, fmt.Errorf(declarationErrorTemplateConstant, ErrDeclarationsMalformed, DeclarationFileNameConstant, decodeError)
	}

	declarations := []Declaration{}
	seenPaths := map[string]struct{}{}
	for _, section := range decodedConfiguration.Sections {
		if !section.IsName(submoduleSectionNameConstant) {
			continue
		}
		for _, subsection := range section.Subsections {
			declaredPath, valid := NormalizePath(subsection.Options.Get(pathOptionNameConstant))
			if !valid {
				continue
			}
			if _, seen := seenPaths[declaredPath]; seen {
				continue
			}
			seenPaths[declaredPath] = struct{}{}
			declarations = append(declarations, Declaration{
				Name: subsection.Name,
				Path: declaredPath,
				URL:  strings.TrimSpace(subsection.Options.Get(urlOptionNameConstant)),
			})
		}
	}
	return declarations, nil
}

// IsCheckedOut reports whether relativePath exists and carries a .git marker (file or directory).
func (catalog *Catalog) IsCheckedOut(rootPath string, relativePath string) (bool, error) {
	normalizedPath, valid := NormalizePath(relativePath)
	if !valid {
		return false, nil
	}

	filesystem := catalog.filesystemFactory(rootPath)
	directoryInfo, statError := filesystem.Stat(normalizedPath)
	if statError != nil {
		if errors.Is(statError, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf(declarationErrorTemplateConstant, ErrCheckoutInspectionFailed, normalizedPath, statError)
	}
	if !directoryInfo.IsDir() {
		return false, nil
	}

	markerPath := filesystem.Join(normalizedPath, gitMarkerNameConstant)
	if _, markerError := filesystem.Stat(markerPath); markerError != nil {
		if errors.Is(markerError, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf(declarationErrorTemplateConstant, ErrCheckoutInspectionFailed, markerPath, markerError)
	}
	return true, nil
}

// NormalizePath cleans a declared submodule path and reports whether it stays inside the superproject.
func NormalizePath(declaredPath string) (string, bool) {
	trimmedPath := strings.TrimSpace(declaredPath)
	if len(trimmedPath) == 0 {
		return "", false
	}
	cleanedPath := path.Clean(strings.ReplaceAll(trimmedPath, windowsPathSeparatorConstant, pathSeparatorConstant))
	if strings.HasPrefix(cleanedPath, pathSeparatorConstant) || cleanedPath == currentDirectoryConstant {
		return "", false
	}
	if cleanedPath == parentDirectoryConstant || strings.HasPrefix(cleanedPath, parentDirectoryConstant+pathSeparatorConstant) {
		return "", false
	}
	return cleanedPath, true
}
