package pushall

import (
	"context"
	"fmt"
	"strings"

	"github.com/temirov/pushall/internal/shared"
)

const (
	branchTimestampLayoutConstant       = "20060102-150405"
	branchNameTemplateConstant          = "%s-%s"
	branchNameSuffixTemplateConstant    = "%s-%d"
	branchPrefixTrimCharactersConstant  = "-/ "
	maximumBranchNameAttemptsConstant   = 1000
	branchNameExhaustedTemplateConstant = "%w: %s"
)

// branchNamer issues "<prefix>-YYYYMMDD-HHMMSS" names, adding "-2", "-3", ... until the name
// is neither an existing branch nor one already issued during the run.
type branchNamer struct {
	clock            shared.Clock
	repositoryClient shared.RepoClient
	prefix           string
	issuedNames      map[string]struct{}
}

func newBranchNamer(clock shared.Clock, repositoryClient shared.RepoClient, prefix string) *branchNamer {
	return &branchNamer{
		clock:            clock,
		repositoryClient: repositoryClient,
		prefix:           sanitizeBranchPrefix(prefix),
		issuedNames:      map[string]struct{}{},
	}
}

func (namer *branchNamer) Next(executionContext context.Context, repositoryPath string) (string, error) {
	baseName := fmt.Sprintf(branchNameTemplateConstant, namer.prefix, namer.clock.Now().Format(branchTimestampLayoutConstant))
	for attempt := 1; attempt <= maximumBranchNameAttemptsConstant; attempt++ {
		candidateName := baseName
		if attempt > 1 {
			candidateName = fmt.Sprintf(branchNameSuffixTemplateConstant, baseName, attempt)
		}
		if _, issued := namer.issuedNames[candidateName]; issued {
			continue
		}
		exists, lookupError := namer.repositoryClient.BranchExists(executionContext, repositoryPath, candidateName)
		if lookupError != nil {
			return "", lookupError
		}
		if exists {
			continue
		}
		namer.issuedNames[candidateName] = struct{}{}
		return candidateName, nil
	}
	return "", fmt.Errorf(branchNameExhaustedTemplateConstant, ErrBranchNamesExhausted, baseName)
}

func sanitizeBranchPrefix(prefix string) string {
	trimmedPrefix := strings.Trim(prefix, branchPrefixTrimCharactersConstant)
	if len(trimmedPrefix) == 0 {
		return defaultBranchPrefixConstant
	}
	return trimmedPrefix
}
