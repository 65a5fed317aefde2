package gitrepo

import (
	"fmt"
	"strings"
)

const (
	sshProtocolPrefixConstant           = "ssh://"
	httpsProtocolPrefixConstant         = "https://"
	httpProtocolPrefixConstant          = "http://"
	sshUserDelimiterConstant            = "@"
	sshPathDelimiterConstant            = ":"
	pathSeparatorConstant               = "/"
	gitSuffixConstant                   = ".git"
	remoteURLParseErrorTemplateConstant = "%s: %s"
	remoteDescriptionTemplateConstant   = "%s/%s on %s"
	requiredValueMessageConstant        = "value required"
	invalidRemoteURLMessageConstant     = "invalid remote url"
)

// RemoteProtocol enumerates supported git remote protocols.
type RemoteProtocol string

// Supported remote protocols.
const (
	RemoteProtocolSSH   RemoteProtocol = RemoteProtocol("ssh")
	RemoteProtocolHTTPS RemoteProtocol = RemoteProtocol("https")
	RemoteProtocolHTTP  RemoteProtocol = RemoteProtocol("http")
)

// RemoteURL represents a structured git remote URL.
type RemoteURL struct {
	Protocol   RemoteProtocol
	Host       string
	Owner      string
	Repository string
}

// RemoteURLParseError indicates a remote string could not be parsed.
type RemoteURLParseError struct {
	Input   string
	Message string
}

// Error describes the parse failure.
func (parseError RemoteURLParseError) Error() string {
	return fmt.Sprintf(remoteURLParseErrorTemplateConstant, parseError.Input, parseError.Message)
}

// ParseRemoteURL converts a textual remote URL into a structured representation.
// Owners may span several path segments, as with nested groups on self-hosted forges.
func ParseRemoteURL(remote string) (RemoteURL, error) {
	trimmedRemote := strings.TrimSpace(remote)
	if len(trimmedRemote) == 0 {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: requiredValueMessageConstant}
	}

	switch {
	case strings.HasPrefix(trimmedRemote, sshProtocolPrefixConstant):
		return parseSchemeRemote(remote, strings.TrimPrefix(trimmedRemote, sshProtocolPrefixConstant), RemoteProtocolSSH)
	case strings.HasPrefix(trimmedRemote, httpsProtocolPrefixConstant):
		return parseSchemeRemote(remote, strings.TrimPrefix(trimmedRemote, httpsProtocolPrefixConstant), RemoteProtocolHTTPS)
	case strings.HasPrefix(trimmedRemote, httpProtocolPrefixConstant):
		return parseSchemeRemote(remote, strings.TrimPrefix(trimmedRemote, httpProtocolPrefixConstant), RemoteProtocolHTTP)
	case strings.Contains(trimmedRemote, sshUserDelimiterConstant) && strings.Contains(trimmedRemote, sshPathDelimiterConstant):
		return parseSCPRemote(remote, trimmedRemote)
	default:
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: invalidRemoteURLMessageConstant}
	}
}

// DescribeRemote renders a push URL as "owner/repository on host", falling back to the raw URL.
func DescribeRemote(remote string) string {
	parsedRemote, parseError := ParseRemoteURL(remote)
	if parseError != nil {
		return strings.TrimSpace(remote)
	}
	return fmt.Sprintf(remoteDescriptionTemplateConstant, parsedRemote.Owner, parsedRemote.Repository, parsedRemote.Host)
}

func parseSchemeRemote(input string, remainder string, protocol RemoteProtocol) (RemoteURL, error) {
	slashIndex := strings.Index(remainder, pathSeparatorConstant)
	if slashIndex == -1 {
		return RemoteURL{}, RemoteURLParseError{Input: input, Message: invalidRemoteURLMessageConstant}
	}
	authority := remainder[:slashIndex]
	if userIndex := strings.LastIndex(authority, sshUserDelimiterConstant); userIndex != -1 {
		authority = authority[userIndex+1:]
	}
	if portIndex := strings.Index(authority, sshPathDelimiterConstant); portIndex != -1 {
		authority = authority[:portIndex]
	}
	return buildRemoteURL(input, protocol, authority, remainder[slashIndex+1:])
}

func parseSCPRemote(input string, remote string) (RemoteURL, error) {
	hostAndPath := remote[strings.Index(remote, sshUserDelimiterConstant)+1:]
	pathSplitIndex := strings.Index(hostAndPath, sshPathDelimiterConstant)
	if pathSplitIndex == -1 {
		return RemoteURL{}, RemoteURLParseError{Input: input, Message: invalidRemoteURLMessageConstant}
	}
	return buildRemoteURL(input, RemoteProtocolSSH, hostAndPath[:pathSplitIndex], hostAndPath[pathSplitIndex+1:])
}

func buildRemoteURL(input string, protocol RemoteProtocol, host string, path string) (RemoteURL, error) {
	trimmedHost := strings.TrimSpace(host)
	trimmedPath := strings.Trim(strings.TrimSpace(path), pathSeparatorConstant)
	lastSeparatorIndex := strings.LastIndex(trimmedPath, pathSeparatorConstant)
	if len(trimmedHost) == 0 || lastSeparatorIndex <= 0 {
		return RemoteURL{}, RemoteURLParseError{Input: input, Message: invalidRemoteURLMessageConstant}
	}

	repository := strings.TrimSuffix(trimmedPath[lastSeparatorIndex+1:], gitSuffixConstant)
	if len(repository) == 0 {
		return RemoteURL{}, RemoteURLParseError{Input: input, Message: invalidRemoteURLMessageConstant}
	}
	return RemoteURL{
		Protocol:   protocol,
		Host:       trimmedHost,
		Owner:      trimmedPath[:lastSeparatorIndex],
		Repository: repository,
	}, nil
}
