// Package gitrepo implements the repository client used by pushall on top of the git CLI.
//
// RepositoryManager translates each primitive (root resolution, change
// detection, HEAD inspection, branch creation, staging, commits and pushes)
// into a git invocation through a shared.GitExecutor. Query commands that
// answer through their exit code, such as "git diff --quiet", are decoded
// into booleans rather than surfaced as failures. ParseRemoteURL and
// DescribeRemote turn push URLs into the short labels used in progress output.
package gitrepo
