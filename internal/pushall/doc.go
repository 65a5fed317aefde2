// Package pushall synchronizes a superproject with its submodules.
//
// Service.Run walks the submodules declared in .gitmodules in declaration
// order, commits local changes (creating a timestamped branch first when a
// submodule sits on a detached HEAD), pushes only to origin remotes accepted
// by the configured OwnershipPolicy, and finally stages, commits and pushes
// the superproject. Per-submodule problems are recorded in the Result and
// never abort the run; only the pre-flight checks and the superproject push
// make Run return an error.
//
// CommandBuilder exposes the workflow as the push-all cobra command.
package pushall
