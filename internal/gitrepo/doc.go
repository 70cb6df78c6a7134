// Package gitrepo answers repository-level questions through git.
//
// RepositoryManager resolves the repository root, the current branch, tags,
// remote URLs and worktree cleanliness. The remote URL helpers normalize SSH
// and HTTPS forms so a public repository clone can be checked against the
// configured remote.
package gitrepo
