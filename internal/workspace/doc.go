// Package workspace performs the file plumbing of a release: clearing the public working tree,
// copying ancillary files, rewriting version placeholders, resolving the build artifact and
// unpacking archives.
package workspace
