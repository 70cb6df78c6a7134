// Package release orchestrates publishing an SDK build to a public distribution repository.
//
// A release resolves its version from the current branch, prepares a local clone of the public
// repository, builds the artifact, copies it together with the SDK files into the clone, commits
// the result and tags both repositories. Steps report an Outcome; the Pipeline owns every
// interaction with the operator.
package release
