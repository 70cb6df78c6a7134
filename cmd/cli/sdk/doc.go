// Package sdk exposes the release tasks as Cobra commands: setup, reset, build and release.
package sdk
