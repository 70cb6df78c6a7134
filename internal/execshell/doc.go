// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging via ShellExecutor, exposes OSCommandRunner for
// default process execution (optionally mirroring live output), and defines the
// abstractions used to run git and the project build wrapper in a testable manner.
package execshell
