// Package cli constructs the pubrelease command-line interface, wiring the
// Cobra command hierarchy, the layered configuration loader, and structured
// logging. Execute runs the default command set with the process arguments.
package cli
