// Package cli assembles the engine, its store and its presentation from a
// run configuration. The cobra commands in cmd/synthaser stay thin and call
// into this package.
package cli
