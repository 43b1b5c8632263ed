// Package main hosts the logscribe CLI entrypoint and command graph.
//
// The root command transcribes every .wav file in the directories given as
// arguments and appends the results to a CSV file per directory. The config
// and check subcommands scaffold configuration and report whether the
// selected engine can run. Configuration is resolved once per invocation and
// command-line flags are layered over it.
package main
