// Package argh provides a lightweight means of exposing ordinary Go
// functions as command-line interfaces.
//
// The goal of this package is to let a program declare its commands as plain
// functions: argument declarations are inferred from each function's options
// struct, optionally refined by explicit per-argument declarations, and the
// result is composed into a command/subcommand parser tree backed by
// github.com/spf13/pflag.
package argh
