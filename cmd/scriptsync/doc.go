// Package main hosts the scriptsync CLI entrypoint and command graph.
//
// The Cobra-based command tree exposes the alignment engine directly (match),
// the episode pipeline (run, batch), read access to the clip database (show,
// stats, delete), directory preflight checks, and configuration scaffolding.
// It centralizes configuration resolution and logger setup so subcommands can
// focus on output.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
