// Package script generates per-node submission scripts. The script is the
// single coupling point between the materialized tree and the opaque
// simulation command: it marks the node STARTED, runs the command against
// the node's config file, then marks COMPLETED or FAILED.
package script

import (
	"context"

	"github.com/scantree/scantree/internal/nodepath"
)

// FileName is the script's file name inside a node directory.
const FileName = "run.sh"

// Job describes one node to generate a script for.
type Job struct {
	// Node addresses the job within the campaign tree.
	Node nodepath.Path
	// ConfigFile is the config file name inside the node directory.
	ConfigFile string
	// Command is the external simulation command line. The node's config
	// file path is appended as its final argument.
	Command string
	// SetupEnv is an optional environment activation script sourced
	// before anything else (e.g. a miniconda activate path).
	SetupEnv string
	// Flavour is a scheduler queue hint (HTCondor job flavour). Ignored
	// by generators that have no use for it.
	Flavour string
	// Cpus requests a CPU count from the scheduler, 0 for default.
	Cpus int
}

// Generator emits the textual content of a node's run script.
type Generator interface {
	Generate(ctx context.Context, job Job) (string, error)
}
