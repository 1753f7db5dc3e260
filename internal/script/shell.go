package script

import (
	"context"
	"fmt"
	"strings"
	"text/template"
)

// markCommand is the lifecycle tag interface as invoked from inside a
// generated script. Workers only need the binary on PATH and filesystem
// access to the campaign root; there is no other coordination channel.
const markCommand = "scantree mark"

var shellTemplate = template.Must(template.New("run.sh").Parse(`#!/bin/bash
{{- range .Directives}}
{{.}}
{{- end}}
set -u

HERE="$(cd -- "$(dirname -- "$0")" && pwd)"
ROOT="$(cd -- "$HERE/{{.RootRel}}" && pwd)"
NODE="{{.NodePath}}"
{{- if .SetupEnv}}
source "{{.SetupEnv}}"
{{- end}}
cd "$HERE"

{{.Mark}} started --root "$ROOT" --node "$NODE" -m "host $(hostname)"
if {{.Command}} "$HERE/{{.ConfigFile}}"; then
    {{.Mark}} completed --root "$ROOT" --node "$NODE"
else
    rc=$?
    {{.Mark}} failed --root "$ROOT" --node "$NODE" -m "command exited $rc"
    exit "$rc"
fi
`))

type shellData struct {
	Directives []string
	RootRel    string
	NodePath   string
	SetupEnv   string
	Command    string
	ConfigFile string
	Mark       string
}

func renderShell(job Job, directives []string) (string, error) {
	if job.Command == "" {
		return "", fmt.Errorf("node %q: no simulation command configured", job.Node.String())
	}
	configFile := job.ConfigFile
	if configFile == "" {
		configFile = "config.yaml"
	}

	// The campaign root is reachable from the script purely by relative
	// ascent, so a tree moved as a whole keeps working.
	up := make([]string, job.Node.Depth())
	for i := range up {
		up[i] = ".."
	}

	var sb strings.Builder
	err := shellTemplate.Execute(&sb, shellData{
		Directives: directives,
		RootRel:    strings.Join(up, "/"),
		NodePath:   job.Node.String(),
		SetupEnv:   job.SetupEnv,
		Command:    job.Command,
		ConfigFile: configFile,
		Mark:       markCommand,
	})
	if err != nil {
		return "", fmt.Errorf("rendering run script for %q: %w", job.Node.String(), err)
	}
	return sb.String(), nil
}

// Local generates plain shell scripts for running jobs directly, without a
// batch scheduler. Used for small campaigns and tests.
type Local struct{}

// Generate implements Generator.
func (Local) Generate(_ context.Context, job Job) (string, error) {
	return renderShell(job, nil)
}

// HTCondor generates scripts carrying HTCondor directive comments that the
// submission tooling reads when queueing the job.
type HTCondor struct{}

// Generate implements Generator.
func (HTCondor) Generate(_ context.Context, job Job) (string, error) {
	var directives []string
	if job.Flavour != "" {
		directives = append(directives, fmt.Sprintf("#HTC +JobFlavour = %q", job.Flavour))
	}
	if job.Cpus > 0 {
		directives = append(directives, fmt.Sprintf("#HTC RequestCpus = %d", job.Cpus))
	}
	return renderShell(job, directives)
}
