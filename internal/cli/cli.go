package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/scantree/scantree/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const usageText = `
scantree - parameter-scan campaign generator and tracker.

Usage:
  scantree <command> [options]

Commands:
  generate   Build a campaign tree from a spec file and materialize it.
  mark       Record a lifecycle transition for one node (worker-side).
  status     Report node or campaign lifecycle state.
  watch      Follow status transitions live until the campaign completes.

Global options (valid on every command):
  -log-format string   Log output format. Options: 'text' or 'json'. (default "text")
  -log-level string    Set the logging level. Options: 'debug', 'info', 'warn', 'error'. (default "info")

Run 'scantree <command> -h' for command-specific options.
`

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	if len(args) == 0 {
		fmt.Fprint(output, usageText)
		return nil, true, nil
	}

	command := args[0]
	if command == "-h" || command == "--help" || command == "help" {
		fmt.Fprint(output, usageText)
		return nil, true, nil
	}

	cfg := &app.Config{Command: command}

	flagSet := flag.NewFlagSet("scantree "+command, flag.ContinueOnError)
	flagSet.SetOutput(output)
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	switch command {
	case "generate":
		specFlag := flagSet.String("spec", "", "Path to the campaign .hcl spec file.")
		outputFlag := flagSet.String("output", "", "Campaign root directory. Overrides the campaign file's output_root.")
		schedulerFlag := flagSet.String("scheduler", "htcondor", "Run script flavour. Options: 'htcondor' or 'local'.")
		forceFlag := flagSet.Bool("force", false, "Materialize into an already occupied target directory.")
		dryRunFlag := flagSet.Bool("dry-run", false, "Build and report the tree without writing anything.")
		if err := parseFlags(flagSet, args[1:]); err != nil {
			return exitOnParse(err)
		}
		spec := *specFlag
		if spec == "" && flagSet.NArg() > 0 {
			spec = flagSet.Arg(0)
		}
		if spec == "" {
			return nil, false, &ExitError{Code: 2, Message: "generate: a spec file is required (use -spec or a positional argument)"}
		}
		scheduler := strings.ToLower(*schedulerFlag)
		if scheduler != "htcondor" && scheduler != "local" {
			return nil, false, &ExitError{Code: 2, Message: "invalid scheduler: must be 'htcondor' or 'local'"}
		}
		cfg.Generate = app.GenerateConfig{
			SpecPath:   spec,
			OutputRoot: *outputFlag,
			Scheduler:  scheduler,
			Force:      *forceFlag,
			DryRun:     *dryRunFlag,
		}

	case "mark":
		rootFlag := flagSet.String("root", "", "Campaign root directory.")
		nodeFlag := flagSet.String("node", "", "Node path relative to the root, e.g. 'base_collider/scan_0003'.")
		messageFlag := flagSet.String("m", "", "Free-form note stored with the transition.")
		// The event comes first in generated run scripts
		// ("scantree mark started --root ..."), so peel it off before the
		// flag parser sees a positional and stops.
		rest := args[1:]
		event := ""
		if len(rest) > 0 && !strings.HasPrefix(rest[0], "-") {
			event = rest[0]
			rest = rest[1:]
		}
		if err := parseFlags(flagSet, rest); err != nil {
			return exitOnParse(err)
		}
		if event == "" && flagSet.NArg() == 1 {
			event = flagSet.Arg(0)
		} else if (event == "" && flagSet.NArg() != 1) || (event != "" && flagSet.NArg() != 0) {
			return nil, false, &ExitError{Code: 2, Message: "mark: exactly one event is required: 'started', 'completed' or 'failed'"}
		}
		if *rootFlag == "" || *nodeFlag == "" {
			return nil, false, &ExitError{Code: 2, Message: "mark: -root and -node are required"}
		}
		cfg.Mark = app.MarkConfig{
			Root:    *rootFlag,
			Node:    *nodeFlag,
			Event:   strings.ToLower(event),
			Message: *messageFlag,
		}

	case "status":
		rootFlag := flagSet.String("root", "", "Campaign root directory.")
		nodeFlag := flagSet.String("node", "", "Query a single node instead of the whole campaign.")
		if err := parseFlags(flagSet, args[1:]); err != nil {
			return exitOnParse(err)
		}
		if *rootFlag == "" {
			return nil, false, &ExitError{Code: 2, Message: "status: -root is required"}
		}
		cfg.Status = app.StatusConfig{Root: *rootFlag, Node: *nodeFlag}

	case "watch":
		rootFlag := flagSet.String("root", "", "Campaign root directory.")
		if err := parseFlags(flagSet, args[1:]); err != nil {
			return exitOnParse(err)
		}
		if *rootFlag == "" {
			return nil, false, &ExitError{Code: 2, Message: "watch: -root is required"}
		}
		cfg.Watch = app.WatchConfig{Root: *rootFlag}

	default:
		fmt.Fprint(output, usageText)
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q", command)}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	cfg.LogFormat = logFormat
	cfg.LogLevel = logLevel

	slog.Debug("CLI parser finished successfully.", "command", command)
	return cfg, false, nil
}

func parseFlags(flagSet *flag.FlagSet, args []string) error {
	return flagSet.Parse(args)
}

func exitOnParse(err error) (*app.Config, bool, error) {
	if err == flag.ErrHelp {
		return nil, true, nil
	}
	return nil, false, &ExitError{Code: 2, Message: err.Error()}
}
