package app

// Config carries everything parsed from the command line.
type Config struct {
	Command   string
	LogLevel  string
	LogFormat string

	Generate GenerateConfig
	Mark     MarkConfig
	Status   StatusConfig
	Watch    WatchConfig
}

// GenerateConfig configures the one-shot generation step.
type GenerateConfig struct {
	SpecPath string
	// OutputRoot overrides the campaign file's output_root when set.
	OutputRoot string
	// Scheduler selects the run-script generator: "htcondor" or "local".
	Scheduler string
	// Force allows writing over an already materialized target.
	Force bool
	// DryRun builds and reports the tree without touching the filesystem.
	DryRun bool
}

// MarkConfig configures a worker-side lifecycle transition.
type MarkConfig struct {
	Root    string
	Node    string
	Event   string
	Message string
}

// StatusConfig configures the status query.
type StatusConfig struct {
	Root string
	// Node queries a single record when set; otherwise the whole tree.
	Node string
}

// WatchConfig configures the live status watcher.
type WatchConfig struct {
	Root string
}
