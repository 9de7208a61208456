package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cascade-lang/cascade/internal/cli/config"
	"github.com/cascade-lang/cascade/internal/cli/ui"
	"github.com/cascade-lang/cascade/internal/tooling"
	"github.com/cascade-lang/cascade/internal/watch"
)

var watchNoColor bool

// NewWatchCommand creates the watch command
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [directories]",
		Short: "Watch stylesheets and recheck them on save",
		Long: `Watch the given directories for stylesheet changes and reparse
every changed file, reporting any syntax errors as they appear.

With no arguments the paths from cascade.yml are watched. Saves are
debounced, so editors that write multiple times per save trigger a
single recheck.

Examples:
  # Watch the configured paths
  cascade watch

  # Watch a specific directory
  cascade watch src/styles`,
		RunE: runWatch,
	}

	cmd.Flags().BoolVar(&watchNoColor, "no-color", false, "Disable colored output")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), ui.ConfigError(err.Error(), nil, watchNoColor))
		return fmt.Errorf("invalid configuration")
	}

	roots := args
	if len(roots) == 0 {
		roots = cfg.Check.Paths
	}

	api := tooling.NewAPI()

	// Initial pass over the watched paths so errors that predate the
	// session are reported too
	files, err := expandPaths(cmd, roots)
	if err != nil {
		return err
	}
	withErrors := initialScan(cmd, api, files)
	for _, file := range withErrors {
		printFileDiagnostics(cmd, api, file)
	}

	watcher, err := watch.NewFileWatcher(watch.Options{
		Roots:      roots,
		Extensions: cfg.Watch.Extensions,
		Debounce:   time.Duration(cfg.Watch.DebounceMs) * time.Millisecond,
	}, func(files []string) error {
		for _, file := range files {
			recheckFile(cmd, api, file)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Stop()

	fmt.Fprint(out, ui.Info(fmt.Sprintf("watching %v for changes, press Ctrl+C to stop", roots), watchNoColor))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	fmt.Fprint(out, ui.Info("stopping", watchNoColor))
	return nil
}

// initialScan parses every watched file and returns the ones with errors
func initialScan(cmd *cobra.Command, api *tooling.API, files []string) []string {
	var withErrors []string

	_ = ui.WithSpinner(cmd.OutOrStdout(), fmt.Sprintf("checked %d file(s)", len(files)), watchNoColor, func() error {
		for _, file := range files {
			content, err := os.ReadFile(file)
			if err != nil {
				continue
			}
			if _, err := api.ParseFile(file, string(content)); err != nil {
				continue
			}
			if len(api.GetDiagnostics(file)) > 0 {
				withErrors = append(withErrors, file)
			}
		}
		return nil
	})

	return withErrors
}

// recheckFile reparses one changed file and reports its errors
func recheckFile(cmd *cobra.Command, api *tooling.API, path string) {
	out := cmd.OutOrStdout()

	content, err := os.ReadFile(path)
	if err != nil {
		// Deleted between the event and the recheck
		api.CloseDocument(path)
		return
	}

	if _, err := api.ParseFile(path, string(content)); err != nil {
		fmt.Fprint(out, ui.Warning(fmt.Sprintf("failed to parse %s: %v", path, err), nil, watchNoColor))
		return
	}

	diagnostics := api.GetDiagnostics(path)
	if len(diagnostics) == 0 {
		ui.WriteSuccess(out, fmt.Sprintf("%s ok", path), watchNoColor)
		return
	}

	printFileDiagnostics(cmd, api, path)
}
