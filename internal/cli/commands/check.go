package commands

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cascade-lang/cascade/compiler/parser"
	"github.com/cascade-lang/cascade/internal/cli/config"
	"github.com/cascade-lang/cascade/internal/cli/ui"
	"github.com/cascade-lang/cascade/internal/tooling"
)

var (
	checkStrict  bool
	checkStats   bool
	checkNoColor bool
)

// NewCheckCommand creates the check command
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [files or directories]",
		Short: "Parse stylesheets and report syntax errors",
		Long: `Parse the given stylesheets and report every syntax error with its
location. Directories are searched recursively for .scss files. With no
arguments the paths from cascade.yml are checked.

The parser is error tolerant: a file with errors still yields a full
syntax tree, so every error in the file is reported in one pass.

Examples:
  # Check a single file
  cascade check styles.scss

  # Check a directory tree
  cascade check src/styles

  # Fail on deprecated constructs too
  cascade check --strict styles.scss

  # Show a per-file summary table
  cascade check --stats src/styles`,
		RunE: runCheck,
	}

	cmd.Flags().BoolVar(&checkStrict, "strict", false, "Treat warnings as errors")
	cmd.Flags().BoolVar(&checkStats, "stats", false, "Show a per-file summary table")
	cmd.Flags().BoolVar(&checkNoColor, "no-color", false, "Disable colored output")

	return cmd
}

// fileReport holds the check outcome for one file
type fileReport struct {
	path     string
	errors   int
	warnings int
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), ui.ConfigError(err.Error(), nil, checkNoColor))
		return fmt.Errorf("invalid configuration")
	}

	strict := checkStrict || cfg.Check.Strict

	paths := args
	if len(paths) == 0 {
		paths = cfg.Check.Paths
	}

	files, err := expandPaths(cmd, paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprint(out, ui.Info("no stylesheet files found", checkNoColor))
		return nil
	}

	api := tooling.NewAPI()

	var reports []fileReport
	check := func(bar *ui.ProgressBar) error {
		for _, file := range files {
			report, err := checkFile(api, file)
			if err != nil {
				return err
			}
			reports = append(reports, report)
			if bar != nil {
				bar.Add(1)
			}
		}
		return nil
	}

	if checkStats && len(files) > 1 {
		if err := ui.WithProgress(out, "parsing", len(files), checkNoColor, check); err != nil {
			return err
		}
	} else {
		if err := check(nil); err != nil {
			return err
		}
	}

	totalErrors, totalWarnings := 0, 0
	for _, report := range reports {
		printFileDiagnostics(cmd, api, report.path)
		totalErrors += report.errors
		totalWarnings += report.warnings
	}

	if checkStats {
		renderStats(out, reports)
	}

	failed := totalErrors
	if strict {
		failed += totalWarnings
	}

	if failed == 0 {
		ui.WriteSuccess(out, fmt.Sprintf("%d file(s) checked, no errors", len(files)), checkNoColor)
		return nil
	}

	return fmt.Errorf("check failed: %d error(s) in %d file(s)", failed, len(files))
}

// expandPaths resolves the given files and directories into the list of
// stylesheet files to check
func expandPaths(cmd *cobra.Command, paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string

	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprint(cmd.ErrOrStderr(), ui.FileNotFoundError(path, similarFiles(path), checkNoColor))
			return nil, fmt.Errorf("no such file: %s", path)
		}

		if !info.IsDir() {
			add(path)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			name := d.Name()
			if d.IsDir() {
				if strings.HasPrefix(name, ".") && p != path {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(name) == ".scss" {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

// similarFiles suggests stylesheet files close to a mistyped path
func similarFiles(path string) []string {
	dir := filepath.Dir(path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var candidates []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".scss" {
			candidates = append(candidates, entry.Name())
		}
	}

	return ui.FindSimilar(filepath.Base(path), candidates, nil)
}

// checkFile parses one file and counts its errors and warnings
func checkFile(api *tooling.API, path string) (fileReport, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return fileReport{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, err := api.ParseFile(path, string(content))
	if err != nil {
		return fileReport{}, err
	}

	report := fileReport{path: path}
	report.errors = len(api.GetDiagnostics(path))

	// Deprecated constructs are warnings
	doc.Tree.Visit(func(n *parser.Node) bool {
		if n.Type == parser.NodeImport {
			report.warnings++
		}
		return true
	})

	return report, nil
}

// printFileDiagnostics renders the diagnostics of a checked file
func printFileDiagnostics(cmd *cobra.Command, api *tooling.API, path string) {
	out := cmd.OutOrStdout()

	doc, ok := api.GetDocument(path)
	if !ok {
		return
	}
	lines := strings.Split(doc.Content, "\n")

	for _, d := range api.GetDiagnostics(path) {
		source := ""
		if d.Range.Start.Line < len(lines) {
			source = lines[d.Range.Start.Line]
		}
		ui.WriteDiagnostic(out, ui.DiagnosticOptions{
			File:    path,
			Line:    d.Range.Start.Line + 1,
			Column:  d.Range.Start.Character + 1,
			Message: d.Message,
			Source:  source,
			NoColor: checkNoColor,
		})
	}

	doc.Tree.Visit(func(n *parser.Node) bool {
		if n.Type == parser.NodeImport {
			pos := doc.PositionAt(n.Offset)
			fmt.Fprint(out, ui.Warning(
				fmt.Sprintf("%s:%d:%d: @import is deprecated, use @use instead",
					path, pos.Line+1, pos.Character+1),
				nil, checkNoColor))
		}
		return true
	})
}

// renderStats prints the per-file summary table and the totals
func renderStats(out io.Writer, reports []fileReport) {
	ui.Header(out, "Check summary", checkNoColor)

	table := ui.NewTable(out, []string{"File", "Errors", "Warnings"}, &ui.TableOptions{NoColor: checkNoColor})
	totalErrors, totalWarnings := 0, 0
	for _, report := range reports {
		table.AddRow(report.path, fmt.Sprintf("%d", report.errors), fmt.Sprintf("%d", report.warnings))
		totalErrors += report.errors
		totalWarnings += report.warnings
	}
	table.Render()

	fmt.Fprintln(out)
	totals := ui.NewKeyValueTable(out, checkNoColor)
	totals.AddRow("Files", fmt.Sprintf("%d", len(reports)))
	totals.AddRow("Errors", fmt.Sprintf("%d", totalErrors))
	totals.AddRow("Warnings", fmt.Sprintf("%d", totalWarnings))
	totals.Render()
}
