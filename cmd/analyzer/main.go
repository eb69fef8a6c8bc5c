// Command analyzer runs the Wren static analysis pipeline over a file
// or a directory of .wren files and reports diagnostics.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	wrenanalyzer "github.com/wren-lang/wren-analyzer"
	"github.com/wren-lang/wren-analyzer/core/diag"
	"github.com/wren-lang/wren-analyzer/core/source"
	"github.com/wren-lang/wren-analyzer/internal/analyzererr"
	"github.com/wren-lang/wren-analyzer/internal/reporter"
)

const (
	exitSuccess       = 0
	exitInvalidOrFail = 1
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var jsonOutput bool
	var maxErrors int

	root := &cobra.Command{
		Use:          "analyzer [flags] <path>",
		Short:        "Static analyzer for Wren source files",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
	}
	root.Flags().BoolVar(&jsonOutput, "json", false, "emit diagnostics as a JSON array")
	root.Flags().IntVar(&maxErrors, "max-errors", 0, "cap the number of diagnostics rendered (0 = unlimited)")

	exitCode := exitSuccess
	root.RunE = func(cmd *cobra.Command, cmdArgs []string) error {
		path := cmdArgs[0]
		files, err := collectWrenFiles(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			exitCode = exitInvalidOrFail
			return nil
		}
		if len(files) == 0 {
			fmt.Fprintln(os.Stderr, analyzererr.New(analyzererr.ErrNoWrenFiles, fmt.Sprintf("no .wren files found at %q", path)))
			exitCode = exitInvalidOrFail
			return nil
		}

		type fileResult struct {
			buf   *source.Buffer
			diags []diag.Diagnostic
		}
		var results []fileResult
		var allDiags []diag.Diagnostic
		anyErrors := false
		for _, f := range files {
			content, err := os.ReadFile(f)
			if err != nil {
				fmt.Fprintln(os.Stderr, analyzererr.Wrap(analyzererr.ErrFileRead, "reading "+f, err))
				exitCode = exitInvalidOrFail
				continue
			}
			result := wrenanalyzer.Analyze(string(content), f)
			results = append(results, fileResult{buf: source.New(f, string(content)), diags: result.Diagnostics})
			allDiags = append(allDiags, result.Diagnostics...)
			if diagsHaveErrors(result.Diagnostics) {
				anyErrors = true
			}
		}

		budget := maxErrors
		if jsonOutput {
			rendered := reporter.Truncate(allDiags, budget)
			if err := reporter.WriteJSON(os.Stdout, rendered); err != nil {
				fmt.Fprintln(os.Stderr, err)
				exitCode = exitInvalidOrFail
			}
		} else {
			remaining := budget
			for _, r := range results {
				diags := r.diags
				if remaining > 0 {
					diags = reporter.Truncate(diags, remaining)
					remaining -= len(diags)
				} else if budget > 0 {
					diags = nil
				}
				reporter.WritePretty(os.Stdout, r.buf, diags)
			}
		}

		if anyErrors {
			exitCode = exitInvalidOrFail
		}
		return nil
	}

	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidOrFail
	}
	return exitCode
}

func diagsHaveErrors(diags []diag.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == diag.Error {
			return true
		}
	}
	return false
}

// collectWrenFiles resolves path to a sorted list of .wren files: the
// single file if path names one directly, or every non-recursive .wren
// entry of path if it names a directory.
func collectWrenFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, analyzererr.Wrap(analyzererr.ErrFileNotFound, fmt.Sprintf("path %q", path), err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, analyzererr.Wrap(analyzererr.ErrFileRead, fmt.Sprintf("reading directory %q", path), err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if filepath.Ext(e.Name()) == ".wren" {
			files = append(files, filepath.Join(path, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
