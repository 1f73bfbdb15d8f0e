// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/invowk/depwalk/internal/config"
	"github.com/invowk/depwalk/internal/issue"
	"github.com/invowk/depwalk/pkg/nodemod"
)

type (
	// walkFlags holds the flags of the walk command.
	walkFlags struct {
		json   bool
		native bool
		types  []string
		match  string
		noRoot bool
	}

	// moduleFilter selects which walk results are printed.
	moduleFilter struct {
		types  []nodemod.DepType
		native bool
		match  string
		noRoot bool
	}
)

func newWalkCommand(app *App) *cobra.Command {
	var flags walkFlags

	walkCmd := &cobra.Command{
		Use:   "walk [root]",
		Short: "Walk the installed dependency tree of a package",
		Long: `Walk the installed dependency tree of the package in [root] (default ".").

Production and optional dependencies are followed through every package;
development dependencies only from the root package. A missing optional
dependency is skipped, a missing required one fails the walk.`,
		Example: `  depwalk walk
  depwalk walk ./app --json
  depwalk walk --type prod,optional --no-root
  depwalk walk --native --match '@serialport/**'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return runWalk(cmd, app, root, flags)
		},
	}

	walkCmd.Flags().BoolVar(&flags.json, "json", false, "print modules as JSON (overrides ui.format)")
	walkCmd.Flags().BoolVar(&flags.native, "native", false, "only show modules that build native code")
	walkCmd.Flags().StringSliceVar(&flags.types, "type", nil, "only show these dependency types (root, prod, dev, dev-optional, optional)")
	walkCmd.Flags().StringVar(&flags.match, "match", "", "only show modules whose name matches a glob (e.g. '@types/**')")
	walkCmd.Flags().BoolVar(&flags.noRoot, "no-root", false, "hide the root package")

	_ = walkCmd.RegisterFlagCompletionFunc("type", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return depTypeNames(), cobra.ShellCompDirectiveNoFileComp
	})

	return walkCmd
}

func runWalk(cmd *cobra.Command, app *App, root string, flags walkFlags) error {
	filter, err := newModuleFilter(flags)
	if err != nil {
		return &ExitError{Code: ExitUsage, Err: err, Verbose: app.verbose}
	}

	modules, err := app.Walker.Walk(cmd.Context(), root, app.cfg.WalkOptions(), app.logger())
	if err != nil {
		return walkError(app, root, err)
	}

	if len(modules) == 0 {
		app.logger().Warn("root has no manifest, nothing was walked", "root", root, "manifest", app.cfg.Walk.ManifestFile)
	}

	slices.SortFunc(modules, func(a, b nodemod.Module) int { return strings.Compare(a.Path, b.Path) })
	shown := filter.apply(modules)

	if flags.json || app.cfg.UI.Format == config.FormatJSON {
		return writeModulesJSON(app.stdout, shown)
	}
	writeModulesTable(app.stdout, shown)
	fmt.Fprintln(app.stdout, summarize(modules, len(shown)))
	return nil
}

// walkError converts a walk failure into an actionable exit error, rendering
// the matching issue guide first in verbose mode.
func walkError(app *App, root string, err error) error {
	ctx := issue.NewErrorContext().
		WithOperation("walk dependency tree").
		WithResource(root)

	code := ExitWalkFailed
	var notFound *nodemod.ModuleNotFoundError
	switch {
	case errors.As(err, &notFound):
		ctx.WithIssue(issue.ModuleNotFoundId).
			WithSuggestion("Run 'npm install' (or 'yarn install') in " + root).
			WithSuggestion(fmt.Sprintf("Check whether %q is still declared by %s", notFound.Name, notFound.From))
	case errors.Is(err, nodemod.ErrManifestParse):
		ctx.WithIssue(issue.ManifestParseErrorId).
			WithSuggestion("Fix the JSON syntax of the manifest named above")
	case errors.Is(err, nodemod.ErrInvalidRoot):
		ctx.WithIssue(issue.RootInvalidId).
			WithSuggestion("Pass the directory that contains package.json")
		code = ExitUsage
	case errors.Is(err, fs.ErrPermission):
		ctx.WithIssue(issue.PermissionDeniedId)
	}

	ae := ctx.Wrap(err).Build()
	renderIssue(app, ae.IssueID)
	return &ExitError{Code: code, Err: ae, Verbose: app.verbose}
}

// renderIssue prints the catalog guide for id to stderr in verbose mode.
func renderIssue(app *App, id issue.Id) {
	if !app.verbose || id == 0 {
		return
	}
	guide := issue.Get(id)
	if guide == nil {
		return
	}
	rendered, err := guide.Render(applyColorScheme(app.cfg.UI.ColorScheme))
	if err != nil {
		app.logger().Debug("failed to render issue guide", "id", id, "err", err)
		return
	}
	fmt.Fprint(app.stderr, rendered)
}

func newModuleFilter(flags walkFlags) (moduleFilter, error) {
	f := moduleFilter{native: flags.native, match: flags.match, noRoot: flags.noRoot}

	for _, name := range flags.types {
		t, err := nodemod.ParseDepType(strings.TrimSpace(name))
		if err != nil {
			return f, filterError("--type", name, err, "Valid types: "+strings.Join(depTypeNames(), ", "))
		}
		if !slices.Contains(f.types, t) {
			f.types = append(f.types, t)
		}
	}

	if f.match != "" && !doublestar.ValidatePattern(f.match) {
		return f, filterError("--match", f.match, doublestar.ErrBadPattern,
			"Use a glob such as 'lodash*' or '@types/**'")
	}

	return f, nil
}

func filterError(flag, value string, err error, suggestion string) error {
	return issue.NewErrorContext().
		WithOperation("parse " + flag + " filter").
		WithResource(value).
		WithIssue(issue.InvalidFilterId).
		WithSuggestion(suggestion).
		Wrap(err).
		BuildError()
}

// keep reports whether m passes every configured filter.
func (f moduleFilter) keep(m nodemod.Module) bool {
	if f.noRoot && m.DepType == nodemod.DepRoot {
		return false
	}
	if f.native && m.NativeModuleType == nodemod.NativeNone {
		return false
	}
	if len(f.types) > 0 && !slices.Contains(f.types, m.DepType) {
		return false
	}
	if f.match != "" {
		// The pattern was validated, so Match cannot fail.
		if ok, _ := doublestar.Match(f.match, m.Name); !ok {
			return false
		}
	}
	return true
}

func (f moduleFilter) apply(modules []nodemod.Module) []nodemod.Module {
	shown := make([]nodemod.Module, 0, len(modules))
	for _, m := range modules {
		if f.keep(m) {
			shown = append(shown, m)
		}
	}
	return shown
}

func writeModulesJSON(w io.Writer, modules []nodemod.Module) error {
	data, err := json.MarshalIndent(modules, "", "  ")
	if err != nil {
		return &ExitError{Code: ExitWalkFailed, Err: fmt.Errorf("failed to encode modules: %w", err)}
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeModulesTable(w io.Writer, modules []nodemod.Module) {
	if len(modules) == 0 {
		fmt.Fprintln(w, SubtitleStyle.Render("No modules matched"))
		return
	}

	rows := make([][]string, 0, len(modules))
	for _, m := range modules {
		native := ""
		if m.NativeModuleType != nodemod.NativeNone {
			native = WarningStyle.Render(m.NativeModuleType.String())
		}
		rows = append(rows, []string{
			depTypeStyle(m.DepType).Render(m.DepType.String()),
			CmdStyle.Render(m.Name),
			native,
			VerboseStyle.Render(m.Path),
		})
	}

	t := table.New().
		Headers("TYPE", "NAME", "NATIVE", "PATH").
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderRow(false).
		BorderColumn(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})

	fmt.Fprintln(w, t.String())
}

// summarize counts all walked modules per dependency type, strongest first.
func summarize(modules []nodemod.Module, shown int) string {
	counts := make(map[nodemod.DepType]int)
	for _, m := range modules {
		counts[m.DepType]++
	}

	parts := make([]string, 0, len(counts))
	for t := nodemod.DepRoot; t >= nodemod.DepOptional; t-- {
		if n := counts[t]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, t))
		}
	}

	summary := fmt.Sprintf("%d modules", len(modules))
	if len(parts) > 0 {
		summary += " (" + strings.Join(parts, ", ") + ")"
	}
	if shown != len(modules) {
		summary += fmt.Sprintf(", %d shown", shown)
	}
	return SubtitleStyle.Render(summary)
}

func depTypeNames() []string {
	names := make([]string, 0, 5)
	for t := nodemod.DepRoot; t >= nodemod.DepOptional; t-- {
		names = append(names, t.String())
	}
	return names
}
