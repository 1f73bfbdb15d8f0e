// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/invowk/depwalk/internal/config"
)

// newConfigCommand creates the `depwalk config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage depwalk configuration",
		Long: `Manage depwalk configuration.

Configuration is stored in:
  - Linux: ~/.config/depwalk/config.cue
  - macOS: ~/Library/Application Support/depwalk/config.cue
  - Windows: %APPDATA%\depwalk\config.cue`,
		// path and init must work while the configuration is broken.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.loadConfig(cmd.Context()); err != nil {
				return err
			}
			showConfig(app)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.loadConfig(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(app.cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(app *App) {
	cfg := app.cfg
	out := app.stdout

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)

	if app.configPath != "" {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), app.configPath)
	} else {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("walk"))
	fmt.Fprintf(out, "  container_dir: %s\n", valueStyle.Render(cfg.Walk.ContainerDir))
	fmt.Fprintf(out, "  manifest_file: %s\n", valueStyle.Render(cfg.Walk.ManifestFile))
	fmt.Fprintf(out, "  native_config_file: %s\n", valueStyle.Render(cfg.Walk.NativeConfigFile))
	fmt.Fprintf(out, "  prebuilt_installers: %s\n", valueStyle.Render(strings.Join(cfg.Walk.PrebuiltInstallers, ", ")))
	fmt.Fprintf(out, "  realpath_cache_size: %s\n", valueStyle.Render(fmt.Sprint(cfg.Walk.RealPathCacheSize)))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(out, "  verbose: %s\n", valueStyle.Render(fmt.Sprint(cfg.UI.Verbose)))
	fmt.Fprintf(out, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(out, "  format: %s\n", valueStyle.Render(cfg.UI.Format.String()))
}

func initConfig(app *App) error {
	path, written, err := config.CreateDefaultConfig("")
	if err != nil {
		return &ExitError{Code: ExitUsage, Err: err}
	}

	if !written {
		fmt.Fprintf(app.stdout, "%s %s\n", WarningStyle.Render("Config file already exists:"), path)
		return nil
	}
	fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render("Created config file:"), path)
	return nil
}

func showConfigPath(app *App) error {
	if app.cfgFile != "" {
		fmt.Fprintln(app.stdout, app.cfgFile)
		return nil
	}

	cfgDir, err := config.ConfigDir()
	if err != nil {
		return &ExitError{Code: ExitUsage, Err: err}
	}
	fmt.Fprintln(app.stdout, filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
	return nil
}
