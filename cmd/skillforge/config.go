// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/skillforge/skillforge/internal/config"
	"github.com/skillforge/skillforge/internal/issue"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `skillforge config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage skillforge configuration",
		Long: `Manage skillforge configuration.

Configuration is stored in:
  - Linux: ~/.config/skillforge/config.cue
  - macOS: ~/Library/Application Support/skillforge/config.cue
  - Windows: %APPDATA%\skillforge\config.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfigFile(cmd)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(cmd)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(cmd, app, args[0], args[1])
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: cfgFile})
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(cmd *cobra.Command, app *App) error {
	stdout := cmd.OutOrStdout()

	cfg, err := app.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		if entry := issue.Get(issue.ConfigLoadFailedId); entry != nil {
			if rendered, renderErr := entry.Render("dark"); renderErr == nil {
				fmt.Fprint(cmd.ErrOrStderr(), rendered)
			}
		}
		return err
	}

	keyStyle := SkillStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(stdout, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(stdout)

	// Each call derives the file location from the standard config
	// directory; the provider does not cache resolved paths.
	fmt.Fprintf(stdout, "%s: %s\n", keyStyle.Render("Config file"), describeConfigFile())
	fmt.Fprintln(stdout)

	fmt.Fprintf(stdout, "%s: %s\n", keyStyle.Render("skillset_path"), renderOptional(cfg.SkillsetPath.String(), "(search default locations)"))
	fmt.Fprintf(stdout, "%s: %s\n", keyStyle.Render("output_dir"), valueStyle.Render(cfg.OutputDir.String()))
	fmt.Fprintf(stdout, "%s: %s\n", keyStyle.Render("default_stack"), renderOptional(cfg.DefaultStack.String(), "(none)"))

	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "%s:\n", keyStyle.Render("versioning"))
	fmt.Fprintf(stdout, "  reset_on_corrupt: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.Versioning.ResetOnCorrupt)))

	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(stdout, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(stdout, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

// describeConfigFile locates the config file for display, falling back to a
// "(using defaults)" marker when none exists.
func describeConfigFile() string {
	if cfgFile != "" && fileExistsCheck(cfgFile) {
		return cfgFile
	}

	cfgDir, err := config.ConfigDir()
	if err != nil {
		return SubtitleStyle.Render("(using defaults)")
	}
	cfgPath := filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)
	if !fileExistsCheck(cfgPath) {
		return SubtitleStyle.Render("(using defaults)")
	}
	return cfgPath
}

// renderOptional shows a value or a muted placeholder when it is unset.
func renderOptional(value, placeholder string) string {
	if value == "" {
		return SubtitleStyle.Render(placeholder)
	}
	return SuccessStyle.Render(value)
}

func initConfigFile(cmd *cobra.Command) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	if err = config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Created default configuration at %s\n",
		successIcon, filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
	return nil
}

func showConfigPath(cmd *cobra.Command) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()
	fmt.Fprintf(stdout, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(stdout, "Config file: %s\n", filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
	return nil
}

func setConfigValue(cmd *cobra.Command, app *App, key, value string) error {
	cfg, err := app.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		return err
	}

	if err := applyConfigValue(cfg, key, value); err != nil {
		return err
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Set %s = %s\n", successIcon, key, value)
	return nil
}

// applyConfigValue mutates one config field addressed by its dotted key.
// Values are validated before anything is written.
func applyConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "skillset_path":
		cfg.SkillsetPath = config.SkillsetPath(value)
		if valid, errs := cfg.SkillsetPath.IsValid(); !valid {
			return errs[0]
		}

	case "output_dir":
		cfg.OutputDir = config.OutputDirPath(value)
		if valid, errs := cfg.OutputDir.IsValid(); !valid {
			return errs[0]
		}

	case "default_stack":
		cfg.DefaultStack = config.StackName(value)
		if valid, errs := cfg.DefaultStack.IsValid(); !valid {
			return errs[0]
		}

	case "versioning.reset_on_corrupt":
		cfg.Versioning.ResetOnCorrupt = value == "true" || value == "1"

	case "ui.verbose":
		cfg.UI.Verbose = value == "true" || value == "1"

	case "ui.color_scheme":
		cfg.UI.ColorScheme = config.ColorScheme(value)
		if valid, errs := cfg.UI.ColorScheme.IsValid(); !valid {
			return errs[0]
		}

	default:
		return fmt.Errorf("unknown configuration key: %s\nValid keys: skillset_path, output_dir, default_stack, versioning.reset_on_corrupt, ui.verbose, ui.color_scheme", key)
	}

	return nil
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
