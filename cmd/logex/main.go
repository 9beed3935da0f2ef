// Command logex inspects and manages configuration for the logex logging
// library.
package main

import (
	"fmt"
	"os"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/spf13/cobra"

	"github.com/logex-dev/logex"
	"github.com/logex-dev/logex/version"
)

func main() {
	err := newRootCommand().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "logex",
		Short: "Inspect and manage logex logging configuration",
		Long: `logex manages the configuration files consumed by the logex logging
library: discovery, creation from the default template, and validation.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration files",
	}

	configCmd.AddCommand(newConfigShowCommand())
	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigValidateCommand())

	return configCmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active configuration",
		Long: `Show discovers the active configuration file and prints its content
exactly as written, after a "# source:" comment naming the file. When no
file exists yet, discovery creates the default one first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager := &logex.ConfigManager{}

			path, err := manager.Discover()
			if err != nil {
				return err
			}

			content, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# source: %s\n", path)
			fmt.Fprint(out, string(content))

			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	var (
		output string
		name   string
		force  bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := output
			if path == "" {
				path = logex.ConfigFilename
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}

			scriptName := name
			if scriptName == "" {
				scriptName = logex.ScriptName()
			}

			err := logex.EnsureParentDir(path)
			if err != nil {
				return err
			}

			err = os.WriteFile(path, []byte(logex.DefaultConfigTemplate(scriptName)), 0o644)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", path)

			return nil
		},
	}

	initCmd.Flags().StringVarP(&output, "output", "o", "", "output path (default ./"+logex.ConfigFilename+")")
	initCmd.Flags().StringVarP(&name, "name", "n", "", "script name used for the log file")
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	return initCmd
}

func newConfigValidateCommand() *cobra.Command {
	var (
		configPath string
		strict     bool
	)

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file",
		Long: `Validate parses the configuration file and checks its structure. A parse
failure, an empty document or a missing logger section fails the command.
Schema findings beyond that (unknown keys, type mismatches, levels outside
the vocabulary) print as warnings; --strict turns them into failures.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager := &logex.ConfigManager{}

			path := configPath
			if path == "" {
				discovered, err := manager.Discover()
				if err != nil {
					return err
				}
				path = discovered
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Validating: %s\n", path)

			err := manager.Load(path)
			if err != nil {
				return err
			}

			doc, err := manager.Config()
			if err != nil {
				return err
			}

			if len(doc) == 0 {
				return fmt.Errorf("configuration file %s is empty", path)
			}
			if _, ok := doc["logger"]; !ok {
				return fmt.Errorf("%s: missing required section: logger", path)
			}

			resolved, err := configSchema().Resolve(nil)
			if err != nil {
				return fmt.Errorf("compiling configuration schema: %w", err)
			}

			err = resolved.Validate(doc)
			if err != nil {
				if strict {
					return fmt.Errorf("%s: %v", path, err)
				}
				fmt.Fprintf(out, "Warning: %s: %v\n", path, err)
			}

			fmt.Fprintln(out, "Configuration is valid.")

			return nil
		},
	}

	validateCmd.Flags().StringVarP(&configPath, "config", "c", "", "config file to validate (default: discovered)")
	validateCmd.Flags().BoolVar(&strict, "strict", false, "treat schema findings as errors")

	return validateCmd
}

// configSchema describes the shape of a configuration document. It is
// deliberately stricter than the runtime loader, which coerces scalar types
// and silently drops unknown logger keys; validate surfaces those mistakes
// as warnings, or as failures under --strict. Top-level sections other than
// logger stay open so the file can carry unrelated tool configuration.
func configSchema() *jsonschema.Schema {
	str := func() *jsonschema.Schema { return &jsonschema.Schema{Type: "string"} }
	boolean := func() *jsonschema.Schema { return &jsonschema.Schema{Type: "boolean"} }
	size := func() *jsonschema.Schema { return &jsonschema.Schema{Types: []string{"string", "number"}} }
	noExtras := func() *jsonschema.Schema { return &jsonschema.Schema{Not: &jsonschema.Schema{}} }
	level := func() *jsonschema.Schema {
		return &jsonschema.Schema{
			Type:    "string",
			Pattern: `^(?i)(TRACE|DEBUG|INFO|SUCCESS|WARNING|ERROR|CRITICAL)$`,
		}
	}

	console := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"enabled":  boolean(),
			"level":    level(),
			"colorize": boolean(),
		},
		AdditionalProperties: noExtras(),
	}

	logger := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"file":        str(),
			"level":       level(),
			"rotation":    size(),
			"retention":   size(),
			"compression": str(),
			"format":      str(),
			"console":     console,
		},
		AdditionalProperties: noExtras(),
	}

	return &jsonschema.Schema{
		Type:                 "object",
		Properties:           map[string]*jsonschema.Schema{"logger": logger},
		Required:             []string{"logger"},
		AdditionalProperties: &jsonschema.Schema{},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			version.Print(cmd.OutOrStdout())
		},
	}
}
