package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	spotshell "github.com/spotshell/spotshell"
	"github.com/spotshell/spotshell/internal/llm"
	"github.com/spotshell/spotshell/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configPath   string
	cfg          *serviceConfig
	outputFormat string
)

// serviceConfig is the YAML service configuration for the CLI and web
// server. The LLM block selects and credentials the classification backend.
type serviceConfig struct {
	DBPath     string      `yaml:"db_path"`
	PresetsURL string      `yaml:"presets_url"`
	LLM        *llm.Config `yaml:"llm"`
}

func defaultServiceConfig() *serviceConfig {
	return &serviceConfig{
		DBPath:     "./spotshell.db",
		PresetsURL: "https://raw.githubusercontent.com/spotshell/presets/main",
		LLM:        llm.DefaultConfig(),
	}
}

func loadConfig() error {
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	// Check if config exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Use default config
		cfg = defaultServiceConfig()
		return nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	cfg = defaultServiceConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	return nil
}

func newEngine() (*spotshell.Engine, error) {
	return spotshell.NewEngine(spotshell.EngineConfig{
		DBPath:     cfg.DBPath,
		PresetsURL: cfg.PresetsURL,
		LLM:        cfg.LLM,
	})
}

func exportCmd() *cobra.Command {
	var name string
	var outDir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the current configuration to a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(output.Format(outputFormat))

			engine, err := newEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			filename, data, err := engine.Export(name)
			if err != nil {
				return fmt.Errorf("failed to export configuration: %w", err)
			}

			path := filepath.Join(outDir, filename)
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			formatter.Success("exported configuration to %s", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "export filename (without extension)")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	return cmd
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a configuration document and persist it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(output.Format(outputFormat))

			engine, err := newEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			rep, err := engine.ImportFile(args[0])
			if err != nil {
				return fmt.Errorf("import rejected: %w", err)
			}
			if !rep.OK() {
				formatter.Warning("%d field(s) failed to persist", len(rep.Failed))
			}
			return formatter.OutputSaveReport(rep)
		},
	}
}

func presetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Work with the remote preset repository",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(output.Format(outputFormat))

			engine, err := newEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			files, err := engine.ListPresets(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list presets: %w", err)
			}
			return formatter.OutputPresetList(files)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "load <name>",
		Short: "Load a named preset and persist it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(output.Format(outputFormat))

			engine, err := newEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			rep, err := engine.LoadPreset(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to load preset: %w", err)
			}
			formatter.Success("loaded preset %s", args[0])
			return formatter.OutputSaveReport(rep)
		},
	})

	return cmd
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Report configuration storage usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(output.Format(outputFormat))

			engine, err := newEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			return formatter.OutputStorageHealth(engine.StorageHealth())
		},
	}
}

func clearCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all persisted configuration and revert to defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(output.Format(outputFormat))

			if !force {
				return fmt.Errorf("refusing to clear without --force")
			}

			engine, err := newEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			if err := engine.ClearAll(); err != nil {
				return err
			}
			formatter.Success("configuration cleared")
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "confirm the destructive clear")
	return cmd
}

func classifyCmd() *cobra.Command {
	var modelFlags []string
	cmd := &cobra.Command{
		Use:   "classify <question>",
		Short: "Classify a question as data vs general",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(output.Format(outputFormat))

			engine, err := newEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			models, err := parseModelFlags(modelFlags)
			if err != nil {
				return err
			}

			result := engine.Classify(context.Background(), args[0], models)
			return formatter.OutputClassification(result)
		},
	}
	cmd.Flags().StringArrayVarP(&modelFlags, "model", "m", nil, "candidate model as id=name (repeatable)")
	return cmd
}

// parseModelFlags turns repeated id=name flags into model descriptors.
func parseModelFlags(flags []string) ([]spotshell.ModelDescriptor, error) {
	var models []spotshell.ModelDescriptor
	for _, f := range flags {
		id, name, ok := strings.Cut(f, "=")
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid --model %q, want id=name", f)
		}
		models = append(models, spotshell.ModelDescriptor{ID: id, Name: name})
	}
	return models, nil
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current merged configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(output.Format(outputFormat))

			engine, err := newEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			return formatter.OutputConfiguration(engine.Current())
		},
	}
}

func initConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Create a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				configPath = "./config/config.yaml"
			}

			dir := filepath.Dir(configPath)
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create config directory: %w", err)
			}

			if _, err := os.Stat(configPath); err == nil {
				return fmt.Errorf("config file already exists: %s", configPath)
			}

			data, err := yaml.Marshal(defaultServiceConfig())
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			if err := os.WriteFile(configPath, data, 0644); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}

			fmt.Printf("Created default config at %s\n", configPath)
			return nil
		},
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "spotshell",
		Short: "Embedding shell for ThoughtSpot analytics - configuration management and question classification",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "output format: json, text, human (default: json)")

	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(presetCmd())
	rootCmd.AddCommand(healthCmd())
	rootCmd.AddCommand(clearCmd())
	rootCmd.AddCommand(classifyCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(initConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
