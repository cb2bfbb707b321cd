// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the kindlenotes2md CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spokeyjoe/kindlenotes2md/internal/convert"
	"github.com/spokeyjoe/kindlenotes2md/internal/frontmatter"
	"github.com/spokeyjoe/kindlenotes2md/internal/secrets"
	"github.com/spokeyjoe/kindlenotes2md/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// secretKey holds the API key loaded from .secrets/ at startup.
var secretKey string

// anthropicKey returns the API key from the environment or the secrets
// directory. Empty means no credentials; the conversion then uses the
// fallback frontmatter instead of calling the API.
func anthropicKey() string {
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		return v
	}
	return secretKey
}

// rootCmd is the base command for the kindlenotes2md CLI. The conversion is
// the root action: two positional arguments, input HTML and output Markdown.
var rootCmd = &cobra.Command{
	Use:   "kindlenotes2md <input.html> <output.md>",
	Short: "Convert a Kindle HTML notebook export to Markdown",
	Long: `kindlenotes2md converts the HTML notebook export produced by the Kindle app
into a Markdown note with YAML frontmatter. Highlights and notes are grouped
under their section headings, and the frontmatter tags and description are
generated from the highlight text via the Anthropic API, with a fixed
fallback when no API key is configured or the call fails.`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		k, err := secrets.AnthropicKey(".secrets/")
		if err != nil {
			return err
		}
		secretKey = k
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := types.DefaultFrontmatterConfig()
		if m := viper.GetString("model"); m != "" {
			cfg.Model = m
		}
		if d := viper.GetDuration("timeout"); d > 0 {
			cfg.Timeout = d
		}
		if n := viper.GetInt("max_sample_chars"); n > 0 {
			cfg.MaxSampleChars = n
		}
		cfg.APIKey = anthropicKey()

		var g frontmatter.Generator
		if cfg.APIKey != "" {
			client := frontmatter.NewClient(cfg.AIConfig)
			defer client.Close()
			g = client
		}

		return convert.Run(cmd.Context(), g, cfg, args[0], args[1], os.Stderr)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./kindlenotes2md.yaml or ~/.config/kindlenotes2md/config.yaml)")
	rootCmd.Flags().String("model", "", "AI model identifier for frontmatter generation")
	rootCmd.Flags().Duration("timeout", 0, "timeout for the frontmatter generation call")
	rootCmd.Flags().Int("max-sample-chars", 0, "character budget for the highlight sample sent to the AI")

	viper.BindPFlag("model", rootCmd.Flags().Lookup("model"))
	viper.BindPFlag("timeout", rootCmd.Flags().Lookup("timeout"))
	viper.BindPFlag("max_sample_chars", rootCmd.Flags().Lookup("max-sample-chars"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("kindlenotes2md")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "kindlenotes2md"))
		}
	}

	viper.SetEnvPrefix("KINDLENOTES2MD")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
