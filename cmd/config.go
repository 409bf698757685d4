package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/stigscore/pkg/adk"
	"github.com/user/stigscore/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration (thresholds, providers, models, keys)",
}

var setThresholdsCmd = &cobra.Command{
	Use:   "set-thresholds",
	Short: "Persist score thresholds and the default --fail-on list",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		cfg.Thresholds = thresholdFlags(cmd).Merge(cfg.Thresholds)
		if cmd.Flags().Changed("fail-on") {
			raw, _ := cmd.Flags().GetString("fail-on")
			list := splitList(raw)
			if _, err := parseFailOn(list); err != nil {
				return err
			}
			cfg.FailOn = list
		}

		if err := config.SaveConfig(cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Thresholds updated: critical=%d warning=%d info=%d fail-on=%s\n",
			cfg.Thresholds.CriticalValue(), cfg.Thresholds.WarningValue(), cfg.Thresholds.InfoValue(), strings.Join(cfg.FailOn, ","))
		return nil
	},
}

var setKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Set the API key for an AI provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, _ := cmd.Flags().GetString("provider")
		key, _ := cmd.Flags().GetString("key")

		if provider == "" || key == "" {
			return fmt.Errorf("--provider and --key are required")
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		if err := checkProvider(provider); err != nil {
			return err
		}

		cfg.SetAPIKey(strings.ToLower(provider), key)
		if err := config.SaveConfig(cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "API key saved for provider: %s\n", provider)
		return nil
	},
}

var setModelCmd = &cobra.Command{
	Use:   "set-model",
	Short: "Set the active AI provider and model",
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, _ := cmd.Flags().GetString("provider")
		model, _ := cmd.Flags().GetString("model")

		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		if provider != "" {
			if err := checkProvider(provider); err != nil {
				return err
			}
			cfg.SelectedProvider = strings.ToLower(provider)
		}
		if model != "" {
			cfg.SelectedModel = model
		}

		if err := config.SaveConfig(cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Active configuration updated: Provider=%s, Model=%s\n", cfg.SelectedProvider, cfg.SelectedModel)
		return nil
	},
}

var listModelsCmd = &cobra.Command{
	Use:   "list-models",
	Short: "List available models from the configured provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		provider, apiKey, err := providerCredentials(cfg)
		if err != nil {
			return err
		}

		ctx := context.Background()
		p, err := adk.NewProvider(ctx, provider, apiKey, "")
		if err != nil {
			return fmt.Errorf("initializing provider: %w", err)
		}
		if closer, ok := p.(interface{ Close() }); ok {
			defer closer.Close()
		}

		models, err := p.ListModels(ctx)
		if err != nil {
			return fmt.Errorf("fetching models: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Available Models (%s):\n", provider)
		for _, m := range models {
			mark := " "
			if m == cfg.SelectedModel {
				mark = "*"
			}
			fmt.Fprintf(out, "%s %s\n", mark, m)
		}
		return nil
	},
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration (API keys masked)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		masked := *cfg
		masked.Thresholds = cfg.ResolveThresholds(masked.Thresholds)
		masked.Providers = make(map[string]config.ProviderConfig, len(cfg.Providers))
		for name, p := range cfg.Providers {
			masked.Providers[name] = config.ProviderConfig{APIKey: maskKey(p.APIKey)}
		}

		return render(cmd.OutOrStdout(), masked, func(w io.Writer) error {
			fmt.Fprintf(w, "Thresholds: critical=%d warning=%d info=%d\n",
				masked.Thresholds.CriticalValue(), masked.Thresholds.WarningValue(), masked.Thresholds.InfoValue())
			fmt.Fprintf(w, "Fail on: %s\n", strings.Join(masked.FailOn, ","))
			fmt.Fprintf(w, "Provider: %s (model %s)\n", masked.SelectedProvider, masked.SelectedModel)
			for name, p := range masked.Providers {
				fmt.Fprintf(w, "  %s key: %s\n", name, p.APIKey)
			}
			return nil
		})
	},
}

// providerCredentials returns the selected provider and its key, falling back
// to GOOGLE_API_KEY for gemini.
func providerCredentials(cfg *config.Config) (string, string, error) {
	provider := cfg.SelectedProvider
	if provider == "" {
		provider = "gemini"
	}
	apiKey := cfg.GetAPIKey(provider)
	if apiKey == "" && provider == "gemini" {
		apiKey = googleAPIKey()
	}
	if apiKey == "" {
		return "", "", fmt.Errorf("no API key found for %s; run 'stigscore config set-key --provider %s --key ...'", provider, provider)
	}
	return provider, apiKey, nil
}

func checkProvider(name string) error {
	for _, p := range adk.Providers {
		if strings.EqualFold(name, p) {
			return nil
		}
	}
	return fmt.Errorf("unknown provider %q (want one of %s)", name, strings.Join(adk.Providers, ", "))
}

func maskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

func init() {
	addThresholdFlags(setThresholdsCmd)

	setKeyCmd.Flags().StringP("provider", "p", "", "Provider ("+strings.Join(adk.Providers, ", ")+")")
	setKeyCmd.Flags().StringP("key", "k", "", "API Key")

	setModelCmd.Flags().StringP("provider", "p", "", "Provider ("+strings.Join(adk.Providers, ", ")+")")
	setModelCmd.Flags().StringP("model", "m", "", "Model name")

	configCmd.AddCommand(setThresholdsCmd)
	configCmd.AddCommand(setKeyCmd)
	configCmd.AddCommand(setModelCmd)
	configCmd.AddCommand(listModelsCmd)
	configCmd.AddCommand(showConfigCmd)
	rootCmd.AddCommand(configCmd)
}
