package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/stigscore/pkg/adk"
	"github.com/user/stigscore/pkg/config"
	"github.com/user/stigscore/pkg/logger"
	"github.com/user/stigscore/pkg/wrappers"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive <file>",
	Short: "Ask an AI advisor questions about a scan result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		scan, err := loadScan(cmd, args[0])
		if err != nil {
			return err
		}
		if !scan.OK() {
			return parseFailure(args[0], scan)
		}

		providerName, apiKey, err := providerCredentials(cfg)
		if err != nil {
			return err
		}

		ctx := context.Background()
		logger.Infof("Connecting to %s (Model: %s)...", providerName, cfg.SelectedModel)

		provider, err := adk.NewProvider(ctx, providerName, apiKey, cfg.SelectedModel)
		if err != nil {
			return fmt.Errorf("creating AI provider: %w", err)
		}
		if closer, ok := provider.(interface{ Close() }); ok {
			defer closer.Close()
		}

		agent := adk.NewAgent(provider)
		agent.RegisterTool(&wrappers.ScoreWrapper{Scan: &scan, Thresholds: cfg.ResolveThresholds(thresholdFlags(cmd))})
		agent.RegisterTool(&wrappers.FindingsWrapper{Scan: &scan})
		agent.RegisterTool(&wrappers.CategorizeWrapper{Scan: &scan})
		agent.SetSystemPrompt(adk.GetSystemPrompt())

		out := cmd.OutOrStdout()
		scanner := bufio.NewScanner(cmd.InOrStdin())
		fmt.Fprintln(out, "---------------------------------------------------------")
		fmt.Fprintf(out, "Loaded %d controls from %s.\n", scan.Total, args[0])
		fmt.Fprintln(out, "Example: 'Which CAT1 controls failed?'")
		fmt.Fprintln(out, "Type 'quit' or 'exit' to stop.")
		fmt.Fprintln(out, "---------------------------------------------------------")

		for {
			fmt.Fprint(out, "\n> ")
			if !scanner.Scan() {
				break
			}
			input := strings.TrimSpace(scanner.Text())
			if input == "quit" || input == "exit" {
				break
			}
			if input == "" {
				continue
			}

			resp, err := agent.Chat(ctx, input, func(msg string) {
				logger.Debugf("[Progress]: %s", msg)
			})
			if err != nil {
				logger.Warnf("advisor error: %v", err)
				continue
			}
			fmt.Fprintf(out, "\n[Advisor]: %s\n", resp)
		}
		return scanner.Err()
	},
}

func googleAPIKey() string {
	return os.Getenv("GOOGLE_API_KEY")
}

func init() {
	addThresholdOnlyFlags(interactiveCmd)
	rootCmd.AddCommand(interactiveCmd)
}
