package cmd

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/vulnissimo/vulnissimo/config"
	"github.com/vulnissimo/vulnissimo/internal/console"
	"github.com/vulnissimo/vulnissimo/internal/output"
	"github.com/vulnissimo/vulnissimo/internal/slack"
	"github.com/vulnissimo/vulnissimo/internal/vulnissimo"
)

// defaultIndent is the JSON indentation used when neither flag nor config sets one
const defaultIndent = 2

// addOutputFlags registers the result rendering flags on cmd
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().String("output-file", "", "file to write the scan result to (default is the console)")
	cmd.Flags().String("output-type", string(output.FormatJSON), "output format, one of "+strings.Join(lo.Map(output.Formats, func(f output.Format, _ int) string {
		return f.String()
	}), ", "))
	cmd.Flags().Int("indent", defaultIndent, "indentation of the JSON output, negative for compact output")
}

// loadConfig reads the configuration and applies the flags the user set explicitly
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgPath := k.String("config")

	cfg, err := config.Load(&cfgPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if apiURL := k.String("api-url"); apiURL != "" {
		cfg.API.BaseURL = apiURL
	}

	if cmd.Flags().Changed("output-type") {
		cfg.Output.Type = k.String("output-type")
	}

	if cmd.Flags().Changed("indent") {
		cfg.Output.Indent = k.Int("indent")
	}

	log.Debug().Str("api", cfg.API.BaseURL).Str("output_type", cfg.Output.Type).Int("indent", cfg.Output.Indent).Msg("configuration loaded")

	return cfg, nil
}

// newConsole binds a console to the streams of cmd
func newConsole(cmd *cobra.Command) *console.Console {
	return console.New(
		console.WithOutput(cmd.OutOrStdout()),
		console.WithErrorOutput(cmd.ErrOrStderr()),
		console.WithInput(cmd.InOrStdin()),
	)
}

// setupOutputter selects the outputter for the --output-file flag and the configured format
func setupOutputter(cfg *config.Config, c *console.Console) (*output.Outputter, error) {
	format, err := output.ParseFormat(cfg.Output.Type)
	if err != nil {
		return nil, err
	}

	return output.New(k.String("output-file"), format, cfg.Output.Indent, output.WithConsole(c))
}

// setupClient initializes the Vulnissimo API client from config
func setupClient(cfg *config.Config) (*vulnissimo.Client, error) {
	return vulnissimo.New(
		vulnissimo.WithBaseURL(cfg.API.BaseURL),
		vulnissimo.WithHTTPClient(&http.Client{Timeout: cfg.API.RequestTimeout}),
	)
}

// setupNotifier initializes the Slack notifier from config, returning nil when unconfigured
func setupNotifier(cfg *config.Config) *slack.Notifier {
	if cfg.Notify.SlackWebhookURL == "" {
		log.Debug().Msg("slack notifications not configured, skipping")
		return nil
	}

	notifier, err := slack.New(
		cfg.Notify.SlackWebhookURL,
		slack.WithTimeout(cfg.Notify.RequestTimeout),
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize slack notifier")
		return nil
	}

	return notifier
}
