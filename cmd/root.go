package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vulnissimo/vulnissimo/internal/console"
	"github.com/vulnissimo/vulnissimo/internal/vulnissimo"
)

// appName is the name of the application used in CLI usage output
const appName = "vulnissimo"

// k is the global koanf instance used for configuration and flag management
var k *koanf.Koanf

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           appName,
	Short:         "launch and retrieve Vulnissimo vulnerability scans",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		err := initCmdFlags(cmd)
		cobra.CheckErr(err)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// Service failures are reported by their message alone.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if code := handleError(rootCmd, err); code != 0 {
		os.Exit(code)
	}
}

// handleError reports err on the error stream of cmd and returns the exit code.
// A service failure is reported by its message alone.
func handleError(cmd *cobra.Command, err error) int {
	if err == nil {
		return 0
	}

	c := console.New(console.WithOutput(cmd.OutOrStdout()), console.WithErrorOutput(cmd.ErrOrStderr()))

	var apiErr *vulnissimo.APIError
	if errors.As(err, &apiErr) {
		c.Errorf("%s", apiErr.Message)
		return 1
	}

	c.Errorf("Error: %v", err)

	return 1
}

// init initializes the koanf instance and registers persistent flags on the root command
func init() {
	k = koanf.New(".")
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().Bool("pretty", false, "enable pretty (human readable) logging output")
	rootCmd.PersistentFlags().Bool("debug", false, "debug logging output")
	rootCmd.PersistentFlags().String("config", "", "config file location (default is $XDG_CONFIG_HOME/vulnissimo/config.yaml)")
	rootCmd.PersistentFlags().String("api-url", "", "base URL of the Vulnissimo API")
}

// initConfig reads in the persistent flags before any command runs
func initConfig() {
	if err := initCmdFlags(rootCmd); err != nil {
		log.Fatal().Err(err).Msg("error loading config")
	}

	setupLogging()
}

// initCmdFlags loads the flags from the command line into the koanf instance
func initCmdFlags(cmd *cobra.Command) error {
	return k.Load(posflag.Provider(cmd.Flags(), k.Delim(), k), nil)
}

// setupLogging configures zerolog based on the debug and pretty flags.
// Only warnings are logged by default so diagnostics stay out of command output.
func setupLogging() {
	level := zerolog.WarnLevel

	if k.Bool("debug") {
		level = zerolog.DebugLevel
	}

	zerolog.SetGlobalLevel(level)

	if k.Bool("pretty") {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
