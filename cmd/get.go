package cmd

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vulnissimo/vulnissimo/internal/output"
	"github.com/vulnissimo/vulnissimo/internal/poller"
)

// getCmd fetches a scan result once and renders it
var getCmd = &cobra.Command{
	Use:   "get <scan-id>",
	Short: "get a scan result by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidScanID, args[0])
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		out, err := setupOutputter(cfg, newConsole(cmd))
		if err != nil {
			return err
		}

		client, err := setupClient(cfg)
		if err != nil {
			return err
		}

		return getScan(cmd.Context(), client, out, id)
	},
}

// init registers the get command and its flags on the root command
func init() {
	rootCmd.AddCommand(getCmd)
	addOutputFlags(getCmd)
}

// getScan fetches the current snapshot of a scan and renders it
func getScan(ctx context.Context, fetcher poller.Fetcher, out *output.Outputter, id uuid.UUID) error {
	result, err := fetcher.FetchScanResult(ctx, id)
	if err != nil {
		return err
	}

	return out.Render(result)
}
