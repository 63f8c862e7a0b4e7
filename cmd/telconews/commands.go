package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/deusflow/telconews/internal/app"
	"github.com/deusflow/telconews/internal/config"
	"github.com/deusflow/telconews/internal/display"
	"github.com/deusflow/telconews/internal/logger"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "telconews",
	Short: "Philippine telco news aggregator",
	Long: `telconews gathers the week's Philippine telecommunications news from an
AI search source and an engagement search source, filters and merges them,
and serves the result over HTTP or prints it to the terminal.

Example usage:
  telconews serve                                   # Start the HTTP server
  telconews fetch --start 2025-01-01 --end 2025-01-07
  telconews fetch --start 2025-01-01 --end 2025-01-07 --json`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		logger.Init(cfg.LogFormat, cfg.Debug)
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Run one aggregation pass and print the result",
	RunE:  runFetch,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(fetchCmd)

	today := time.Now().Format("2006-01-02")
	weekAgo := time.Now().AddDate(0, 0, -7).Format("2006-01-02")
	fetchCmd.Flags().String("start", weekAgo, "first day, YYYY-MM-DD")
	fetchCmd.Flags().String("end", today, "last day, YYYY-MM-DD")
	fetchCmd.Flags().Bool("json", false, "output as JSON")
	fetchCmd.Flags().Int("width", display.DefaultWidth, "terminal width")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}

	return a.Serve(ctx)
}

func runFetch(cmd *cobra.Command, args []string) error {
	start, _ := cmd.Flags().GetString("start")
	end, _ := cmd.Flags().GetString("end")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	width, _ := cmd.Flags().GetInt("width")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}

	result, err := a.Fetch(ctx, start, end)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), display.NewTerminalFormatter(width).FormatResult(*result))
	return err
}
