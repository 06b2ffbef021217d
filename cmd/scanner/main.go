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

	"ai-stock-scanner/internal/logger"
	"ai-stock-scanner/internal/metrics"
	"ai-stock-scanner/internal/server"
	"ai-stock-scanner/internal/trace"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "scanner",
		Short:         "AI stock scanner for NSE equities",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the YAML config file")

	root.AddCommand(serveCmd(&configPath))
	root.AddCommand(scanCmd(&configPath))
	root.AddCommand(stockCmd(&configPath))
	return root
}

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, err := bootstrap(ctx, *configPath)
			if err != nil {
				return err
			}
			defer shutdownTracer(ctx)

			m := metrics.New()
			srv := server.New(cfg, initializeScanner(ctx, cfg, m), m)
			logBanner(ctx, cfg, srv.Addr())

			errc := make(chan error, 1)
			go func() { errc <- srv.Start(ctx) }()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func scanCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "scan [SYMBOL...]",
		Short: "Scan symbols once and print the ranked batch as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := bootstrap(ctx, *configPath)
			if err != nil {
				return err
			}
			defer shutdownTracer(ctx)

			res := initializeScanner(ctx, cfg, nil).Scan(ctx, args)
			return printJSON(cmd, res.Value)
		},
	}
}

func stockCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stock SYMBOL",
		Short: "Analyze one symbol and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := bootstrap(ctx, *configPath)
			if err != nil {
				return err
			}
			defer shutdownTracer(ctx)

			res := initializeScanner(ctx, cfg, nil).Analyze(ctx, args[0])
			return printJSON(cmd, res.Value)
		},
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func shutdownTracer(ctx context.Context) {
	if err := trace.Shutdown(context.WithoutCancel(ctx)); err != nil {
		logger.Warn(ctx, "Failed to flush traces", "error", err)
	}
}
