package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func handleUpdate(config *Config, agencyID uuid.UUID) error {
	n, err := config.services.Update.Update(agencyID)

	if err != nil {
		return err
	}

	_ = level.Info(config.logger).Log("msg", "agency updated", "agency", agencyID, "rates", n)

	return nil
}

func serveMetrics(ctx context.Context, config *Config, addr string) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = level.Error(config.logger).Log("msg", "metrics server stopped", "err", err)
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}
}

func updateCobraCommand(config *Config, agency *string, standalone *bool, after *time.Duration, metricsAddr *string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		agencyID, err := parseAgencyID(*agency)
		if err != nil {
			return err
		}

		if !*standalone {
			return handleUpdate(config, agencyID)
		}

		if *metricsAddr != "" {
			stop := serveMetrics(context.Background(), config, *metricsAddr)
			defer stop()
		}

		if err := handleUpdate(config, agencyID); err != nil {
			_ = level.Error(config.logger).Log("msg", "update failed", "agency", agencyID, "err", err)
		}

		for {
			select {
			case <-time.After(*after):
				if err := handleUpdate(config, agencyID); err != nil {
					_ = level.Error(config.logger).Log("msg", "update failed", "agency", agencyID, "err", err)
				}
			case <-config.Ctx.Done():
				return nil
			}
		}
	}
}

func update(config *Config) *cobra.Command {
	var (
		agency      string
		standalone  bool
		after       time.Duration
		metricsAddr string
	)

	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Pull fresh rates into an agency",
		Args:  cobra.NoArgs,
	}

	updateCmd.RunE = updateCobraCommand(config, &agency, &standalone, &after, &metricsAddr)
	updateCmd.Flags().StringVar(&agency, "agency", "", "Agency id")
	updateCmd.Flags().BoolVar(&standalone, "standalone", false, "Start up a long running update service")
	updateCmd.Flags().DurationVar(&after, "after", time.Duration(1)*time.Hour, "Update interval for standalone process")
	updateCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Expose prometheus metrics on this address in standalone mode")
	_ = updateCmd.MarkFlagRequired("agency")

	return updateCmd
}
