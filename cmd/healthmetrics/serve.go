package main

import (
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/dshills/healthmetrics/internal/review"
	"github.com/dshills/healthmetrics/internal/schema"
	"github.com/dshills/healthmetrics/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the registry, check report and policy menu over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			reg, files, err := a.loadRegistry(logger)
			if err != nil {
				return err
			}
			report := review.Check(version, files, schema.SeverityInfo)

			promReg := prometheus.NewRegistry()
			promReg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			h := server.New(reg, report, logger, server.NewMetrics(promReg))

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return server.Serve(ctx, a.cfg.GetString(cfgKeyAddr), server.Router(h, promReg), logger)
		},
	}
	cmd.Flags().String("addr", defaultAddr, "Listen address")
	return cmd
}
