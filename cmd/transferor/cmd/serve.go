package cmd

import (
	"context"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gridwm/transferor/internal/common"
	"github.com/gridwm/transferor/internal/transferor"
	"github.com/gridwm/transferor/internal/transferor/configuration"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the transferor planning daemon.",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")

			common.ConfigureLogging()

			var config configuration.TransferorConfig
			common.LoadConfig(&config, configPath, "")
			log.Infof("Starting with config %+v", config)

			shutdownMetricServer := common.ServeMetrics(config.MetricsPort)
			defer shutdownMetricServer()

			catalog, err := transferor.NewFileCatalog(config.CatalogPath)
			if err != nil {
				return err
			}
			metrics := transferor.NewTransferorMetrics(prometheus.DefaultRegisterer)
			t := transferor.New(catalog, metrics, config.Parallelism)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			runCycle(ctx, t, &config)
			ticker := time.NewTicker(config.CycleInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					log.Info("Shutting down")
					return nil
				case <-ticker.C:
					runCycle(ctx, t, &config)
				}
			}
		},
	}
	cmd.Flags().String("config", "./config/transferor", "Directory containing the application configuration file")
	return cmd
}

// runCycle plans every request document found in the spool directory.
func runCycle(ctx context.Context, t *transferor.Transferor, config *configuration.TransferorConfig) {
	paths, err := filepath.Glob(filepath.Join(config.SpoolPath, "*.json"))
	if err != nil {
		log.WithError(err).Error("Failed to scan the request spool")
		return
	}
	requests := make(map[string]map[string]any, len(paths))
	for _, path := range paths {
		name, raw, err := loadRequest(path)
		if err != nil {
			log.WithError(err).Warnf("Skipping unreadable request document %s", path)
			continue
		}
		requests[name] = raw
	}
	if len(requests) == 0 {
		log.Debug("No requests to plan in this cycle")
		return
	}

	start := time.Now()
	plans, err := t.PlanWorkflows(ctx, requests, config.NumChunks)
	if err != nil {
		log.WithError(err).Error("Some workflows failed planning")
	}
	log.Infof("Planned %d of %d workflows in %s", len(plans), len(requests), time.Since(start))
}
