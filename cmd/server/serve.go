package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/jengzang/trapcount-dashboard-go/internal/api"
	"github.com/jengzang/trapcount-dashboard-go/internal/config"
	"github.com/jengzang/trapcount-dashboard-go/internal/dataset"
	"github.com/jengzang/trapcount-dashboard-go/internal/logger"
	"github.com/jengzang/trapcount-dashboard-go/internal/models"
	"github.com/jengzang/trapcount-dashboard-go/internal/service"
	"github.com/jengzang/trapcount-dashboard-go/internal/viz"
)

const shutdownTimeout = 10 * time.Second

var port string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load the observation table and serve the dashboard",
	Long: `Loads the observation table and serves the dashboard page and its API.

A table that cannot be loaded aborts startup; every other failure is
reported per request.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Listen address (default :8050)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := logger.NewStdout(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 加载数据
	table, err := dataset.Load(ctx, cfg.DataPath, dataset.Options{
		Delimiter: cfg.DelimiterRune(),
		Sheet:     cfg.Sheet,
	})
	if err != nil {
		log.Error().Err(err).Str("path", cfg.DataPath).Msg("Failed to load observation table")
		return err
	}
	log.Info().
		Str("path", cfg.DataPath).
		Int("locations", table.Len()).
		Msg("Observation table loaded")

	renderer, err := newRenderer(cfg)
	if err != nil {
		return err
	}

	deps := api.Deps{
		Series:   service.NewSeriesService(table),
		Density:  service.NewDensityService(table, renderer, cfg.WeekLabels, defaultCenter(cfg)),
		Renderer: renderer,
		Limiter:  api.NewLimiter(cfg),
	}
	if deps.Limiter != nil {
		go deps.Limiter.Run(ctx)
	}

	srv := &http.Server{
		Addr:              listenAddr(cfg.Port),
		Handler:           api.SetupRouter(cfg, deps, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newRenderer(cfg *config.Config) (*viz.Renderer, error) {
	return viz.NewRenderer(viz.HeatmapOptions{
		ZoomStart:   cfg.Map.ZoomStart,
		Radius:      cfg.Map.Radius,
		Blur:        cfg.Map.Blur,
		MinOpacity:  cfg.Map.MinOpacity,
		TileURL:     cfg.Map.TileURL,
		Attribution: cfg.Map.Attribution,
		Assets: viz.Assets{
			LeafletCSS: cfg.Map.LeafletCSS,
			LeafletJS:  cfg.Map.LeafletJS,
			HeatJS:     cfg.Map.HeatJS,
		},
	})
}

func defaultCenter(cfg *config.Config) models.LatLng {
	return models.LatLng{Lat: cfg.Map.DefaultCenter[0], Lng: cfg.Map.DefaultCenter[1]}
}

func listenAddr(port string) string {
	if !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
