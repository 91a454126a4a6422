package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vango-dev/vroute/internal/config"
	"github.com/vango-dev/vroute/pkg/inspector"
	"github.com/vango-dev/vroute/pkg/middleware"
	"github.com/vango-dev/vroute/pkg/router"
)

const keyAddr = "addr"

func serveCmd(v *viper.Viper) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP inspector",
		Long: `Build a router from the configuration and serve the inspector API.

Navigations are traced with OpenTelemetry and counted in Prometheus
metrics at /metrics. With --watch, the configuration file is reloaded on
change and stream clients receive a reload message.

Examples:
  vroute serve -c routes.yaml
  vroute serve -c routes.yaml --addr :8080 --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, v, watch)
		},
	}

	cmd.Flags().String(keyAddr, ":7070", "Address to listen on")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload the configuration file on change")
	v.BindPFlag(keyAddr, cmd.Flags().Lookup(keyAddr))

	return cmd
}

func runServe(cmd *cobra.Command, v *viper.Viper, watch bool) error {
	out := cmd.OutOrStdout()
	logger := newLogger(cmd, v)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(middleware.WithRegistry(reg))
	mw := router.WithMiddleware(metrics.Middleware(), middleware.OpenTelemetry())

	r, err := buildRouter(cmd, v, mw)
	if err != nil {
		return err
	}
	metrics.Track(r)

	srv := inspector.New(r, inspector.WithGatherer(reg), inspector.WithLogger(logger))
	defer srv.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if watch {
		loc, err := configLocation(v)
		if err != nil {
			return err
		}
		if config.IsS3(loc) {
			return fmt.Errorf("--watch needs a local file, got %s", loc)
		}
		go func() {
			err := config.Watch(ctx, loc, config.WatchOptions{Logger: logger}, func(cfg router.Config, err error) {
				if err != nil {
					srv.Hub().NotifyError(err.Error())
					warn(out, "Reload failed: %v", err)
					return
				}
				next, err := router.New(cfg, router.WithLogger(logger), mw)
				if err != nil {
					srv.Hub().NotifyError(err.Error())
					warn(out, "Reload failed: %v", err)
					return
				}
				metrics.Track(next)
				srv.SetRouter(next)
				success(out, "Reloaded %s", loc)
			})
			if err != nil {
				logger.Error("config watch stopped", "error", err)
			}
		}()
	}

	ln, err := net.Listen("tcp", v.GetString(keyAddr))
	if err != nil {
		return err
	}
	httpSrv := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.Serve(ln)
	}()

	printBanner(out)
	success(out, "Inspector listening on %s", ln.Addr())
	info(out, "Routes:  %d", len(r.Records()))
	info(out, "Current: %s", r.CurrentRoute().Path)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	fmt.Fprintln(out, "\n  Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
