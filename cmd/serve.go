package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/openmind/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		d, err := newDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		addr := d.cfg.Server.Addr
		if a, _ := cmd.Flags().GetString("addr"); a != "" {
			addr = a
		}
		if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
			printBanner(cmd, addr)
		}
		if d.demo != nil {
			d.logger.Warn("no LLM provider configured, serving offline demo content")
		}

		gin.SetMode(gin.ReleaseMode)
		api := httpapi.New(d.orch, d.store, httpapi.Config{
			ServiceName:  d.cfg.Telemetry.ServiceName,
			AllowOrigins: d.cfg.Server.AllowOrigins,
		}, d.logger)

		srv := &http.Server{
			Addr:              addr,
			Handler:           api.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			d.logger.Info("listening", zap.String("addr", addr))
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), d.cfg.Server.ShutdownTimeout)
			defer cancel()
			d.logger.Info("shutting down")
			return srv.Shutdown(shutdownCtx)
		})
		return g.Wait()
	},
}

func printBanner(cmd *cobra.Command, addr string) {
	w := cmd.ErrOrStderr()
	fmt.Fprintln(w, figure.NewFigure("OpenMind", "", true).String())
	fmt.Fprintf(w, "OpenMind API (%s) on %s\n\n", version, addr)
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides OPENMIND_ADDR and the config file)")
	serveCmd.Flags().Bool("quiet", false, "Do not print the startup banner")
}
