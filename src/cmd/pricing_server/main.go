package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"github.com/jiaming2012/european-pricer/src/logger"
	"github.com/jiaming2012/european-pricer/src/pricingapi"
	"github.com/jiaming2012/european-pricer/src/telemetry"
	"github.com/jiaming2012/european-pricer/src/utils"
)

var rootCmd = &cobra.Command{
	Use:   "go run src/cmd/pricing_server/main.go --port 8080",
	Short: "Serve the European option pricing api over http",
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()

		logLevel, err := flags.GetString("log-level")
		if err != nil {
			log.Fatalf("error getting log-level: %v", err)
		}

		logJSON, err := flags.GetBool("log-json")
		if err != nil {
			log.Fatalf("error getting log-json: %v", err)
		}

		if err := logger.Setup(logger.Config{Level: logLevel, JSON: logJSON}); err != nil {
			log.Fatalf("error setting up logger: %v", err)
		}

		goEnv, err := flags.GetString("go-env")
		if err != nil {
			log.Fatalf("error getting go-env: %v", err)
		}

		envDir, err := flags.GetString("env-dir")
		if err != nil {
			log.Fatalf("error getting env-dir: %v", err)
		}

		if err := utils.InitEnvironmentVariables(envDir, goEnv); err != nil {
			log.Fatalf("error loading environment variables: %v", err)
		}

		port, err := flags.GetString("port")
		if err != nil {
			log.Fatalf("error getting port: %v", err)
		}

		if port == "" {
			port = utils.GetEnvOrDefault("PRICING_SERVER_PORT", "8080")
		}

		ctx := context.Background()

		shutdownTelemetry, err := telemetry.Setup(ctx, "pricing_server")
		if err != nil {
			log.Fatalf("error setting up telemetry: %v", err)
		}

		router := pricingapi.NewRouter()

		srv := &http.Server{
			Handler:           otelhttp.NewHandler(router, "pricing_server"),
			Addr:              fmt.Sprintf(":%s", port),
			ReadHeaderTimeout: 10 * time.Second,
		}

		g, gctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			log.Infof("listening on :%s", port)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http: failed to listen and serve: %w", err)
			}
			return nil
		})

		g.Go(func() error {
			// Create channel for shutdown signals.
			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(stop)

			select {
			case <-stop:
				log.Info("shutting down server")
			case <-gctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("error shutting down server: %w", err)
			}

			log.Info("server gracefully stopped")
			return nil
		})

		err = g.Wait()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if shutdownErr := shutdownTelemetry(shutdownCtx); shutdownErr != nil {
			log.Errorf("error shutting down telemetry: %v", shutdownErr)
		}

		if err != nil {
			log.Fatalf("pricing_server: %v", err)
		}
	},
}

func main() {
	rootCmd.PersistentFlags().String("port", "", "Port to listen on. Defaults to PRICING_SERVER_PORT, then 8080.")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: trace, debug, info, warn or error.")
	rootCmd.PersistentFlags().Bool("log-json", false, "Log as json.")
	rootCmd.PersistentFlags().String("go-env", "development", "The go environment to run the command in.")
	rootCmd.PersistentFlags().String("env-dir", ".", "Directory holding the .env.<go-env> file.")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
