package main

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/european-pricer/src/cmd/convergence_study/run"
	"github.com/jiaming2012/european-pricer/src/eventmodels"
	"github.com/jiaming2012/european-pricer/src/logger"
	"github.com/jiaming2012/european-pricer/src/telemetry"
	"github.com/jiaming2012/european-pricer/src/utils"
)

var rootCmd = &cobra.Command{
	Use:   "go run src/cmd/convergence_study/main.go --spot 100 --strike 100 --rate 0.05 --volatility 0.2 --maturity 1 --path-counts 1000,10000,100000 --trials 20",
	Short: "Measure how the Monte Carlo error shrinks as the path count grows",
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()

		logLevel, err := flags.GetString("log-level")
		if err != nil {
			log.Fatalf("error getting log-level: %v", err)
		}

		if err := logger.Setup(logger.Config{Level: logLevel, Out: os.Stderr}); err != nil {
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

		optionType, err := flags.GetString("type")
		if err != nil {
			log.Fatalf("error getting type: %v", err)
		}

		pathCounts, err := flags.GetIntSlice("path-counts")
		if err != nil {
			log.Fatalf("error getting path-counts: %v", err)
		}

		runArgs := run.RunArgs{
			Contract: eventmodels.EuropeanOptionContractDTO{
				OptionType: eventmodels.OptionType(optionType),
			},
			PathCounts: pathCounts,
		}

		runArgs.Contract.SpotPrice, _ = flags.GetFloat64("spot")
		runArgs.Contract.StrikePrice, _ = flags.GetFloat64("strike")
		runArgs.Contract.RiskFreeRate, _ = flags.GetFloat64("rate")
		runArgs.Contract.Volatility, _ = flags.GetFloat64("volatility")
		runArgs.Contract.Maturity, _ = flags.GetFloat64("maturity")
		runArgs.Trials, _ = flags.GetInt("trials")
		runArgs.Seed, _ = flags.GetUint64("seed")
		runArgs.Workers, _ = flags.GetInt("workers")
		runArgs.Tolerance, _ = flags.GetFloat64("tolerance")
		runArgs.CsvOut, _ = flags.GetString("csv-out")

		ctx := context.Background()

		shutdown, err := telemetry.Setup(ctx, "convergence_study")
		if err != nil {
			log.Fatalf("error setting up telemetry: %v", err)
		}

		result, err := run.Run(ctx, runArgs)
		if shutdownErr := shutdown(ctx); shutdownErr != nil {
			log.Errorf("error shutting down telemetry: %v", shutdownErr)
		}

		if err != nil {
			log.Fatalf("%s: %v", eventmodels.DomainErrorType(err), err)
		}

		run.RenderRows(os.Stdout, result.Rows)
	},
}

func main() {
	rootCmd.PersistentFlags().Float64("spot", 0, "Current price of the underlying asset. Must be positive.")
	rootCmd.PersistentFlags().Float64("strike", 0, "Strike price. Must be positive.")
	rootCmd.PersistentFlags().Float64("rate", 0, "Annualised continuously compounded risk free rate.")
	rootCmd.PersistentFlags().Float64("volatility", 0, "Annualised volatility. Must be positive for a closed form reference.")
	rootCmd.PersistentFlags().Float64("maturity", 0, "Time to expiry in years. Must be positive.")
	rootCmd.PersistentFlags().String("type", "call", "Option type: call or put.")
	rootCmd.PersistentFlags().IntSlice("path-counts", []int{1_000, 10_000, 100_000, 1_000_000}, "Path counts to study.")
	rootCmd.PersistentFlags().Int("trials", 10, "Seeded trials per path count.")
	rootCmd.PersistentFlags().Uint64("seed", 1, "Base seed. Trial i uses seed + i.")
	rootCmd.PersistentFlags().Int("workers", 0, "Number of simulation workers. Defaults to GOMAXPROCS.")
	rootCmd.PersistentFlags().Float64("tolerance", eventmodels.DefaultConvergenceTolerance, "Absolute tolerance counted as converged.")
	rootCmd.PersistentFlags().String("csv-out", "", "Optional csv file for the study rows.")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: trace, debug, info, warn or error.")
	rootCmd.PersistentFlags().String("go-env", "development", "The go environment to run the command in.")
	rootCmd.PersistentFlags().String("env-dir", ".", "Directory holding the .env.<go-env> file.")

	rootCmd.MarkPersistentFlagRequired("spot")
	rootCmd.MarkPersistentFlagRequired("strike")
	rootCmd.MarkPersistentFlagRequired("volatility")
	rootCmd.MarkPersistentFlagRequired("maturity")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
