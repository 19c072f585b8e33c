package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/european-pricer/src/cmd/price/run"
	"github.com/jiaming2012/european-pricer/src/eventmodels"
	"github.com/jiaming2012/european-pricer/src/logger"
	"github.com/jiaming2012/european-pricer/src/telemetry"
	"github.com/jiaming2012/european-pricer/src/utils"
)

var rootCmd = &cobra.Command{
	Use:   "go run src/cmd/price/main.go --spot 100 --strike 100 --rate 0.05 --volatility 0.2 --maturity 1 --type call",
	Short: "Price a European option in closed form and by Monte Carlo",
	Long:  `Prices a European call or put with the Black-Scholes formula and a parallel Monte Carlo simulation, then reports whether the two agree within the tolerance.`,
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

		ctx := context.Background()

		shutdown, err := telemetry.Setup(ctx, "price")
		if err != nil {
			log.Fatalf("error setting up telemetry: %v", err)
		}

		runArgs := run.RunArgs{}

		runArgs.Request.SpotPrice, _ = flags.GetFloat64("spot")
		runArgs.Request.StrikePrice, _ = flags.GetFloat64("strike")
		runArgs.Request.RiskFreeRate, _ = flags.GetFloat64("rate")
		runArgs.Request.Volatility, _ = flags.GetFloat64("volatility")
		runArgs.Request.Maturity, _ = flags.GetFloat64("maturity")
		runArgs.Request.OptionType, _ = flags.GetString("type")
		runArgs.Request.Workers, _ = flags.GetInt("workers")
		runArgs.Request.Steps, _ = flags.GetInt("steps")
		runArgs.ConfigPath, _ = flags.GetString("config")
		runArgs.ContractName, _ = flags.GetString("contract")

		if flags.Changed("paths") {
			paths, _ := flags.GetInt("paths")
			runArgs.Request.NumPaths = &paths
		}

		if flags.Changed("seed") {
			seed, _ := flags.GetUint64("seed")
			runArgs.Request.Seed = &seed
		}

		if flags.Changed("tolerance") {
			tolerance, _ := flags.GetFloat64("tolerance")
			runArgs.Request.Tolerance = &tolerance
		}

		asJSON, _ := flags.GetBool("json")

		result, err := run.Run(ctx, runArgs)
		if shutdownErr := shutdown(ctx); shutdownErr != nil {
			log.Errorf("error shutting down telemetry: %v", shutdownErr)
		}

		if err != nil {
			log.Fatalf("%s: %v", eventmodels.DomainErrorType(err), err)
		}

		if asJSON {
			out, err := json.MarshalIndent(result.Report.ToDTO(uuid.New(), false), "", "  ")
			if err != nil {
				log.Fatalf("failed to marshal report: %v", err)
			}

			fmt.Println(string(out))
			return
		}

		run.RenderReport(os.Stdout, result.Report)
	},
}

func main() {
	rootCmd.PersistentFlags().Float64("spot", 0, "Current price of the underlying asset. Must be positive.")
	rootCmd.PersistentFlags().Float64("strike", 0, "Strike price. Must be positive.")
	rootCmd.PersistentFlags().Float64("rate", 0, "Annualised continuously compounded risk free rate, e.g. 0.05. May be negative.")
	rootCmd.PersistentFlags().Float64("volatility", 0, "Annualised volatility, e.g. 0.2. Zero is accepted but has no closed form price.")
	rootCmd.PersistentFlags().Float64("maturity", 0, "Time to expiry in years. Must be positive.")
	rootCmd.PersistentFlags().String("type", "call", "Option type: call or put.")
	rootCmd.PersistentFlags().Int("paths", eventmodels.DefaultNumPaths, "Number of Monte Carlo paths.")
	rootCmd.PersistentFlags().Int("workers", 0, "Number of simulation workers. Defaults to GOMAXPROCS.")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Master seed. When set, the estimate is reproducible for the same workers and steps.")
	rootCmd.PersistentFlags().Int("steps", 0, "Time steps per path. Zero means a single terminal draw.")
	rootCmd.PersistentFlags().Float64("tolerance", eventmodels.DefaultConvergenceTolerance, "Absolute tolerance for the convergence check.")
	rootCmd.PersistentFlags().String("config", "", "Optional yaml file with contracts and simulation settings. Its contract replaces the contract flags; simulation flags that are set explicitly win.")
	rootCmd.PersistentFlags().String("contract", "", "Name of the contract to price from --config. Defaults to the first one.")
	rootCmd.PersistentFlags().Bool("json", false, "Print the report as json.")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: trace, debug, info, warn or error.")
	rootCmd.PersistentFlags().String("go-env", "development", "The go environment to run the command in.")
	rootCmd.PersistentFlags().String("env-dir", ".", "Directory holding the .env.<go-env> file.")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
