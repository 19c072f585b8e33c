package eventservices

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/montanaflynn/stats"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jiaming2012/european-pricer/src/eventmodels"
	"github.com/jiaming2012/european-pricer/src/pricing"
)

// RunConvergenceStudy repeats the Monte Carlo estimate req.Trials times at every path count and
// summarises how far the estimates land from the closed form price. Trial i is seeded with
// req.BaseSeed + i, so a study is reproducible for a fixed worker count.
func RunConvergenceStudy(ctx context.Context, req *eventmodels.ConvergenceStudyRequest) ([]*eventmodels.ConvergenceStudyRow, error) {
	tracer := otel.Tracer("RunConvergenceStudy")
	ctx, span := tracer.Start(ctx, "RunConvergenceStudy")
	defer span.End()

	if req == nil {
		return nil, fmt.Errorf("RunConvergenceStudy: missing request: %w", eventmodels.InvalidContractErr)
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("RunConvergenceStudy: %w", err)
	}

	closedFormPrice, err := pricing.ClosedFormPrice(req.Contract)
	if err != nil {
		return nil, fmt.Errorf("RunConvergenceStudy: %w", err)
	}

	rows := make([]*eventmodels.ConvergenceStudyRow, 0, len(req.PathCounts))
	for _, numPaths := range req.PathCounts {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("RunConvergenceStudy: %w", err)
		}

		row, err := runStudyRow(ctx, tracer, req, closedFormPrice, numPaths)
		if err != nil {
			return nil, fmt.Errorf("RunConvergenceStudy: %d paths: %w", numPaths, err)
		}

		log.WithContext(ctx).WithFields(log.Fields{
			"num_paths":      row.NumPaths,
			"mean_abs_error": row.MeanAbsError,
			"converged":      row.ConvergedFraction,
		}).Info("convergence study row complete")

		rows = append(rows, row)
	}

	return rows, nil
}

func runStudyRow(ctx context.Context, tracer trace.Tracer, req *eventmodels.ConvergenceStudyRequest, closedFormPrice float64, numPaths int) (*eventmodels.ConvergenceStudyRow, error) {
	ctx, span := tracer.Start(ctx, "runStudyRow", trace.WithAttributes(attribute.Int("num_paths", numPaths)))
	defer span.End()

	estimates := make([]float64, req.Trials)
	absErrors := make([]float64, req.Trials)
	standardErrors := make([]float64, req.Trials)
	durations := make([]float64, req.Trials)
	converged := 0

	for trial := 0; trial < req.Trials; trial++ {
		seed := req.BaseSeed + uint64(trial)

		start := time.Now()
		estimate, err := pricing.SimulateMonteCarlo(req.Contract, eventmodels.MonteCarloParams{
			NumPaths: numPaths,
			Workers:  req.Workers,
			Seed:     &seed,
		})
		if err != nil {
			return nil, err
		}
		elapsed := time.Since(start)
		recordDuration(ctx, "monte_carlo", elapsed)

		verdict := pricing.CheckConvergence(closedFormPrice, estimate.Price, req.Tolerance)
		if verdict.Converged {
			converged++
		}

		estimates[trial] = estimate.Price
		absErrors[trial] = verdict.Difference
		standardErrors[trial] = estimate.StandardError
		durations[trial] = float64(elapsed) / float64(time.Millisecond)
	}

	row := &eventmodels.ConvergenceStudyRow{
		NumPaths:          numPaths,
		Trials:            req.Trials,
		ClosedFormPrice:   closedFormPrice,
		ConvergedFraction: float64(converged) / float64(req.Trials),
	}

	var err error
	if row.MeanEstimate, err = stats.Mean(estimates); err != nil {
		return nil, fmt.Errorf("mean estimate: %w", err)
	}

	if row.MeanAbsError, err = stats.Mean(absErrors); err != nil {
		return nil, fmt.Errorf("mean abs error: %w", err)
	}

	if row.MaxAbsError, err = stats.Max(absErrors); err != nil {
		return nil, fmt.Errorf("max abs error: %w", err)
	}

	if row.MeanStandardError, err = stats.Mean(standardErrors); err != nil {
		return nil, fmt.Errorf("mean standard error: %w", err)
	}

	if row.MeanDurationMillis, err = stats.Mean(durations); err != nil {
		return nil, fmt.Errorf("mean duration: %w", err)
	}

	// a single trial has no spread and too few points for a percentile
	if req.Trials < 2 {
		row.P95AbsError = row.MaxAbsError
		return row, nil
	}

	if row.EstimateStdDev, err = stats.StandardDeviationSample(estimates); err != nil {
		return nil, fmt.Errorf("estimate std dev: %w", err)
	}

	if row.P95AbsError, err = stats.Percentile(absErrors, 95); err != nil || math.IsNaN(row.P95AbsError) {
		row.P95AbsError = row.MaxAbsError
	}

	return row, nil
}

// ExportConvergenceStudyCSV writes rows to outFilePath, creating its directory if needed.
func ExportConvergenceStudyCSV(rows []*eventmodels.ConvergenceStudyRow, outFilePath string) error {
	if dir := filepath.Dir(outFilePath); dir != "" {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("ExportConvergenceStudyCSV: failed to create directory: %w", err)
		}
	}

	file, err := os.Create(outFilePath)
	if err != nil {
		return fmt.Errorf("ExportConvergenceStudyCSV: failed to create file: %w", err)
	}
	defer file.Close()

	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		return gocsv.NewSafeCSVWriter(csv.NewWriter(out))
	})

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("ExportConvergenceStudyCSV: failed to write to file: %w", err)
	}

	return nil
}
