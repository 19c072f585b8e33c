package eventservices

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jiaming2012/european-pricer/src/eventmodels"
	"github.com/jiaming2012/european-pricer/src/pricing"
)

const instrumentationName = "github.com/jiaming2012/european-pricer/src/eventservices"

var pricingDuration metric.Float64Histogram

func init() {
	var err error
	pricingDuration, err = otel.Meter(instrumentationName).Float64Histogram(
		"pricing.duration",
		metric.WithDescription("Wall clock time spent in a pricing method"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		log.Fatalf("eventservices: failed to create pricing.duration histogram: %v", err)
	}
}

func recordDuration(ctx context.Context, method string, d time.Duration) {
	pricingDuration.Record(ctx, float64(d)/float64(time.Millisecond), metric.WithAttributes(attribute.String("method", method)))
}

// PriceEuropeanOption prices the contract in closed form and by Monte Carlo, then checks that
// the two agree within the request tolerance.
func PriceEuropeanOption(ctx context.Context, req *eventmodels.PricingRequest) (*eventmodels.PricingReport, error) {
	tracer := otel.Tracer("PriceEuropeanOption")
	ctx, span := tracer.Start(ctx, "PriceEuropeanOption")
	defer span.End()

	if req == nil {
		err := fmt.Errorf("PriceEuropeanOption: missing request: %w", eventmodels.InvalidContractErr)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := req.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("PriceEuropeanOption: %w", err)
	}

	contract := req.Contract
	span.SetAttributes(
		attribute.String("option_type", contract.OptionType().String()),
		attribute.Int("num_paths", req.MonteCarlo.NumPaths),
	)

	logger := log.WithContext(ctx).WithFields(log.Fields{
		"contract":  contract.String(),
		"num_paths": req.MonteCarlo.NumPaths,
	})

	closedFormPrice, greeks, closedFormDuration, err := priceClosedForm(ctx, tracer, contract)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("PriceEuropeanOption: %w", err)
	}

	logger.Debugf("closed form price %.6f in %s", closedFormPrice, closedFormDuration)

	estimate, monteCarloDuration, err := priceMonteCarlo(ctx, tracer, contract, req.MonteCarlo)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("PriceEuropeanOption: %w", err)
	}

	verdict := pricing.CheckConvergence(closedFormPrice, estimate.Price, req.Tolerance)

	logger.WithFields(log.Fields{
		"closed_form": closedFormPrice,
		"monte_carlo": estimate.Price,
		"std_error":   estimate.StandardError,
		"difference":  verdict.Difference,
		"converged":   verdict.Converged,
		"workers":     estimate.Workers,
	}).Infof("priced european option in %s", closedFormDuration+monteCarloDuration)

	if !verdict.Converged {
		logger.Warnf("monte carlo estimate differs from the closed form by %.6f, tolerance is %v", verdict.Difference, req.Tolerance)
	}

	span.SetAttributes(
		attribute.Float64("difference", verdict.Difference),
		attribute.Bool("converged", verdict.Converged),
	)

	return &eventmodels.PricingReport{
		Contract:           contract,
		ClosedFormPrice:    closedFormPrice,
		Greeks:             greeks,
		MonteCarlo:         estimate,
		Verdict:            verdict,
		Tolerance:          req.Tolerance,
		ClosedFormDuration: closedFormDuration,
		MonteCarloDuration: monteCarloDuration,
	}, nil
}

func priceClosedForm(ctx context.Context, tracer trace.Tracer, contract *eventmodels.EuropeanOptionContract) (float64, eventmodels.Greeks, time.Duration, error) {
	ctx, span := tracer.Start(ctx, "ClosedFormPrice")
	defer span.End()

	start := time.Now()

	price, err := pricing.ClosedFormPrice(contract)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return 0, eventmodels.Greeks{}, 0, err
	}

	greeks, err := pricing.ClosedFormGreeks(contract)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return 0, eventmodels.Greeks{}, 0, err
	}

	elapsed := time.Since(start)
	recordDuration(ctx, "closed_form", elapsed)

	return price, greeks, elapsed, nil
}

func priceMonteCarlo(ctx context.Context, tracer trace.Tracer, contract *eventmodels.EuropeanOptionContract, params eventmodels.MonteCarloParams) (eventmodels.MonteCarloEstimate, time.Duration, error) {
	ctx, span := tracer.Start(ctx, "MonteCarloPrice", trace.WithAttributes(
		attribute.Int("num_paths", params.NumPaths),
		attribute.Int("workers", params.Workers),
		attribute.Int("steps", params.Steps),
	))
	defer span.End()

	start := time.Now()

	estimate, err := pricing.SimulateMonteCarlo(contract, params)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return eventmodels.MonteCarloEstimate{}, 0, err
	}

	elapsed := time.Since(start)
	recordDuration(ctx, "monte_carlo", elapsed)

	span.SetAttributes(attribute.Float64("standard_error", estimate.StandardError))

	return estimate, elapsed, nil
}
