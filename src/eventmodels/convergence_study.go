package eventmodels

import "fmt"

type ConvergenceStudyRequest struct {
	Contract   *EuropeanOptionContract
	PathCounts []int
	Trials     int
	BaseSeed   uint64
	Workers    int
	Tolerance  float64
}

func (r *ConvergenceStudyRequest) Validate() error {
	if r.Contract == nil {
		return fmt.Errorf("ConvergenceStudyRequest: missing contract: %w", InvalidContractErr)
	}

	if len(r.PathCounts) == 0 {
		return fmt.Errorf("ConvergenceStudyRequest: at least one path count is required: %w", InvalidPathCountErr)
	}

	for _, n := range r.PathCounts {
		if n <= 0 {
			return fmt.Errorf("ConvergenceStudyRequest: path counts must be positive, found %d: %w", n, InvalidPathCountErr)
		}
	}

	if r.Trials <= 0 {
		return fmt.Errorf("ConvergenceStudyRequest: trials must be positive, found %d: %w", r.Trials, InvalidSimulationParamsErr)
	}

	if r.Workers < 0 {
		return fmt.Errorf("ConvergenceStudyRequest: workers must not be negative, found %d: %w", r.Workers, InvalidSimulationParamsErr)
	}

	if err := ValidateTolerance(r.Tolerance); err != nil {
		return fmt.Errorf("ConvergenceStudyRequest: %w", err)
	}

	return nil
}

// ConvergenceStudyRow summarises every trial run at one path count.
type ConvergenceStudyRow struct {
	NumPaths           int     `csv:"num_paths"`
	Trials             int     `csv:"trials"`
	ClosedFormPrice    float64 `csv:"closed_form_price"`
	MeanEstimate       float64 `csv:"mean_estimate"`
	EstimateStdDev     float64 `csv:"estimate_std_dev"`
	MeanAbsError       float64 `csv:"mean_abs_error"`
	MaxAbsError        float64 `csv:"max_abs_error"`
	P95AbsError        float64 `csv:"p95_abs_error"`
	MeanStandardError  float64 `csv:"mean_standard_error"`
	ConvergedFraction  float64 `csv:"converged_fraction"`
	MeanDurationMillis float64 `csv:"mean_duration_ms"`
}
