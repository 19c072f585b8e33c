package eventmodels

import (
	"time"

	"github.com/google/uuid"
)

type PricingReport struct {
	Contract           *EuropeanOptionContract
	ClosedFormPrice    float64
	Greeks             Greeks
	MonteCarlo         MonteCarloEstimate
	Verdict            ConvergenceVerdict
	Tolerance          float64
	ClosedFormDuration time.Duration
	MonteCarloDuration time.Duration
}

type PricingReportDTO struct {
	RequestID            uuid.UUID                  `json:"request_id"`
	Contract             *EuropeanOptionContractDTO `json:"contract"`
	ClosedFormPrice      float64                    `json:"closed_form_price"`
	Greeks               Greeks                     `json:"greeks"`
	MonteCarlo           MonteCarloEstimate         `json:"monte_carlo"`
	Verdict              ConvergenceVerdict         `json:"verdict"`
	Tolerance            float64                    `json:"tolerance"`
	ClosedFormDurationMs float64                    `json:"closed_form_duration_ms"`
	MonteCarloDurationMs float64                    `json:"monte_carlo_duration_ms"`
	Cached               bool                       `json:"cached"`
}

func (r *PricingReport) ToDTO(requestID uuid.UUID, cached bool) *PricingReportDTO {
	return &PricingReportDTO{
		RequestID:            requestID,
		Contract:             r.Contract.ToDTO(),
		ClosedFormPrice:      r.ClosedFormPrice,
		Greeks:               r.Greeks,
		MonteCarlo:           r.MonteCarlo,
		Verdict:              r.Verdict,
		Tolerance:            r.Tolerance,
		ClosedFormDurationMs: durationToMs(r.ClosedFormDuration),
		MonteCarloDurationMs: durationToMs(r.MonteCarloDuration),
		Cached:               cached,
	}
}

func durationToMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
