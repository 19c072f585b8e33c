package run

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jiaming2012/european-pricer/src/eventmodels"
	"github.com/jiaming2012/european-pricer/src/eventservices"
)

type RunArgs struct {
	Request      eventmodels.PricingRequestDTO
	ConfigPath   string
	ContractName string
}

type RunResult struct {
	Report *eventmodels.PricingReport
}

// BuildRequest merges the optional yaml config into the flag values and validates the result.
func BuildRequest(args RunArgs) (*eventmodels.PricingRequest, error) {
	dto := args.Request

	if args.ConfigPath != "" {
		config, err := eventmodels.LoadPricingConfigYAML(args.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("BuildRequest: %w", err)
		}

		if err := config.ApplyTo(&dto, args.ContractName); err != nil {
			return nil, fmt.Errorf("BuildRequest: %w", err)
		}

		log.Debugf("BuildRequest: loaded %s", args.ConfigPath)
	}

	req, err := dto.ToModel()
	if err != nil {
		return nil, fmt.Errorf("BuildRequest: %w", err)
	}

	return req, nil
}

func Run(ctx context.Context, args RunArgs) (RunResult, error) {
	req, err := BuildRequest(args)
	if err != nil {
		return RunResult{}, fmt.Errorf("Run: %w", err)
	}

	report, err := eventservices.PriceEuropeanOption(ctx, req)
	if err != nil {
		return RunResult{}, fmt.Errorf("Run: %w", err)
	}

	return RunResult{Report: report}, nil
}

func RenderReport(w io.Writer, report *eventmodels.PricingReport) {
	p := message.NewPrinter(language.English)

	display := &strings.Builder{}
	display.WriteString(fmt.Sprintf("%s\n", report.Contract))

	table := tablewriter.NewWriter(display)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	verdict := "not converged"
	if report.Verdict.Converged {
		verdict = "converged"
	}

	table.AppendBulk([][]string{
		{"Closed form price", fmt.Sprintf("%.6f", report.ClosedFormPrice)},
		{"Monte Carlo price", fmt.Sprintf("%.6f", report.MonteCarlo.Price)},
		{"Standard error", fmt.Sprintf("%.6f", report.MonteCarlo.StandardError)},
		{"Difference", fmt.Sprintf("%.6f", report.Verdict.Difference)},
		{"Tolerance", fmt.Sprintf("%g", report.Tolerance)},
		{"Verdict", verdict},
		{"Delta", fmt.Sprintf("%.6f", report.Greeks.Delta)},
		{"Gamma", fmt.Sprintf("%.6f", report.Greeks.Gamma)},
		{"Vega", fmt.Sprintf("%.6f", report.Greeks.Vega)},
		{"Theta", fmt.Sprintf("%.6f", report.Greeks.Theta)},
		{"Rho", fmt.Sprintf("%.6f", report.Greeks.Rho)},
		{"Paths", p.Sprintf("%d", report.MonteCarlo.NumPaths)},
		{"Workers", fmt.Sprintf("%d", report.MonteCarlo.Workers)},
		{"Steps", fmt.Sprintf("%d", report.MonteCarlo.Steps)},
		{"Seed", fmt.Sprintf("%d", report.MonteCarlo.Seed)},
		{"Closed form time", report.ClosedFormDuration.String()},
		{"Monte Carlo time", report.MonteCarloDuration.String()},
	})

	table.Render()

	fmt.Fprint(w, display.String())
}
