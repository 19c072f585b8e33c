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
	Contract   eventmodels.EuropeanOptionContractDTO
	PathCounts []int
	Trials     int
	Seed       uint64
	Workers    int
	Tolerance  float64
	CsvOut     string
}

type RunResult struct {
	Rows        []*eventmodels.ConvergenceStudyRow
	CsvFilepath string
}

func Run(ctx context.Context, args RunArgs) (RunResult, error) {
	contract, err := args.Contract.ToModel()
	if err != nil {
		return RunResult{}, fmt.Errorf("Run: %w", err)
	}

	rows, err := eventservices.RunConvergenceStudy(ctx, &eventmodels.ConvergenceStudyRequest{
		Contract:   contract,
		PathCounts: args.PathCounts,
		Trials:     args.Trials,
		BaseSeed:   args.Seed,
		Workers:    args.Workers,
		Tolerance:  args.Tolerance,
	})
	if err != nil {
		return RunResult{}, fmt.Errorf("Run: %w", err)
	}

	result := RunResult{Rows: rows}

	if args.CsvOut != "" {
		if err := eventservices.ExportConvergenceStudyCSV(rows, args.CsvOut); err != nil {
			return RunResult{}, fmt.Errorf("Run: %w", err)
		}

		log.Infof("convergence study written to %s", args.CsvOut)
		result.CsvFilepath = args.CsvOut
	}

	return result, nil
}

func RenderRows(w io.Writer, rows []*eventmodels.ConvergenceStudyRow) {
	p := message.NewPrinter(language.English)

	display := &strings.Builder{}
	table := tablewriter.NewWriter(display)
	table.SetHeader([]string{"Paths", "Mean estimate", "Std dev", "Mean abs err", "P95 abs err", "Max abs err", "Mean std err", "Converged", "Mean ms"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, row := range rows {
		table.Append([]string{
			p.Sprintf("%d", row.NumPaths),
			fmt.Sprintf("%.6f", row.MeanEstimate),
			fmt.Sprintf("%.6f", row.EstimateStdDev),
			fmt.Sprintf("%.6f", row.MeanAbsError),
			fmt.Sprintf("%.6f", row.P95AbsError),
			fmt.Sprintf("%.6f", row.MaxAbsError),
			fmt.Sprintf("%.6f", row.MeanStandardError),
			fmt.Sprintf("%.0f%%", row.ConvergedFraction*100),
			fmt.Sprintf("%.2f", row.MeanDurationMillis),
		})
	}

	if len(rows) > 0 {
		display.WriteString(fmt.Sprintf("Closed form price: %.6f\n", rows[0].ClosedFormPrice))
	}

	table.Render()

	fmt.Fprint(w, display.String())
}
