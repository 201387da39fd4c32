package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rpgo/retireplan/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario, input order).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string      { return "csv" }
func (c CSVSummarizer) Extension() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "RetirementYear", "RetirementAge", "YearsToRetirement", "PortfolioAtRetirement", "AnnualIncomeAtRetirement", "TargetSpendingAtRetirement", "FundedRatio", "Shortfall", "Feasible", "AutoDetermined"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range results.Scenarios {
		r := sc.Result
		if r == nil {
			continue
		}
		row := []string{
			sc.Name,
			strconv.Itoa(r.RetirementYear),
			strconv.Itoa(r.RetirementAge),
			strconv.Itoa(r.YearsToRetirement),
			r.PortfolioAtRetirement.StringFixed(2),
			r.AnnualIncomeAtRetirement.StringFixed(2),
			r.TargetSpendingAtRetirement.StringFixed(2),
			r.FundedRatio.StringFixed(4),
			r.Shortfall.StringFixed(2),
			strconv.FormatBool(r.Feasible),
			strconv.FormatBool(r.AutoDetermined),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
