package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rpgo/retireplan/internal/domain"
)

// CSVDetailedExporter writes one row per scenario and year with every account balance.
// Account columns follow the first scenario; all scenarios of a comparison share accounts.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string      { return "detailed-csv" }
func (c CSVDetailedExporter) Extension() string { return "csv" }

func (c CSVDetailedExporter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	var accounts []string
	for _, sc := range results.Scenarios {
		if sc.Result != nil && len(sc.Result.YearByYearProjections) > 0 {
			for _, ab := range sc.Result.YearByYearProjections[0].AccountBalances {
				accounts = append(accounts, ab.AccountID)
			}
			break
		}
	}

	header := []string{"Scenario", "Year", "Age", "PortfolioValue", "GrossWithdrawal", "Benefits", "AfterTaxIncome", "InflationAdjustedSpending", "CanRetire", "IsRetired"}
	for _, id := range accounts {
		header = append(header, "Balance_"+id)
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, sc := range results.Scenarios {
		if sc.Result == nil {
			continue
		}
		for _, yp := range sc.Result.YearByYearProjections {
			row := []string{
				sc.Name,
				strconv.Itoa(yp.Year),
				strconv.Itoa(yp.Age),
				yp.PortfolioValue.StringFixed(2),
				yp.GrossWithdrawal.StringFixed(2),
				yp.Benefits.StringFixed(2),
				yp.AfterTaxIncome.StringFixed(2),
				yp.InflationAdjustedSpending.StringFixed(2),
				strconv.FormatBool(yp.CanRetire),
				strconv.FormatBool(yp.IsRetired),
			}
			byID := make(map[string]string, len(yp.AccountBalances))
			for _, ab := range yp.AccountBalances {
				byID[ab.AccountID] = ab.Balance.StringFixed(2)
			}
			for _, id := range accounts {
				row = append(row, byID[id])
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
