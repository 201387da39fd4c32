package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/rpgo/retireplan/internal/domain"
)

// RenderSensitivity formats a parameter sweep as console, json or csv.
func RenderSensitivity(report *domain.SensitivityReport, format string) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("nil sensitivity report")
	}
	switch n := NormalizeFormatName(format); n {
	case "console", "summary":
		return sensitivityConsole(report), nil
	case "json":
		return json.MarshalIndent(report, "", "  ")
	case "csv":
		return sensitivityCSV(report)
	default:
		return nil, fmt.Errorf("%w for sensitivity reports: %q (use console, json or csv)", ErrUnsupportedFormat, format)
	}
}

func sensitivityConsole(report *domain.SensitivityReport) []byte {
	var sb strings.Builder
	writeHeader(&sb, "SENSITIVITY: "+strings.ToUpper(string(report.Parameter)))
	t := newTextTable("Value", "Retire", "Age", "Portfolio", "Income", "Feasible").alignRight(0, 1, 2, 3, 4)
	for _, p := range report.Points {
		t.addRow(
			sensitivityValue(report.Parameter, p),
			strconv.Itoa(p.RetirementYear),
			strconv.Itoa(p.RetirementAge),
			FormatCurrency(p.PortfolioAtRetirement),
			FormatCurrency(p.AnnualIncomeAtRetirement),
			yesNo(p.Feasible),
		)
	}
	sb.WriteString(t.render())
	fmt.Fprintf(&sb, "\nRetirement age spread across feasible runs: %d year(s)\n", report.AgeSpread)
	return []byte(sb.String())
}

func sensitivityCSV(report *domain.SensitivityReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Parameter", "Value", "RetirementYear", "RetirementAge", "Feasible", "PortfolioAtRetirement", "AnnualIncomeAtRetirement"}); err != nil {
		return nil, err
	}
	for _, p := range report.Points {
		if err := w.Write([]string{
			string(report.Parameter),
			p.Value.String(),
			strconv.Itoa(p.RetirementYear),
			strconv.Itoa(p.RetirementAge),
			strconv.FormatBool(p.Feasible),
			p.PortfolioAtRetirement.StringFixed(2),
			p.AnnualIncomeAtRetirement.StringFixed(2),
		}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func sensitivityValue(param domain.SensitivityParameter, p domain.SensitivityPoint) string {
	switch param {
	case domain.ParamAnnualSpendingTarget:
		return FormatCurrency(p.Value)
	case domain.ParamDesiredRetirementAge:
		return p.Value.StringFixed(0)
	default:
		return FormatPercentage(p.Value)
	}
}
