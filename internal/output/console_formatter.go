package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rpgo/retireplan/internal/domain"
)

// ConsoleFormatter renders the full report: assumptions, a summary per scenario and the
// year-by-year table of each scenario.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	if results == nil {
		return nil, fmt.Errorf("nil results")
	}
	var sb strings.Builder
	writeHeader(&sb, "RETIREMENT PROJECTION")
	writeAssumptions(&sb, results.Assumptions)
	writeScenarioTable(&sb, results)
	writeRecommendation(&sb, results)

	for _, s := range results.Scenarios {
		if s.Result == nil {
			continue
		}
		sb.WriteString("\n")
		sb.WriteString(titleStyle.Render(s.Name))
		sb.WriteString("\n")
		writeResult(&sb, s.Result)
		sb.WriteString("\n")
		sb.WriteString(yearTable(s.Result).render())
	}
	return []byte(sb.String()), nil
}

// SummaryFormatter renders only the scenario comparison and recommendation.
type SummaryFormatter struct{}

func (s SummaryFormatter) Name() string      { return "summary" }
func (s SummaryFormatter) Extension() string { return "txt" }

func (s SummaryFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	if results == nil {
		return nil, fmt.Errorf("nil results")
	}
	var sb strings.Builder
	writeHeader(&sb, "RETIREMENT SUMMARY")
	writeScenarioTable(&sb, results)
	writeRecommendation(&sb, results)
	return []byte(sb.String()), nil
}

func writeHeader(sb *strings.Builder, title string) {
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render(strings.Repeat("=", len(title))))
	sb.WriteString("\n\n")
}

func writeAssumptions(sb *strings.Builder, assumptions []string) {
	if len(assumptions) == 0 {
		return
	}
	sb.WriteString(headerStyle.Render("Assumptions"))
	sb.WriteString("\n")
	for _, a := range assumptions {
		fmt.Fprintf(sb, "  • %s\n", a)
	}
	sb.WriteString("\n")
}

func writeScenarioTable(sb *strings.Builder, results *domain.ScenarioComparison) {
	t := newTextTable("Scenario", "Retire", "Age", "Years", "Portfolio", "Income", "Spending", "Funded", "Status").alignRight(1, 2, 3, 4, 5, 6, 7)
	for _, s := range results.Scenarios {
		r := s.Result
		if r == nil {
			continue
		}
		t.addRow(s.Name,
			strconv.Itoa(r.RetirementYear),
			strconv.Itoa(r.RetirementAge),
			strconv.Itoa(r.YearsToRetirement),
			FormatCurrency(r.PortfolioAtRetirement),
			FormatCurrency(r.AnnualIncomeAtRetirement),
			FormatCurrency(r.TargetSpendingAtRetirement),
			FormatPercentage(r.FundedRatio),
			status(r),
		)
	}
	sb.WriteString(t.render())
}

func writeRecommendation(sb *strings.Builder, results *domain.ScenarioComparison) {
	if len(results.Scenarios) < 2 {
		return
	}
	sb.WriteString("\n")
	sb.WriteString(headerStyle.Render("Recommendation: "))
	sb.WriteString(AnalyzeScenarios(results).Summary())
	sb.WriteString("\n")
}

func writeResult(sb *strings.Builder, r *domain.RetirementResult) {
	mode := "earliest affordable year"
	if !r.AutoDetermined {
		mode = "requested age"
	}
	fmt.Fprintf(sb, "  Retirement year:        %d (age %d, %s)\n", r.RetirementYear, r.RetirementAge, mode)
	fmt.Fprintf(sb, "  Years to retirement:    %d\n", r.YearsToRetirement)
	fmt.Fprintf(sb, "  Portfolio at retirement: %s\n", FormatCurrency(r.PortfolioAtRetirement))
	fmt.Fprintf(sb, "  After-tax income:       %s\n", FormatCurrency(r.AnnualIncomeAtRetirement))
	fmt.Fprintf(sb, "  Spending target:        %s\n", FormatCurrency(r.TargetSpendingAtRetirement))
	if r.Feasible {
		sb.WriteString("  " + successStyle.Render("Income covers spending in the retirement year") + "\n")
	} else {
		sb.WriteString("  " + warningStyle.Render("Shortfall of "+FormatCurrency(r.Shortfall)+" in the retirement year") + "\n")
	}
	if y, ok := r.FirstDepletedYear(); ok {
		sb.WriteString("  " + warningStyle.Render(fmt.Sprintf("Portfolio depleted in %d", y)) + "\n")
	}
}

func yearTable(r *domain.RetirementResult) *textTable {
	t := newTextTable("Year", "Age", "Portfolio", "Withdrawal", "Benefits", "After-tax", "Spending", "Ready", "Retired").alignRight(0, 1, 2, 3, 4, 5, 6)
	for _, row := range r.YearByYearProjections {
		t.addRow(
			strconv.Itoa(row.Year),
			strconv.Itoa(row.Age),
			FormatCurrency(row.PortfolioValue),
			FormatCurrency(row.GrossWithdrawal),
			FormatCurrency(row.Benefits),
			FormatCurrency(row.AfterTaxIncome),
			FormatCurrency(row.InflationAdjustedSpending),
			yesNo(row.CanRetire),
			yesNo(row.IsRetired),
		)
	}
	return t
}

func status(r *domain.RetirementResult) string {
	if r.Feasible {
		return "feasible"
	}
	return "shortfall"
}
