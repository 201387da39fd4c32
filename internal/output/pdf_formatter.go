package output

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/rpgo/retireplan/internal/domain"
)

const (
	pdfMarginLeft   = 15.0
	pdfMarginRight  = 15.0
	pdfMarginTop    = 15.0
	pdfMarginBottom = 20.0
	pdfContentWidth = 210.0 - pdfMarginLeft - pdfMarginRight
)

// yearColumns are the year-by-year table headers and widths in mm.
var yearColumns = []struct {
	title string
	width float64
}{
	{"Year", 14}, {"Age", 12}, {"Portfolio", 30}, {"Withdrawal", 26}, {"Benefits", 24},
	{"After-tax", 26}, {"Spending", 26}, {"Ready", 11}, {"Retired", 11},
}

// PDFFormatter renders an A4 report: a summary page followed by one year-by-year table per scenario.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string      { return "pdf" }
func (p PDFFormatter) Extension() string { return "pdf" }

func (p PDFFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	if results == nil {
		return nil, fmt.Errorf("nil results")
	}
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	pdf.SetAutoPageBreak(true, pdfMarginBottom)

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 12, "Retirement Projection", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdfSection(pdf, "Assumptions")
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(50, 50, 50)
	for _, a := range results.Assumptions {
		pdf.MultiCell(pdfContentWidth, 5, "- "+a, "", "L", false)
	}
	pdf.Ln(3)

	pdfSection(pdf, "Scenarios")
	pdfScenarioTable(pdf, results)
	if len(results.Scenarios) > 1 {
		pdf.Ln(2)
		pdf.SetFont("Arial", "I", 9)
		pdf.MultiCell(pdfContentWidth, 5, AnalyzeScenarios(results).Summary(), "", "L", false)
	}

	for _, s := range results.Scenarios {
		if s.Result == nil {
			continue
		}
		pdf.AddPage()
		pdfSection(pdf, s.Name)
		pdfYearTable(pdf, s.Result)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func pdfSection(pdf *fpdf.Fpdf, title string) {
	pdf.SetFillColor(245, 247, 250)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 8, title, "1", 1, "L", true, 0, "")
	pdf.Ln(2)
}

func pdfScenarioTable(pdf *fpdf.Fpdf, results *domain.ScenarioComparison) {
	widths := []float64{48, 18, 14, 34, 30, 20, 16}
	headers := []string{"Scenario", "Retire", "Age", "Portfolio", "Income", "Funded", "Status"}
	pdfHeaderRow(pdf, headers, widths)

	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(50, 50, 50)
	for _, s := range results.Scenarios {
		r := s.Result
		if r == nil {
			continue
		}
		cells := []string{s.Name, strconv.Itoa(r.RetirementYear), strconv.Itoa(r.RetirementAge),
			FormatCurrency(r.PortfolioAtRetirement), FormatCurrency(r.AnnualIncomeAtRetirement),
			FormatPercentage(r.FundedRatio), status(r)}
		for i, c := range cells {
			align := "R"
			if i == 0 || i == len(cells)-1 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 6, c, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func pdfYearTable(pdf *fpdf.Fpdf, r *domain.RetirementResult) {
	widths := make([]float64, len(yearColumns))
	headers := make([]string, len(yearColumns))
	for i, c := range yearColumns {
		widths[i], headers[i] = c.width, c.title
	}
	pdfHeaderRow(pdf, headers, widths)

	pdf.SetFont("Arial", "", 7)
	for _, yp := range r.YearByYearProjections {
		if pdf.GetY() > 270 {
			pdf.AddPage()
			pdfHeaderRow(pdf, headers, widths)
			pdf.SetFont("Arial", "", 7)
		}
		fill := yp.Year == r.RetirementYear
		pdf.SetFillColor(232, 245, 233)
		pdf.SetTextColor(50, 50, 50)
		cells := []string{strconv.Itoa(yp.Year), strconv.Itoa(yp.Age), FormatCurrency(yp.PortfolioValue),
			FormatCurrency(yp.GrossWithdrawal), FormatCurrency(yp.Benefits), FormatCurrency(yp.AfterTaxIncome),
			FormatCurrency(yp.InflationAdjustedSpending), yesNo(yp.CanRetire), yesNo(yp.IsRetired)}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 5, c, "1", 0, "R", fill, 0, "")
		}
		pdf.Ln(-1)
	}
}

func pdfHeaderRow(pdf *fpdf.Fpdf, headers []string, widths []float64) {
	pdf.SetFont("Arial", "B", 8)
	pdf.SetFillColor(0, 51, 102)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(50, 50, 50)
}
