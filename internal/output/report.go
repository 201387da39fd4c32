package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rpgo/retireplan/internal/domain"
)

// ErrUnsupportedFormat is returned for an unknown output format name.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Render formats results with the named formatter.
func Render(results *domain.ScenarioComparison, format string) ([]byte, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return nil, unsupported(format)
	}
	return f.Format(results)
}

// WriteReport renders results and copies them to w.
func WriteReport(w io.Writer, results *domain.ScenarioComparison, format string) error {
	data, err := Render(results, format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// SingleResult wraps one projection so it can go through the comparison formatters.
func SingleResult(name string, result *domain.RetirementResult) *domain.ScenarioComparison {
	if name == "" {
		name = "Projection"
	}
	return &domain.ScenarioComparison{
		Scenarios:   []domain.ScenarioResult{{Name: name, Result: result}},
		Assumptions: result.Assumptions,
	}
}

func unsupported(format string) error {
	return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}
