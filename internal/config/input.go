package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/rpgo/retireplan/internal/calculation"
	"github.com/rpgo/retireplan/internal/domain"
)

// Format is the encoding of a plan document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatForFile picks the encoding from a file extension; anything but .json is YAML.
func FormatForFile(filename string) Format {
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// InputParser handles parsing of plan files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a plan from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Plan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data, FormatForFile(filename))
}

// Parse decodes and validates a plan document.
func (ip *InputParser) Parse(data []byte, format Format) (*domain.Plan, error) {
	var pf PlanFile
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &pf); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &pf); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	plan, err := pf.ToPlan()
	if err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	if err := ip.ValidatePlan(plan); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return plan, nil
}

// ValidatePlan validates the baseline and every scenario as it would run.
func (ip *InputParser) ValidatePlan(plan *domain.Plan) error {
	if err := calculation.Validate(plan.Assumptions, plan.Accounts); err != nil {
		return err
	}

	names := make(map[string]bool, len(plan.Scenarios))
	for i, so := range plan.Scenarios {
		if so.Name == "" {
			return fmt.Errorf("scenario %d: name is required", i)
		}
		if so.Name == calculation.BaselineScenarioName || names[so.Name] {
			return fmt.Errorf("scenario %d: duplicate name %q", i, so.Name)
		}
		names[so.Name] = true
		if so.AutoRetirement && so.DesiredRetirementAge != nil {
			return fmt.Errorf("scenario %q: auto_retirement and desired_retirement_age are mutually exclusive", so.Name)
		}
		a, accts := so.Apply(plan.Assumptions, plan.Accounts)
		if err := calculation.Validate(a, accts); err != nil {
			return fmt.Errorf("scenario %q: %w", so.Name, err)
		}
	}
	return nil
}

// SavePlan writes a plan as YAML, or JSON when the filename ends in .json.
func SavePlan(plan *domain.Plan, filename string) error {
	data, err := EncodePlan(plan, FormatForFile(filename))
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// EncodePlan serializes a plan in the given format.
func EncodePlan(plan *domain.Plan, format Format) ([]byte, error) {
	pf := NewPlanFile(plan)
	if format == FormatJSON {
		return json.MarshalIndent(pf, "", "  ")
	}
	return yaml.Marshal(pf)
}
