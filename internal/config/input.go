package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/rgehrsitz/paygo/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed rules/default_rules.yaml
var defaultRulesYAML []byte

// RulesFile is the on-disk layout of a jurisdiction rules file
type RulesFile struct {
	DefaultYear int                        `yaml:"default_year" json:"default_year"`
	CompanyName string                     `yaml:"company_name,omitempty" json:"company_name,omitempty"`
	Years       []domain.JurisdictionRules `yaml:"years" json:"years"`
}

// RulesParser handles parsing of jurisdiction rules files
type RulesParser struct{}

// NewRulesParser creates a new rules parser
func NewRulesParser() *RulesParser {
	return &RulesParser{}
}

// LoadFromFile loads and validates rules from a YAML file
func (rp *RulesParser) LoadFromFile(filename string) (*RulesFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return rp.Parse(data)
}

// LoadDefault returns the built-in rules
func (rp *RulesParser) LoadDefault() (*RulesFile, error) {
	return rp.Parse(defaultRulesYAML)
}

// Parse decodes and validates rules from YAML bytes
func (rp *RulesParser) Parse(data []byte) (*RulesFile, error) {
	var rf RulesFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := rp.ValidateRulesFile(&rf); err != nil {
		return nil, fmt.Errorf("rules validation failed: %w", err)
	}
	return &rf, nil
}

// ValidateRulesFile validates every year and the default-year reference
func (rp *RulesParser) ValidateRulesFile(rf *RulesFile) error {
	if len(rf.Years) == 0 {
		return fmt.Errorf("%w: at least one tax year is required", domain.ErrInvalidInput)
	}
	seen := make(map[int]bool, len(rf.Years))
	for i := range rf.Years {
		rules := &rf.Years[i]
		if rules.Year <= 0 {
			return fmt.Errorf("%w: year entry %d has no year", domain.ErrInvalidInput, i)
		}
		if seen[rules.Year] {
			return fmt.Errorf("%w: year %d is defined more than once", domain.ErrInvalidInput, rules.Year)
		}
		seen[rules.Year] = true
		if err := rules.Validate(); err != nil {
			return fmt.Errorf("year %d: %w", rules.Year, err)
		}
	}
	if rf.DefaultYear != 0 && !seen[rf.DefaultYear] {
		return fmt.Errorf("%w: default year %d is not defined", domain.ErrInvalidInput, rf.DefaultYear)
	}
	return nil
}
