// Package compare projects a pay period over the rest of the year under
// several calculation policies and reports how the totals differ.
package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/paygo/internal/calculation"
	"github.com/rgehrsitz/paygo/internal/domain"
	"golang.org/x/sync/errgroup"
)

// CompareEngine orchestrates policy comparison
type CompareEngine struct {
	CalcEngine        *calculation.SettlementEngine
	MetricsCalculator *MetricsCalculator
	Variants          *VariantRegistry
}

// NewCompareEngine creates a comparison engine with the built-in variants
func NewCompareEngine(calcEngine *calculation.SettlementEngine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewSettlementEngine()
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		Variants:          CreateBuiltInVariants(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseVariant string   // Variant the others are measured against (default: configured)
	Variants    []string // Alternatives to project (default: every other registered variant)
}

// Compare projects the template pay over the rest of the year once per
// variant, starting each projection from the same year-to-date snapshot.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	template domain.PayPeriodInput,
	ytd domain.EmployeeYtd,
	rules *domain.JurisdictionRules,
	options CompareOptions,
) (*ComparisonSet, error) {
	if rules == nil {
		return nil, fmt.Errorf("%w: jurisdiction rules are required", domain.ErrInvalidInput)
	}
	baseName := options.BaseVariant
	if baseName == "" {
		baseName = VariantConfigured
	}
	names := options.Variants
	if len(names) == 0 {
		for _, name := range ce.Variants.Names() {
			if name != baseName {
				names = append(names, name)
			}
		}
	}

	baseResult, err := ce.project(ctx, baseName, template, ytd, rules)
	if err != nil {
		return nil, fmt.Errorf("failed to project base variant: %w", err)
	}

	// rules are only read; each variant projects on its own copy
	alternatives := make([]ComparisonResult, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			altResult, err := ce.project(gctx, name, template, ytd, rules)
			if err != nil {
				return fmt.Errorf("failed to project variant %s: %w", name, err)
			}
			alternatives[i] = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	compSet := &ComparisonSet{
		BaseVariantName:    baseName,
		Year:               template.PayDate.Year(),
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func (ce *CompareEngine) project(ctx context.Context, name string, template domain.PayPeriodInput, ytd domain.EmployeeYtd, rules *domain.JurisdictionRules) (ComparisonResult, error) {
	if err := ctx.Err(); err != nil {
		return ComparisonResult{}, err
	}
	variant, ok := ce.Variants.Get(name)
	if !ok {
		return ComparisonResult{}, fmt.Errorf("%w: unknown policy variant %q (available: %v)", domain.ErrInvalidInput, name, ce.Variants.Names())
	}
	policy, err := ce.Variants.Policy(name, rules.Policy)
	if err != nil {
		return ComparisonResult{}, err
	}

	variantRules := *rules
	variantRules.Policy = policy
	projection, err := ce.CalcEngine.ProjectYear(template, ytd, &variantRules)
	if err != nil {
		return ComparisonResult{}, err
	}
	return ce.MetricsCalculator.CalculateMetrics(variant, policy, projection), nil
}
