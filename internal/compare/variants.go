package compare

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/paygo/internal/domain"
)

// Variant is a named change to the calculation policy
type Variant struct {
	Name        string
	Description string
	Apply       func(p *domain.CalculationPolicy)
}

// Built-in variant names
const (
	VariantConfigured      = "configured"
	VariantCanonical       = "canonical"
	VariantAnnualExemption = "annual-exemption"
	VariantGrossBasis      = "gross-basis"
	VariantAnnualizedTax   = "annualized-tax"
)

// VariantRegistry holds the policy variants available for comparison
type VariantRegistry struct {
	variants map[string]Variant
}

// NewVariantRegistry creates an empty registry
func NewVariantRegistry() *VariantRegistry {
	return &VariantRegistry{variants: make(map[string]Variant)}
}

// Register adds or replaces a variant
func (r *VariantRegistry) Register(v Variant) {
	r.variants[v.Name] = v
}

// Get returns a variant by name
func (r *VariantRegistry) Get(name string) (Variant, bool) {
	v, ok := r.variants[name]
	return v, ok
}

// Names returns the registered variant names, sorted
func (r *VariantRegistry) Names() []string {
	names := make([]string, 0, len(r.variants))
	for name := range r.variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Policy applies the named variant to base and returns the resulting policy
func (r *VariantRegistry) Policy(name string, base domain.CalculationPolicy) (domain.CalculationPolicy, error) {
	v, ok := r.variants[name]
	if !ok {
		return domain.CalculationPolicy{}, fmt.Errorf("unknown policy variant %q (available: %v)", name, r.Names())
	}
	policy := base.WithDefaults()
	if v.Apply != nil {
		v.Apply(&policy)
	}
	return policy, policy.Validate()
}

// CreateBuiltInVariants returns a registry with the standard policy variants
func CreateBuiltInVariants() *VariantRegistry {
	r := NewVariantRegistry()
	r.Register(Variant{
		Name:        VariantConfigured,
		Description: "Policy from the rules file as configured",
	})
	r.Register(Variant{
		Name:        VariantCanonical,
		Description: "Per-period exemption, base-pay CPP and EI, cumulative tax",
		Apply: func(p *domain.CalculationPolicy) {
			*p = domain.DefaultCalculationPolicy()
		},
	})
	r.Register(Variant{
		Name:        VariantAnnualExemption,
		Description: "CPP basic exemption consumed from the start of the year",
		Apply: func(p *domain.CalculationPolicy) {
			p.ExemptionMethod = domain.ExemptionAnnualCumulative
		},
	})
	r.Register(Variant{
		Name:        VariantGrossBasis,
		Description: "CPP and EI charged on gross pay including tips and commission",
		Apply: func(p *domain.CalculationPolicy) {
			p.PensionableBasis = domain.BasisGrossPay
			p.InsurableBasis = domain.BasisGrossPay
		},
	})
	r.Register(Variant{
		Name:        VariantAnnualizedTax,
		Description: "Income tax on each period annualized alone",
		Apply: func(p *domain.CalculationPolicy) {
			p.TaxMethod = domain.TaxAnnualized
		},
	})
	return r
}
