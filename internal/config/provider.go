package config

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/paygo/internal/domain"
)

// RulesProvider resolves the jurisdiction rules for a calendar year
type RulesProvider interface {
	RulesFor(year int) (*domain.JurisdictionRules, error)
}

// StaticRulesProvider serves rules loaded once from a rules file. It is safe
// for concurrent use because it never changes after construction.
type StaticRulesProvider struct {
	defaultYear int
	byYear      map[int]domain.JurisdictionRules
}

// NewStaticRulesProvider indexes a validated rules file by year
func NewStaticRulesProvider(rf *RulesFile) *StaticRulesProvider {
	p := &StaticRulesProvider{
		defaultYear: rf.DefaultYear,
		byYear:      make(map[int]domain.JurisdictionRules, len(rf.Years)),
	}
	for _, r := range rf.Years {
		p.byYear[r.Year] = cloneRules(r)
	}
	return p
}

// DefaultRulesProvider returns a provider over the built-in rules
func DefaultRulesProvider() (*StaticRulesProvider, error) {
	rf, err := NewRulesParser().LoadDefault()
	if err != nil {
		return nil, err
	}
	return NewStaticRulesProvider(rf), nil
}

// RulesFor returns a copy of the rules for year, falling back to the default
// year. The returned rules carry the requested year only when configured.
func (p *StaticRulesProvider) RulesFor(year int) (*domain.JurisdictionRules, error) {
	if r, ok := p.byYear[year]; ok {
		c := cloneRules(r)
		return &c, nil
	}
	if r, ok := p.byYear[p.defaultYear]; ok && p.defaultYear != 0 {
		c := cloneRules(r)
		return &c, nil
	}
	return nil, fmt.Errorf("%w %d", domain.ErrUnknownYear, year)
}

// Years lists the configured years in ascending order
func (p *StaticRulesProvider) Years() []int {
	years := make([]int, 0, len(p.byYear))
	for y := range p.byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// DefaultYear is the fallback year, zero when none is configured
func (p *StaticRulesProvider) DefaultYear() int {
	return p.defaultYear
}

func cloneRules(r domain.JurisdictionRules) domain.JurisdictionRules {
	r.Federal.Brackets = cloneBrackets(r.Federal.Brackets)
	r.Regional.Brackets = cloneBrackets(r.Regional.Brackets)
	return r
}

func cloneBrackets(in []domain.TaxBracket) []domain.TaxBracket {
	out := make([]domain.TaxBracket, len(in))
	for i, b := range in {
		out[i] = domain.TaxBracket{Rate: b.Rate}
		if b.UpperBound != nil {
			ub := *b.UpperBound
			out[i].UpperBound = &ub
		}
	}
	return out
}
